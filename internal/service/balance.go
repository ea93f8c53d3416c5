package service

import (
	"context"

	"github.com/bancauno/backoffice/internal/db"
	"github.com/bancauno/backoffice/internal/repository"
	"github.com/shopspring/decimal"
)

// TellerBalanceService reads per-teller drawer holdings
type TellerBalanceService struct {
	db *db.DB
}

// NewTellerBalanceService creates a new TellerBalanceService
func NewTellerBalanceService(database *db.DB) *TellerBalanceService {
	return &TellerBalanceService{db: database}
}

// BalancesResult reports a teller's current holdings
type BalancesResult struct {
	Cash    decimal.Decimal
	Cheques decimal.Decimal
	Total   decimal.Decimal
}

// Balances returns the teller's cash and cheque holdings, creating the
// balance row at zero on first reference
func (s *TellerBalanceService) Balances(ctx context.Context, teller string) (*BalancesResult, error) {
	if err := ValidateTeller(teller); err != nil {
		return nil, &ServiceError{Code: ErrCodeInvalidInput, Message: err.Error()}
	}

	repo := repository.NewTellerBalanceRepository(s.db)
	balance, err := repo.Get(ctx, teller)
	if err != nil {
		return nil, storeFailure("failed to read teller balances", err)
	}

	return &BalancesResult{
		Cash:    balance.Cash,
		Cheques: balance.Cheques,
		Total:   balance.Cash.Add(balance.Cheques),
	}, nil
}
