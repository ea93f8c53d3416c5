package service

import (
	"context"
	"time"

	"github.com/bancauno/backoffice/internal/db"
	"github.com/bancauno/backoffice/internal/models"
	"github.com/bancauno/backoffice/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DepositService handles cash and cheque deposits
type DepositService struct {
	db *db.DB
}

// NewDepositService creates a new DepositService
func NewDepositService(database *db.DB) *DepositService {
	return &DepositService{db: database}
}

// DepositInput carries one deposit request
type DepositInput struct {
	AccountNumber string
	Kind          models.DepositKind
	Amount        decimal.Decimal
	ChequeCode    *string
	ChequeNumber  *string
	Teller        string
}

// DepositResult reports a completed deposit
type DepositResult struct {
	TransactionID  uuid.UUID
	AccountNumber  string
	Holder         string
	HolderDocument string
	BalanceBefore  decimal.Decimal
	BalanceAfter   decimal.Decimal
	Amount         decimal.Decimal
	Kind           models.DepositKind
	ProcessedAt    time.Time
}

// Deposit credits an account and the acting teller's drawer holdings
func (s *DepositService) Deposit(ctx context.Context, input DepositInput) (*DepositResult, error) {
	if err := ValidateAmount(input.Amount); err != nil {
		return nil, &ServiceError{Code: ErrCodeInvalidAmount, Message: err.Error()}
	}
	if err := ValidateTeller(input.Teller); err != nil {
		return nil, &ServiceError{Code: ErrCodeInvalidInput, Message: err.Error()}
	}
	if err := ValidateDeposit(input.Kind, input.ChequeCode, input.ChequeNumber); err != nil {
		return nil, &ServiceError{Code: ErrCodeInvalidInput, Message: err.Error()}
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, storeFailure("failed to start transaction", err)
	}
	defer func() {
		_ = tx.Rollback() //nolint:errcheck // rollback error is not critical in defer
	}()

	result, err := s.performDeposit(ctx,
		repository.NewAccountRepository(tx),
		repository.NewTransactionRepository(tx),
		repository.NewTellerBalanceRepository(tx),
		input,
	)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, storeFailure("failed to commit transaction", err)
	}

	return result, nil
}

// performDeposit contains the core deposit business logic
func (s *DepositService) performDeposit(
	ctx context.Context,
	accountRepo repository.AccountRepository,
	transactionRepo repository.TransactionRepository,
	balanceRepo repository.TellerBalanceRepository,
	input DepositInput,
) (*DepositResult, error) {
	account, err := accountRepo.FindByNumberForUpdate(ctx, input.AccountNumber)
	if err == models.ErrNotFound {
		return nil, &ServiceError{
			Code:    ErrCodeAccountNotFound,
			Message: "account not found",
		}
	}
	if err != nil {
		return nil, storeFailure("failed to lock account", err)
	}

	if account.State != models.AccountStateActive {
		return nil, &ServiceError{
			Code:    ErrCodeAccountInactive,
			Message: "account is not active",
		}
	}

	newBalance := account.Balance.Add(input.Amount)
	if err := accountRepo.SetBalance(ctx, account.ID, newBalance); err != nil {
		return nil, storeFailure("failed to update balance", err)
	}

	kind := input.Kind
	txn := &models.Transaction{
		ID:            uuid.New(),
		AccountID:     account.ID,
		Kind:          models.TransactionKindDeposit,
		DepositKind:   &kind,
		Amount:        input.Amount,
		ChequeCode:    input.ChequeCode,
		ChequeNumber:  input.ChequeNumber,
		BalanceBefore: account.Balance,
		BalanceAfter:  newBalance,
		Teller:        input.Teller,
		CreatedAt:     time.Now(),
	}
	if err := transactionRepo.Create(ctx, txn); err != nil {
		return nil, storeFailure("failed to record deposit", err)
	}

	if err := creditTellerHoldings(ctx, balanceRepo, input.Teller, input.Kind, input.Amount); err != nil {
		return nil, err
	}

	return &DepositResult{
		TransactionID:  txn.ID,
		AccountNumber:  account.AccountNumber,
		Holder:         account.HolderName,
		HolderDocument: account.HolderDocument,
		BalanceBefore:  account.Balance,
		BalanceAfter:   newBalance,
		Amount:         input.Amount,
		Kind:           input.Kind,
		ProcessedAt:    txn.CreatedAt,
	}, nil
}

// creditTellerHoldings adds a received deposit to the teller's cash or
// cheque component, creating the balance row on first reference
func creditTellerHoldings(
	ctx context.Context,
	balanceRepo repository.TellerBalanceRepository,
	teller string,
	kind models.DepositKind,
	amount decimal.Decimal,
) error {
	if err := balanceRepo.Ensure(ctx, teller); err != nil {
		return storeFailure("failed to ensure teller balance", err)
	}

	var err error
	if kind == models.DepositKindCheque {
		err = balanceRepo.AdjustCheques(ctx, teller, amount)
	} else {
		err = balanceRepo.AdjustCash(ctx, teller, amount)
	}
	if err != nil {
		return storeFailure("failed to adjust teller holdings", err)
	}

	return nil
}
