// Package service implements the teller cash-operations core: balance
// mutation, drawer assignment, cash transfers between tellers, and the
// account lifecycle gate. Every mutating operation runs inside one store
// transaction with the contended rows locked for its duration.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/bancauno/backoffice/internal/db"
	"github.com/bancauno/backoffice/internal/models"
	"github.com/bancauno/backoffice/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WithdrawalService handles counter withdrawals
type WithdrawalService struct {
	db *db.DB
}

// NewWithdrawalService creates a new WithdrawalService
func NewWithdrawalService(database *db.DB) *WithdrawalService {
	return &WithdrawalService{db: database}
}

// WithdrawalInput carries one withdrawal request
type WithdrawalInput struct {
	AccountID      uuid.UUID
	HolderDocument string
	Amount         decimal.Decimal
	Teller         string
}

// WithdrawalResult reports a completed withdrawal
type WithdrawalResult struct {
	TransactionID uuid.UUID
	BalanceBefore decimal.Decimal
	BalanceAfter  decimal.Decimal
	Amount        decimal.Decimal
	ProcessedAt   time.Time
}

// FindAccount looks up an account and its holder by account number for
// the teller's counter screen. Read-only, no locking.
func (s *WithdrawalService) FindAccount(ctx context.Context, accountNumber string) (*models.AccountHolder, error) {
	repo := repository.NewAccountRepository(s.db)
	account, err := repo.FindByNumber(ctx, accountNumber)
	if err == models.ErrNotFound {
		return nil, &ServiceError{
			Code:    ErrCodeAccountNotFound,
			Message: "account not found",
		}
	}
	if err != nil {
		return nil, storeFailure("failed to find account", err)
	}

	return account, nil
}

// Transactions returns the account's movement history for the counter
// screen, newest first
func (s *WithdrawalService) Transactions(ctx context.Context, accountNumber string) ([]models.Transaction, error) {
	account, err := s.FindAccount(ctx, accountNumber)
	if err != nil {
		return nil, err
	}

	repo := repository.NewTransactionRepository(s.db)
	txns, err := repo.ListByAccount(ctx, account.ID)
	if err != nil {
		return nil, storeFailure("failed to list transactions", err)
	}

	return txns, nil
}

// Withdraw debits an account and the acting teller's drawer cash. The
// account row stays locked for the whole operation so concurrent
// withdrawals serialize and can never overdraw.
func (s *WithdrawalService) Withdraw(ctx context.Context, input WithdrawalInput) (*WithdrawalResult, error) {
	if err := ValidateAmount(input.Amount); err != nil {
		return nil, &ServiceError{Code: ErrCodeInvalidAmount, Message: err.Error()}
	}
	if err := ValidateTeller(input.Teller); err != nil {
		return nil, &ServiceError{Code: ErrCodeInvalidInput, Message: err.Error()}
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, storeFailure("failed to start transaction", err)
	}
	defer func() {
		_ = tx.Rollback() //nolint:errcheck // rollback error is not critical in defer
	}()

	result, err := s.performWithdrawal(ctx,
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

// performWithdrawal contains the core withdrawal business logic
func (s *WithdrawalService) performWithdrawal(
	ctx context.Context,
	accountRepo repository.AccountRepository,
	transactionRepo repository.TransactionRepository,
	balanceRepo repository.TellerBalanceRepository,
	input WithdrawalInput,
) (*WithdrawalResult, error) {
	account, err := accountRepo.FindByIDForUpdate(ctx, input.AccountID)
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

	if account.HolderDocument != input.HolderDocument {
		return nil, &ServiceError{
			Code:    ErrCodeHolderMismatch,
			Message: "document does not match the account holder",
		}
	}

	if account.Balance.LessThan(input.Amount) {
		return nil, &ServiceError{
			Code:    ErrCodeInsufficientFunds,
			Message: fmt.Sprintf("insufficient funds: balance is %s", account.Balance.StringFixed(2)),
		}
	}

	tellerBalance, err := balanceRepo.GetForUpdate(ctx, input.Teller)
	if err != nil {
		return nil, storeFailure("failed to lock teller balance", err)
	}

	if tellerBalance.Cash.LessThan(input.Amount) {
		return nil, &ServiceError{
			Code:    ErrCodeInsufficientCash,
			Message: fmt.Sprintf("drawer cash is %s, cannot pay out %s",
				tellerBalance.Cash.StringFixed(2), input.Amount.StringFixed(2)),
		}
	}

	newBalance := account.Balance.Sub(input.Amount)
	if err := accountRepo.SetBalance(ctx, account.ID, newBalance); err != nil {
		return nil, storeFailure("failed to update balance", err)
	}

	txn := &models.Transaction{
		ID:            uuid.New(),
		AccountID:     account.ID,
		Kind:          models.TransactionKindWithdrawal,
		Amount:        input.Amount.Neg(),
		BalanceBefore: account.Balance,
		BalanceAfter:  newBalance,
		Teller:        input.Teller,
		CreatedAt:     time.Now(),
	}
	if err := transactionRepo.Create(ctx, txn); err != nil {
		return nil, storeFailure("failed to record withdrawal", err)
	}

	if err := balanceRepo.AdjustCash(ctx, input.Teller, input.Amount.Neg()); err != nil {
		return nil, storeFailure("failed to adjust teller cash", err)
	}

	return &WithdrawalResult{
		TransactionID: txn.ID,
		BalanceBefore: account.Balance,
		BalanceAfter:  newBalance,
		Amount:        input.Amount,
		ProcessedAt:   txn.CreatedAt,
	}, nil
}
