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

// DebitNoteService handles bank-initiated debits. A debit note follows
// the same gate as a withdrawal, including the sufficient-funds check, but
// no cash crosses the counter so the teller's drawer is untouched.
type DebitNoteService struct {
	db *db.DB
}

// NewDebitNoteService creates a new DebitNoteService
func NewDebitNoteService(database *db.DB) *DebitNoteService {
	return &DebitNoteService{db: database}
}

// DebitNoteInput carries one debit note
type DebitNoteInput struct {
	AccountID      uuid.UUID
	HolderDocument string
	Amount         decimal.Decimal
	Teller         string
}

// DebitNoteResult reports an applied debit note
type DebitNoteResult struct {
	TransactionID uuid.UUID
	BalanceBefore decimal.Decimal
	BalanceAfter  decimal.Decimal
	Amount        decimal.Decimal
	ProcessedAt   time.Time
}

// Apply debits the account under the account row lock
func (s *DebitNoteService) Apply(ctx context.Context, input DebitNoteInput) (*DebitNoteResult, error) {
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

	result, err := s.performDebitNote(ctx,
		repository.NewAccountRepository(tx),
		repository.NewTransactionRepository(tx),
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

// performDebitNote contains the core debit note business logic
func (s *DebitNoteService) performDebitNote(
	ctx context.Context,
	accountRepo repository.AccountRepository,
	transactionRepo repository.TransactionRepository,
	input DebitNoteInput,
) (*DebitNoteResult, error) {
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

	newBalance := account.Balance.Sub(input.Amount)
	if err := accountRepo.SetBalance(ctx, account.ID, newBalance); err != nil {
		return nil, storeFailure("failed to update balance", err)
	}

	txn := &models.Transaction{
		ID:            uuid.New(),
		AccountID:     account.ID,
		Kind:          models.TransactionKindDebitNote,
		Amount:        input.Amount.Neg(),
		BalanceBefore: account.Balance,
		BalanceAfter:  newBalance,
		Teller:        input.Teller,
		CreatedAt:     time.Now(),
	}
	if err := transactionRepo.Create(ctx, txn); err != nil {
		return nil, storeFailure("failed to record debit note", err)
	}

	return &DebitNoteResult{
		TransactionID: txn.ID,
		BalanceBefore: account.Balance,
		BalanceAfter:  newBalance,
		Amount:        input.Amount,
		ProcessedAt:   txn.CreatedAt,
	}, nil
}
