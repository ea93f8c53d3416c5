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

// ClosureService handles account cancellation
type ClosureService struct {
	db *db.DB
}

// NewClosureService creates a new ClosureService
func NewClosureService(database *db.DB) *ClosureService {
	return &ClosureService{db: database}
}

// CloseInput carries one account cancellation request
type CloseInput struct {
	AccountNumber  string
	HolderDocument string
	Reason         string
	Teller         string
}

// CloseResult reports a completed cancellation
type CloseResult struct {
	AccountID      uuid.UUID
	AccountNumber  string
	Holder         string
	HolderDocument string
	Reason         string
	ClosedAt       time.Time
}

// Close cancels an account. The balance must be exactly zero and a reason
// must be supplied; on success the account's link to its opening request
// is cleared so the request can never back another account.
func (s *ClosureService) Close(ctx context.Context, input CloseInput) (*CloseResult, error) {
	if err := ValidateReason(input.Reason); err != nil {
		return nil, &ServiceError{Code: ErrCodeMotiveRequired, Message: err.Error()}
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

	result, err := s.performClose(ctx,
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

// performClose contains the core cancellation business logic
func (s *ClosureService) performClose(
	ctx context.Context,
	accountRepo repository.AccountRepository,
	transactionRepo repository.TransactionRepository,
	input CloseInput,
) (*CloseResult, error) {
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
			Message: fmt.Sprintf("account is already %s", account.State),
		}
	}

	if account.HolderDocument != input.HolderDocument {
		return nil, &ServiceError{
			Code:    ErrCodeHolderMismatch,
			Message: "document does not match the account holder",
		}
	}

	if !account.Balance.IsZero() {
		return nil, &ServiceError{
			Code: ErrCodeNonZeroBalance,
			Message: fmt.Sprintf("cannot close account: balance is %s, it must be 0.00",
				account.Balance.StringFixed(2)),
		}
	}

	if err := accountRepo.Closeout(ctx, account.ID); err != nil {
		return nil, storeFailure("failed to close account", err)
	}

	reason := input.Reason
	txn := &models.Transaction{
		ID:            uuid.New(),
		AccountID:     account.ID,
		Kind:          models.TransactionKindCancellation,
		Amount:        decimal.Zero,
		BalanceBefore: decimal.Zero,
		BalanceAfter:  decimal.Zero,
		Teller:        input.Teller,
		Reason:        &reason,
		CreatedAt:     time.Now(),
	}
	if err := transactionRepo.Create(ctx, txn); err != nil {
		return nil, storeFailure("failed to record cancellation", err)
	}

	return &CloseResult{
		AccountID:      account.ID,
		AccountNumber:  account.AccountNumber,
		Holder:         account.HolderName,
		HolderDocument: account.HolderDocument,
		Reason:         input.Reason,
		ClosedAt:       txn.CreatedAt,
	}, nil
}
