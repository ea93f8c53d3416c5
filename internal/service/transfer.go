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

// TransferService moves cash custody between tellers through a two-step
// pending/accept handshake. The amount leaves the origin's balance at
// send time and reaches the destination only on acceptance; in between it
// is held by the transfer row, so the amount debited always equals the
// amount later credited.
type TransferService struct {
	db *db.DB
}

// NewTransferService creates a new TransferService
func NewTransferService(database *db.DB) *TransferService {
	return &TransferService{db: database}
}

// SendInput carries one transfer send request
type SendInput struct {
	Origin      string
	Destination string
	Amount      decimal.Decimal
}

// AcceptInput carries one transfer acceptance
type AcceptInput struct {
	TransferID uuid.UUID
	Teller     string
}

// Send debits the origin teller's cash and records a pending transfer
func (s *TransferService) Send(ctx context.Context, input SendInput) (*models.CashTransfer, error) {
	if err := ValidateAmount(input.Amount); err != nil {
		return nil, &ServiceError{Code: ErrCodeInvalidAmount, Message: err.Error()}
	}
	if err := ValidateTeller(input.Origin); err != nil {
		return nil, &ServiceError{Code: ErrCodeInvalidInput, Message: err.Error()}
	}
	if err := ValidateTeller(input.Destination); err != nil {
		return nil, &ServiceError{Code: ErrCodeInvalidInput, Message: err.Error()}
	}
	if input.Origin == input.Destination {
		return nil, &ServiceError{
			Code:    ErrCodeInvalidInput,
			Message: "origin and destination teller must differ",
		}
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, storeFailure("failed to start transaction", err)
	}
	defer func() {
		_ = tx.Rollback() //nolint:errcheck // rollback error is not critical in defer
	}()

	transfer, err := s.performSend(ctx,
		repository.NewTransferRepository(tx),
		repository.NewTellerBalanceRepository(tx),
		input,
	)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, storeFailure("failed to commit transaction", err)
	}

	return transfer, nil
}

// performSend contains the core send business logic
func (s *TransferService) performSend(
	ctx context.Context,
	transferRepo repository.TransferRepository,
	balanceRepo repository.TellerBalanceRepository,
	input SendInput,
) (*models.CashTransfer, error) {
	balance, err := balanceRepo.GetForUpdate(ctx, input.Origin)
	if err != nil {
		return nil, storeFailure("failed to lock origin balance", err)
	}

	if balance.Cash.LessThan(input.Amount) {
		return nil, &ServiceError{
			Code: ErrCodeInsufficientCash,
			Message: fmt.Sprintf("cash balance is %s, cannot send %s",
				balance.Cash.StringFixed(2), input.Amount.StringFixed(2)),
		}
	}

	if err := balanceRepo.AdjustCash(ctx, input.Origin, input.Amount.Neg()); err != nil {
		return nil, storeFailure("failed to debit origin", err)
	}

	transfer := &models.CashTransfer{
		ID:          uuid.New(),
		Origin:      input.Origin,
		Destination: input.Destination,
		Amount:      input.Amount,
		State:       models.TransferStatePending,
		SentAt:      time.Now(),
	}
	if err := transferRepo.Create(ctx, transfer); err != nil {
		return nil, storeFailure("failed to create transfer", err)
	}

	return transfer, nil
}

// ListPending returns the pending transfers addressed to a teller
func (s *TransferService) ListPending(ctx context.Context, destination string) ([]models.CashTransfer, error) {
	if err := ValidateTeller(destination); err != nil {
		return nil, &ServiceError{Code: ErrCodeInvalidInput, Message: err.Error()}
	}

	repo := repository.NewTransferRepository(s.db)
	transfers, err := repo.ListPendingTo(ctx, destination)
	if err != nil {
		return nil, storeFailure("failed to list pending transfers", err)
	}

	return transfers, nil
}

// Accept credits the destination teller with a pending transfer's amount
// and moves the transfer to its terminal state
func (s *TransferService) Accept(ctx context.Context, input AcceptInput) (*models.CashTransfer, error) {
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

	transfer, err := s.performAccept(ctx,
		repository.NewTransferRepository(tx),
		repository.NewTellerBalanceRepository(tx),
		input,
	)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, storeFailure("failed to commit transaction", err)
	}

	return transfer, nil
}

// performAccept contains the core acceptance business logic
func (s *TransferService) performAccept(
	ctx context.Context,
	transferRepo repository.TransferRepository,
	balanceRepo repository.TellerBalanceRepository,
	input AcceptInput,
) (*models.CashTransfer, error) {
	transfer, err := transferRepo.FindByIDForUpdate(ctx, input.TransferID)
	if err == models.ErrNotFound {
		return nil, &ServiceError{
			Code:    ErrCodeTransferNotFound,
			Message: "transfer not found",
		}
	}
	if err != nil {
		return nil, storeFailure("failed to lock transfer", err)
	}

	if transfer.State != models.TransferStatePending {
		return nil, &ServiceError{
			Code:    ErrCodeTransferNotPending,
			Message: "transfer has already been accepted",
		}
	}

	if transfer.Destination != input.Teller {
		return nil, &ServiceError{
			Code:    ErrCodeWrongRecipient,
			Message: "transfer is addressed to a different teller",
		}
	}

	if err := balanceRepo.Ensure(ctx, transfer.Destination); err != nil {
		return nil, storeFailure("failed to ensure destination balance", err)
	}
	if err := balanceRepo.AdjustCash(ctx, transfer.Destination, transfer.Amount); err != nil {
		return nil, storeFailure("failed to credit destination", err)
	}

	acceptedAt := time.Now()
	if err := transferRepo.MarkAccepted(ctx, transfer.ID, acceptedAt); err != nil {
		return nil, storeFailure("failed to mark transfer accepted", err)
	}

	transfer.State = models.TransferStateAccepted
	transfer.AcceptedAt = &acceptedAt

	return transfer, nil
}
