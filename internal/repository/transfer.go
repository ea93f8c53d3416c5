package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bancauno/backoffice/internal/db"
	"github.com/bancauno/backoffice/internal/models"
	"github.com/google/uuid"
)

// TransferRepository defines the interface for teller-to-teller cash
// transfers
type TransferRepository interface {
	Create(ctx context.Context, transfer *models.CashTransfer) error
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.CashTransfer, error)
	ListPendingTo(ctx context.Context, destination string) ([]models.CashTransfer, error)
	MarkAccepted(ctx context.Context, id uuid.UUID, acceptedAt time.Time) error
}

// transferRepository implements TransferRepository
type transferRepository struct {
	q db.Querier
}

// NewTransferRepository creates a new TransferRepository
func NewTransferRepository(q db.Querier) TransferRepository {
	return &transferRepository{q: q}
}

// Create inserts a new pending transfer row
func (r *transferRepository) Create(ctx context.Context, transfer *models.CashTransfer) error {
	query := `
		INSERT INTO cash_transfers (id, origin_teller, destination_teller, amount, state, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.q.ExecContext(ctx, query,
		transfer.ID,
		transfer.Origin,
		transfer.Destination,
		transfer.Amount,
		transfer.State,
		transfer.SentAt,
	)
	if err != nil {
		return db.ClassifyError(fmt.Errorf("failed to create transfer: %w", err))
	}

	return nil
}

// FindByIDForUpdate retrieves a transfer and locks its row for the
// remainder of the enclosing transaction
func (r *transferRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.CashTransfer, error) {
	query := `
		SELECT id, origin_teller, destination_teller, amount, state, sent_at, accepted_at
		FROM cash_transfers
		WHERE id = $1
		FOR UPDATE
	`

	var transfer models.CashTransfer
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&transfer.ID,
		&transfer.Origin,
		&transfer.Destination,
		&transfer.Amount,
		&transfer.State,
		&transfer.SentAt,
		&transfer.AcceptedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, db.ClassifyError(fmt.Errorf("failed to find transfer: %w", err))
	}

	return &transfer, nil
}

// ListPendingTo returns the pending transfers addressed to a teller,
// newest first
func (r *transferRepository) ListPendingTo(ctx context.Context, destination string) ([]models.CashTransfer, error) {
	query := `
		SELECT id, origin_teller, destination_teller, amount, state, sent_at, accepted_at
		FROM cash_transfers
		WHERE destination_teller = $1 AND state = $2
		ORDER BY sent_at DESC
	`

	rows, err := r.q.QueryContext(ctx, query, destination, models.TransferStatePending)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending transfers: %w", err)
	}
	defer rows.Close()

	var transfers []models.CashTransfer
	for rows.Next() {
		var transfer models.CashTransfer
		if err := rows.Scan(
			&transfer.ID,
			&transfer.Origin,
			&transfer.Destination,
			&transfer.Amount,
			&transfer.State,
			&transfer.SentAt,
			&transfer.AcceptedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transfer: %w", err)
		}
		transfers = append(transfers, transfer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transfers: %w", err)
	}

	return transfers, nil
}

// MarkAccepted moves a transfer to its terminal accepted state
func (r *transferRepository) MarkAccepted(ctx context.Context, id uuid.UUID, acceptedAt time.Time) error {
	query := `
		UPDATE cash_transfers
		SET state = $2, accepted_at = $3
		WHERE id = $1
	`

	result, err := r.q.ExecContext(ctx, query, id, models.TransferStateAccepted, acceptedAt)
	if err != nil {
		return db.ClassifyError(fmt.Errorf("failed to mark transfer accepted: %w", err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return models.ErrNotFound
	}

	return nil
}
