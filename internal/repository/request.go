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

// RequestRepository defines the interface for account-opening requests.
// Submitting and approving requests belongs to the advisor and director
// modules; this core only reads approved requests and consumes them.
type RequestRepository interface {
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.OpeningRequest, error)
	HasAccount(ctx context.Context, requestID uuid.UUID) (bool, error)
	MarkOpened(ctx context.Context, id uuid.UUID, at time.Time) error
	FindApprovedForDocument(ctx context.Context, documentType, documentNumber string) (*models.OpeningRequest, *models.Client, error)
	FindClientByDocument(ctx context.Context, documentType, documentNumber string) (*models.Client, error)
}

// requestRepository implements RequestRepository
type requestRepository struct {
	q db.Querier
}

// NewRequestRepository creates a new RequestRepository
func NewRequestRepository(q db.Querier) RequestRepository {
	return &requestRepository{q: q}
}

// FindByIDForUpdate retrieves a request and locks its row so two
// concurrent openings cannot consume it twice
func (r *requestRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.OpeningRequest, error) {
	query := `
		SELECT id, client_id, account_type, state, submitted_at, responded_at
		FROM opening_requests
		WHERE id = $1
		FOR UPDATE
	`

	var req models.OpeningRequest
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&req.ID,
		&req.ClientID,
		&req.AccountType,
		&req.State,
		&req.SubmittedAt,
		&req.RespondedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, db.ClassifyError(fmt.Errorf("failed to find request: %w", err))
	}

	return &req, nil
}

// HasAccount reports whether any account already references the request
func (r *requestRepository) HasAccount(ctx context.Context, requestID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM accounts WHERE request_id = $1)`

	var exists bool
	if err := r.q.QueryRowContext(ctx, query, requestID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check request consumption: %w", err)
	}

	return exists, nil
}

// MarkOpened records that the request has been consumed by an account
// opening
func (r *requestRepository) MarkOpened(ctx context.Context, id uuid.UUID, at time.Time) error {
	query := `
		UPDATE opening_requests
		SET state = $2, responded_at = $3
		WHERE id = $1
	`

	result, err := r.q.ExecContext(ctx, query, id, models.RequestStateOpened, at)
	if err != nil {
		return db.ClassifyError(fmt.Errorf("failed to mark request opened: %w", err))
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

// FindApprovedForDocument returns the client identified by document plus
// their most recent approved, unconsumed request if one exists. A client
// with no such request yields models.ErrNotFound on the request only.
func (r *requestRepository) FindApprovedForDocument(ctx context.Context, documentType, documentNumber string) (*models.OpeningRequest, *models.Client, error) {
	client, err := r.FindClientByDocument(ctx, documentType, documentNumber)
	if err != nil {
		return nil, nil, err
	}

	query := `
		SELECT r.id, r.client_id, r.account_type, r.state, r.submitted_at, r.responded_at
		FROM opening_requests r
		WHERE r.client_id = $1
		  AND r.state = $2
		  AND NOT EXISTS (SELECT 1 FROM accounts a WHERE a.request_id = r.id)
		ORDER BY r.submitted_at DESC
		LIMIT 1
	`

	var req models.OpeningRequest
	err = r.q.QueryRowContext(ctx, query, client.ID, models.RequestStateApproved).Scan(
		&req.ID,
		&req.ClientID,
		&req.AccountType,
		&req.State,
		&req.SubmittedAt,
		&req.RespondedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, client, models.ErrNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find approved request: %w", err)
	}

	return &req, client, nil
}

// FindClientByDocument retrieves a client by document type and number
func (r *requestRepository) FindClientByDocument(ctx context.Context, documentType, documentNumber string) (*models.Client, error) {
	query := `
		SELECT id, document_type, document_number, full_name
		FROM clients
		WHERE document_type = $1 AND document_number = $2
	`

	var client models.Client
	err := r.q.QueryRowContext(ctx, query, documentType, documentNumber).Scan(
		&client.ID,
		&client.DocumentType,
		&client.DocumentNumber,
		&client.FullName,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find client: %w", err)
	}

	return &client, nil
}
