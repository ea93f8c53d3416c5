package repository

import (
	"context"
	"fmt"

	"github.com/bancauno/backoffice/internal/db"
	"github.com/bancauno/backoffice/internal/models"
	"github.com/shopspring/decimal"
)

// TellerBalanceRepository defines the interface for per-teller cash and
// cheque holdings. Rows are created lazily on first reference.
type TellerBalanceRepository interface {
	Ensure(ctx context.Context, teller string) error
	Get(ctx context.Context, teller string) (*models.TellerBalance, error)
	GetForUpdate(ctx context.Context, teller string) (*models.TellerBalance, error)
	AdjustCash(ctx context.Context, teller string, delta decimal.Decimal) error
	AdjustCheques(ctx context.Context, teller string, delta decimal.Decimal) error
}

// tellerBalanceRepository implements TellerBalanceRepository
type tellerBalanceRepository struct {
	q db.Querier
}

// NewTellerBalanceRepository creates a new TellerBalanceRepository
func NewTellerBalanceRepository(q db.Querier) TellerBalanceRepository {
	return &tellerBalanceRepository{q: q}
}

// Ensure creates the teller's balance row at zero if it does not exist.
// The upsert is atomic, so two concurrent first references cannot race
// into duplicate rows.
func (r *tellerBalanceRepository) Ensure(ctx context.Context, teller string) error {
	query := `
		INSERT INTO teller_balances (teller, cash, cheques)
		VALUES ($1, 0, 0)
		ON CONFLICT (teller) DO NOTHING
	`

	if _, err := r.q.ExecContext(ctx, query, teller); err != nil {
		return db.ClassifyError(fmt.Errorf("failed to ensure teller balance row: %w", err))
	}

	return nil
}

// Get returns the teller's balances, creating the row at zero on first
// reference
func (r *tellerBalanceRepository) Get(ctx context.Context, teller string) (*models.TellerBalance, error) {
	if err := r.Ensure(ctx, teller); err != nil {
		return nil, err
	}

	query := `
		SELECT teller, cash, cheques, updated_at
		FROM teller_balances
		WHERE teller = $1
	`

	return r.scan(ctx, query, teller)
}

// GetForUpdate returns the teller's balances with the row locked for the
// remainder of the enclosing transaction, creating it at zero first if
// absent
func (r *tellerBalanceRepository) GetForUpdate(ctx context.Context, teller string) (*models.TellerBalance, error) {
	if err := r.Ensure(ctx, teller); err != nil {
		return nil, err
	}

	query := `
		SELECT teller, cash, cheques, updated_at
		FROM teller_balances
		WHERE teller = $1
		FOR UPDATE
	`

	return r.scan(ctx, query, teller)
}

func (r *tellerBalanceRepository) scan(ctx context.Context, query, teller string) (*models.TellerBalance, error) {
	var balance models.TellerBalance
	err := r.q.QueryRowContext(ctx, query, teller).Scan(
		&balance.Teller,
		&balance.Cash,
		&balance.Cheques,
		&balance.UpdatedAt,
	)
	if err != nil {
		return nil, db.ClassifyError(fmt.Errorf("failed to read teller balance: %w", err))
	}

	return &balance, nil
}

// AdjustCash applies a signed delta to the teller's cash component
func (r *tellerBalanceRepository) AdjustCash(ctx context.Context, teller string, delta decimal.Decimal) error {
	return r.adjust(ctx, teller, "cash", delta)
}

// AdjustCheques applies a signed delta to the teller's cheque component
func (r *tellerBalanceRepository) AdjustCheques(ctx context.Context, teller string, delta decimal.Decimal) error {
	return r.adjust(ctx, teller, "cheques", delta)
}

func (r *tellerBalanceRepository) adjust(ctx context.Context, teller, column string, delta decimal.Decimal) error {
	// column is one of two fixed literals, never caller input
	query := fmt.Sprintf(`
		UPDATE teller_balances
		SET %s = %s + $2, updated_at = NOW()
		WHERE teller = $1
	`, column, column)

	result, err := r.q.ExecContext(ctx, query, teller, delta)
	if err != nil {
		return db.ClassifyError(fmt.Errorf("failed to adjust teller %s balance: %w", column, err))
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
