package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bancauno/backoffice/internal/db"
	"github.com/bancauno/backoffice/internal/models"
)

// DrawerRepository defines the interface for drawer assignment
type DrawerRepository interface {
	FirstFreeForUpdate(ctx context.Context) (*models.Drawer, error)
	Assign(ctx context.Context, drawerID int64, teller string, at time.Time) error
	ReleaseByTeller(ctx context.Context, teller string) (int64, error)
	FindByTeller(ctx context.Context, teller string) (*models.Drawer, error)
}

// drawerRepository implements DrawerRepository
type drawerRepository struct {
	q db.Querier
}

// NewDrawerRepository creates a new DrawerRepository
func NewDrawerRepository(q db.Querier) DrawerRepository {
	return &drawerRepository{q: q}
}

// FirstFreeForUpdate selects and locks the lowest-id free drawer.
// SKIP LOCKED keeps two concurrent sessions from ever seeing the same
// candidate row; when every free drawer is taken or locked the result is
// models.ErrNoFreeDrawer.
func (r *drawerRepository) FirstFreeForUpdate(ctx context.Context) (*models.Drawer, error) {
	query := `
		SELECT id, name, state, assigned_teller, assigned_at
		FROM drawers
		WHERE state = $1
		ORDER BY id
		LIMIT 1
		FOR UPDATE SKIP LOCKED
	`

	var drawer models.Drawer
	err := r.q.QueryRowContext(ctx, query, models.DrawerStateFree).Scan(
		&drawer.ID,
		&drawer.Name,
		&drawer.State,
		&drawer.AssignedTeller,
		&drawer.AssignedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNoFreeDrawer
	}
	if err != nil {
		return nil, db.ClassifyError(fmt.Errorf("failed to select free drawer: %w", err))
	}

	return &drawer, nil
}

// Assign marks a drawer occupied by the given teller
func (r *drawerRepository) Assign(ctx context.Context, drawerID int64, teller string, at time.Time) error {
	query := `
		UPDATE drawers
		SET state = $2, assigned_teller = $3, assigned_at = $4
		WHERE id = $1
	`

	result, err := r.q.ExecContext(ctx, query, drawerID, models.DrawerStateOccupied, teller, at)
	if err != nil {
		return db.ClassifyError(fmt.Errorf("failed to assign drawer: %w", err))
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

// ReleaseByTeller frees every drawer held by the teller and reports how
// many were released. Zero is a valid outcome, not an error.
func (r *drawerRepository) ReleaseByTeller(ctx context.Context, teller string) (int64, error) {
	query := `
		UPDATE drawers
		SET state = $2, assigned_teller = NULL, assigned_at = NULL
		WHERE assigned_teller = $1
	`

	result, err := r.q.ExecContext(ctx, query, teller, models.DrawerStateFree)
	if err != nil {
		return 0, db.ClassifyError(fmt.Errorf("failed to release drawers: %w", err))
	}

	released, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return released, nil
}

// FindByTeller returns the drawer currently held by the teller
func (r *drawerRepository) FindByTeller(ctx context.Context, teller string) (*models.Drawer, error) {
	query := `
		SELECT id, name, state, assigned_teller, assigned_at
		FROM drawers
		WHERE assigned_teller = $1
	`

	var drawer models.Drawer
	err := r.q.QueryRowContext(ctx, query, teller).Scan(
		&drawer.ID,
		&drawer.Name,
		&drawer.State,
		&drawer.AssignedTeller,
		&drawer.AssignedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find drawer by teller: %w", err)
	}

	return &drawer, nil
}
