// Package repository provides data access layer implementations for the
// back office.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bancauno/backoffice/internal/db"
	"github.com/bancauno/backoffice/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountRepository defines the interface for account data access
type AccountRepository interface {
	FindByNumber(ctx context.Context, accountNumber string) (*models.AccountHolder, error)
	FindByNumberForUpdate(ctx context.Context, accountNumber string) (*models.AccountHolder, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.AccountHolder, error)
	Create(ctx context.Context, account *models.Account) error
	SetBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error
	Closeout(ctx context.Context, id uuid.UUID) error
	NextAccountNumber(ctx context.Context) (string, error)
}

// accountRepository implements AccountRepository
type accountRepository struct {
	q db.Querier
}

// NewAccountRepository creates a new AccountRepository over a connection
// pool or an open transaction
func NewAccountRepository(q db.Querier) AccountRepository {
	return &accountRepository{q: q}
}

const accountHolderColumns = `
		a.id, a.account_number, a.client_id, a.request_id,
		a.balance, a.state, a.opened_at,
		c.full_name, c.document_number
	FROM accounts a
	INNER JOIN clients c ON c.id = a.client_id`

func (r *accountRepository) scanHolder(row *sql.Row) (*models.AccountHolder, error) {
	var acct models.AccountHolder
	err := row.Scan(
		&acct.ID,
		&acct.AccountNumber,
		&acct.ClientID,
		&acct.RequestID,
		&acct.Balance,
		&acct.State,
		&acct.OpenedAt,
		&acct.HolderName,
		&acct.HolderDocument,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, db.ClassifyError(fmt.Errorf("failed to scan account: %w", err))
	}
	return &acct, nil
}

// FindByNumber retrieves an account and its holder by account number
func (r *accountRepository) FindByNumber(ctx context.Context, accountNumber string) (*models.AccountHolder, error) {
	query := `SELECT` + accountHolderColumns + `
	WHERE a.account_number = $1`

	return r.scanHolder(r.q.QueryRowContext(ctx, query, accountNumber))
}

// FindByNumberForUpdate retrieves an account by number and locks its row
// for the remainder of the enclosing transaction
func (r *accountRepository) FindByNumberForUpdate(ctx context.Context, accountNumber string) (*models.AccountHolder, error) {
	query := `SELECT` + accountHolderColumns + `
	WHERE a.account_number = $1
	FOR UPDATE OF a`

	return r.scanHolder(r.q.QueryRowContext(ctx, query, accountNumber))
}

// FindByIDForUpdate retrieves an account by id and locks its row for the
// remainder of the enclosing transaction
func (r *accountRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.AccountHolder, error) {
	query := `SELECT` + accountHolderColumns + `
	WHERE a.id = $1
	FOR UPDATE OF a`

	return r.scanHolder(r.q.QueryRowContext(ctx, query, id))
}

// Create inserts a new account row
func (r *accountRepository) Create(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO accounts (id, account_number, client_id, request_id, balance, state, opened_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.q.ExecContext(ctx, query,
		account.ID,
		account.AccountNumber,
		account.ClientID,
		account.RequestID,
		account.Balance,
		account.State,
		account.OpenedAt,
	)
	if err != nil {
		return db.ClassifyError(fmt.Errorf("failed to create account: %w", err))
	}

	return nil
}

// SetBalance writes the new balance for an account. Callers must hold the
// account row lock and have computed the balance from the locked row.
func (r *accountRepository) SetBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	query := `UPDATE accounts SET balance = $2 WHERE id = $1`

	result, err := r.q.ExecContext(ctx, query, id, balance)
	if err != nil {
		return db.ClassifyError(fmt.Errorf("failed to set account balance: %w", err))
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

// Closeout marks the account closed and severs its link to the opening
// request so the request cannot back another account
func (r *accountRepository) Closeout(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE accounts SET state = $2, request_id = NULL WHERE id = $1`

	result, err := r.q.ExecContext(ctx, query, id, models.AccountStateClosed)
	if err != nil {
		return db.ClassifyError(fmt.Errorf("failed to close account: %w", err))
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

// NextAccountNumber draws the next ten-digit account number from the
// dedicated sequence
func (r *accountRepository) NextAccountNumber(ctx context.Context) (string, error) {
	var number string
	err := r.q.QueryRowContext(ctx,
		`SELECT lpad(nextval('account_number_seq')::text, 10, '0')`,
	).Scan(&number)
	if err != nil {
		return "", fmt.Errorf("failed to generate account number: %w", err)
	}

	return number, nil
}
