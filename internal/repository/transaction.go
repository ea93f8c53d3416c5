package repository

import (
	"context"
	"fmt"

	"github.com/bancauno/backoffice/internal/db"
	"github.com/bancauno/backoffice/internal/models"
	"github.com/google/uuid"
)

// TransactionRepository defines the interface for the append-only
// transaction ledger
type TransactionRepository interface {
	Create(ctx context.Context, txn *models.Transaction) error
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]models.Transaction, error)
}

// transactionRepository implements TransactionRepository
type transactionRepository struct {
	q db.Querier
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(q db.Querier) TransactionRepository {
	return &transactionRepository{q: q}
}

// Create appends a transaction record. Records are never updated or
// deleted afterwards.
func (r *transactionRepository) Create(ctx context.Context, txn *models.Transaction) error {
	query := `
		INSERT INTO transactions
			(id, account_id, kind, deposit_kind, amount, cheque_code, cheque_number,
			 balance_before, balance_after, teller, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.q.ExecContext(ctx, query,
		txn.ID,
		txn.AccountID,
		txn.Kind,
		txn.DepositKind,
		txn.Amount,
		txn.ChequeCode,
		txn.ChequeNumber,
		txn.BalanceBefore,
		txn.BalanceAfter,
		txn.Teller,
		txn.Reason,
		txn.CreatedAt,
	)
	if err != nil {
		return db.ClassifyError(fmt.Errorf("failed to create transaction record: %w", err))
	}

	return nil
}

// ListByAccount returns the account's transaction history, newest first
func (r *transactionRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]models.Transaction, error) {
	query := `
		SELECT id, account_id, kind, deposit_kind, amount, cheque_code, cheque_number,
		       balance_before, balance_after, teller, reason, created_at
		FROM transactions
		WHERE account_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.q.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txns []models.Transaction
	for rows.Next() {
		var txn models.Transaction
		if err := rows.Scan(
			&txn.ID,
			&txn.AccountID,
			&txn.Kind,
			&txn.DepositKind,
			&txn.Amount,
			&txn.ChequeCode,
			&txn.ChequeNumber,
			&txn.BalanceBefore,
			&txn.BalanceAfter,
			&txn.Teller,
			&txn.Reason,
			&txn.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	return txns, nil
}
