package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionKind represents the kind of balance mutation
type TransactionKind string

const (
	TransactionKindDeposit      TransactionKind = "DEPOSIT"
	TransactionKindWithdrawal   TransactionKind = "WITHDRAWAL"
	TransactionKindDebitNote    TransactionKind = "DEBIT_NOTE"
	TransactionKindCancellation TransactionKind = "CANCELLATION"
)

// DepositKind distinguishes cash deposits from cheque deposits
type DepositKind string

const (
	DepositKindCash   DepositKind = "CASH"
	DepositKindCheque DepositKind = "CHEQUE"
)

// Transaction is an append-only audit entry for a balance mutation.
// Rows are never updated or deleted after creation.
type Transaction struct {
	CreatedAt     time.Time       `db:"created_at"`
	Kind          TransactionKind `db:"kind"`
	Teller        string          `db:"teller"`
	Amount        decimal.Decimal `db:"amount"`
	BalanceBefore decimal.Decimal `db:"balance_before"`
	BalanceAfter  decimal.Decimal `db:"balance_after"`
	DepositKind   *DepositKind    `db:"deposit_kind"`
	ChequeCode    *string         `db:"cheque_code"`
	ChequeNumber  *string         `db:"cheque_number"`
	Reason        *string         `db:"reason"`
	ID            uuid.UUID       `db:"id"`
	AccountID     uuid.UUID       `db:"account_id"`
}
