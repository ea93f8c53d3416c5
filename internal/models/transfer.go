package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransferState represents the handshake state of a cash transfer
type TransferState string

const (
	TransferStatePending  TransferState = "PENDING"
	TransferStateAccepted TransferState = "ACCEPTED"
)

// CashTransfer is an in-flight cash handoff between two tellers. The
// amount is debited from the origin at send time and credited to the
// destination only on acceptance; in between it is held by this row.
type CashTransfer struct {
	SentAt      time.Time       `db:"sent_at"`
	AcceptedAt  *time.Time      `db:"accepted_at"`
	Origin      string          `db:"origin_teller"`
	Destination string          `db:"destination_teller"`
	State       TransferState   `db:"state"`
	Amount      decimal.Decimal `db:"amount"`
	ID          uuid.UUID       `db:"id"`
}
