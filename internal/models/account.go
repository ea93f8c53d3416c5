package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountState represents the lifecycle state of a savings account
type AccountState string

const (
	AccountStateActive AccountState = "ACTIVE"
	AccountStateClosed AccountState = "CLOSED"
)

// Account represents one client's savings account
type Account struct {
	OpenedAt      time.Time       `db:"opened_at"`
	AccountNumber string          `db:"account_number"`
	State         AccountState    `db:"state"`
	Balance       decimal.Decimal `db:"balance"`
	RequestID     *uuid.UUID      `db:"request_id"`
	ID            uuid.UUID       `db:"id"`
	ClientID      uuid.UUID       `db:"client_id"`
}

// AccountHolder carries the account together with the holder details a
// teller needs for counter operations
type AccountHolder struct {
	Account
	HolderName     string `db:"holder_name"`
	HolderDocument string `db:"holder_document"`
}
