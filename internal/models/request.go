package models

import (
	"time"

	"github.com/google/uuid"
)

// RequestState represents the review state of an account-opening request.
// Approved requests may be consumed exactly once, after which they move
// to Opened.
type RequestState string

const (
	RequestStatePending  RequestState = "PENDING"
	RequestStateApproved RequestState = "APPROVED"
	RequestStateRejected RequestState = "REJECTED"
	RequestStateOpened   RequestState = "OPENED"
)

// OpeningRequest is an advisor-submitted, director-approved precondition
// for creating an account
type OpeningRequest struct {
	SubmittedAt time.Time    `db:"submitted_at"`
	RespondedAt *time.Time   `db:"responded_at"`
	State       RequestState `db:"state"`
	AccountType string       `db:"account_type"`
	ID          uuid.UUID    `db:"id"`
	ClientID    uuid.UUID    `db:"client_id"`
}

// Client holds the identity fields of a bank client this core reads for
// holder-match checks. Client CRUD belongs to the advisor module and is
// not performed here.
type Client struct {
	DocumentType   string    `db:"document_type"`
	DocumentNumber string    `db:"document_number"`
	FullName       string    `db:"full_name"`
	ID             uuid.UUID `db:"id"`
}
