package service

import (
	"errors"
	"fmt"

	"github.com/bancauno/backoffice/internal/models"
)

// ServiceError represents a business logic error with a stable reason code
type ServiceError struct {
	Err     error
	Message string
	Code    string
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeInvalidAmount      = "invalid_amount"
	ErrCodeInvalidInput       = "invalid_input"
	ErrCodeAccountNotFound    = "account_not_found"
	ErrCodeAccountInactive    = "account_inactive"
	ErrCodeHolderMismatch     = "holder_mismatch"
	ErrCodeInsufficientFunds  = "insufficient_funds"
	ErrCodeInsufficientCash   = "insufficient_cash"
	ErrCodeNonZeroBalance     = "non_zero_balance"
	ErrCodeMotiveRequired     = "motive_required"
	ErrCodeNoDrawerAvailable  = "no_drawer_available"
	ErrCodeNoDrawerAssigned   = "no_drawer_assigned"
	ErrCodeTransferNotFound   = "transfer_not_found"
	ErrCodeTransferNotPending = "transfer_not_pending"
	ErrCodeWrongRecipient     = "wrong_recipient"
	ErrCodeRequestNotFound    = "request_not_found"
	ErrCodeRequestNotApproved = "request_not_approved"
	ErrCodeRequestAlreadyUsed = "request_already_used"
	ErrCodeClientNotFound     = "client_not_found"
	ErrCodeLockTimeout        = "lock_timeout"
	ErrCodeInternalError      = "internal_error"
)

// storeFailure wraps an unexpected store error. Lock-timeout failures get
// their own reason code so the boundary can signal contention rather than
// breakage.
func storeFailure(message string, err error) *ServiceError {
	if errors.Is(err, models.ErrLockTimeout) {
		return &ServiceError{
			Code:    ErrCodeLockTimeout,
			Message: "operation timed out waiting for a row lock",
			Err:     err,
		}
	}
	return &ServiceError{
		Code:    ErrCodeInternalError,
		Message: fmt.Sprintf("%s: %v", message, err),
		Err:     err,
	}
}
