package service

import (
	"fmt"
	"strings"

	"github.com/bancauno/backoffice/internal/models"
	"github.com/shopspring/decimal"
)

// ValidateAmount checks that a monetary amount is strictly positive
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("invalid amount: must be greater than 0")
	}

	return nil
}

// ValidateTeller checks that a teller identity is present
func ValidateTeller(teller string) error {
	if strings.TrimSpace(teller) == "" {
		return fmt.Errorf("teller identity is required")
	}

	return nil
}

// ValidateReason checks that a cancellation reason is present
func ValidateReason(reason string) error {
	if strings.TrimSpace(reason) == "" {
		return fmt.Errorf("a cancellation reason is required")
	}

	return nil
}

// ValidateDeposit checks the deposit kind and its cheque metadata.
// Cheque deposits must carry both the cheque code and number; cash
// deposits must carry neither.
func ValidateDeposit(kind models.DepositKind, chequeCode, chequeNumber *string) error {
	switch kind {
	case models.DepositKindCash:
		if chequeCode != nil || chequeNumber != nil {
			return fmt.Errorf("cash deposits must not carry cheque details")
		}
	case models.DepositKindCheque:
		if chequeCode == nil || strings.TrimSpace(*chequeCode) == "" ||
			chequeNumber == nil || strings.TrimSpace(*chequeNumber) == "" {
			return fmt.Errorf("cheque deposits require a cheque code and number")
		}
	default:
		return fmt.Errorf("unknown deposit kind: %s", kind)
	}

	return nil
}
