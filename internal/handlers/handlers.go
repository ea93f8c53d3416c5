// Package handlers implements the HTTP boundary over the teller
// cash-operations core. It parses and validates requests, hands them to
// the services, and maps typed failures onto status codes; no business
// rule lives here.
package handlers

import (
	"log/slog"

	"github.com/bancauno/backoffice/internal/service"
	"github.com/go-playground/validator/v10"
)

// Handler carries the service dependencies for all endpoints
type Handler struct {
	withdrawals service.Withdrawer
	deposits    service.Depositor
	debitNotes  service.DebitNoter
	closures    service.Closer
	drawers     service.DrawerAllocator
	transfers   service.Transferrer
	openings    service.Opener
	balances    service.BalanceReader
	validate    *validator.Validate
	logger      *slog.Logger
}

// NewHandler creates a new Handler with injected service dependencies
func NewHandler(
	withdrawals service.Withdrawer,
	deposits service.Depositor,
	debitNotes service.DebitNoter,
	closures service.Closer,
	drawers service.DrawerAllocator,
	transfers service.Transferrer,
	openings service.Opener,
	balances service.BalanceReader,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		withdrawals: withdrawals,
		deposits:    deposits,
		debitNotes:  debitNotes,
		closures:    closures,
		drawers:     drawers,
		transfers:   transfers,
		openings:    openings,
		balances:    balances,
		validate:    validator.New(),
		logger:      logger,
	}
}

// tellerHeader carries the acting teller's identity, supplied by the
// authentication layer in front of this service
const tellerHeader = "X-Teller"
