package handlers

import (
	"net/http"
	"time"

	"github.com/bancauno/backoffice/internal/models"
	"github.com/bancauno/backoffice/internal/service"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type drawerResponse struct {
	DrawerID   int64      `json:"drawer_id"`
	Name       string     `json:"name"`
	Teller     *string    `json:"teller,omitempty"`
	AssignedAt *time.Time `json:"assigned_at,omitempty"`
}

// AcquireDrawer assigns the first free drawer to the acting teller
func (h *Handler) AcquireDrawer(w http.ResponseWriter, r *http.Request) {
	drawer, err := h.drawers.Acquire(r.Context(), teller(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, drawerResponse{
		DrawerID:   drawer.ID,
		Name:       drawer.Name,
		Teller:     drawer.AssignedTeller,
		AssignedAt: drawer.AssignedAt,
	})
}

// CurrentDrawer returns the drawer held by the acting teller
func (h *Handler) CurrentDrawer(w http.ResponseWriter, r *http.Request) {
	drawer, err := h.drawers.Current(r.Context(), teller(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, drawerResponse{
		DrawerID:   drawer.ID,
		Name:       drawer.Name,
		Teller:     drawer.AssignedTeller,
		AssignedAt: drawer.AssignedAt,
	})
}

// ReleaseDrawer frees the acting teller's drawers; a teller with no
// drawer still gets a success
func (h *Handler) ReleaseDrawer(w http.ResponseWriter, r *http.Request) {
	released, err := h.drawers.Release(r.Context(), teller(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]int64{"released": released})
}

type sendTransferRequest struct {
	Destination string          `json:"destination" validate:"required"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
}

type transferResponse struct {
	TransferID  uuid.UUID       `json:"transfer_id"`
	Origin      string          `json:"origin"`
	Destination string          `json:"destination"`
	Amount      decimal.Decimal `json:"amount"`
	State       string          `json:"state"`
	SentAt      time.Time       `json:"sent_at"`
	AcceptedAt  *time.Time      `json:"accepted_at,omitempty"`
}

func toTransferResponse(t *models.CashTransfer) transferResponse {
	return transferResponse{
		TransferID:  t.ID,
		Origin:      t.Origin,
		Destination: t.Destination,
		Amount:      t.Amount,
		State:       string(t.State),
		SentAt:      t.SentAt,
		AcceptedAt:  t.AcceptedAt,
	}
}

// SendTransfer moves cash from the acting teller into a pending transfer
func (h *Handler) SendTransfer(w http.ResponseWriter, r *http.Request) {
	var req sendTransferRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	transfer, err := h.transfers.Send(r.Context(), service.SendInput{
		Origin:      teller(r),
		Destination: req.Destination,
		Amount:      req.Amount,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toTransferResponse(transfer))
}

// ListPendingTransfers returns the pending transfers addressed to the
// acting teller
func (h *Handler) ListPendingTransfers(w http.ResponseWriter, r *http.Request) {
	transfers, err := h.transfers.ListPending(r.Context(), teller(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	out := make([]transferResponse, 0, len(transfers))
	for i := range transfers {
		out = append(out, toTransferResponse(&transfers[i]))
	}

	h.respondJSON(w, http.StatusOK, map[string]any{"transfers": out})
}

type acceptTransferRequest struct {
	TransferID uuid.UUID `json:"transfer_id" validate:"required"`
}

// AcceptTransfer credits the acting teller with a pending transfer
func (h *Handler) AcceptTransfer(w http.ResponseWriter, r *http.Request) {
	var req acceptTransferRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	transfer, err := h.transfers.Accept(r.Context(), service.AcceptInput{
		TransferID: req.TransferID,
		Teller:     teller(r),
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toTransferResponse(transfer))
}

// TellerBalances returns the acting teller's drawer holdings
func (h *Handler) TellerBalances(w http.ResponseWriter, r *http.Request) {
	balances, err := h.balances.Balances(r.Context(), teller(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]decimal.Decimal{
		"cash":    balances.Cash,
		"cheques": balances.Cheques,
		"total":   balances.Total,
	})
}
