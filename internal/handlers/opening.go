package handlers

import (
	"net/http"
	"time"

	"github.com/bancauno/backoffice/internal/models"
	"github.com/bancauno/backoffice/internal/service"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type verifyClientRequest struct {
	DocumentType   string `json:"document_type" validate:"required"`
	DocumentNumber string `json:"document_number" validate:"required"`
}

type verifyClientResponse struct {
	Exists             bool       `json:"exists"`
	HasApprovedRequest bool       `json:"has_approved_request"`
	ClientName         string     `json:"client_name,omitempty"`
	RequestID          *uuid.UUID `json:"request_id,omitempty"`
}

// VerifyClient reports whether a client can open an account today
func (h *Handler) VerifyClient(w http.ResponseWriter, r *http.Request) {
	var req verifyClientRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	result, err := h.openings.VerifyClient(r.Context(), req.DocumentType, req.DocumentNumber)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, verifyClientResponse{
		Exists:             result.Exists,
		HasApprovedRequest: result.HasApprovedRequest,
		ClientName:         result.ClientName,
		RequestID:          result.RequestID,
	})
}

type openAccountRequest struct {
	RequestID    uuid.UUID       `json:"request_id" validate:"required"`
	DepositKind  string          `json:"deposit_kind" validate:"required,oneof=CASH CHEQUE"`
	Amount       decimal.Decimal `json:"amount" validate:"required"`
	ChequeCode   *string         `json:"cheque_code,omitempty"`
	ChequeNumber *string         `json:"cheque_number,omitempty"`
}

type openAccountResponse struct {
	AccountID     uuid.UUID       `json:"account_id"`
	AccountNumber string          `json:"account_number"`
	TransactionID uuid.UUID       `json:"transaction_id"`
	Balance       decimal.Decimal `json:"balance"`
	OpenedAt      time.Time       `json:"opened_at"`
}

// OpenAccount consumes an approved request into a new account with its
// initial deposit
func (h *Handler) OpenAccount(w http.ResponseWriter, r *http.Request) {
	var req openAccountRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	result, err := h.openings.Open(r.Context(), service.OpenInput{
		RequestID:    req.RequestID,
		DepositKind:  models.DepositKind(req.DepositKind),
		Amount:       req.Amount,
		ChequeCode:   req.ChequeCode,
		ChequeNumber: req.ChequeNumber,
		Teller:       teller(r),
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, openAccountResponse{
		AccountID:     result.AccountID,
		AccountNumber: result.AccountNumber,
		TransactionID: result.TransactionID,
		Balance:       result.Balance,
		OpenedAt:      result.OpenedAt,
	})
}
