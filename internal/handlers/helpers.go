package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bancauno/backoffice/internal/service"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

// respondError maps a service failure onto an HTTP status. Expected
// business outcomes are client errors; only internal failures are logged
// as errors.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	var svcErr *service.ServiceError
	if !errors.As(err, &svcErr) {
		h.logger.Error("unexpected failure", "path", r.URL.Path, "error", err)
		h.respondJSON(w, http.StatusInternalServerError, errorResponse{
			Code:    service.ErrCodeInternalError,
			Message: "internal error",
		})
		return
	}

	status := statusForCode(svcErr.Code)
	if status >= http.StatusInternalServerError {
		h.logger.Error("operation failed", "path", r.URL.Path, "code", svcErr.Code, "error", svcErr)
	}

	h.respondJSON(w, status, errorResponse{Code: svcErr.Code, Message: svcErr.Message})
}

func statusForCode(code string) int {
	switch code {
	case service.ErrCodeAccountNotFound,
		service.ErrCodeTransferNotFound,
		service.ErrCodeRequestNotFound,
		service.ErrCodeClientNotFound,
		service.ErrCodeNoDrawerAssigned:
		return http.StatusNotFound
	case service.ErrCodeAccountInactive,
		service.ErrCodeHolderMismatch,
		service.ErrCodeInsufficientFunds,
		service.ErrCodeInsufficientCash,
		service.ErrCodeNonZeroBalance,
		service.ErrCodeNoDrawerAvailable,
		service.ErrCodeTransferNotPending,
		service.ErrCodeWrongRecipient,
		service.ErrCodeRequestNotApproved,
		service.ErrCodeRequestAlreadyUsed:
		return http.StatusConflict
	case service.ErrCodeInvalidAmount,
		service.ErrCodeInvalidInput,
		service.ErrCodeMotiveRequired:
		return http.StatusBadRequest
	case service.ErrCodeLockTimeout:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// decodeAndValidate parses the JSON body into dst and runs struct
// validation
func (h *Handler) decodeAndValidate(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return &service.ServiceError{
			Code:    service.ErrCodeInvalidInput,
			Message: "invalid request body",
			Err:     err,
		}
	}
	if err := h.validate.Struct(dst); err != nil {
		return &service.ServiceError{
			Code:    service.ErrCodeInvalidInput,
			Message: err.Error(),
			Err:     err,
		}
	}
	return nil
}

// teller extracts the acting teller's identity from the request
func teller(r *http.Request) string {
	return r.Header.Get(tellerHeader)
}
