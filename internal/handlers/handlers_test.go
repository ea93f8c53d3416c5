package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bancauno/backoffice/internal/models"
	"github.com/bancauno/backoffice/internal/service"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubWithdrawer struct {
	findResult     *models.AccountHolder
	findErr        error
	withdrawResult *service.WithdrawalResult
	withdrawErr    error
	gotInput       service.WithdrawalInput
}

func (s *stubWithdrawer) FindAccount(ctx context.Context, accountNumber string) (*models.AccountHolder, error) {
	return s.findResult, s.findErr
}

func (s *stubWithdrawer) Transactions(ctx context.Context, accountNumber string) ([]models.Transaction, error) {
	return nil, s.findErr
}

func (s *stubWithdrawer) Withdraw(ctx context.Context, input service.WithdrawalInput) (*service.WithdrawalResult, error) {
	s.gotInput = input
	return s.withdrawResult, s.withdrawErr
}

type stubTransferrer struct {
	sendResult *models.CashTransfer
	sendErr    error
	pending    []models.CashTransfer
	acceptErr  error
}

func (s *stubTransferrer) Send(ctx context.Context, input service.SendInput) (*models.CashTransfer, error) {
	return s.sendResult, s.sendErr
}

func (s *stubTransferrer) ListPending(ctx context.Context, destination string) ([]models.CashTransfer, error) {
	return s.pending, nil
}

func (s *stubTransferrer) Accept(ctx context.Context, input service.AcceptInput) (*models.CashTransfer, error) {
	if s.acceptErr != nil {
		return nil, s.acceptErr
	}
	return s.sendResult, nil
}

func newTestHandler(withdrawals service.Withdrawer, transfers service.Transferrer) *Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHandler(withdrawals, nil, nil, nil, nil, transfers, nil, nil, logger)
}

func TestStatusForCode(t *testing.T) {
	cases := map[string]int{
		service.ErrCodeAccountNotFound:    http.StatusNotFound,
		service.ErrCodeTransferNotFound:   http.StatusNotFound,
		service.ErrCodeRequestNotFound:    http.StatusNotFound,
		service.ErrCodeClientNotFound:     http.StatusNotFound,
		service.ErrCodeNoDrawerAssigned:   http.StatusNotFound,
		service.ErrCodeAccountInactive:    http.StatusConflict,
		service.ErrCodeHolderMismatch:     http.StatusConflict,
		service.ErrCodeInsufficientFunds:  http.StatusConflict,
		service.ErrCodeInsufficientCash:   http.StatusConflict,
		service.ErrCodeNonZeroBalance:     http.StatusConflict,
		service.ErrCodeNoDrawerAvailable:  http.StatusConflict,
		service.ErrCodeTransferNotPending: http.StatusConflict,
		service.ErrCodeWrongRecipient:     http.StatusConflict,
		service.ErrCodeRequestNotApproved: http.StatusConflict,
		service.ErrCodeRequestAlreadyUsed: http.StatusConflict,
		service.ErrCodeInvalidAmount:      http.StatusBadRequest,
		service.ErrCodeInvalidInput:       http.StatusBadRequest,
		service.ErrCodeMotiveRequired:     http.StatusBadRequest,
		service.ErrCodeLockTimeout:        http.StatusServiceUnavailable,
		service.ErrCodeInternalError:      http.StatusInternalServerError,
		"something_unknown":               http.StatusInternalServerError,
	}

	for code, want := range cases {
		assert.Equal(t, want, statusForCode(code), "code %s", code)
	}
}

func TestHandler_Withdraw(t *testing.T) {
	t.Run("successful withdrawal", func(t *testing.T) {
		accountID := uuid.New()
		stub := &stubWithdrawer{
			withdrawResult: &service.WithdrawalResult{
				TransactionID: uuid.New(),
				BalanceBefore: decimal.RequireFromString("500.00"),
				BalanceAfter:  decimal.RequireFromString("300.00"),
				Amount:        decimal.RequireFromString("200.00"),
				ProcessedAt:   time.Now(),
			},
		}
		h := newTestHandler(stub, nil)

		body := `{"account_id":"` + accountID.String() + `","document_number":"100200300","amount":"200.00"}`
		req := httptest.NewRequest(http.MethodPost, "/api/cajero/retiro/procesar-retiro", strings.NewReader(body))
		req.Header.Set(tellerHeader, "Cajero 01")
		rec := httptest.NewRecorder()

		h.Withdraw(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Cajero 01", stub.gotInput.Teller)
		assert.Equal(t, accountID, stub.gotInput.AccountID)

		var resp mutationResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.BalanceAfter.Equal(decimal.RequireFromString("300.00")))
	})

	t.Run("insufficient funds maps to 409 with the reason code", func(t *testing.T) {
		stub := &stubWithdrawer{
			withdrawErr: &service.ServiceError{
				Code:    service.ErrCodeInsufficientFunds,
				Message: "insufficient funds: balance is 100.00",
			},
		}
		h := newTestHandler(stub, nil)

		body := `{"account_id":"` + uuid.NewString() + `","document_number":"100200300","amount":"200.00"}`
		req := httptest.NewRequest(http.MethodPost, "/api/cajero/retiro/procesar-retiro", strings.NewReader(body))
		req.Header.Set(tellerHeader, "Cajero 01")
		rec := httptest.NewRecorder()

		h.Withdraw(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)

		var resp errorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, service.ErrCodeInsufficientFunds, resp.Code)
		assert.Contains(t, resp.Message, "100.00")
	})

	t.Run("malformed body is a 400", func(t *testing.T) {
		h := newTestHandler(&stubWithdrawer{}, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/cajero/retiro/procesar-retiro", strings.NewReader("{not json"))
		rec := httptest.NewRecorder()

		h.Withdraw(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing required fields fail validation", func(t *testing.T) {
		h := newTestHandler(&stubWithdrawer{}, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/cajero/retiro/procesar-retiro", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()

		h.Withdraw(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var resp errorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, service.ErrCodeInvalidInput, resp.Code)
	})
}

func TestHandler_SendTransfer(t *testing.T) {
	transfer := &models.CashTransfer{
		ID:          uuid.New(),
		Origin:      "Cajero 01",
		Destination: "Cajero 02",
		Amount:      decimal.RequireFromString("400.00"),
		State:       models.TransferStatePending,
		SentAt:      time.Now(),
	}
	h := newTestHandler(nil, &stubTransferrer{sendResult: transfer})

	body := `{"destination":"Cajero 02","amount":"400.00"}`
	req := httptest.NewRequest(http.MethodPost, "/api/cajero/traslado/enviar", strings.NewReader(body))
	req.Header.Set(tellerHeader, "Cajero 01")
	rec := httptest.NewRecorder()

	h.SendTransfer(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp transferResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, transfer.ID, resp.TransferID)
	assert.Equal(t, "PENDING", resp.State)
	assert.Nil(t, resp.AcceptedAt)
}

func TestHandler_ListPendingTransfers(t *testing.T) {
	pending := []models.CashTransfer{
		{
			ID:          uuid.New(),
			Origin:      "Cajero 01",
			Destination: "Cajero 02",
			Amount:      decimal.RequireFromString("400.00"),
			State:       models.TransferStatePending,
			SentAt:      time.Now(),
		},
	}
	h := newTestHandler(nil, &stubTransferrer{pending: pending})

	req := httptest.NewRequest(http.MethodGet, "/api/cajero/traslado/pendientes", nil)
	req.Header.Set(tellerHeader, "Cajero 02")
	rec := httptest.NewRecorder()

	h.ListPendingTransfers(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Transfers []transferResponse `json:"transfers"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Transfers, 1)
	assert.Equal(t, pending[0].ID, resp.Transfers[0].TransferID)
}

func TestHandler_AcceptTransfer_WrongRecipient(t *testing.T) {
	h := newTestHandler(nil, &stubTransferrer{
		acceptErr: &service.ServiceError{
			Code:    service.ErrCodeWrongRecipient,
			Message: "transfer is addressed to a different teller",
		},
	})

	body := `{"transfer_id":"` + uuid.NewString() + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/cajero/traslado/aceptar", strings.NewReader(body))
	req.Header.Set(tellerHeader, "Cajero 03")
	rec := httptest.NewRecorder()

	h.AcceptTransfer(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, service.ErrCodeWrongRecipient, resp.Code)
}
