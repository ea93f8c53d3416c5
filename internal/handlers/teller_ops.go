package handlers

import (
	"net/http"
	"time"

	"github.com/bancauno/backoffice/internal/models"
	"github.com/bancauno/backoffice/internal/service"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type findAccountRequest struct {
	AccountNumber string `json:"account_number" validate:"required"`
}

type accountResponse struct {
	AccountID      uuid.UUID       `json:"account_id"`
	AccountNumber  string          `json:"account_number"`
	Holder         string          `json:"holder"`
	HolderDocument string          `json:"holder_document"`
	Balance        decimal.Decimal `json:"balance"`
	State          string          `json:"state"`
}

// FindAccount looks up an account for the teller's counter screen
func (h *Handler) FindAccount(w http.ResponseWriter, r *http.Request) {
	var req findAccountRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	account, err := h.withdrawals.FindAccount(r.Context(), req.AccountNumber)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, accountResponse{
		AccountID:      account.ID,
		AccountNumber:  account.AccountNumber,
		Holder:         account.HolderName,
		HolderDocument: account.HolderDocument,
		Balance:        account.Balance,
		State:          string(account.State),
	})
}

type transactionEntry struct {
	TransactionID uuid.UUID       `json:"transaction_id"`
	Kind          string          `json:"kind"`
	Amount        decimal.Decimal `json:"amount"`
	BalanceAfter  decimal.Decimal `json:"balance_after"`
	Teller        string          `json:"teller"`
	CreatedAt     time.Time       `json:"created_at"`
}

// AccountTransactions returns the account's movement history
func (h *Handler) AccountTransactions(w http.ResponseWriter, r *http.Request) {
	var req findAccountRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	txns, err := h.withdrawals.Transactions(r.Context(), req.AccountNumber)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	out := make([]transactionEntry, 0, len(txns))
	for _, txn := range txns {
		out = append(out, transactionEntry{
			TransactionID: txn.ID,
			Kind:          string(txn.Kind),
			Amount:        txn.Amount,
			BalanceAfter:  txn.BalanceAfter,
			Teller:        txn.Teller,
			CreatedAt:     txn.CreatedAt,
		})
	}

	h.respondJSON(w, http.StatusOK, map[string]any{"transactions": out})
}

type withdrawRequest struct {
	AccountID      uuid.UUID       `json:"account_id" validate:"required"`
	DocumentNumber string          `json:"document_number" validate:"required"`
	Amount         decimal.Decimal `json:"amount" validate:"required"`
}

type mutationResponse struct {
	TransactionID uuid.UUID       `json:"transaction_id"`
	BalanceBefore decimal.Decimal `json:"balance_before"`
	BalanceAfter  decimal.Decimal `json:"balance_after"`
	Amount        decimal.Decimal `json:"amount"`
	ProcessedAt   time.Time       `json:"processed_at"`
}

// Withdraw processes a counter withdrawal
func (h *Handler) Withdraw(w http.ResponseWriter, r *http.Request) {
	var req withdrawRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	result, err := h.withdrawals.Withdraw(r.Context(), service.WithdrawalInput{
		AccountID:      req.AccountID,
		HolderDocument: req.DocumentNumber,
		Amount:         req.Amount,
		Teller:         teller(r),
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, mutationResponse{
		TransactionID: result.TransactionID,
		BalanceBefore: result.BalanceBefore,
		BalanceAfter:  result.BalanceAfter,
		Amount:        result.Amount,
		ProcessedAt:   result.ProcessedAt,
	})
}

type depositRequest struct {
	AccountNumber string          `json:"account_number" validate:"required"`
	Kind          string          `json:"kind" validate:"required,oneof=CASH CHEQUE"`
	Amount        decimal.Decimal `json:"amount" validate:"required"`
	ChequeCode    *string         `json:"cheque_code,omitempty"`
	ChequeNumber  *string         `json:"cheque_number,omitempty"`
}

type depositResponse struct {
	TransactionID  uuid.UUID       `json:"transaction_id"`
	AccountNumber  string          `json:"account_number"`
	Holder         string          `json:"holder"`
	HolderDocument string          `json:"holder_document"`
	BalanceBefore  decimal.Decimal `json:"balance_before"`
	BalanceAfter   decimal.Decimal `json:"balance_after"`
	Amount         decimal.Decimal `json:"amount"`
	Kind           string          `json:"kind"`
	ProcessedAt    time.Time       `json:"processed_at"`
}

// Deposit processes a cash or cheque deposit
func (h *Handler) Deposit(w http.ResponseWriter, r *http.Request) {
	var req depositRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	result, err := h.deposits.Deposit(r.Context(), service.DepositInput{
		AccountNumber: req.AccountNumber,
		Kind:          models.DepositKind(req.Kind),
		Amount:        req.Amount,
		ChequeCode:    req.ChequeCode,
		ChequeNumber:  req.ChequeNumber,
		Teller:        teller(r),
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, depositResponse{
		TransactionID:  result.TransactionID,
		AccountNumber:  result.AccountNumber,
		Holder:         result.Holder,
		HolderDocument: result.HolderDocument,
		BalanceBefore:  result.BalanceBefore,
		BalanceAfter:   result.BalanceAfter,
		Amount:         result.Amount,
		Kind:           string(result.Kind),
		ProcessedAt:    result.ProcessedAt,
	})
}

type debitNoteRequest struct {
	AccountID      uuid.UUID       `json:"account_id" validate:"required"`
	DocumentNumber string          `json:"document_number" validate:"required"`
	Amount         decimal.Decimal `json:"amount" validate:"required"`
}

// ApplyDebitNote applies a bank-initiated debit
func (h *Handler) ApplyDebitNote(w http.ResponseWriter, r *http.Request) {
	var req debitNoteRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	result, err := h.debitNotes.Apply(r.Context(), service.DebitNoteInput{
		AccountID:      req.AccountID,
		HolderDocument: req.DocumentNumber,
		Amount:         req.Amount,
		Teller:         teller(r),
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, mutationResponse{
		TransactionID: result.TransactionID,
		BalanceBefore: result.BalanceBefore,
		BalanceAfter:  result.BalanceAfter,
		Amount:        result.Amount,
		ProcessedAt:   result.ProcessedAt,
	})
}

type closeRequest struct {
	AccountNumber  string `json:"account_number" validate:"required"`
	DocumentNumber string `json:"document_number" validate:"required"`
	Reason         string `json:"reason" validate:"required"`
}

type closeResponse struct {
	AccountID      uuid.UUID `json:"account_id"`
	AccountNumber  string    `json:"account_number"`
	Holder         string    `json:"holder"`
	HolderDocument string    `json:"holder_document"`
	Reason         string    `json:"reason"`
	ClosedAt       time.Time `json:"closed_at"`
}

// CloseAccount cancels a zero-balance account
func (h *Handler) CloseAccount(w http.ResponseWriter, r *http.Request) {
	var req closeRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	result, err := h.closures.Close(r.Context(), service.CloseInput{
		AccountNumber:  req.AccountNumber,
		HolderDocument: req.DocumentNumber,
		Reason:         req.Reason,
		Teller:         teller(r),
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, closeResponse{
		AccountID:      result.AccountID,
		AccountNumber:  result.AccountNumber,
		Holder:         result.Holder,
		HolderDocument: result.HolderDocument,
		Reason:         result.Reason,
		ClosedAt:       result.ClosedAt,
	})
}
