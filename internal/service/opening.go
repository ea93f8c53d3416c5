package service

import (
	"context"
	"time"

	"github.com/bancauno/backoffice/internal/db"
	"github.com/bancauno/backoffice/internal/models"
	"github.com/bancauno/backoffice/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OpeningService binds an approved account-opening request to exactly one
// new account. The request row is locked while it is consumed, so the
// same approval can never open two accounts.
type OpeningService struct {
	db *db.DB
}

// NewOpeningService creates a new OpeningService
func NewOpeningService(database *db.DB) *OpeningService {
	return &OpeningService{db: database}
}

// OpenInput carries one account-opening request
type OpenInput struct {
	RequestID    uuid.UUID
	DepositKind  models.DepositKind
	Amount       decimal.Decimal
	ChequeCode   *string
	ChequeNumber *string
	Teller       string
}

// OpenResult reports a newly opened account
type OpenResult struct {
	AccountID     uuid.UUID
	AccountNumber string
	TransactionID uuid.UUID
	Balance       decimal.Decimal
	OpenedAt      time.Time
}

// VerifyClientResult reports whether a client can open an account today
type VerifyClientResult struct {
	Exists             bool
	HasApprovedRequest bool
	ClientName         string
	RequestID          *uuid.UUID
}

// VerifyClient reports whether the client identified by document exists
// and holds an approved, unconsumed opening request
func (s *OpeningService) VerifyClient(ctx context.Context, documentType, documentNumber string) (*VerifyClientResult, error) {
	repo := repository.NewRequestRepository(s.db)

	request, client, err := repo.FindApprovedForDocument(ctx, documentType, documentNumber)
	if err == models.ErrNotFound && client == nil {
		return &VerifyClientResult{Exists: false}, nil
	}
	if err == models.ErrNotFound {
		return &VerifyClientResult{
			Exists:     true,
			ClientName: client.FullName,
		}, nil
	}
	if err != nil {
		return nil, storeFailure("failed to verify client", err)
	}

	requestID := request.ID
	return &VerifyClientResult{
		Exists:             true,
		HasApprovedRequest: true,
		ClientName:         client.FullName,
		RequestID:          &requestID,
	}, nil
}

// Open consumes an approved request, creates the account and applies the
// initial deposit as the account's first ledger record, so the opening
// balance is auditable rather than an implicit field
func (s *OpeningService) Open(ctx context.Context, input OpenInput) (*OpenResult, error) {
	if err := ValidateAmount(input.Amount); err != nil {
		return nil, &ServiceError{Code: ErrCodeInvalidAmount, Message: err.Error()}
	}
	if err := ValidateTeller(input.Teller); err != nil {
		return nil, &ServiceError{Code: ErrCodeInvalidInput, Message: err.Error()}
	}
	if err := ValidateDeposit(input.DepositKind, input.ChequeCode, input.ChequeNumber); err != nil {
		return nil, &ServiceError{Code: ErrCodeInvalidInput, Message: err.Error()}
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, storeFailure("failed to start transaction", err)
	}
	defer func() {
		_ = tx.Rollback() //nolint:errcheck // rollback error is not critical in defer
	}()

	result, err := s.performOpen(ctx,
		repository.NewRequestRepository(tx),
		repository.NewAccountRepository(tx),
		repository.NewTransactionRepository(tx),
		repository.NewTellerBalanceRepository(tx),
		input,
	)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, storeFailure("failed to commit transaction", err)
	}

	return result, nil
}

// performOpen contains the core account-opening business logic
func (s *OpeningService) performOpen(
	ctx context.Context,
	requestRepo repository.RequestRepository,
	accountRepo repository.AccountRepository,
	transactionRepo repository.TransactionRepository,
	balanceRepo repository.TellerBalanceRepository,
	input OpenInput,
) (*OpenResult, error) {
	request, err := requestRepo.FindByIDForUpdate(ctx, input.RequestID)
	if err == models.ErrNotFound {
		return nil, &ServiceError{
			Code:    ErrCodeRequestNotFound,
			Message: "opening request not found",
		}
	}
	if err != nil {
		return nil, storeFailure("failed to lock request", err)
	}

	if request.State == models.RequestStateOpened {
		return nil, &ServiceError{
			Code:    ErrCodeRequestAlreadyUsed,
			Message: "request has already been used to open an account",
		}
	}
	if request.State != models.RequestStateApproved {
		return nil, &ServiceError{
			Code:    ErrCodeRequestNotApproved,
			Message: "request is not approved",
		}
	}

	consumed, err := requestRepo.HasAccount(ctx, request.ID)
	if err != nil {
		return nil, storeFailure("failed to check request consumption", err)
	}
	if consumed {
		return nil, &ServiceError{
			Code:    ErrCodeRequestAlreadyUsed,
			Message: "an account already references this request",
		}
	}

	accountNumber, err := accountRepo.NextAccountNumber(ctx)
	if err != nil {
		return nil, storeFailure("failed to generate account number", err)
	}

	now := time.Now()
	requestID := request.ID
	account := &models.Account{
		ID:            uuid.New(),
		AccountNumber: accountNumber,
		ClientID:      request.ClientID,
		RequestID:     &requestID,
		Balance:       decimal.Zero,
		State:         models.AccountStateActive,
		OpenedAt:      now,
	}
	if err := accountRepo.Create(ctx, account); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, &ServiceError{
				Code:    ErrCodeRequestAlreadyUsed,
				Message: "an account already references this request",
			}
		}
		return nil, storeFailure("failed to create account", err)
	}

	if err := accountRepo.SetBalance(ctx, account.ID, input.Amount); err != nil {
		return nil, storeFailure("failed to apply opening balance", err)
	}

	kind := input.DepositKind
	txn := &models.Transaction{
		ID:            uuid.New(),
		AccountID:     account.ID,
		Kind:          models.TransactionKindDeposit,
		DepositKind:   &kind,
		Amount:        input.Amount,
		ChequeCode:    input.ChequeCode,
		ChequeNumber:  input.ChequeNumber,
		BalanceBefore: decimal.Zero,
		BalanceAfter:  input.Amount,
		Teller:        input.Teller,
		CreatedAt:     now,
	}
	if err := transactionRepo.Create(ctx, txn); err != nil {
		return nil, storeFailure("failed to record opening deposit", err)
	}

	if err := creditTellerHoldings(ctx, balanceRepo, input.Teller, input.DepositKind, input.Amount); err != nil {
		return nil, err
	}

	if err := requestRepo.MarkOpened(ctx, request.ID, now); err != nil {
		return nil, storeFailure("failed to mark request opened", err)
	}

	return &OpenResult{
		AccountID:     account.ID,
		AccountNumber: accountNumber,
		TransactionID: txn.ID,
		Balance:       input.Amount,
		OpenedAt:      now,
	}, nil
}
