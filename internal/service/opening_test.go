package service

import (
	"context"
	"testing"
	"time"

	"github.com/bancauno/backoffice/internal/models"
	"github.com/bancauno/backoffice/internal/repository/mocks"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func approvedRequest() *models.OpeningRequest {
	return &models.OpeningRequest{
		ID:       uuid.New(),
		ClientID: uuid.New(),
		State:    models.RequestStateApproved,
	}
}

func TestOpeningService_PerformOpen(t *testing.T) {
	t.Run("opens an account from an approved request", func(t *testing.T) {
		requestRepo := mocks.NewMockRequestRepository(t)
		accountRepo := mocks.NewMockAccountRepository(t)
		txnRepo := mocks.NewMockTransactionRepository(t)
		balanceRepo := mocks.NewMockTellerBalanceRepository(t)
		svc := NewOpeningService(nil)
		ctx := context.Background()

		request := approvedRequest()
		amount := decimal.RequireFromString("250.00")

		requestRepo.On("FindByIDForUpdate", ctx, request.ID).Return(request, nil)
		requestRepo.On("HasAccount", ctx, request.ID).Return(false, nil)
		accountRepo.On("NextAccountNumber", ctx).Return("1000000042", nil)
		accountRepo.On("Create", ctx, mock.MatchedBy(func(a *models.Account) bool {
			return a.AccountNumber == "1000000042" &&
				a.ClientID == request.ClientID &&
				a.RequestID != nil && *a.RequestID == request.ID &&
				a.Balance.IsZero() &&
				a.State == models.AccountStateActive
		})).Return(nil)
		accountRepo.On("SetBalance", ctx, mock.AnythingOfType("uuid.UUID"), amount).Return(nil)
		txnRepo.On("Create", ctx, mock.MatchedBy(func(txn *models.Transaction) bool {
			return txn.Kind == models.TransactionKindDeposit &&
				txn.BalanceBefore.IsZero() &&
				txn.BalanceAfter.Equal(amount)
		})).Return(nil)
		balanceRepo.On("Ensure", ctx, "Cajero 01").Return(nil)
		balanceRepo.On("AdjustCash", ctx, "Cajero 01", amount).Return(nil)
		requestRepo.On("MarkOpened", ctx, request.ID, mock.AnythingOfType("time.Time")).Return(nil)

		result, err := svc.performOpen(ctx, requestRepo, accountRepo, txnRepo, balanceRepo, OpenInput{
			RequestID:   request.ID,
			DepositKind: models.DepositKindCash,
			Amount:      amount,
			Teller:      "Cajero 01",
		})

		assert.NoError(t, err)
		assert.Equal(t, "1000000042", result.AccountNumber)
		assert.True(t, result.Balance.Equal(amount))
		assert.WithinDuration(t, time.Now(), result.OpenedAt, time.Second)
	})

	t.Run("request not found", func(t *testing.T) {
		requestRepo := mocks.NewMockRequestRepository(t)
		accountRepo := mocks.NewMockAccountRepository(t)
		txnRepo := mocks.NewMockTransactionRepository(t)
		balanceRepo := mocks.NewMockTellerBalanceRepository(t)
		svc := NewOpeningService(nil)
		ctx := context.Background()

		id := uuid.New()
		requestRepo.On("FindByIDForUpdate", ctx, id).Return(nil, models.ErrNotFound)

		_, err := svc.performOpen(ctx, requestRepo, accountRepo, txnRepo, balanceRepo, OpenInput{
			RequestID:   id,
			DepositKind: models.DepositKindCash,
			Amount:      decimal.RequireFromString("100.00"),
			Teller:      "Cajero 01",
		})

		var svcErr *ServiceError
		if assert.ErrorAs(t, err, &svcErr) {
			assert.Equal(t, ErrCodeRequestNotFound, svcErr.Code)
		}
	})

	t.Run("request already consumed by state", func(t *testing.T) {
		requestRepo := mocks.NewMockRequestRepository(t)
		accountRepo := mocks.NewMockAccountRepository(t)
		txnRepo := mocks.NewMockTransactionRepository(t)
		balanceRepo := mocks.NewMockTellerBalanceRepository(t)
		svc := NewOpeningService(nil)
		ctx := context.Background()

		request := approvedRequest()
		request.State = models.RequestStateOpened
		requestRepo.On("FindByIDForUpdate", ctx, request.ID).Return(request, nil)

		_, err := svc.performOpen(ctx, requestRepo, accountRepo, txnRepo, balanceRepo, OpenInput{
			RequestID:   request.ID,
			DepositKind: models.DepositKindCash,
			Amount:      decimal.RequireFromString("100.00"),
			Teller:      "Cajero 01",
		})

		var svcErr *ServiceError
		if assert.ErrorAs(t, err, &svcErr) {
			assert.Equal(t, ErrCodeRequestAlreadyUsed, svcErr.Code)
		}
		accountRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejected request is not approved", func(t *testing.T) {
		requestRepo := mocks.NewMockRequestRepository(t)
		accountRepo := mocks.NewMockAccountRepository(t)
		txnRepo := mocks.NewMockTransactionRepository(t)
		balanceRepo := mocks.NewMockTellerBalanceRepository(t)
		svc := NewOpeningService(nil)
		ctx := context.Background()

		request := approvedRequest()
		request.State = models.RequestStateRejected
		requestRepo.On("FindByIDForUpdate", ctx, request.ID).Return(request, nil)

		_, err := svc.performOpen(ctx, requestRepo, accountRepo, txnRepo, balanceRepo, OpenInput{
			RequestID:   request.ID,
			DepositKind: models.DepositKindCash,
			Amount:      decimal.RequireFromString("100.00"),
			Teller:      "Cajero 01",
		})

		var svcErr *ServiceError
		if assert.ErrorAs(t, err, &svcErr) {
			assert.Equal(t, ErrCodeRequestNotApproved, svcErr.Code)
		}
	})

	t.Run("request already backs an account", func(t *testing.T) {
		requestRepo := mocks.NewMockRequestRepository(t)
		accountRepo := mocks.NewMockAccountRepository(t)
		txnRepo := mocks.NewMockTransactionRepository(t)
		balanceRepo := mocks.NewMockTellerBalanceRepository(t)
		svc := NewOpeningService(nil)
		ctx := context.Background()

		request := approvedRequest()
		requestRepo.On("FindByIDForUpdate", ctx, request.ID).Return(request, nil)
		requestRepo.On("HasAccount", ctx, request.ID).Return(true, nil)

		_, err := svc.performOpen(ctx, requestRepo, accountRepo, txnRepo, balanceRepo, OpenInput{
			RequestID:   request.ID,
			DepositKind: models.DepositKindCash,
			Amount:      decimal.RequireFromString("100.00"),
			Teller:      "Cajero 01",
		})

		var svcErr *ServiceError
		if assert.ErrorAs(t, err, &svcErr) {
			assert.Equal(t, ErrCodeRequestAlreadyUsed, svcErr.Code)
		}
		accountRepo.AssertNotCalled(t, "NextAccountNumber", mock.Anything)
	})
}
