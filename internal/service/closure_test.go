package service

import (
	"context"
	"testing"

	"github.com/bancauno/backoffice/internal/models"
	"github.com/bancauno/backoffice/internal/repository/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestClosureService_PerformClose(t *testing.T) {
	t.Run("closes a zero balance account", func(t *testing.T) {
		accountRepo := mocks.NewMockAccountRepository(t)
		txnRepo := mocks.NewMockTransactionRepository(t)
		svc := NewClosureService(nil)
		ctx := context.Background()

		account := activeAccount(decimal.Zero)
		accountRepo.On("FindByNumberForUpdate", ctx, account.AccountNumber).Return(account, nil)
		accountRepo.On("Closeout", ctx, account.ID).Return(nil)
		txnRepo.On("Create", ctx, mock.MatchedBy(func(txn *models.Transaction) bool {
			return txn.Kind == models.TransactionKindCancellation &&
				txn.Amount.IsZero() &&
				txn.Reason != nil && *txn.Reason == "client request"
		})).Return(nil)

		result, err := svc.performClose(ctx, accountRepo, txnRepo, CloseInput{
			AccountNumber:  account.AccountNumber,
			HolderDocument: "100200300",
			Reason:         "client request",
			Teller:         "Cajero 01",
		})

		assert.NoError(t, err)
		assert.Equal(t, account.AccountNumber, result.AccountNumber)
		assert.Equal(t, "client request", result.Reason)
	})

	t.Run("refuses non-zero balance", func(t *testing.T) {
		accountRepo := mocks.NewMockAccountRepository(t)
		txnRepo := mocks.NewMockTransactionRepository(t)
		svc := NewClosureService(nil)
		ctx := context.Background()

		account := activeAccount(decimal.RequireFromString("0.01"))
		accountRepo.On("FindByNumberForUpdate", ctx, account.AccountNumber).Return(account, nil)

		_, err := svc.performClose(ctx, accountRepo, txnRepo, CloseInput{
			AccountNumber:  account.AccountNumber,
			HolderDocument: "100200300",
			Reason:         "client request",
			Teller:         "Cajero 01",
		})

		var svcErr *ServiceError
		if assert.ErrorAs(t, err, &svcErr) {
			assert.Equal(t, ErrCodeNonZeroBalance, svcErr.Code)
			assert.Contains(t, svcErr.Message, "0.01")
		}
		accountRepo.AssertNotCalled(t, "Closeout", mock.Anything, mock.Anything)
	})

	t.Run("refuses already closed account", func(t *testing.T) {
		accountRepo := mocks.NewMockAccountRepository(t)
		txnRepo := mocks.NewMockTransactionRepository(t)
		svc := NewClosureService(nil)
		ctx := context.Background()

		account := activeAccount(decimal.Zero)
		account.State = models.AccountStateClosed
		accountRepo.On("FindByNumberForUpdate", ctx, account.AccountNumber).Return(account, nil)

		_, err := svc.performClose(ctx, accountRepo, txnRepo, CloseInput{
			AccountNumber:  account.AccountNumber,
			HolderDocument: "100200300",
			Reason:         "client request",
			Teller:         "Cajero 01",
		})

		var svcErr *ServiceError
		if assert.ErrorAs(t, err, &svcErr) {
			assert.Equal(t, ErrCodeAccountInactive, svcErr.Code)
		}
	})

	t.Run("refuses wrong document", func(t *testing.T) {
		accountRepo := mocks.NewMockAccountRepository(t)
		txnRepo := mocks.NewMockTransactionRepository(t)
		svc := NewClosureService(nil)
		ctx := context.Background()

		account := activeAccount(decimal.Zero)
		accountRepo.On("FindByNumberForUpdate", ctx, account.AccountNumber).Return(account, nil)

		_, err := svc.performClose(ctx, accountRepo, txnRepo, CloseInput{
			AccountNumber:  account.AccountNumber,
			HolderDocument: "555555555",
			Reason:         "client request",
			Teller:         "Cajero 01",
		})

		var svcErr *ServiceError
		if assert.ErrorAs(t, err, &svcErr) {
			assert.Equal(t, ErrCodeHolderMismatch, svcErr.Code)
		}
	})
}

func TestClosureService_Close_Validation(t *testing.T) {
	svc := NewClosureService(nil)

	t.Run("requires a reason", func(t *testing.T) {
		_, err := svc.Close(context.Background(), CloseInput{
			AccountNumber:  "1000000001",
			HolderDocument: "100200300",
			Reason:         "   ",
			Teller:         "Cajero 01",
		})

		var svcErr *ServiceError
		if assert.ErrorAs(t, err, &svcErr) {
			assert.Equal(t, ErrCodeMotiveRequired, svcErr.Code)
		}
	})
}
