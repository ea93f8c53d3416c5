// Package mocks provides testify-backed mocks of the repository
// interfaces for service-level unit tests.
package mocks

import (
	"context"
	"testing"
	"time"

	"github.com/bancauno/backoffice/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockAccountRepository mocks repository.AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

// NewMockAccountRepository creates a mock that asserts its expectations
// on test cleanup
func NewMockAccountRepository(t *testing.T) *MockAccountRepository {
	m := &MockAccountRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAccountRepository) FindByNumber(ctx context.Context, accountNumber string) (*models.AccountHolder, error) {
	args := m.Called(ctx, accountNumber)
	return holderOrNil(args.Get(0)), args.Error(1)
}

func (m *MockAccountRepository) FindByNumberForUpdate(ctx context.Context, accountNumber string) (*models.AccountHolder, error) {
	args := m.Called(ctx, accountNumber)
	return holderOrNil(args.Get(0)), args.Error(1)
}

func (m *MockAccountRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.AccountHolder, error) {
	args := m.Called(ctx, id)
	return holderOrNil(args.Get(0)), args.Error(1)
}

func (m *MockAccountRepository) Create(ctx context.Context, account *models.Account) error {
	return m.Called(ctx, account).Error(0)
}

func (m *MockAccountRepository) SetBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	return m.Called(ctx, id, balance).Error(0)
}

func (m *MockAccountRepository) Closeout(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockAccountRepository) NextAccountNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func holderOrNil(v any) *models.AccountHolder {
	if v == nil {
		return nil
	}
	return v.(*models.AccountHolder)
}

// MockTransactionRepository mocks repository.TransactionRepository
type MockTransactionRepository struct {
	mock.Mock
}

// NewMockTransactionRepository creates a mock that asserts its
// expectations on test cleanup
func NewMockTransactionRepository(t *testing.T) *MockTransactionRepository {
	m := &MockTransactionRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockTransactionRepository) Create(ctx context.Context, txn *models.Transaction) error {
	return m.Called(ctx, txn).Error(0)
}

func (m *MockTransactionRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]models.Transaction, error) {
	args := m.Called(ctx, accountID)
	if v := args.Get(0); v != nil {
		return v.([]models.Transaction), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockDrawerRepository mocks repository.DrawerRepository
type MockDrawerRepository struct {
	mock.Mock
}

// NewMockDrawerRepository creates a mock that asserts its expectations on
// test cleanup
func NewMockDrawerRepository(t *testing.T) *MockDrawerRepository {
	m := &MockDrawerRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockDrawerRepository) FirstFreeForUpdate(ctx context.Context) (*models.Drawer, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.(*models.Drawer), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDrawerRepository) Assign(ctx context.Context, drawerID int64, teller string, at time.Time) error {
	return m.Called(ctx, drawerID, teller, at).Error(0)
}

func (m *MockDrawerRepository) ReleaseByTeller(ctx context.Context, teller string) (int64, error) {
	args := m.Called(ctx, teller)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDrawerRepository) FindByTeller(ctx context.Context, teller string) (*models.Drawer, error) {
	args := m.Called(ctx, teller)
	if v := args.Get(0); v != nil {
		return v.(*models.Drawer), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockTellerBalanceRepository mocks repository.TellerBalanceRepository
type MockTellerBalanceRepository struct {
	mock.Mock
}

// NewMockTellerBalanceRepository creates a mock that asserts its
// expectations on test cleanup
func NewMockTellerBalanceRepository(t *testing.T) *MockTellerBalanceRepository {
	m := &MockTellerBalanceRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockTellerBalanceRepository) Ensure(ctx context.Context, teller string) error {
	return m.Called(ctx, teller).Error(0)
}

func (m *MockTellerBalanceRepository) Get(ctx context.Context, teller string) (*models.TellerBalance, error) {
	args := m.Called(ctx, teller)
	if v := args.Get(0); v != nil {
		return v.(*models.TellerBalance), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTellerBalanceRepository) GetForUpdate(ctx context.Context, teller string) (*models.TellerBalance, error) {
	args := m.Called(ctx, teller)
	if v := args.Get(0); v != nil {
		return v.(*models.TellerBalance), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTellerBalanceRepository) AdjustCash(ctx context.Context, teller string, delta decimal.Decimal) error {
	return m.Called(ctx, teller, delta).Error(0)
}

func (m *MockTellerBalanceRepository) AdjustCheques(ctx context.Context, teller string, delta decimal.Decimal) error {
	return m.Called(ctx, teller, delta).Error(0)
}

// MockTransferRepository mocks repository.TransferRepository
type MockTransferRepository struct {
	mock.Mock
}

// NewMockTransferRepository creates a mock that asserts its expectations
// on test cleanup
func NewMockTransferRepository(t *testing.T) *MockTransferRepository {
	m := &MockTransferRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockTransferRepository) Create(ctx context.Context, transfer *models.CashTransfer) error {
	return m.Called(ctx, transfer).Error(0)
}

func (m *MockTransferRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.CashTransfer, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*models.CashTransfer), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTransferRepository) ListPendingTo(ctx context.Context, destination string) ([]models.CashTransfer, error) {
	args := m.Called(ctx, destination)
	if v := args.Get(0); v != nil {
		return v.([]models.CashTransfer), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTransferRepository) MarkAccepted(ctx context.Context, id uuid.UUID, acceptedAt time.Time) error {
	return m.Called(ctx, id, acceptedAt).Error(0)
}

// MockRequestRepository mocks repository.RequestRepository
type MockRequestRepository struct {
	mock.Mock
}

// NewMockRequestRepository creates a mock that asserts its expectations
// on test cleanup
func NewMockRequestRepository(t *testing.T) *MockRequestRepository {
	m := &MockRequestRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockRequestRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.OpeningRequest, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*models.OpeningRequest), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRequestRepository) HasAccount(ctx context.Context, requestID uuid.UUID) (bool, error) {
	args := m.Called(ctx, requestID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRequestRepository) MarkOpened(ctx context.Context, id uuid.UUID, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

func (m *MockRequestRepository) FindApprovedForDocument(ctx context.Context, documentType, documentNumber string) (*models.OpeningRequest, *models.Client, error) {
	args := m.Called(ctx, documentType, documentNumber)
	var req *models.OpeningRequest
	if v := args.Get(0); v != nil {
		req = v.(*models.OpeningRequest)
	}
	var client *models.Client
	if v := args.Get(1); v != nil {
		client = v.(*models.Client)
	}
	return req, client, args.Error(2)
}

func (m *MockRequestRepository) FindClientByDocument(ctx context.Context, documentType, documentNumber string) (*models.Client, error) {
	args := m.Called(ctx, documentType, documentNumber)
	if v := args.Get(0); v != nil {
		return v.(*models.Client), args.Error(1)
	}
	return nil, args.Error(1)
}
