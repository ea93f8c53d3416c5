package service

import (
	"context"

	"github.com/bancauno/backoffice/internal/models"
)

// Withdrawer handles counter withdrawals
type Withdrawer interface {
	FindAccount(ctx context.Context, accountNumber string) (*models.AccountHolder, error)
	Transactions(ctx context.Context, accountNumber string) ([]models.Transaction, error)
	Withdraw(ctx context.Context, input WithdrawalInput) (*WithdrawalResult, error)
}

// Depositor handles cash and cheque deposits
type Depositor interface {
	Deposit(ctx context.Context, input DepositInput) (*DepositResult, error)
}

// DebitNoter applies bank-initiated debits
type DebitNoter interface {
	Apply(ctx context.Context, input DebitNoteInput) (*DebitNoteResult, error)
}

// Closer cancels accounts
type Closer interface {
	Close(ctx context.Context, input CloseInput) (*CloseResult, error)
}

// DrawerAllocator assigns and releases cash drawers
type DrawerAllocator interface {
	Acquire(ctx context.Context, teller string) (*models.Drawer, error)
	Current(ctx context.Context, teller string) (*models.Drawer, error)
	Release(ctx context.Context, teller string) (int64, error)
}

// Transferrer moves cash custody between tellers
type Transferrer interface {
	Send(ctx context.Context, input SendInput) (*models.CashTransfer, error)
	ListPending(ctx context.Context, destination string) ([]models.CashTransfer, error)
	Accept(ctx context.Context, input AcceptInput) (*models.CashTransfer, error)
}

// Opener consumes approved requests into new accounts
type Opener interface {
	VerifyClient(ctx context.Context, documentType, documentNumber string) (*VerifyClientResult, error)
	Open(ctx context.Context, input OpenInput) (*OpenResult, error)
}

// BalanceReader reads teller drawer holdings
type BalanceReader interface {
	Balances(ctx context.Context, teller string) (*BalancesResult, error)
}

// Ensure concrete types implement interfaces
var (
	_ Withdrawer      = (*WithdrawalService)(nil)
	_ Depositor       = (*DepositService)(nil)
	_ DebitNoter      = (*DebitNoteService)(nil)
	_ Closer          = (*ClosureService)(nil)
	_ DrawerAllocator = (*DrawerService)(nil)
	_ Transferrer     = (*TransferService)(nil)
	_ Opener          = (*OpeningService)(nil)
	_ BalanceReader   = (*TellerBalanceService)(nil)
)
