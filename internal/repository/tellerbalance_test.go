package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/bancauno/backoffice/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTellerBalanceRepository_Ensure(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	repo := NewTellerBalanceRepository(sqlDB)

	t.Run("upserts the row at zero", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO teller_balances(.|\s)+ON CONFLICT \(teller\) DO NOTHING`).
			WithArgs("Cajero 01").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Ensure(context.Background(), "Cajero 01"))
	})

	t.Run("existing row is a no-op", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO teller_balances(.|\s)+ON CONFLICT \(teller\) DO NOTHING`).
			WithArgs("Cajero 01").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.NoError(t, repo.Ensure(context.Background(), "Cajero 01"))
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTellerBalanceRepository_GetForUpdate(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	repo := NewTellerBalanceRepository(sqlDB)

	mock.ExpectExec(`INSERT INTO teller_balances(.|\s)+ON CONFLICT \(teller\) DO NOTHING`).
		WithArgs("Cajero 01").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT teller, cash, cheques, updated_at(.|\s)+FOR UPDATE`).
		WithArgs("Cajero 01").
		WillReturnRows(sqlmock.NewRows([]string{"teller", "cash", "cheques", "updated_at"}).
			AddRow("Cajero 01", "500.00", "120.00", time.Now()))

	balance, err := repo.GetForUpdate(context.Background(), "Cajero 01")

	require.NoError(t, err)
	assert.Equal(t, "Cajero 01", balance.Teller)
	assert.True(t, balance.Cash.Equal(decimal.RequireFromString("500.00")))
	assert.True(t, balance.Cheques.Equal(decimal.RequireFromString("120.00")))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTellerBalanceRepository_Adjust(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	repo := NewTellerBalanceRepository(sqlDB)
	ctx := context.Background()

	t.Run("adjusts the cash column", func(t *testing.T) {
		delta := decimal.RequireFromString("-200.00")
		mock.ExpectExec(`UPDATE teller_balances\s+SET cash = cash \+ \$2`).
			WithArgs("Cajero 01", delta).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.AdjustCash(ctx, "Cajero 01", delta))
	})

	t.Run("adjusts the cheques column", func(t *testing.T) {
		delta := decimal.RequireFromString("320.50")
		mock.ExpectExec(`UPDATE teller_balances\s+SET cheques = cheques \+ \$2`).
			WithArgs("Cajero 01", delta).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.AdjustCheques(ctx, "Cajero 01", delta))
	})

	t.Run("missing row surfaces ErrNotFound", func(t *testing.T) {
		delta := decimal.RequireFromString("10.00")
		mock.ExpectExec(`UPDATE teller_balances\s+SET cash = cash \+ \$2`).
			WithArgs("Cajero 99", delta).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.AdjustCash(ctx, "Cajero 99", delta), models.ErrNotFound)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}
