package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/bancauno/backoffice/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrawerRepository_FirstFreeForUpdate(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	repo := NewDrawerRepository(sqlDB)
	ctx := context.Background()
	columns := []string{"id", "name", "state", "assigned_teller", "assigned_at"}

	t.Run("returns the lowest free drawer", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, name, state(.|\s)+ORDER BY id\s+LIMIT 1\s+FOR UPDATE SKIP LOCKED`).
			WithArgs(models.DrawerStateFree).
			WillReturnRows(sqlmock.NewRows(columns).AddRow(int64(1), "Caja 01", "FREE", nil, nil))

		drawer, err := repo.FirstFreeForUpdate(ctx)

		require.NoError(t, err)
		assert.Equal(t, int64(1), drawer.ID)
		assert.Equal(t, "Caja 01", drawer.Name)
		assert.Equal(t, models.DrawerStateFree, drawer.State)
	})

	t.Run("no free drawer maps to ErrNoFreeDrawer", func(t *testing.T) {
		mock.ExpectQuery(`FOR UPDATE SKIP LOCKED`).
			WithArgs(models.DrawerStateFree).
			WillReturnRows(sqlmock.NewRows(columns))

		_, err := repo.FirstFreeForUpdate(ctx)

		assert.ErrorIs(t, err, models.ErrNoFreeDrawer)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDrawerRepository_Assign(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	repo := NewDrawerRepository(sqlDB)
	at := time.Now()

	mock.ExpectExec(`UPDATE drawers\s+SET state = \$2, assigned_teller = \$3, assigned_at = \$4`).
		WithArgs(int64(1), models.DrawerStateOccupied, "Cajero 01", at).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Assign(context.Background(), 1, "Cajero 01", at))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDrawerRepository_FindByTeller(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	repo := NewDrawerRepository(sqlDB)
	ctx := context.Background()
	columns := []string{"id", "name", "state", "assigned_teller", "assigned_at"}

	t.Run("returns the held drawer", func(t *testing.T) {
		mock.ExpectQuery(`FROM drawers\s+WHERE assigned_teller = \$1`).
			WithArgs("Cajero 01").
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(int64(2), "Caja 02", "OCCUPIED", "Cajero 01", time.Now()))

		drawer, err := repo.FindByTeller(ctx, "Cajero 01")

		require.NoError(t, err)
		assert.Equal(t, int64(2), drawer.ID)
		require.NotNil(t, drawer.AssignedTeller)
		assert.Equal(t, "Cajero 01", *drawer.AssignedTeller)
	})

	t.Run("no drawer held maps to ErrNotFound", func(t *testing.T) {
		mock.ExpectQuery(`FROM drawers\s+WHERE assigned_teller = \$1`).
			WithArgs("Cajero 02").
			WillReturnRows(sqlmock.NewRows(columns))

		_, err := repo.FindByTeller(ctx, "Cajero 02")

		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDrawerRepository_ReleaseByTeller(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	repo := NewDrawerRepository(sqlDB)
	ctx := context.Background()

	t.Run("frees the teller's drawer", func(t *testing.T) {
		mock.ExpectExec(`UPDATE drawers\s+SET state = \$2, assigned_teller = NULL, assigned_at = NULL`).
			WithArgs("Cajero 01", models.DrawerStateFree).
			WillReturnResult(sqlmock.NewResult(0, 1))

		released, err := repo.ReleaseByTeller(ctx, "Cajero 01")

		require.NoError(t, err)
		assert.Equal(t, int64(1), released)
	})

	t.Run("releasing with no drawer held is not an error", func(t *testing.T) {
		mock.ExpectExec(`UPDATE drawers\s+SET state = \$2, assigned_teller = NULL, assigned_at = NULL`).
			WithArgs("Cajero 02", models.DrawerStateFree).
			WillReturnResult(sqlmock.NewResult(0, 0))

		released, err := repo.ReleaseByTeller(ctx, "Cajero 02")

		require.NoError(t, err)
		assert.Zero(t, released)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}
