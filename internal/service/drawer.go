package service

import (
	"context"
	"time"

	"github.com/bancauno/backoffice/internal/db"
	"github.com/bancauno/backoffice/internal/models"
	"github.com/bancauno/backoffice/internal/repository"
)

// DrawerService assigns physical cash drawers to tellers at session start
// and releases them at session end. It is invoked by the authentication
// layer around its own login/logout flow.
type DrawerService struct {
	db *db.DB
}

// NewDrawerService creates a new DrawerService
func NewDrawerService(database *db.DB) *DrawerService {
	return &DrawerService{db: database}
}

// Acquire assigns the lowest-numbered free drawer to the teller and makes
// sure the teller's balance row exists. Any drawer the teller already
// holds is released first, so a teller never occupies more than one.
// Selection, lock and update happen in one transaction so two concurrent
// sessions can never win the same drawer.
func (s *DrawerService) Acquire(ctx context.Context, teller string) (*models.Drawer, error) {
	if err := ValidateTeller(teller); err != nil {
		return nil, &ServiceError{Code: ErrCodeInvalidInput, Message: err.Error()}
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, storeFailure("failed to start transaction", err)
	}
	defer func() {
		_ = tx.Rollback() //nolint:errcheck // rollback error is not critical in defer
	}()

	drawer, err := s.performAcquire(ctx,
		repository.NewDrawerRepository(tx),
		repository.NewTellerBalanceRepository(tx),
		teller,
	)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, storeFailure("failed to commit transaction", err)
	}

	return drawer, nil
}

// performAcquire contains the core drawer allocation logic
func (s *DrawerService) performAcquire(
	ctx context.Context,
	drawerRepo repository.DrawerRepository,
	balanceRepo repository.TellerBalanceRepository,
	teller string,
) (*models.Drawer, error) {
	// Free any prior assignment so a re-login never holds two drawers
	if _, err := drawerRepo.ReleaseByTeller(ctx, teller); err != nil {
		return nil, storeFailure("failed to release prior drawers", err)
	}

	drawer, err := drawerRepo.FirstFreeForUpdate(ctx)
	if err == models.ErrNoFreeDrawer {
		return nil, &ServiceError{
			Code:    ErrCodeNoDrawerAvailable,
			Message: "no drawer is available",
		}
	}
	if err != nil {
		return nil, storeFailure("failed to select drawer", err)
	}

	now := time.Now()
	if err := drawerRepo.Assign(ctx, drawer.ID, teller, now); err != nil {
		return nil, storeFailure("failed to assign drawer", err)
	}

	if err := balanceRepo.Ensure(ctx, teller); err != nil {
		return nil, storeFailure("failed to ensure teller balance", err)
	}

	drawer.State = models.DrawerStateOccupied
	drawer.AssignedTeller = &teller
	drawer.AssignedAt = &now

	return drawer, nil
}

// Current returns the drawer held by the teller
func (s *DrawerService) Current(ctx context.Context, teller string) (*models.Drawer, error) {
	if err := ValidateTeller(teller); err != nil {
		return nil, &ServiceError{Code: ErrCodeInvalidInput, Message: err.Error()}
	}

	repo := repository.NewDrawerRepository(s.db)
	drawer, err := repo.FindByTeller(ctx, teller)
	if err == models.ErrNotFound {
		return nil, &ServiceError{
			Code:    ErrCodeNoDrawerAssigned,
			Message: "teller holds no drawer",
		}
	}
	if err != nil {
		return nil, storeFailure("failed to find drawer", err)
	}

	return drawer, nil
}

// Release frees every drawer held by the teller. Releasing a teller with
// no drawer is a no-op success.
func (s *DrawerService) Release(ctx context.Context, teller string) (int64, error) {
	if err := ValidateTeller(teller); err != nil {
		return 0, &ServiceError{Code: ErrCodeInvalidInput, Message: err.Error()}
	}

	repo := repository.NewDrawerRepository(s.db)
	released, err := repo.ReleaseByTeller(ctx, teller)
	if err != nil {
		return 0, storeFailure("failed to release drawers", err)
	}

	return released, nil
}
