// Package db provides database connection and transaction utilities.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bancauno/backoffice/internal/config"
	"github.com/bancauno/backoffice/internal/models"
	"github.com/lib/pq"
)

// Querier is the subset of database operations shared by *sql.DB and
// *sql.Tx. Repositories are built over it so the same code runs inside
// and outside a transaction.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// DB wraps the database connection pool
type DB struct {
	*sql.DB
	logger      *slog.Logger
	lockTimeout string
}

// Connect establishes a connection to the database
func Connect(ctx context.Context, cfg *config.DatabaseConfig, logger *slog.Logger) (*DB, error) {
	logger.Info("connecting to database",
		"host", cfg.Host,
		"port", cfg.Port,
		"database", cfg.DBName,
	)

	sqlDB, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		logger.Error("failed to open database connection", "error", err)
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := sqlDB.PingContext(ctx); err != nil {
		logger.Error("failed to ping database", "error", err)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("successfully connected to database",
		"max_open_conns", cfg.MaxOpenConns,
		"lock_timeout", cfg.LockTimeout,
	)

	return &DB{
		DB:          sqlDB,
		logger:      logger,
		lockTimeout: fmt.Sprintf("%dms", cfg.LockTimeout.Milliseconds()),
	}, nil
}

// Begin opens a read-committed transaction with the configured
// lock_timeout applied, so a contended row lock fails with
// models.ErrLockTimeout instead of blocking indefinitely.
func (db *DB) Begin(ctx context.Context) (*sql.Tx, error) {
	tx, err := db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "SET LOCAL lock_timeout = '"+db.lockTimeout+"'"); err != nil {
		_ = tx.Rollback() //nolint:errcheck // rollback error is not critical here
		return nil, fmt.Errorf("failed to set lock timeout: %w", err)
	}

	return tx, nil
}

// Close closes the database connection and logs the closure.
func (db *DB) Close() error {
	db.logger.Info("closing database connection")
	return db.DB.Close()
}

// Postgres error codes surfaced as domain errors
const (
	pgCodeLockNotAvailable = "55P03"
	pgCodeUniqueViolation  = "23505"
)

// ClassifyError translates driver-level failures into domain errors.
// Anything unrecognized is returned unchanged.
func ClassifyError(err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pgCodeLockNotAvailable:
			return fmt.Errorf("%w: %s", models.ErrLockTimeout, pqErr.Message)
		}
	}

	return err
}

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == pgCodeUniqueViolation
}
