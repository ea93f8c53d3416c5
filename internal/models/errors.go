package models

import "errors"

// Domain errors that can be returned by repositories
var (
	// ErrNotFound indicates the requested row was not found
	ErrNotFound = errors.New("not found")

	// ErrNoFreeDrawer indicates no drawer is currently free to assign
	ErrNoFreeDrawer = errors.New("no free drawer")

	// ErrLockTimeout indicates a row lock could not be obtained within the
	// configured lock_timeout
	ErrLockTimeout = errors.New("lock timeout")
)
