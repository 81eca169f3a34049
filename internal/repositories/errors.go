package repositories

import "errors"

var (
	// ErrNotFound is returned when no row matches the requested id or key.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert or update violates a unique
	// constraint (username, isbn).
	ErrDuplicate = errors.New("duplicate record")
)
