package storage

import "errors"

var (
	ErrNotFound = errors.New("resource not found")
	// ErrConflict is returned when a write violates a key or foreign key constraint.
	ErrConflict = errors.New("resource conflict (e.g., duplicate key)")
)
