package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrVersionConflict is returned when a compare-and-swap update
	// observes a stored version other than the caller's snapshot. The
	// losing write is fully discarded; the caller must re-fetch and retry.
	ErrVersionConflict = errors.New("job modified concurrently")
)
