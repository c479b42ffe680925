package repository

import (
	"context"

	"haulage/internal/domain"
)

// PriceMatrixRepository exposes read-only access to the contracted-rate
// table. Rate administration happens in a separate process; the core never
// writes here.
type PriceMatrixRepository interface {
	// Snapshot retrieves the full matrix in a stable order. Each price
	// resolution runs against one snapshot so it never observes a
	// half-updated matrix.
	Snapshot(ctx context.Context) ([]domain.PriceMatrixEntry, error)
}
