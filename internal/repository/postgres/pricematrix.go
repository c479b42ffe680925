package postgres

import (
	"context"
	"database/sql"

	"haulage/internal/domain"
)

// PriceMatrixRepository is a read-only PostgreSQL implementation of
// repository.PriceMatrixRepository.
type PriceMatrixRepository struct {
	q Querier
}

// NewPriceMatrixRepository creates a new PostgreSQL price matrix repository.
func NewPriceMatrixRepository(db *sql.DB) *PriceMatrixRepository {
	return &PriceMatrixRepository{q: db}
}

// Snapshot retrieves the full matrix. The ORDER BY keeps snapshot order
// stable so duplicate key tuples resolve deterministically.
func (r *PriceMatrixRepository) Snapshot(ctx context.Context) ([]domain.PriceMatrixEntry, error) {
	query := `
		SELECT origin, destination, truck_type, subcontractor, base_price, selling_base_price, drop_off_fee
		FROM price_matrix
		ORDER BY origin, destination, truck_type, subcontractor
	`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.PriceMatrixEntry
	for rows.Next() {
		var e domain.PriceMatrixEntry
		if err := rows.Scan(
			&e.Origin,
			&e.Destination,
			&e.TruckType,
			&e.Subcontractor,
			&e.BasePrice,
			&e.SellingBasePrice,
			&e.DropOffFee,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
