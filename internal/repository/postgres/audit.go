package postgres

import (
	"context"
	"database/sql"

	"haulage/internal/domain"
)

// AuditRepository is a PostgreSQL implementation of repository.AuditRepository.
type AuditRepository struct {
	q Querier
}

// NewAuditRepository creates a new PostgreSQL audit repository.
func NewAuditRepository(db *sql.DB) *AuditRepository {
	return &AuditRepository{q: db}
}

// NewAuditRepositoryWithTx creates an audit repository using a transaction.
func NewAuditRepositoryWithTx(tx *sql.Tx) *AuditRepository {
	return &AuditRepository{q: tx}
}

// Append persists the given entries. The audit_log table carries no update
// or delete paths anywhere in the codebase; history only grows.
func (r *AuditRepository) Append(ctx context.Context, entries []domain.AuditEntry) error {
	query := `
		INSERT INTO audit_log (id, job_id, user_id, user_role, occurred_at, field, old_value, new_value, reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	for _, e := range entries {
		if _, err := r.q.ExecContext(ctx, query,
			e.ID,
			e.JobID,
			e.UserID,
			e.UserRole,
			e.Timestamp,
			e.Field,
			e.OldValue,
			e.NewValue,
			e.Reason,
		); err != nil {
			return err
		}
	}

	return nil
}

// ListByJobID retrieves all entries for a job, oldest first.
func (r *AuditRepository) ListByJobID(ctx context.Context, jobID string) ([]domain.AuditEntry, error) {
	query := `
		SELECT id, job_id, user_id, user_role, occurred_at, field, old_value, new_value, reason
		FROM audit_log WHERE job_id = $1 ORDER BY occurred_at, id
	`

	rows, err := r.q.QueryContext(ctx, query, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.AuditEntry
	for rows.Next() {
		var e domain.AuditEntry
		if err := rows.Scan(
			&e.ID,
			&e.JobID,
			&e.UserID,
			&e.UserRole,
			&e.Timestamp,
			&e.Field,
			&e.OldValue,
			&e.NewValue,
			&e.Reason,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
