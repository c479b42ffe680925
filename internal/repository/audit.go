package repository

import (
	"context"

	"haulage/internal/domain"
)

// AuditRepository defines the persistence operations for the audit log.
// The log is append-only; there are no update or delete operations.
type AuditRepository interface {
	// Append persists the given entries.
	Append(ctx context.Context, entries []domain.AuditEntry) error

	// ListByJobID retrieves all entries for a job, oldest first.
	ListByJobID(ctx context.Context, jobID string) ([]domain.AuditEntry, error)
}
