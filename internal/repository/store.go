package repository

import (
	"context"

	"haulage/internal/domain"
)

// CommitStore commits the outcome of an accepted mutation: the updated job
// and its audit entries land together or not at all.
type CommitStore interface {
	// CommitMutation atomically applies the compare-and-swap job update
	// and appends the audit entries. Returns ErrVersionConflict if the
	// stored job drifted from expectedVersion; nothing is persisted in
	// that case.
	CommitMutation(ctx context.Context, job *domain.Job, expectedVersion int64, entries []domain.AuditEntry) error
}
