package repository

import (
	"context"

	"haulage/internal/domain"
)

// JobRepository defines the persistence operations for jobs.
type JobRepository interface {
	// Create persists a new job.
	Create(ctx context.Context, job *domain.Job) error

	// GetByID retrieves a job by ID.
	GetByID(ctx context.Context, id string) (*domain.Job, error)

	// GetAll retrieves recent jobs.
	GetAll(ctx context.Context) ([]*domain.Job, error)

	// ListByStatus retrieves jobs in the given operational status.
	ListByStatus(ctx context.Context, status domain.OperationalStatus) ([]*domain.Job, error)

	// Update replaces the stored job if and only if its stored version
	// equals expectedVersion. On success the stored version is
	// expectedVersion+1. Returns ErrVersionConflict otherwise.
	Update(ctx context.Context, job *domain.Job, expectedVersion int64) error
}
