package redis

import (
	"context"
	"time"

	"haulage/internal/domain"
)

// SnapshotCacheInterface defines the interface for snapshot and job caching.
type SnapshotCacheInterface interface {
	GetPriceMatrix(ctx context.Context) ([]domain.PriceMatrixEntry, error)
	SetPriceMatrix(ctx context.Context, entries []domain.PriceMatrixEntry) error
	GetJob(ctx context.Context, jobID string) (*domain.Job, error)
	SetJob(ctx context.Context, job *domain.Job) error
	InvalidateJob(ctx context.Context, jobID string) error
}

// LockStoreInterface defines the interface for distributed locking.
type LockStoreInterface interface {
	AcquireJobLock(ctx context.Context, jobID string, ttl time.Duration) (bool, error)
	ReleaseJobLock(ctx context.Context, jobID string) error
}

// Ensure concrete types implement interfaces.
var (
	_ SnapshotCacheInterface = (*CacheStore)(nil)
	_ LockStoreInterface     = (*LockStore)(nil)
)
