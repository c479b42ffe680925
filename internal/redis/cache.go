package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"haulage/internal/domain"
)

// CacheStore handles entity and snapshot caching in Redis.
type CacheStore struct {
	client *redis.Client
}

// NewCacheStore creates a new CacheStore.
func NewCacheStore(client *redis.Client) *CacheStore {
	return &CacheStore{client: client}
}

// Cache TTL constants
const (
	// PriceMatrixCacheTTL is short: rate administration happens in a
	// separate process and the core has no invalidation signal from it.
	PriceMatrixCacheTTL = 30 * time.Second
	JobCacheTTL         = 10 * time.Second
)

// Key prefixes
const (
	priceMatrixCacheKey = "cache:pricematrix"
	jobCachePrefix      = "cache:job:"
)

// GetPriceMatrix retrieves the cached matrix snapshot. The snapshot is
// stored as one value so readers never observe a half-updated matrix.
func (s *CacheStore) GetPriceMatrix(ctx context.Context) ([]domain.PriceMatrixEntry, error) {
	data, err := s.client.Get(ctx, priceMatrixCacheKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var entries []domain.PriceMatrixEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// SetPriceMatrix stores the matrix snapshot.
func (s *CacheStore) SetPriceMatrix(ctx context.Context, entries []domain.PriceMatrixEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, priceMatrixCacheKey, data, PriceMatrixCacheTTL).Err()
}

// GetJob retrieves a job from cache.
func (s *CacheStore) GetJob(ctx context.Context, jobID string) (*domain.Job, error) {
	data, err := s.client.Get(ctx, jobCachePrefix+jobID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var job domain.Job
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// SetJob stores a job in cache.
func (s *CacheStore) SetJob(ctx context.Context, job *domain.Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, jobCachePrefix+job.ID, data, JobCacheTTL).Err()
}

// InvalidateJob removes a job from cache.
func (s *CacheStore) InvalidateJob(ctx context.Context, jobID string) error {
	return s.client.Del(ctx, jobCachePrefix+jobID).Err()
}
