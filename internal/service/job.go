package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"haulage/internal/domain"
	"haulage/internal/redis"
	"haulage/internal/repository"
)

// JobService handles job creation and reads. All changes to an existing job
// go through the MutationService.
type JobService struct {
	jobRepo repository.JobRepository
	cache   redis.SnapshotCacheInterface
}

// NewJobService creates a new JobService.
func NewJobService(jobRepo repository.JobRepository, cache redis.SnapshotCacheInterface) *JobService {
	return &JobService{
		jobRepo: jobRepo,
		cache:   cache,
	}
}

// CreateJobRequest contains the parameters for booking a new job.
type CreateJobRequest struct {
	Origin        string
	Destination   string
	Drops         []domain.Drop
	DateOfService time.Time
	SellingPrice  float64
}

// CreateJob books a new job in NEW_REQUEST. Pricing and fleet assignment
// come later, through mutations.
func (s *JobService) CreateJob(ctx context.Context, req CreateJobRequest) (*domain.Job, error) {
	if req.Origin == "" {
		return nil, ErrInvalidOrigin
	}
	if req.Destination == "" {
		return nil, ErrInvalidDestination
	}

	drops := make([]domain.Drop, len(req.Drops))
	copy(drops, req.Drops)
	for i := range drops {
		if drops[i].Status == "" {
			drops[i].Status = domain.DropStatusPending
		}
	}

	job := &domain.Job{
		ID:            uuid.New().String(),
		Version:       1,
		Origin:        req.Origin,
		Destination:   req.Destination,
		Drops:         drops,
		SellingPrice:  req.SellingPrice,
		Status:        domain.StatusNewRequest,
		CreatedAt:     time.Now(),
		DateOfService: req.DateOfService,
	}

	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, err
	}

	return job, nil
}

// GetJob retrieves a job by ID, read-through cached.
func (s *JobService) GetJob(ctx context.Context, jobID string) (*domain.Job, error) {
	if jobID == "" {
		return nil, ErrInvalidJobID
	}

	if s.cache != nil {
		if job, err := s.cache.GetJob(ctx, jobID); err == nil && job != nil {
			return job, nil
		}
	}

	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.SetJob(ctx, job)
	}

	return job, nil
}

// ListJobs retrieves recent jobs.
func (s *JobService) ListJobs(ctx context.Context) ([]*domain.Job, error) {
	return s.jobRepo.GetAll(ctx)
}

// InvalidateJob drops a job from the read cache after a commit.
func (s *JobService) InvalidateJob(ctx context.Context, jobID string) {
	if s.cache != nil {
		_ = s.cache.InvalidateJob(ctx, jobID)
	}
}
