package tests

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"haulage/internal/domain"
	"haulage/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK JOB REPOSITORY
// ──────────────────────────────────────────────

// MockJobRepository is a mock implementation of JobRepository with real
// compare-and-swap semantics on Update.
type MockJobRepository struct {
	mu   sync.RWMutex
	jobs map[string]*domain.Job

	// Counters for verification
	CreateCallCount int32
	UpdateCallCount int32

	// Error injection
	CreateError  error
	GetByIDError error
	UpdateError  error
	ListError    error
}

// NewMockJobRepository creates a new mock job repository.
func NewMockJobRepository() *MockJobRepository {
	return &MockJobRepository{
		jobs: make(map[string]*domain.Job),
	}
}

// AddJob adds a job to the mock repository.
func (m *MockJobRepository) AddJob(job *domain.Job) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs[job.ID] = job.Clone()
}

func (m *MockJobRepository) Create(ctx context.Context, job *domain.Job) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs[job.ID] = job.Clone()
	return nil
}

func (m *MockJobRepository) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	if m.GetByIDError != nil {
		return nil, m.GetByIDError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	job, ok := m.jobs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return job.Clone(), nil
}

func (m *MockJobRepository) GetAll(ctx context.Context) ([]*domain.Job, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Job, 0, len(m.jobs))
	for _, j := range m.jobs {
		result = append(result, j.Clone())
	}
	return result, nil
}

func (m *MockJobRepository) ListByStatus(ctx context.Context, status domain.OperationalStatus) ([]*domain.Job, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Job, 0)
	for _, j := range m.jobs {
		if j.Status == status {
			result = append(result, j.Clone())
		}
	}
	return result, nil
}

func (m *MockJobRepository) Update(ctx context.Context, job *domain.Job, expectedVersion int64) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.jobs[job.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if stored.Version != expectedVersion {
		return repository.ErrVersionConflict
	}
	committed := job.Clone()
	committed.Version = expectedVersion + 1
	m.jobs[job.ID] = committed
	job.Version = committed.Version
	return nil
}

// GetJob returns a job snapshot for test assertions.
func (m *MockJobRepository) GetJob(id string) *domain.Job {
	m.mu.RLock()
	defer m.mu.RUnlock()
	job, ok := m.jobs[id]
	if !ok {
		return nil
	}
	return job.Clone()
}

// ──────────────────────────────────────────────
// MOCK AUDIT REPOSITORY
// ──────────────────────────────────────────────

// MockAuditRepository is a mock implementation of AuditRepository.
type MockAuditRepository struct {
	mu      sync.RWMutex
	entries []domain.AuditEntry

	// Counters for verification
	AppendCallCount int32

	// Error injection
	AppendError error
}

// NewMockAuditRepository creates a new mock audit repository.
func NewMockAuditRepository() *MockAuditRepository {
	return &MockAuditRepository{}
}

func (m *MockAuditRepository) Append(ctx context.Context, entries []domain.AuditEntry) error {
	atomic.AddInt32(&m.AppendCallCount, 1)
	if m.AppendError != nil {
		return m.AppendError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entries...)
	return nil
}

func (m *MockAuditRepository) ListByJobID(ctx context.Context, jobID string) ([]domain.AuditEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]domain.AuditEntry, 0)
	for _, e := range m.entries {
		if e.JobID == jobID {
			result = append(result, e)
		}
	}
	return result, nil
}

// CountEntries returns the total number of stored entries.
func (m *MockAuditRepository) CountEntries() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// ──────────────────────────────────────────────
// MOCK PRICE MATRIX REPOSITORY
// ──────────────────────────────────────────────

// MockPriceMatrixRepository is a mock implementation of PriceMatrixRepository.
type MockPriceMatrixRepository struct {
	mu      sync.RWMutex
	entries []domain.PriceMatrixEntry

	// Error injection
	SnapshotError error
}

// NewMockPriceMatrixRepository creates a new mock price matrix repository.
func NewMockPriceMatrixRepository() *MockPriceMatrixRepository {
	return &MockPriceMatrixRepository{}
}

// AddEntry adds a matrix row to the mock repository.
func (m *MockPriceMatrixRepository) AddEntry(entry domain.PriceMatrixEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
}

func (m *MockPriceMatrixRepository) Snapshot(ctx context.Context) ([]domain.PriceMatrixEntry, error) {
	if m.SnapshotError != nil {
		return nil, m.SnapshotError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]domain.PriceMatrixEntry, len(m.entries))
	copy(result, m.entries)
	return result, nil
}

// ──────────────────────────────────────────────
// MOCK COMMIT STORE
// ──────────────────────────────────────────────

// MockCommitStore is a mock implementation of CommitStore backed by a mock
// job repository and a mock audit repository. The commit is atomic under the
// store's mutex: either the job update and the audit append both land or
// neither does.
type MockCommitStore struct {
	mu    sync.Mutex
	jobs  *MockJobRepository
	audit *MockAuditRepository

	// Counters for verification
	CommitCallCount int32

	// Error injection
	CommitError error
}

// NewMockCommitStore creates a new mock commit store over the given mocks.
func NewMockCommitStore(jobs *MockJobRepository, audit *MockAuditRepository) *MockCommitStore {
	return &MockCommitStore{
		jobs:  jobs,
		audit: audit,
	}
}

func (m *MockCommitStore) CommitMutation(ctx context.Context, job *domain.Job, expectedVersion int64, entries []domain.AuditEntry) error {
	atomic.AddInt32(&m.CommitCallCount, 1)
	if m.CommitError != nil {
		return m.CommitError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.jobs.Update(ctx, job, expectedVersion); err != nil {
		return err
	}
	return m.audit.Append(ctx, entries)
}

// ──────────────────────────────────────────────
// MOCK LOCK STORE
// ──────────────────────────────────────────────

// MockLockStore is a mock implementation of LockStoreInterface.
type MockLockStore struct {
	mu    sync.Mutex
	locks map[string]bool

	// Counters for verification
	AcquireCallCount int32
	ReleaseCallCount int32

	// Error injection
	AcquireError error
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{
		locks: make(map[string]bool),
	}
}

func (m *MockLockStore) AcquireJobLock(ctx context.Context, jobID string, ttl time.Duration) (bool, error) {
	atomic.AddInt32(&m.AcquireCallCount, 1)
	if m.AcquireError != nil {
		return false, m.AcquireError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locks[jobID] {
		return false, nil
	}
	m.locks[jobID] = true
	return true, nil
}

func (m *MockLockStore) ReleaseJobLock(ctx context.Context, jobID string) error {
	atomic.AddInt32(&m.ReleaseCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, jobID)
	return nil
}

// HoldLock marks a job lock as held by someone else.
func (m *MockLockStore) HoldLock(jobID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locks[jobID] = true
}
