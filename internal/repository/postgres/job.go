package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"haulage/internal/domain"
	"haulage/internal/repository"
)

// JobRepository is a PostgreSQL implementation of repository.JobRepository.
type JobRepository struct {
	q Querier
}

// NewJobRepository creates a new PostgreSQL job repository.
func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{q: db}
}

// NewJobRepositoryWithTx creates a job repository using a transaction.
func NewJobRepositoryWithTx(tx *sql.Tx) *JobRepository {
	return &JobRepository{q: tx}
}

const jobColumns = `id, version, origin, destination, drops, subcontractor, truck_type, driver_name, driver_phone, license_plate, cost, selling_price, extra_charge, status, accounting_status, is_base_cost_locked, accounting_remark, proof_of_delivery_refs, cancel_reason, created_at, date_of_service, actual_arrival_time, billing_date`

// Create persists a new job.
func (r *JobRepository) Create(ctx context.Context, job *domain.Job) error {
	query := `
		INSERT INTO jobs (` + jobColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)
	`

	args, err := jobArgs(job)
	if err != nil {
		return err
	}

	_, err = r.q.ExecContext(ctx, query, args...)
	return err
}

// GetByID retrieves a job by ID.
func (r *JobRepository) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`

	job, err := scanJob(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return job, nil
}

// GetAll retrieves recent jobs.
func (r *JobRepository) GetAll(ctx context.Context) ([]*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs ORDER BY created_at DESC LIMIT 100`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectJobs(rows)
}

// ListByStatus retrieves jobs in the given operational status.
func (r *JobRepository) ListByStatus(ctx context.Context, status domain.OperationalStatus) ([]*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE status = $1 ORDER BY created_at`

	rows, err := r.q.QueryContext(ctx, query, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectJobs(rows)
}

// Update replaces the stored job, guarded by the version column. Callers
// have already fetched the job, so zero affected rows means the stored
// version drifted, not that the job is missing.
func (r *JobRepository) Update(ctx context.Context, job *domain.Job, expectedVersion int64) error {
	query := `
		UPDATE jobs
		SET version = $1, origin = $2, destination = $3, drops = $4, subcontractor = $5, truck_type = $6, driver_name = $7, driver_phone = $8, license_plate = $9, cost = $10, selling_price = $11, extra_charge = $12, status = $13, accounting_status = $14, is_base_cost_locked = $15, accounting_remark = $16, proof_of_delivery_refs = $17, cancel_reason = $18, date_of_service = $19, actual_arrival_time = $20, billing_date = $21
		WHERE id = $22 AND version = $23
	`

	job.Version = expectedVersion + 1

	drops, pods, err := encodeJSONFields(job)
	if err != nil {
		return err
	}

	result, err := r.q.ExecContext(ctx, query,
		job.Version,
		job.Origin,
		job.Destination,
		drops,
		job.Subcontractor,
		job.TruckType,
		job.DriverName,
		job.DriverPhone,
		job.LicensePlate,
		job.Cost,
		job.SellingPrice,
		job.ExtraCharge,
		job.Status,
		job.AccountingStatus,
		job.IsBaseCostLocked,
		job.AccountingRemark,
		pods,
		job.CancelReason,
		nullTime(job.DateOfService),
		nullTime(job.ActualArrivalTime),
		nullTime(job.BillingDate),
		job.ID,
		expectedVersion,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return repository.ErrVersionConflict
	}

	return nil
}

// jobArgs builds the insert argument list in jobColumns order.
func jobArgs(job *domain.Job) ([]any, error) {
	drops, pods, err := encodeJSONFields(job)
	if err != nil {
		return nil, err
	}

	return []any{
		job.ID,
		job.Version,
		job.Origin,
		job.Destination,
		drops,
		job.Subcontractor,
		job.TruckType,
		job.DriverName,
		job.DriverPhone,
		job.LicensePlate,
		job.Cost,
		job.SellingPrice,
		job.ExtraCharge,
		job.Status,
		job.AccountingStatus,
		job.IsBaseCostLocked,
		job.AccountingRemark,
		pods,
		job.CancelReason,
		job.CreatedAt,
		nullTime(job.DateOfService),
		nullTime(job.ActualArrivalTime),
		nullTime(job.BillingDate),
	}, nil
}

func encodeJSONFields(job *domain.Job) ([]byte, []byte, error) {
	drops, err := json.Marshal(job.Drops)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal drops: %w", err)
	}
	pods, err := json.Marshal(job.ProofOfDeliveryRefs)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal proof refs: %w", err)
	}
	return drops, pods, nil
}

func nullTime(t interface{ IsZero() bool }) any {
	if t.IsZero() {
		return nil
	}
	return t
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (*domain.Job, error) {
	var job domain.Job
	var drops, pods []byte
	var dateOfService, actualArrival, billingDate sql.NullTime

	err := row.Scan(
		&job.ID,
		&job.Version,
		&job.Origin,
		&job.Destination,
		&drops,
		&job.Subcontractor,
		&job.TruckType,
		&job.DriverName,
		&job.DriverPhone,
		&job.LicensePlate,
		&job.Cost,
		&job.SellingPrice,
		&job.ExtraCharge,
		&job.Status,
		&job.AccountingStatus,
		&job.IsBaseCostLocked,
		&job.AccountingRemark,
		&pods,
		&job.CancelReason,
		&job.CreatedAt,
		&dateOfService,
		&actualArrival,
		&billingDate,
	)
	if err != nil {
		return nil, err
	}

	if len(drops) > 0 {
		if err := json.Unmarshal(drops, &job.Drops); err != nil {
			return nil, fmt.Errorf("unmarshal drops: %w", err)
		}
	}
	if len(pods) > 0 {
		if err := json.Unmarshal(pods, &job.ProofOfDeliveryRefs); err != nil {
			return nil, fmt.Errorf("unmarshal proof refs: %w", err)
		}
	}
	if dateOfService.Valid {
		job.DateOfService = dateOfService.Time
	}
	if actualArrival.Valid {
		job.ActualArrivalTime = actualArrival.Time
	}
	if billingDate.Valid {
		job.BillingDate = billingDate.Time
	}

	return &job, nil
}

func collectJobs(rows *sql.Rows) ([]*domain.Job, error) {
	var jobs []*domain.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}
