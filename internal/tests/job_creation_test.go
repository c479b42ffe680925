package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"haulage/internal/domain"
	"haulage/internal/service"
)

// ──────────────────────────────────────────────
// 8. JOB BOOKING
// ──────────────────────────────────────────────

func TestCreateJob_BooksNewRequest(t *testing.T) {
	t.Parallel()

	jobRepo := NewMockJobRepository()
	jobService := service.NewJobService(jobRepo, nil)

	job, err := jobService.CreateJob(context.Background(), service.CreateJobRequest{
		Origin:      "Bangkok",
		Destination: "Chonburi",
		Drops: []domain.Drop{
			{Location: "Warehouse A"},
			{Location: "Warehouse B", Status: domain.DropStatusCompleted},
		},
		DateOfService: time.Now().Add(48 * time.Hour),
		SellingPrice:  5000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if job.ID == "" {
		t.Error("expected a generated job id")
	}
	if job.Version != 1 {
		t.Errorf("expected initial version 1, got %d", job.Version)
	}
	if job.Status != domain.StatusNewRequest {
		t.Errorf("expected status NEW_REQUEST, got %s", job.Status)
	}
	if job.AccountingStatus != domain.AccountingUnset {
		t.Errorf("expected empty accounting status, got %q", job.AccountingStatus)
	}
	if job.IsBaseCostLocked {
		t.Error("expected no base cost lock at booking")
	}

	// Drops default to PENDING unless stated.
	if job.Drops[0].Status != domain.DropStatusPending {
		t.Errorf("expected first drop PENDING, got %s", job.Drops[0].Status)
	}
	if job.Drops[1].Status != domain.DropStatusCompleted {
		t.Errorf("expected second drop status preserved, got %s", job.Drops[1].Status)
	}

	if jobRepo.GetJob(job.ID) == nil {
		t.Error("expected job persisted")
	}
}

func TestCreateJob_Validation(t *testing.T) {
	t.Parallel()

	jobService := service.NewJobService(NewMockJobRepository(), nil)

	_, err := jobService.CreateJob(context.Background(), service.CreateJobRequest{
		Destination: "Chonburi",
	})
	if !errors.Is(err, service.ErrInvalidOrigin) {
		t.Errorf("expected ErrInvalidOrigin, got %v", err)
	}

	_, err = jobService.CreateJob(context.Background(), service.CreateJobRequest{
		Origin: "Bangkok",
	})
	if !errors.Is(err, service.ErrInvalidDestination) {
		t.Errorf("expected ErrInvalidDestination, got %v", err)
	}
}

func TestCreateJob_RepositoryErrorSurfaces(t *testing.T) {
	t.Parallel()

	jobRepo := NewMockJobRepository()
	jobRepo.CreateError = errors.New("connection reset")
	jobService := service.NewJobService(jobRepo, nil)

	_, err := jobService.CreateJob(context.Background(), service.CreateJobRequest{
		Origin:      "Bangkok",
		Destination: "Chonburi",
	})
	if err == nil {
		t.Fatal("expected repository error to surface")
	}
}

func TestJobClone_IsDeep(t *testing.T) {
	t.Parallel()

	job := newRequestJob()
	job.Drops = []domain.Drop{{Location: "Warehouse A", Status: domain.DropStatusPending}}
	job.ProofOfDeliveryRefs = []string{"pod-001.jpg"}

	clone := job.Clone()
	clone.Drops[0].Status = domain.DropStatusCompleted
	clone.ProofOfDeliveryRefs[0] = "tampered.jpg"

	if job.Drops[0].Status != domain.DropStatusPending {
		t.Error("clone shares the drops slice with the original")
	}
	if job.ProofOfDeliveryRefs[0] != "pod-001.jpg" {
		t.Error("clone shares the proof slice with the original")
	}
}
