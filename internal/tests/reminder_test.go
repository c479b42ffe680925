package tests

import (
	"context"
	"testing"
	"time"

	"haulage/internal/domain"
	"haulage/internal/service"
)

// ──────────────────────────────────────────────
// 7. PENDING COMPLETION REMINDERS
// ──────────────────────────────────────────────

func TestReminderSweep_FiresPastCutoff(t *testing.T) {
	t.Parallel()

	jobRepo := NewMockJobRepository()
	notifier := service.NewNotificationService()
	reminders := service.NewReminderService(jobRepo, notifier, 24*time.Hour)

	overdue := lockedJob()
	overdue.ID = "job-overdue"
	overdue.DateOfService = time.Now().Add(-48 * time.Hour)
	jobRepo.AddJob(overdue)

	fresh := lockedJob()
	fresh.ID = "job-fresh"
	fresh.DateOfService = time.Now().Add(-1 * time.Hour)
	jobRepo.AddJob(fresh)

	future := lockedJob()
	future.ID = "job-future"
	future.DateOfService = time.Now().Add(24 * time.Hour)
	jobRepo.AddJob(future)

	fired, err := reminders.Sweep(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fired != 1 {
		t.Errorf("expected 1 reminder, got %d", fired)
	}
}

func TestReminderSweep_IgnoresOtherStatuses(t *testing.T) {
	t.Parallel()

	jobRepo := NewMockJobRepository()
	reminders := service.NewReminderService(jobRepo, service.NewNotificationService(), 24*time.Hour)

	// Overdue date of service, but the job already completed.
	done := lockedJob()
	done.ID = "job-done"
	done.Status = domain.StatusCompleted
	done.AccountingStatus = domain.AccountingPendingReview
	done.DateOfService = time.Now().Add(-72 * time.Hour)
	jobRepo.AddJob(done)

	// Cancelled jobs never remind either.
	cancelled := lockedJob()
	cancelled.ID = "job-cancelled"
	cancelled.Status = domain.StatusCancelled
	cancelled.IsBaseCostLocked = false
	cancelled.DateOfService = time.Now().Add(-72 * time.Hour)
	jobRepo.AddJob(cancelled)

	fired, err := reminders.Sweep(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fired != 0 {
		t.Errorf("expected no reminders, got %d", fired)
	}
}

func TestReminderSweep_SkipsUnscheduledJobs(t *testing.T) {
	t.Parallel()

	jobRepo := NewMockJobRepository()
	reminders := service.NewReminderService(jobRepo, service.NewNotificationService(), 24*time.Hour)

	// Assigned but no date of service recorded: nothing to measure
	// against, so no reminder.
	unscheduled := lockedJob()
	unscheduled.ID = "job-unscheduled"
	jobRepo.AddJob(unscheduled)

	fired, err := reminders.Sweep(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fired != 0 {
		t.Errorf("expected no reminders, got %d", fired)
	}
}
