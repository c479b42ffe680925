package service

import (
	"context"
	"time"

	"haulage/internal/domain"
	"haulage/internal/repository"
)

// ReminderService sweeps assigned jobs and publishes a pending-completion
// fact for each one past the cutoff. External schedulers and notifiers
// consume the facts; the sweep itself commits nothing.
type ReminderService struct {
	jobRepo  repository.JobRepository
	notifier *NotificationService
	cutoff   time.Duration
}

// NewReminderService creates a new ReminderService. Cutoff is how long after
// the date of service an assigned job may sit without a delivery
// confirmation before a reminder fires.
func NewReminderService(jobRepo repository.JobRepository, notifier *NotificationService, cutoff time.Duration) *ReminderService {
	return &ReminderService{
		jobRepo:  jobRepo,
		notifier: notifier,
		cutoff:   cutoff,
	}
}

// Sweep publishes reminders for assigned jobs past the cutoff and returns
// how many fired.
func (s *ReminderService) Sweep(ctx context.Context) (int, error) {
	jobs, err := s.jobRepo.ListByStatus(ctx, domain.StatusAssigned)
	if err != nil {
		return 0, err
	}

	deadline := time.Now().Add(-s.cutoff)
	fired := 0

	for _, job := range jobs {
		if job.DateOfService.IsZero() || job.DateOfService.After(deadline) {
			continue
		}
		if s.notifier != nil {
			_ = s.notifier.NotifyPendingCompletion(ctx, job)
		}
		fired++
	}

	return fired, nil
}
