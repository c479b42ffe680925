package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"haulage/internal/domain"
)

// FactType represents the type of fact emitted to external collaborators.
type FactType string

const (
	FactBillingEligible           FactType = "BILLING_ELIGIBLE"
	FactPendingCompletionReminder FactType = "PENDING_COMPLETION_REMINDER"
	FactJobCancelled              FactType = "JOB_CANCELLED"
	FactAccountingRejected        FactType = "ACCOUNTING_REJECTED"
)

// Fact is an event derived from a committed state change, consumed by
// external schedulers and notifiers. Facts are never produced for rejected
// mutations.
type Fact struct {
	Type      FactType
	JobID     string
	Message   string
	Data      map[string]interface{}
	CreatedAt time.Time
}

// NotificationService emits facts to external collaborators.
type NotificationService struct {
	// Delivery (chat, bot messages, document generation triggers) is an
	// external collaborator; this service only publishes the facts.
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// NotifyBillingEligible publishes that a job reached BILLED and billing
// documents can be issued.
func (s *NotificationService) NotifyBillingEligible(ctx context.Context, job *domain.Job) error {
	return s.publish(ctx, Fact{
		Type:    FactBillingEligible,
		JobID:   job.ID,
		Message: fmt.Sprintf("Job %s is billed; selling price %s", job.ID, FormatAmount(job.SellingPrice)),
		Data: map[string]interface{}{
			"job_id":        job.ID,
			"selling_price": job.SellingPrice,
			"billing_date":  job.BillingDate,
		},
		CreatedAt: time.Now(),
	})
}

// NotifyPendingCompletion publishes that an assigned job is past the
// completion cutoff without a delivery confirmation.
func (s *NotificationService) NotifyPendingCompletion(ctx context.Context, job *domain.Job) error {
	return s.publish(ctx, Fact{
		Type:    FactPendingCompletionReminder,
		JobID:   job.ID,
		Message: fmt.Sprintf("Job %s assigned to %s has no delivery confirmation yet", job.ID, job.Subcontractor),
		Data: map[string]interface{}{
			"job_id":          job.ID,
			"subcontractor":   job.Subcontractor,
			"date_of_service": job.DateOfService,
		},
		CreatedAt: time.Now(),
	})
}

// NotifyJobCancelled publishes a cancellation fact.
func (s *NotificationService) NotifyJobCancelled(ctx context.Context, job *domain.Job) error {
	return s.publish(ctx, Fact{
		Type:    FactJobCancelled,
		JobID:   job.ID,
		Message: fmt.Sprintf("Job %s cancelled: %s", job.ID, job.CancelReason),
		Data: map[string]interface{}{
			"job_id": job.ID,
			"reason": job.CancelReason,
		},
		CreatedAt: time.Now(),
	})
}

// NotifyAccountingRejected publishes that accounting rejected a job so the
// dispatcher can correct and resubmit.
func (s *NotificationService) NotifyAccountingRejected(ctx context.Context, job *domain.Job) error {
	return s.publish(ctx, Fact{
		Type:    FactAccountingRejected,
		JobID:   job.ID,
		Message: fmt.Sprintf("Job %s rejected by accounting: %s", job.ID, job.AccountingRemark),
		Data: map[string]interface{}{
			"job_id": job.ID,
			"remark": job.AccountingRemark,
		},
		CreatedAt: time.Now(),
	})
}

// publish hands a fact to the external delivery layer (log-backed here).
func (s *NotificationService) publish(ctx context.Context, fact Fact) error {
	log.Printf("[FACT] Type=%s, JobID=%s, Message=%s", fact.Type, fact.JobID, fact.Message)
	return nil
}
