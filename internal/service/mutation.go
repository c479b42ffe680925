package service

import (
	"context"
	"time"

	"haulage/internal/domain"
	"haulage/internal/redis"
	"haulage/internal/repository"
)

// commitLockTTL bounds how long a crashed commit can hold a job's lock.
const commitLockTTL = 5 * time.Second

// MutationService is the sole entry point for changing a job. It sequences
// authorization, price resolution, the state machine, audit diffing and the
// atomic commit; callers never reach the sub-steps independently, so the
// policy cannot be bypassed.
type MutationService struct {
	jobRepo     repository.JobRepository
	commitStore repository.CommitStore
	pricing     *PricingService
	lockStore   redis.LockStoreInterface
	notifier    *NotificationService
}

// NewMutationService creates a new MutationService.
func NewMutationService(
	jobRepo repository.JobRepository,
	commitStore repository.CommitStore,
	pricing *PricingService,
	lockStore redis.LockStoreInterface,
	notifier *NotificationService,
) *MutationService {
	return &MutationService{
		jobRepo:     jobRepo,
		commitStore: commitStore,
		pricing:     pricing,
		lockStore:   lockStore,
		notifier:    notifier,
	}
}

// ProposeMutationRequest contains a proposed job mutation.
type ProposeMutationRequest struct {
	JobID       string
	BaseVersion int64
	Changes     JobChanges
	ActorID     string
	ActorRole   domain.Role
	Reason      string
}

// MutationResult contains a committed mutation: the new job snapshot and the
// audit entries the commit produced.
type MutationResult struct {
	Job          *domain.Job
	AuditEntries []domain.AuditEntry
}

// ProposeMutation validates, authorizes and commits a proposed mutation.
// Nothing is persisted unless every step passes; rejected mutations leave no
// trace in the audit log.
func (s *MutationService) ProposeMutation(ctx context.Context, req ProposeMutationRequest) (*MutationResult, error) {
	if req.JobID == "" {
		return nil, ErrInvalidJobID
	}
	if req.ActorID == "" || !domain.ValidRole(req.ActorRole) {
		return nil, ErrInvalidActor
	}
	if req.Changes.IsEmpty() {
		return nil, ErrNoChanges
	}

	// Short commit lock to cheapen contention. Correctness does not
	// depend on it; the version check below is what prevents lost
	// updates.
	if s.lockStore != nil {
		acquired, err := s.lockStore.AcquireJobLock(ctx, req.JobID, commitLockTTL)
		if err == nil {
			if !acquired {
				return nil, ErrJobBusy
			}
			defer func() { _ = s.lockStore.ReleaseJobLock(ctx, req.JobID) }()
		}
	}

	oldJob, err := s.jobRepo.GetByID(ctx, req.JobID)
	if err != nil {
		return nil, err
	}

	if oldJob.Version != req.BaseVersion {
		return nil, repository.ErrVersionConflict
	}

	decision := Authorize(oldJob, &req.Changes, req.ActorRole)
	switch decision.Outcome {
	case DecisionDenied:
		return nil, &DeniedError{Kind: decision.Denial}
	case DecisionAllowedWithReason:
		if req.Reason == "" {
			return nil, ErrReasonRequired
		}
	}

	newJob := oldJob.Clone()
	req.Changes.Apply(newJob)

	var overrideEntry *domain.AuditEntry
	now := time.Now()

	if req.Changes.Status != nil && *req.Changes.Status != oldJob.Status {
		overrideEntry, err = s.applyTransition(ctx, oldJob, newJob, req, now)
		if err != nil {
			return nil, err
		}
	}

	if req.Changes.AccountingStatus != nil && *req.Changes.AccountingStatus != oldJob.AccountingStatus {
		if err := s.applyAccountingChange(oldJob, newJob, req); err != nil {
			return nil, err
		}
	} else if oldJob.AccountingStatus == domain.AccountingRejected &&
		(req.Changes.Status == nil || *req.Changes.Status == oldJob.Status) {
		// Correcting a rejected job automatically resubmits it for
		// review. A patch that restates the current status is still a
		// correction, not a transition. The remark is retained for
		// history until a new verdict overwrites it.
		newJob.AccountingStatus = domain.AccountingPendingReview
	}

	if err := CheckInvariants(newJob); err != nil {
		return nil, err
	}

	entries := DiffJobs(oldJob, newJob, req.ActorID, req.ActorRole, req.Reason, now)
	if overrideEntry != nil {
		entries = append(entries, *overrideEntry)
	}
	if decision.LockOverride {
		entries = append(entries, AdminOverrideEntry(newJob, req.ActorID, req.ActorRole, req.Reason, now))
	}

	if err := s.commitStore.CommitMutation(ctx, newJob, oldJob.Version, entries); err != nil {
		return nil, err
	}

	s.emitFacts(ctx, oldJob, newJob)

	return &MutationResult{
		Job:          newJob,
		AuditEntries: entries,
	}, nil
}

// applyTransition validates the requested operational move and applies its
// side effects to the staged job. Returns a price override entry when the
// assigned cost departs from the contract price.
func (s *MutationService) applyTransition(ctx context.Context, oldJob, newJob *domain.Job, req ProposeMutationRequest, now time.Time) (*domain.AuditEntry, error) {
	if !CanTransition(oldJob.Status, newJob.Status) {
		return nil, ErrInvalidTransition
	}

	switch newJob.Status {
	case domain.StatusAssigned:
		if err := ValidateAssignment(newJob); err != nil {
			return nil, err
		}

		snapshot, err := s.pricing.Snapshot(ctx)
		if err != nil {
			return nil, err
		}

		contract, contracted := ResolveContractPrice(snapshot,
			newJob.Origin, newJob.Destination, newJob.TruckType, newJob.Subcontractor, len(newJob.Drops))

		// Contract revenue fills in the selling price unless the
		// caller chose one.
		if contracted && newJob.SellingPrice == 0 {
			newJob.SellingPrice = contract.Revenue
		}

		// The lock engages at assignment; from here on cost, fleet
		// and route are frozen for non-admin actors.
		newJob.IsBaseCostLocked = true

		if newJob.Cost != contract.Cost {
			// Uncontracted lanes resolve to a contract price of
			// zero, so a negotiated rate is always an override.
			if req.Reason == "" {
				return nil, ErrReasonRequired
			}
			entry := PriceOverrideEntry(newJob, contract.Cost, req.ActorID, req.ActorRole, req.Reason, now)
			return &entry, nil
		}

	case domain.StatusCompleted:
		if err := ValidateCompletion(newJob); err != nil {
			return nil, err
		}
		// Every completed delivery goes back through accounting
		// review, a prior verdict notwithstanding.
		newJob.AccountingStatus = domain.AccountingPendingReview

	case domain.StatusBilled:
		if err := ValidateBilling(newJob); err != nil {
			return nil, err
		}
		if newJob.BillingDate.IsZero() {
			newJob.BillingDate = now
		}

	case domain.StatusCancelled:
		if req.Reason == "" {
			return nil, ErrReasonRequired
		}
		newJob.CancelReason = req.Reason
		// Cancellation voids whatever accounting workflow had started
		// and releases the base cost lock with it. A REJECTED verdict
		// is voided rather than resubmitted: a terminal job carries no
		// accounting state, and keeping the verdict would put REJECTED
		// on a job that is no longer in flight.
		newJob.AccountingStatus = domain.AccountingUnset
		newJob.IsBaseCostLocked = false
	}

	return nil, nil
}

// applyAccountingChange validates an actor-requested accounting verdict.
func (s *MutationService) applyAccountingChange(oldJob, newJob *domain.Job, req ProposeMutationRequest) error {
	if err := ValidateAccountingChange(oldJob, newJob.AccountingStatus); err != nil {
		return err
	}

	if newJob.AccountingStatus == domain.AccountingRejected && newJob.AccountingRemark == "" {
		return ErrRemarkRequired
	}

	return nil
}

// emitFacts publishes facts derived from the committed transition. Facts
// follow commits only; a failed commit emits nothing.
func (s *MutationService) emitFacts(ctx context.Context, oldJob, newJob *domain.Job) {
	if s.notifier == nil {
		return
	}

	if newJob.Status == domain.StatusBilled && oldJob.Status != domain.StatusBilled {
		_ = s.notifier.NotifyBillingEligible(ctx, newJob)
	}
	if newJob.Status == domain.StatusCancelled && oldJob.Status != domain.StatusCancelled {
		_ = s.notifier.NotifyJobCancelled(ctx, newJob)
	}
	if newJob.AccountingStatus == domain.AccountingRejected && oldJob.AccountingStatus != domain.AccountingRejected {
		_ = s.notifier.NotifyAccountingRejected(ctx, newJob)
	}
}
