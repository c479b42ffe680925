package service

import (
	"haulage/internal/domain"
)

// operationalTransitions enumerates the permitted operational status moves.
// BILLED and CANCELLED are terminal.
var operationalTransitions = map[domain.OperationalStatus][]domain.OperationalStatus{
	domain.StatusNewRequest:     {domain.StatusPendingPricing, domain.StatusAssigned, domain.StatusCancelled},
	domain.StatusPendingPricing: {domain.StatusAssigned, domain.StatusCancelled},
	domain.StatusAssigned:       {domain.StatusCompleted, domain.StatusCancelled},
	domain.StatusCompleted:      {domain.StatusBilled},
	domain.StatusBilled:         {},
	domain.StatusCancelled:      {},
}

// accountingTransitions enumerates the actor-driven accounting moves. The
// machine-driven reset to PENDING_REVIEW on completion and on corrections
// after a rejection bypasses this table; it is applied by the orchestrator,
// not requested by an actor.
var accountingTransitions = map[domain.AccountingStatus][]domain.AccountingStatus{
	domain.AccountingUnset:         {domain.AccountingPendingReview},
	domain.AccountingPendingReview: {domain.AccountingApproved, domain.AccountingRejected},
	domain.AccountingRejected:      {domain.AccountingPendingReview},
	domain.AccountingApproved:      {domain.AccountingPaid},
	domain.AccountingPaid:          {domain.AccountingLocked},
	domain.AccountingLocked:        {},
}

// CanTransition reports whether the operational move from → to is permitted.
func CanTransition(from, to domain.OperationalStatus) bool {
	for _, next := range operationalTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidateAssignment checks the completeness requirements for moving a job
// into ASSIGNED: full fleet details and a positive cost.
func ValidateAssignment(job *domain.Job) error {
	if job.Subcontractor == "" || job.TruckType == "" ||
		job.DriverName == "" || job.DriverPhone == "" || job.LicensePlate == "" {
		return ErrIncompleteFleet
	}
	if job.Cost <= 0 {
		return ErrInvalidCost
	}
	return nil
}

// ValidateCompletion checks the requirements for moving a job into
// COMPLETED: an actual arrival time and at least one proof-of-delivery
// reference, job-level or on any drop.
func ValidateCompletion(job *domain.Job) error {
	if job.ActualArrivalTime.IsZero() {
		return ErrArrivalTimeRequired
	}
	if !job.HasProofOfDelivery() {
		return ErrProofOfDeliveryRequired
	}
	return nil
}

// ValidateBilling checks that accounting has approved the job before it can
// move into BILLED.
func ValidateBilling(job *domain.Job) error {
	if job.AccountingStatus != domain.AccountingApproved {
		return ErrBillingNotApproved
	}
	return nil
}

// ValidateAccountingChange checks an actor-requested accounting status
// change against the workflow table and the job's operational state.
func ValidateAccountingChange(job *domain.Job, to domain.AccountingStatus) error {
	from := job.AccountingStatus

	permitted := false
	for _, next := range accountingTransitions[from] {
		if next == to {
			permitted = true
			break
		}
	}
	if !permitted {
		return ErrInvalidAccountingTransition
	}

	switch to {
	case domain.AccountingRejected:
		// A verdict can only reject work that is in flight.
		if job.Status != domain.StatusAssigned && job.Status != domain.StatusCompleted {
			return ErrInvalidAccountingTransition
		}
	case domain.AccountingPaid, domain.AccountingLocked:
		if job.Status != domain.StatusBilled {
			return ErrInvalidAccountingTransition
		}
	}

	return nil
}

// CheckInvariants enforces the cross-status invariants on a job about to be
// committed. Modeling the two dimensions as independent enums keeps the
// state space small; this is the one place their coupling is checked.
func CheckInvariants(job *domain.Job) error {
	if !domain.ValidOperationalStatus(job.Status) {
		return &InvariantError{Rule: "unknown operational status"}
	}
	if !domain.ValidAccountingStatus(job.AccountingStatus) {
		return &InvariantError{Rule: "unknown accounting status"}
	}

	// A job cannot be locked before assignment.
	if job.IsBaseCostLocked {
		switch job.Status {
		case domain.StatusAssigned, domain.StatusCompleted, domain.StatusBilled:
		default:
			return &InvariantError{Rule: "base cost locked before assignment"}
		}
	}

	// PAID and LOCKED are post-billing states only.
	if job.AccountingStatus == domain.AccountingPaid || job.AccountingStatus == domain.AccountingLocked {
		if job.Status != domain.StatusBilled {
			return &InvariantError{Rule: "paid/locked accounting status on unbilled job"}
		}
	}

	// REJECTED only applies to work in flight.
	if job.AccountingStatus == domain.AccountingRejected {
		if job.Status != domain.StatusAssigned && job.Status != domain.StatusCompleted {
			return &InvariantError{Rule: "rejected accounting status outside assigned/completed"}
		}
	}

	return nil
}
