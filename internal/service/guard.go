package service

import (
	"haulage/internal/domain"
)

// DecisionOutcome is the guard's verdict for a proposed mutation.
type DecisionOutcome int

const (
	// DecisionDenied rejects the mutation outright.
	DecisionDenied DecisionOutcome = iota

	// DecisionAllowed permits the mutation as proposed.
	DecisionAllowed

	// DecisionAllowedWithReason permits the mutation only when the
	// commit carries a non-empty reason.
	DecisionAllowedWithReason
)

// Decision is the outcome of evaluating a proposed mutation against the
// locking policy and role permissions. Denied decisions carry a kind so the
// caller can present an actionable message. LockOverride marks an admin
// pushing through the base cost lock; the orchestrator records it as its own
// audit entry.
type Decision struct {
	Outcome      DecisionOutcome
	Denial       DenialKind
	LockOverride bool
}

func allowed() Decision               { return Decision{Outcome: DecisionAllowed} }
func allowedWithReason() Decision     { return Decision{Outcome: DecisionAllowedWithReason} }
func denied(kind DenialKind) Decision { return Decision{Outcome: DecisionDenied, Denial: kind} }

// Authorize decides whether the actor role may apply the proposed changes to
// the job. It is a pure policy check: no presentation, no persistence.
//
// Policy, in evaluation order:
//   - accounting status/remark changes belong to ACCOUNTANT alone;
//   - ACCOUNTANT is read-only for everything operational;
//   - an accounting verdict on an unpriced job is premature;
//   - BOOKING_OFFICER may only touch jobs still in NEW_REQUEST;
//   - FIELD_OFFICER may only record delivery progress;
//   - the base cost lock freezes cost/fleet/route for everyone but ADMIN,
//     except while accounting status is REJECTED or PENDING_REVIEW;
//   - changing subcontractor, truck type, plate, origin, destination or
//     cost on a dispatched job always demands a reason, as does
//     cancellation.
func Authorize(job *domain.Job, changes *JobChanges, role domain.Role) Decision {
	if !domain.ValidRole(role) {
		return denied(DenialWrongRole)
	}

	if changes.AccountingStatus != nil || changes.AccountingRemark != nil {
		if role != domain.RoleAccountant {
			return denied(DenialWrongRole)
		}
	}

	if role == domain.RoleAccountant {
		if changes.TouchesRoute() || changes.TouchesFleet() || changes.TouchesFinancial() ||
			changes.Status != nil || changes.TouchesDeliveryProgress() || changes.DateOfService != nil {
			return denied(DenialWrongRole)
		}
		if changes.AccountingStatus != nil && job.Status == domain.StatusPendingPricing {
			return denied(DenialPendingPricingReview)
		}
		return allowed()
	}

	if role == domain.RoleBookingOfficer && job.Status != domain.StatusNewRequest {
		return denied(DenialLocked)
	}

	if role == domain.RoleFieldOfficer {
		if changes.TouchesFleet() || changes.TouchesFinancial() ||
			changes.Origin != nil || changes.Destination != nil ||
			changes.DateOfService != nil || changes.BillingDate != nil {
			return denied(DenialWrongRole)
		}
		if changes.Status != nil && *changes.Status != domain.StatusCompleted {
			return denied(DenialWrongRole)
		}
	}

	if changes.TouchesLockedFields() && job.IsBaseCostLocked &&
		job.AccountingStatus != domain.AccountingRejected &&
		job.AccountingStatus != domain.AccountingPendingReview {
		if role != domain.RoleAdmin {
			return denied(DenialLocked)
		}
		// Admin override under lock, separately flagged in the audit
		// entries by the orchestrator.
		return Decision{Outcome: DecisionAllowedWithReason, LockOverride: true}
	}

	if changes.Status != nil && *changes.Status == domain.StatusCancelled {
		return allowedWithReason()
	}

	if changes.TouchesSensitiveFields() && job.Status != domain.StatusNewRequest {
		return allowedWithReason()
	}

	return allowed()
}
