package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidJobID is returned when a job ID is empty.
	ErrInvalidJobID = errors.New("invalid job id")

	// ErrInvalidActor is returned when the actor ID is empty or the role
	// is unknown.
	ErrInvalidActor = errors.New("invalid actor")

	// ErrInvalidOrigin is returned when a job origin is empty.
	ErrInvalidOrigin = errors.New("invalid origin")

	// ErrInvalidDestination is returned when a job destination is empty.
	ErrInvalidDestination = errors.New("invalid destination")

	// ErrInvalidTransition is returned for an operational status change
	// the lifecycle does not permit.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrInvalidAccountingTransition is returned for an accounting status
	// change the workflow does not permit.
	ErrInvalidAccountingTransition = errors.New("invalid accounting status transition")

	// ErrIncompleteFleet is returned when assignment is attempted without
	// a subcontractor, truck type, driver name, driver phone or plate.
	ErrIncompleteFleet = errors.New("fleet assignment incomplete")

	// ErrInvalidCost is returned when assignment is attempted with a
	// non-positive cost.
	ErrInvalidCost = errors.New("cost must be positive")

	// ErrReasonRequired is returned when the guard or transition demands
	// a justification and none was supplied.
	ErrReasonRequired = errors.New("reason required for this change")

	// ErrRemarkRequired is returned when a REJECTED verdict carries no
	// accounting remark.
	ErrRemarkRequired = errors.New("accounting remark required for rejection")

	// ErrArrivalTimeRequired is returned when completion is attempted
	// without an actual arrival time.
	ErrArrivalTimeRequired = errors.New("actual arrival time required")

	// ErrProofOfDeliveryRequired is returned when completion is attempted
	// with no proof-of-delivery reference attached.
	ErrProofOfDeliveryRequired = errors.New("proof of delivery required")

	// ErrBillingNotApproved is returned when billing is attempted before
	// accounting approval.
	ErrBillingNotApproved = errors.New("accounting approval required before billing")

	// ErrJobBusy is returned when another commit currently holds the
	// job's commit lock. Callers should re-fetch and retry.
	ErrJobBusy = errors.New("job is being modified, retry")

	// ErrNoChanges is returned when a proposed mutation changes nothing.
	ErrNoChanges = errors.New("no changes proposed")
)

// DenialKind classifies policy rejections so callers can present an
// actionable message. The guard itself performs no presentation.
type DenialKind string

const (
	DenialLocked               DenialKind = "LOCKED"
	DenialWrongRole            DenialKind = "WRONG_ROLE"
	DenialPendingPricingReview DenialKind = "PENDING_PRICING_REVIEW"
)

// DeniedError is a policy rejection from the mutation guard. It is never
// retried automatically and never audited.
type DeniedError struct {
	Kind DenialKind
}

func (e *DeniedError) Error() string {
	return fmt.Sprintf("mutation denied: %s", e.Kind)
}

// InvariantError reports a cross-status invariant violation detected before
// commit. Nothing is persisted when one is returned.
type InvariantError struct {
	Rule string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violated: %s", e.Rule)
}
