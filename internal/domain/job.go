package domain

import "time"

// OperationalStatus represents where a job stands in the dispatch lifecycle.
type OperationalStatus string

const (
	StatusNewRequest     OperationalStatus = "NEW_REQUEST"
	StatusPendingPricing OperationalStatus = "PENDING_PRICING"
	StatusAssigned       OperationalStatus = "ASSIGNED"
	StatusCompleted      OperationalStatus = "COMPLETED"
	StatusBilled         OperationalStatus = "BILLED"
	StatusCancelled      OperationalStatus = "CANCELLED"
)

// AccountingStatus represents the verification/payment workflow state layered
// on top of the operational status. The empty value means accounting has not
// looked at the job yet.
type AccountingStatus string

const (
	AccountingUnset         AccountingStatus = ""
	AccountingPendingReview AccountingStatus = "PENDING_REVIEW"
	AccountingApproved      AccountingStatus = "APPROVED"
	AccountingRejected      AccountingStatus = "REJECTED"
	AccountingPaid          AccountingStatus = "PAID"
	AccountingLocked        AccountingStatus = "LOCKED"
)

// DropStatus represents the delivery state of a single drop.
type DropStatus string

const (
	DropStatusPending   DropStatus = "PENDING"
	DropStatusCompleted DropStatus = "COMPLETED"
)

// Drop is an intermediate delivery point within a job's route.
type Drop struct {
	Location           string
	Status             DropStatus
	ProofOfDeliveryRef string
	CompletedAt        time.Time
}

// Job represents a single transport service request tracked from booking
// through dispatch, delivery, accounting review and payment.
type Job struct {
	ID      string
	Version int64 // optimistic concurrency token, bumped on every commit

	// Route.
	Origin      string
	Destination string
	Drops       []Drop

	// Fleet assignment.
	Subcontractor string
	TruckType     string
	DriverName    string
	DriverPhone   string
	LicensePlate  string

	// Financials.
	Cost         float64 // amount paid to the subcontractor
	SellingPrice float64 // amount billed to the customer
	ExtraCharge  float64 // beyond contract price, needs justification

	Status           OperationalStatus
	AccountingStatus AccountingStatus

	// IsBaseCostLocked freezes cost, fleet and route fields for non-admin
	// actors. Engaged on assignment; REJECTED/PENDING_REVIEW carve-outs
	// apply so corrections stay possible.
	IsBaseCostLocked bool

	// AccountingRemark explains a REJECTED verdict. It is retained for
	// history until a new verdict overwrites it.
	AccountingRemark string

	// Job-level proof-of-delivery references. Drop-level proofs are
	// optional extras on each Drop.
	ProofOfDeliveryRefs []string

	CancelReason string

	CreatedAt         time.Time
	DateOfService     time.Time
	ActualArrivalTime time.Time
	BillingDate       time.Time
}

// IsTerminal reports whether the job can accept no further operational
// transitions.
func (j *Job) IsTerminal() bool {
	return j.Status == StatusBilled || j.Status == StatusCancelled
}

// Clone returns a deep copy of the job. Mutations are staged on a clone so a
// failed commit never leaks partial state into the caller's snapshot.
func (j *Job) Clone() *Job {
	c := *j
	if j.Drops != nil {
		c.Drops = make([]Drop, len(j.Drops))
		copy(c.Drops, j.Drops)
	}
	if j.ProofOfDeliveryRefs != nil {
		c.ProofOfDeliveryRefs = make([]string, len(j.ProofOfDeliveryRefs))
		copy(c.ProofOfDeliveryRefs, j.ProofOfDeliveryRefs)
	}
	return &c
}

// HasProofOfDelivery reports whether at least one proof-of-delivery
// reference is attached, either at job level or on any drop.
func (j *Job) HasProofOfDelivery() bool {
	if len(j.ProofOfDeliveryRefs) > 0 {
		return true
	}
	for _, d := range j.Drops {
		if d.ProofOfDeliveryRef != "" {
			return true
		}
	}
	return false
}

// ValidOperationalStatus reports whether s is a known operational status.
func ValidOperationalStatus(s OperationalStatus) bool {
	switch s {
	case StatusNewRequest, StatusPendingPricing, StatusAssigned,
		StatusCompleted, StatusBilled, StatusCancelled:
		return true
	}
	return false
}

// ValidAccountingStatus reports whether s is a known accounting status.
// The empty value is valid (accounting has not acted yet).
func ValidAccountingStatus(s AccountingStatus) bool {
	switch s {
	case AccountingUnset, AccountingPendingReview, AccountingApproved,
		AccountingRejected, AccountingPaid, AccountingLocked:
		return true
	}
	return false
}
