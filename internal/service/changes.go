package service

import (
	"time"

	"haulage/internal/domain"
)

// JobChanges is a sparse patch over a job: nil fields are untouched. This is
// the only shape in which external callers may propose mutations.
type JobChanges struct {
	Origin      *string
	Destination *string
	Drops       *[]domain.Drop

	Subcontractor *string
	TruckType     *string
	DriverName    *string
	DriverPhone   *string
	LicensePlate  *string

	Cost         *float64
	SellingPrice *float64
	ExtraCharge  *float64

	Status           *domain.OperationalStatus
	AccountingStatus *domain.AccountingStatus
	AccountingRemark *string

	ProofOfDeliveryRefs *[]string

	DateOfService     *time.Time
	ActualArrivalTime *time.Time
	BillingDate       *time.Time
}

// IsEmpty reports whether the patch touches nothing.
func (c *JobChanges) IsEmpty() bool {
	return c.Origin == nil && c.Destination == nil && c.Drops == nil &&
		c.Subcontractor == nil && c.TruckType == nil && c.DriverName == nil &&
		c.DriverPhone == nil && c.LicensePlate == nil &&
		c.Cost == nil && c.SellingPrice == nil && c.ExtraCharge == nil &&
		c.Status == nil && c.AccountingStatus == nil && c.AccountingRemark == nil &&
		c.ProofOfDeliveryRefs == nil &&
		c.DateOfService == nil && c.ActualArrivalTime == nil && c.BillingDate == nil
}

// TouchesRoute reports whether origin, destination or drops change.
func (c *JobChanges) TouchesRoute() bool {
	return c.Origin != nil || c.Destination != nil || c.Drops != nil
}

// TouchesFleet reports whether any fleet assignment field changes.
func (c *JobChanges) TouchesFleet() bool {
	return c.Subcontractor != nil || c.TruckType != nil || c.DriverName != nil ||
		c.DriverPhone != nil || c.LicensePlate != nil
}

// TouchesFinancial reports whether any money field changes.
func (c *JobChanges) TouchesFinancial() bool {
	return c.Cost != nil || c.SellingPrice != nil || c.ExtraCharge != nil
}

// TouchesAccounting reports whether the accounting verdict, remark or
// billing date changes.
func (c *JobChanges) TouchesAccounting() bool {
	return c.AccountingStatus != nil || c.AccountingRemark != nil || c.BillingDate != nil
}

// TouchesDeliveryProgress reports whether only-in-the-field data changes:
// drops, proof-of-delivery references or the arrival time.
func (c *JobChanges) TouchesDeliveryProgress() bool {
	return c.Drops != nil || c.ProofOfDeliveryRefs != nil || c.ActualArrivalTime != nil
}

// TouchesLockedFields reports whether the patch touches a field frozen by
// the base cost lock: cost, fleet or route.
func (c *JobChanges) TouchesLockedFields() bool {
	return c.Cost != nil || c.TouchesFleet() || c.TouchesRoute()
}

// TouchesSensitiveFields reports whether the patch touches a field whose
// change on a dispatched job always demands a justification.
func (c *JobChanges) TouchesSensitiveFields() bool {
	return c.Subcontractor != nil || c.TruckType != nil || c.LicensePlate != nil ||
		c.Origin != nil || c.Destination != nil || c.Cost != nil
}

// Apply writes the patch onto job in place.
func (c *JobChanges) Apply(job *domain.Job) {
	if c.Origin != nil {
		job.Origin = *c.Origin
	}
	if c.Destination != nil {
		job.Destination = *c.Destination
	}
	if c.Drops != nil {
		job.Drops = append([]domain.Drop(nil), (*c.Drops)...)
	}
	if c.Subcontractor != nil {
		job.Subcontractor = *c.Subcontractor
	}
	if c.TruckType != nil {
		job.TruckType = *c.TruckType
	}
	if c.DriverName != nil {
		job.DriverName = *c.DriverName
	}
	if c.DriverPhone != nil {
		job.DriverPhone = *c.DriverPhone
	}
	if c.LicensePlate != nil {
		job.LicensePlate = *c.LicensePlate
	}
	if c.Cost != nil {
		job.Cost = *c.Cost
	}
	if c.SellingPrice != nil {
		job.SellingPrice = *c.SellingPrice
	}
	if c.ExtraCharge != nil {
		job.ExtraCharge = *c.ExtraCharge
	}
	if c.Status != nil {
		job.Status = *c.Status
	}
	if c.AccountingStatus != nil {
		job.AccountingStatus = *c.AccountingStatus
	}
	if c.AccountingRemark != nil {
		job.AccountingRemark = *c.AccountingRemark
	}
	if c.ProofOfDeliveryRefs != nil {
		job.ProofOfDeliveryRefs = append([]string(nil), (*c.ProofOfDeliveryRefs)...)
	}
	if c.DateOfService != nil {
		job.DateOfService = *c.DateOfService
	}
	if c.ActualArrivalTime != nil {
		job.ActualArrivalTime = *c.ActualArrivalTime
	}
	if c.BillingDate != nil {
		job.BillingDate = *c.BillingDate
	}
}
