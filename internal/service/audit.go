package service

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"haulage/internal/domain"
)

// Audit field labels. These are the canonical names compliance views and
// tamper-detection hashes key on; changing one is a breaking change.
const (
	AuditFieldStatus        = "Status"
	AuditFieldAssignment    = "Assignment"
	AuditFieldSubcontractor = "Subcontractor"
	AuditFieldTruckType     = "Truck Type"
	AuditFieldLicensePlate  = "License Plate"
	AuditFieldOrigin        = "Origin"
	AuditFieldDestination   = "Destination"
	AuditFieldCost          = "Cost (Price)"
	AuditFieldExtraCharge   = "Extra Charge"
	AuditFieldPriceOverride = "Price Override"
	AuditFieldAdminOverride = "Admin Override"
)

// FormatAmount renders an amount in canonical decimal form so audit values
// are diff-stable and safe to hash.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// DiffJobs derives the audit entries for a committed mutation by comparing
// the two job snapshots field by field over a fixed allow-list. Fields
// outside the list never produce entries. The diff is deterministic;
// retried commits are deduplicated upstream by idempotency key so the log
// never records a change twice.
//
// The very first assignment collapses the subcontractor and truck type
// changes into one synthetic Assignment entry ("Unassigned" before), with
// the cost recorded as a Cost (Price) entry from "0".
func DiffJobs(oldJob, newJob *domain.Job, actorID string, role domain.Role, reason string, now time.Time) []domain.AuditEntry {
	var entries []domain.AuditEntry

	add := func(field, oldValue, newValue string) {
		entries = append(entries, domain.AuditEntry{
			ID:        uuid.New().String(),
			JobID:     newJob.ID,
			UserID:    actorID,
			UserRole:  role,
			Timestamp: now,
			Field:     field,
			OldValue:  oldValue,
			NewValue:  newValue,
			Reason:    reason,
		})
	}

	firstAssignment := newJob.Status == domain.StatusAssigned &&
		(oldJob.Status == domain.StatusNewRequest || oldJob.Status == domain.StatusPendingPricing)

	if oldJob.Status != newJob.Status {
		add(AuditFieldStatus, string(oldJob.Status), string(newJob.Status))
	}

	if firstAssignment {
		add(AuditFieldAssignment, "Unassigned",
			fmt.Sprintf("%s (%s)", newJob.Subcontractor, newJob.TruckType))
	} else {
		if oldJob.Subcontractor != newJob.Subcontractor {
			add(AuditFieldSubcontractor, oldJob.Subcontractor, newJob.Subcontractor)
		}
		if oldJob.TruckType != newJob.TruckType {
			add(AuditFieldTruckType, oldJob.TruckType, newJob.TruckType)
		}
	}

	if oldJob.LicensePlate != newJob.LicensePlate {
		add(AuditFieldLicensePlate, oldJob.LicensePlate, newJob.LicensePlate)
	}
	if oldJob.Origin != newJob.Origin {
		add(AuditFieldOrigin, oldJob.Origin, newJob.Origin)
	}
	if oldJob.Destination != newJob.Destination {
		add(AuditFieldDestination, oldJob.Destination, newJob.Destination)
	}
	if oldJob.Cost != newJob.Cost {
		add(AuditFieldCost, FormatAmount(oldJob.Cost), FormatAmount(newJob.Cost))
	}
	if oldJob.ExtraCharge != newJob.ExtraCharge {
		add(AuditFieldExtraCharge, FormatAmount(oldJob.ExtraCharge), FormatAmount(newJob.ExtraCharge))
	}

	return entries
}

// AdminOverrideEntry records that an admin pushed a change through the base
// cost lock. The accompanying field entries record what changed; this entry
// marks that the lock was bypassed to do it, so locked-field changes stay
// distinguishable from ordinary reasoned edits.
func AdminOverrideEntry(job *domain.Job, actorID string, role domain.Role, reason string, now time.Time) domain.AuditEntry {
	return domain.AuditEntry{
		ID:        uuid.New().String(),
		JobID:     job.ID,
		UserID:    actorID,
		UserRole:  role,
		Timestamp: now,
		Field:     AuditFieldAdminOverride,
		OldValue:  "Locked",
		NewValue:  "Overridden",
		Reason:    reason,
	}
}

// PriceOverrideEntry records that the committed cost departed from the
// contract price. It preserves the negotiation narrative separately from the
// raw before/after cost change: old value is what the contract said, new
// value is what was agreed.
func PriceOverrideEntry(job *domain.Job, contractCost float64, actorID string, role domain.Role, reason string, now time.Time) domain.AuditEntry {
	return domain.AuditEntry{
		ID:        uuid.New().String(),
		JobID:     job.ID,
		UserID:    actorID,
		UserRole:  role,
		Timestamp: now,
		Field:     AuditFieldPriceOverride,
		OldValue:  FormatAmount(contractCost),
		NewValue:  FormatAmount(job.Cost),
		Reason:    reason,
	}
}
