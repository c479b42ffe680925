package tests

import (
	"errors"
	"testing"
	"time"

	"haulage/internal/domain"
	"haulage/internal/service"
)

// ──────────────────────────────────────────────
// 4. STATE MACHINE AND INVARIANTS
// ──────────────────────────────────────────────

func TestCanTransition_OperationalTable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		from    domain.OperationalStatus
		to      domain.OperationalStatus
		allowed bool
	}{
		{domain.StatusNewRequest, domain.StatusPendingPricing, true},
		{domain.StatusNewRequest, domain.StatusAssigned, true},
		{domain.StatusNewRequest, domain.StatusCancelled, true},
		{domain.StatusNewRequest, domain.StatusCompleted, false},
		{domain.StatusNewRequest, domain.StatusBilled, false},
		{domain.StatusPendingPricing, domain.StatusAssigned, true},
		{domain.StatusPendingPricing, domain.StatusCancelled, true},
		{domain.StatusPendingPricing, domain.StatusCompleted, false},
		{domain.StatusAssigned, domain.StatusCompleted, true},
		{domain.StatusAssigned, domain.StatusCancelled, true},
		{domain.StatusAssigned, domain.StatusBilled, false},
		{domain.StatusAssigned, domain.StatusNewRequest, false},
		{domain.StatusCompleted, domain.StatusBilled, true},
		{domain.StatusCompleted, domain.StatusCancelled, false},
		{domain.StatusCompleted, domain.StatusAssigned, false},
		{domain.StatusBilled, domain.StatusCancelled, false},
		{domain.StatusBilled, domain.StatusCompleted, false},
		{domain.StatusCancelled, domain.StatusNewRequest, false},
		{domain.StatusCancelled, domain.StatusAssigned, false},
	}

	for _, tt := range tests {
		got := service.CanTransition(tt.from, tt.to)
		if got != tt.allowed {
			t.Errorf("%s -> %s: expected %v, got %v", tt.from, tt.to, tt.allowed, got)
		}
	}
}

func TestValidateAssignment(t *testing.T) {
	t.Parallel()

	complete := func() *domain.Job {
		return &domain.Job{
			Subcontractor: "ThaiHaul Co",
			TruckType:     "10-wheel",
			DriverName:    "Somchai",
			DriverPhone:   "0812345678",
			LicensePlate:  "1กข-1234",
			Cost:          3000,
		}
	}

	if err := service.ValidateAssignment(complete()); err != nil {
		t.Errorf("expected complete assignment to validate, got %v", err)
	}

	missing := complete()
	missing.DriverPhone = ""
	if err := service.ValidateAssignment(missing); !errors.Is(err, service.ErrIncompleteFleet) {
		t.Errorf("expected ErrIncompleteFleet, got %v", err)
	}

	free := complete()
	free.Cost = 0
	if err := service.ValidateAssignment(free); !errors.Is(err, service.ErrInvalidCost) {
		t.Errorf("expected ErrInvalidCost for zero cost, got %v", err)
	}

	negative := complete()
	negative.Cost = -100
	if err := service.ValidateAssignment(negative); !errors.Is(err, service.ErrInvalidCost) {
		t.Errorf("expected ErrInvalidCost for negative cost, got %v", err)
	}
}

func TestValidateCompletion(t *testing.T) {
	t.Parallel()

	job := &domain.Job{
		ActualArrivalTime:   time.Now(),
		ProofOfDeliveryRefs: []string{"pod-001.jpg"},
	}
	if err := service.ValidateCompletion(job); err != nil {
		t.Errorf("expected completion to validate, got %v", err)
	}

	noArrival := &domain.Job{ProofOfDeliveryRefs: []string{"pod-001.jpg"}}
	if err := service.ValidateCompletion(noArrival); !errors.Is(err, service.ErrArrivalTimeRequired) {
		t.Errorf("expected ErrArrivalTimeRequired, got %v", err)
	}

	noPOD := &domain.Job{ActualArrivalTime: time.Now()}
	if err := service.ValidateCompletion(noPOD); !errors.Is(err, service.ErrProofOfDeliveryRequired) {
		t.Errorf("expected ErrProofOfDeliveryRequired, got %v", err)
	}

	// A drop-level proof satisfies the requirement too.
	dropPOD := &domain.Job{
		ActualArrivalTime: time.Now(),
		Drops: []domain.Drop{
			{Location: "Warehouse A", Status: domain.DropStatusCompleted, ProofOfDeliveryRef: "pod-002.jpg"},
		},
	}
	if err := service.ValidateCompletion(dropPOD); err != nil {
		t.Errorf("expected drop-level proof to validate, got %v", err)
	}
}

func TestValidateBilling(t *testing.T) {
	t.Parallel()

	approved := &domain.Job{AccountingStatus: domain.AccountingApproved}
	if err := service.ValidateBilling(approved); err != nil {
		t.Errorf("expected approved job to validate, got %v", err)
	}

	for _, status := range []domain.AccountingStatus{
		domain.AccountingUnset,
		domain.AccountingPendingReview,
		domain.AccountingRejected,
	} {
		job := &domain.Job{AccountingStatus: status}
		if err := service.ValidateBilling(job); !errors.Is(err, service.ErrBillingNotApproved) {
			t.Errorf("accounting %q: expected ErrBillingNotApproved, got %v", status, err)
		}
	}
}

func TestValidateAccountingChange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		jobStatus  domain.OperationalStatus
		acctStatus domain.AccountingStatus
		to         domain.AccountingStatus
		wantErr    bool
	}{
		{"approve pending review", domain.StatusCompleted, domain.AccountingPendingReview, domain.AccountingApproved, false},
		{"reject pending review on completed", domain.StatusCompleted, domain.AccountingPendingReview, domain.AccountingRejected, false},
		{"reject pending review on assigned", domain.StatusAssigned, domain.AccountingPendingReview, domain.AccountingRejected, false},
		{"reject on billed job", domain.StatusBilled, domain.AccountingPendingReview, domain.AccountingRejected, true},
		{"resubmit rejected", domain.StatusAssigned, domain.AccountingRejected, domain.AccountingPendingReview, false},
		{"pay approved on billed", domain.StatusBilled, domain.AccountingApproved, domain.AccountingPaid, false},
		{"pay approved before billing", domain.StatusCompleted, domain.AccountingApproved, domain.AccountingPaid, true},
		{"lock paid on billed", domain.StatusBilled, domain.AccountingPaid, domain.AccountingLocked, false},
		{"skip review straight to approved", domain.StatusCompleted, domain.AccountingUnset, domain.AccountingApproved, true},
		{"reopen locked", domain.StatusBilled, domain.AccountingLocked, domain.AccountingPendingReview, true},
		{"approve straight to paid", domain.StatusBilled, domain.AccountingPendingReview, domain.AccountingPaid, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			job := &domain.Job{Status: tt.jobStatus, AccountingStatus: tt.acctStatus}
			err := service.ValidateAccountingChange(job, tt.to)
			if tt.wantErr && !errors.Is(err, service.ErrInvalidAccountingTransition) {
				t.Errorf("expected ErrInvalidAccountingTransition, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestCheckInvariants(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		job     domain.Job
		wantErr bool
	}{
		{
			"fresh job",
			domain.Job{Status: domain.StatusNewRequest},
			false,
		},
		{
			"locked assigned job",
			domain.Job{Status: domain.StatusAssigned, IsBaseCostLocked: true},
			false,
		},
		{
			"locked before assignment",
			domain.Job{Status: domain.StatusNewRequest, IsBaseCostLocked: true},
			true,
		},
		{
			"locked pending pricing",
			domain.Job{Status: domain.StatusPendingPricing, IsBaseCostLocked: true},
			true,
		},
		{
			"paid on billed job",
			domain.Job{Status: domain.StatusBilled, AccountingStatus: domain.AccountingPaid, IsBaseCostLocked: true},
			false,
		},
		{
			"paid before billing",
			domain.Job{Status: domain.StatusCompleted, AccountingStatus: domain.AccountingPaid},
			true,
		},
		{
			"locked accounting before billing",
			domain.Job{Status: domain.StatusCompleted, AccountingStatus: domain.AccountingLocked},
			true,
		},
		{
			"rejected assigned job",
			domain.Job{Status: domain.StatusAssigned, AccountingStatus: domain.AccountingRejected, IsBaseCostLocked: true},
			false,
		},
		{
			"rejected on billed job",
			domain.Job{Status: domain.StatusBilled, AccountingStatus: domain.AccountingRejected},
			true,
		},
		{
			"rejected on cancelled job",
			domain.Job{Status: domain.StatusCancelled, AccountingStatus: domain.AccountingRejected},
			true,
		},
		{
			"unknown operational status",
			domain.Job{Status: domain.OperationalStatus("LOST")},
			true,
		},
		{
			"unknown accounting status",
			domain.Job{Status: domain.StatusAssigned, AccountingStatus: domain.AccountingStatus("MAYBE")},
			true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := service.CheckInvariants(&tt.job)
			if tt.wantErr && err == nil {
				t.Error("expected invariant violation")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if err != nil {
				var invErr *service.InvariantError
				if !errors.As(err, &invErr) {
					t.Errorf("expected InvariantError, got %T", err)
				}
			}
		})
	}
}
