package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"haulage/internal/domain"
	"haulage/internal/service"
)

// JobHandler handles HTTP requests for jobs.
type JobHandler struct {
	jobService      *service.JobService
	mutationService *service.MutationService
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(jobService *service.JobService, mutationService *service.MutationService) *JobHandler {
	return &JobHandler{
		jobService:      jobService,
		mutationService: mutationService,
	}
}

// DropRequest is the HTTP representation of a drop.
type DropRequest struct {
	Location           string `json:"location"`
	Status             string `json:"status,omitempty"`
	ProofOfDeliveryRef string `json:"proof_of_delivery_ref,omitempty"`
}

// CreateJobRequest is the HTTP request body for booking a job.
type CreateJobRequest struct {
	Origin        string        `json:"origin"`
	Destination   string        `json:"destination"`
	Drops         []DropRequest `json:"drops,omitempty"`
	DateOfService string        `json:"date_of_service,omitempty"` // RFC 3339
	SellingPrice  float64       `json:"selling_price,omitempty"`
}

// ActorRequest carries mutation attribution, embedded in every mutating
// request body.
type ActorRequest struct {
	BaseVersion int64  `json:"base_version"`
	ActorID     string `json:"actor_id"`
	ActorRole   string `json:"actor_role"`
	Reason      string `json:"reason,omitempty"`
}

// ChangesRequest is the HTTP representation of a sparse job patch.
type ChangesRequest struct {
	Origin      *string        `json:"origin,omitempty"`
	Destination *string        `json:"destination,omitempty"`
	Drops       *[]DropRequest `json:"drops,omitempty"`

	Subcontractor *string `json:"subcontractor,omitempty"`
	TruckType     *string `json:"truck_type,omitempty"`
	DriverName    *string `json:"driver_name,omitempty"`
	DriverPhone   *string `json:"driver_phone,omitempty"`
	LicensePlate  *string `json:"license_plate,omitempty"`

	Cost         *float64 `json:"cost,omitempty"`
	SellingPrice *float64 `json:"selling_price,omitempty"`
	ExtraCharge  *float64 `json:"extra_charge,omitempty"`

	Status           *string `json:"status,omitempty"`
	AccountingStatus *string `json:"accounting_status,omitempty"`
	AccountingRemark *string `json:"accounting_remark,omitempty"`

	ProofOfDeliveryRefs *[]string `json:"proof_of_delivery_refs,omitempty"`

	DateOfService     *string `json:"date_of_service,omitempty"`     // RFC 3339
	ActualArrivalTime *string `json:"actual_arrival_time,omitempty"` // RFC 3339
	BillingDate       *string `json:"billing_date,omitempty"`        // RFC 3339
}

// MutationRequest is the HTTP request body for a generic proposed mutation.
type MutationRequest struct {
	ActorRequest
	Changes ChangesRequest `json:"changes"`
}

// AssignRequest is the HTTP request body for assigning fleet to a job.
type AssignRequest struct {
	ActorRequest
	Subcontractor string  `json:"subcontractor"`
	TruckType     string  `json:"truck_type"`
	DriverName    string  `json:"driver_name"`
	DriverPhone   string  `json:"driver_phone"`
	LicensePlate  string  `json:"license_plate"`
	Cost          float64 `json:"cost"`
	SellingPrice  float64 `json:"selling_price,omitempty"`
	ExtraCharge   float64 `json:"extra_charge,omitempty"`
}

// CompleteRequest is the HTTP request body for confirming delivery.
type CompleteRequest struct {
	ActorRequest
	ActualArrivalTime   string        `json:"actual_arrival_time"` // RFC 3339
	ProofOfDeliveryRefs []string      `json:"proof_of_delivery_refs,omitempty"`
	Drops               []DropRequest `json:"drops,omitempty"`
}

// CancelRequest is the HTTP request body for cancelling a job.
type CancelRequest struct {
	ActorRequest
}

// ReviewRequest is the HTTP request body for an accounting verdict.
type ReviewRequest struct {
	ActorRequest
	AccountingStatus string `json:"accounting_status"`
	AccountingRemark string `json:"accounting_remark,omitempty"`
}

// JobResponse is the HTTP representation of a job.
type JobResponse struct {
	ID      string `json:"id"`
	Version int64  `json:"version"`

	Origin      string         `json:"origin"`
	Destination string         `json:"destination"`
	Drops       []DropResponse `json:"drops,omitempty"`

	Subcontractor string `json:"subcontractor,omitempty"`
	TruckType     string `json:"truck_type,omitempty"`
	DriverName    string `json:"driver_name,omitempty"`
	DriverPhone   string `json:"driver_phone,omitempty"`
	LicensePlate  string `json:"license_plate,omitempty"`

	Cost         float64 `json:"cost"`
	SellingPrice float64 `json:"selling_price"`
	ExtraCharge  float64 `json:"extra_charge"`

	Status           string `json:"status"`
	AccountingStatus string `json:"accounting_status,omitempty"`
	IsBaseCostLocked bool   `json:"is_base_cost_locked"`
	AccountingRemark string `json:"accounting_remark,omitempty"`

	ProofOfDeliveryRefs []string `json:"proof_of_delivery_refs,omitempty"`
	CancelReason        string   `json:"cancel_reason,omitempty"`

	CreatedAt         string `json:"created_at"`
	DateOfService     string `json:"date_of_service,omitempty"`
	ActualArrivalTime string `json:"actual_arrival_time,omitempty"`
	BillingDate       string `json:"billing_date,omitempty"`
}

// DropResponse is the HTTP representation of a drop.
type DropResponse struct {
	Location           string `json:"location"`
	Status             string `json:"status"`
	ProofOfDeliveryRef string `json:"proof_of_delivery_ref,omitempty"`
	CompletedAt        string `json:"completed_at,omitempty"`
}

// MutationResponse is the HTTP response for a committed mutation.
type MutationResponse struct {
	Job          JobResponse          `json:"job"`
	AuditEntries []AuditEntryResponse `json:"audit_entries"`
}

// CreateJob handles POST /v1/jobs
func (h *JobHandler) CreateJob(c *gin.Context) {
	var req CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	dateOfService, ok := parseOptionalTime(c, req.DateOfService, "date_of_service")
	if !ok {
		return
	}

	job, err := h.jobService.CreateJob(c.Request.Context(), service.CreateJobRequest{
		Origin:        req.Origin,
		Destination:   req.Destination,
		Drops:         dropsFromRequest(req.Drops),
		DateOfService: dateOfService,
		SellingPrice:  req.SellingPrice,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, jobToResponse(job))
}

// GetJob handles GET /v1/jobs/:id
func (h *JobHandler) GetJob(c *gin.Context) {
	job, err := h.jobService.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, jobToResponse(job))
}

// GetAll handles GET /v1/jobs
func (h *JobHandler) GetAll(c *gin.Context) {
	jobs, err := h.jobService.ListJobs(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]JobResponse, 0, len(jobs))
	for _, j := range jobs {
		response = append(response, jobToResponse(j))
	}

	c.JSON(http.StatusOK, response)
}

// ProposeMutation handles POST /v1/jobs/:id/mutations
func (h *JobHandler) ProposeMutation(c *gin.Context) {
	var req MutationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	changes, ok := changesFromRequest(c, &req.Changes)
	if !ok {
		return
	}

	h.propose(c, req.ActorRequest, changes)
}

// AssignJob handles POST /v1/jobs/:id/assign
func (h *JobHandler) AssignJob(c *gin.Context) {
	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	status := domain.StatusAssigned
	changes := service.JobChanges{
		Subcontractor: &req.Subcontractor,
		TruckType:     &req.TruckType,
		DriverName:    &req.DriverName,
		DriverPhone:   &req.DriverPhone,
		LicensePlate:  &req.LicensePlate,
		Cost:          &req.Cost,
		Status:        &status,
	}
	if req.SellingPrice != 0 {
		changes.SellingPrice = &req.SellingPrice
	}
	if req.ExtraCharge != 0 {
		changes.ExtraCharge = &req.ExtraCharge
	}

	h.propose(c, req.ActorRequest, changes)
}

// CompleteJob handles POST /v1/jobs/:id/complete
func (h *JobHandler) CompleteJob(c *gin.Context) {
	var req CompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	arrival, ok := parseOptionalTime(c, req.ActualArrivalTime, "actual_arrival_time")
	if !ok {
		return
	}

	status := domain.StatusCompleted
	changes := service.JobChanges{Status: &status}
	if !arrival.IsZero() {
		changes.ActualArrivalTime = &arrival
	}
	if req.ProofOfDeliveryRefs != nil {
		changes.ProofOfDeliveryRefs = &req.ProofOfDeliveryRefs
	}
	if req.Drops != nil {
		drops := dropsFromRequest(req.Drops)
		changes.Drops = &drops
	}

	h.propose(c, req.ActorRequest, changes)
}

// CancelJob handles POST /v1/jobs/:id/cancel
func (h *JobHandler) CancelJob(c *gin.Context) {
	var req CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	status := domain.StatusCancelled
	h.propose(c, req.ActorRequest, service.JobChanges{Status: &status})
}

// ReviewJob handles POST /v1/jobs/:id/review
func (h *JobHandler) ReviewJob(c *gin.Context) {
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	accountingStatus := domain.AccountingStatus(req.AccountingStatus)
	changes := service.JobChanges{AccountingStatus: &accountingStatus}
	if req.AccountingRemark != "" {
		changes.AccountingRemark = &req.AccountingRemark
	}

	h.propose(c, req.ActorRequest, changes)
}

// propose runs a change-set through the orchestrator and writes the result.
func (h *JobHandler) propose(c *gin.Context, actor ActorRequest, changes service.JobChanges) {
	result, err := h.mutationService.ProposeMutation(c.Request.Context(), service.ProposeMutationRequest{
		JobID:       c.Param("id"),
		BaseVersion: actor.BaseVersion,
		Changes:     changes,
		ActorID:     actor.ActorID,
		ActorRole:   domain.Role(actor.ActorRole),
		Reason:      actor.Reason,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	// The stored job changed; drop the stale cached copy.
	h.jobService.InvalidateJob(c.Request.Context(), result.Job.ID)

	entries := make([]AuditEntryResponse, 0, len(result.AuditEntries))
	for _, e := range result.AuditEntries {
		entries = append(entries, auditEntryToResponse(e))
	}

	respondJSON(c, http.StatusOK, MutationResponse{
		Job:          jobToResponse(result.Job),
		AuditEntries: entries,
	})
}

func dropsFromRequest(in []DropRequest) []domain.Drop {
	drops := make([]domain.Drop, 0, len(in))
	for _, d := range in {
		status := domain.DropStatus(d.Status)
		if status == "" {
			status = domain.DropStatusPending
		}
		drops = append(drops, domain.Drop{
			Location:           d.Location,
			Status:             status,
			ProofOfDeliveryRef: d.ProofOfDeliveryRef,
		})
	}
	return drops
}

// changesFromRequest converts the wire patch into the service patch,
// responding with 400 on malformed timestamps. The second return value is
// false when a response has already been written.
func changesFromRequest(c *gin.Context, in *ChangesRequest) (service.JobChanges, bool) {
	var out service.JobChanges

	out.Origin = in.Origin
	out.Destination = in.Destination
	if in.Drops != nil {
		drops := dropsFromRequest(*in.Drops)
		out.Drops = &drops
	}
	out.Subcontractor = in.Subcontractor
	out.TruckType = in.TruckType
	out.DriverName = in.DriverName
	out.DriverPhone = in.DriverPhone
	out.LicensePlate = in.LicensePlate
	out.Cost = in.Cost
	out.SellingPrice = in.SellingPrice
	out.ExtraCharge = in.ExtraCharge
	if in.Status != nil {
		status := domain.OperationalStatus(*in.Status)
		out.Status = &status
	}
	if in.AccountingStatus != nil {
		accountingStatus := domain.AccountingStatus(*in.AccountingStatus)
		out.AccountingStatus = &accountingStatus
	}
	out.AccountingRemark = in.AccountingRemark
	out.ProofOfDeliveryRefs = in.ProofOfDeliveryRefs

	for _, f := range []struct {
		name string
		in   *string
		out  **time.Time
	}{
		{"date_of_service", in.DateOfService, &out.DateOfService},
		{"actual_arrival_time", in.ActualArrivalTime, &out.ActualArrivalTime},
		{"billing_date", in.BillingDate, &out.BillingDate},
	} {
		if f.in == nil {
			continue
		}
		t, ok := parseOptionalTime(c, *f.in, f.name)
		if !ok {
			return service.JobChanges{}, false
		}
		*f.out = &t
	}

	return out, true
}

// parseOptionalTime parses an RFC 3339 timestamp, treating "" as unset. The
// second return value is false when a 400 has already been written.
func parseOptionalTime(c *gin.Context, value, field string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, true
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + field})
		return time.Time{}, false
	}
	return t, true
}

func jobToResponse(job *domain.Job) JobResponse {
	response := JobResponse{
		ID:                  job.ID,
		Version:             job.Version,
		Origin:              job.Origin,
		Destination:         job.Destination,
		Subcontractor:       job.Subcontractor,
		TruckType:           job.TruckType,
		DriverName:          job.DriverName,
		DriverPhone:         job.DriverPhone,
		LicensePlate:        job.LicensePlate,
		Cost:                job.Cost,
		SellingPrice:        job.SellingPrice,
		ExtraCharge:         job.ExtraCharge,
		Status:              string(job.Status),
		AccountingStatus:    string(job.AccountingStatus),
		IsBaseCostLocked:    job.IsBaseCostLocked,
		AccountingRemark:    job.AccountingRemark,
		ProofOfDeliveryRefs: job.ProofOfDeliveryRefs,
		CancelReason:        job.CancelReason,
		CreatedAt:           formatTime(job.CreatedAt),
		DateOfService:       formatTime(job.DateOfService),
		ActualArrivalTime:   formatTime(job.ActualArrivalTime),
		BillingDate:         formatTime(job.BillingDate),
	}

	for _, d := range job.Drops {
		response.Drops = append(response.Drops, DropResponse{
			Location:           d.Location,
			Status:             string(d.Status),
			ProofOfDeliveryRef: d.ProofOfDeliveryRef,
			CompletedAt:        formatTime(d.CompletedAt),
		})
	}

	return response
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
