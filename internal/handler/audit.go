package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"haulage/internal/domain"
	"haulage/internal/repository"
)

// AuditHandler handles HTTP requests for the audit log.
type AuditHandler struct {
	auditRepo repository.AuditRepository
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(auditRepo repository.AuditRepository) *AuditHandler {
	return &AuditHandler{auditRepo: auditRepo}
}

// AuditEntryResponse is the HTTP representation of one audit entry.
type AuditEntryResponse struct {
	ID        string `json:"id"`
	JobID     string `json:"job_id"`
	UserID    string `json:"user_id"`
	UserRole  string `json:"user_role"`
	Timestamp string `json:"timestamp"`
	Field     string `json:"field"`
	OldValue  string `json:"old_value"`
	NewValue  string `json:"new_value"`
	Reason    string `json:"reason,omitempty"`
}

// ListByJob handles GET /v1/jobs/:id/audit
func (h *AuditHandler) ListByJob(c *gin.Context) {
	entries, err := h.auditRepo.ListByJobID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]AuditEntryResponse, 0, len(entries))
	for _, e := range entries {
		response = append(response, auditEntryToResponse(e))
	}

	c.JSON(http.StatusOK, response)
}

func auditEntryToResponse(e domain.AuditEntry) AuditEntryResponse {
	return AuditEntryResponse{
		ID:        e.ID,
		JobID:     e.JobID,
		UserID:    e.UserID,
		UserRole:  string(e.UserRole),
		Timestamp: e.Timestamp.Format(time.RFC3339),
		Field:     e.Field,
		OldValue:  e.OldValue,
		NewValue:  e.NewValue,
		Reason:    e.Reason,
	}
}
