package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"haulage/internal/repository"
	"haulage/internal/service"
)

// ErrorResponse represents an error response. Kind is set for policy
// denials so the caller can render a precise message.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	var denied *service.DeniedError
	if errors.As(err, &denied) {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: denied.Error(), Kind: string(denied.Kind)})
		return
	}

	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	var invariant *service.InvariantError

	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Concurrent modification - caller must re-fetch and retry
	case errors.Is(err, repository.ErrVersionConflict),
		errors.Is(err, service.ErrJobBusy):
		return http.StatusConflict

	// Validation errors - Bad Request, recoverable locally
	case errors.Is(err, service.ErrInvalidJobID),
		errors.Is(err, service.ErrInvalidActor),
		errors.Is(err, service.ErrInvalidOrigin),
		errors.Is(err, service.ErrInvalidDestination),
		errors.Is(err, service.ErrIncompleteFleet),
		errors.Is(err, service.ErrInvalidCost),
		errors.Is(err, service.ErrReasonRequired),
		errors.Is(err, service.ErrRemarkRequired),
		errors.Is(err, service.ErrArrivalTimeRequired),
		errors.Is(err, service.ErrProofOfDeliveryRequired),
		errors.Is(err, service.ErrNoChanges):
		return http.StatusBadRequest

	// Lifecycle rule violations
	case errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrInvalidAccountingTransition),
		errors.Is(err, service.ErrBillingNotApproved),
		errors.As(err, &invariant):
		return http.StatusConflict

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
