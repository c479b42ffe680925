package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"haulage/internal/service"
)

// PricingHandler handles HTTP requests for contract pricing.
type PricingHandler struct {
	pricingService *service.PricingService
}

// NewPricingHandler creates a new PricingHandler.
func NewPricingHandler(pricingService *service.PricingService) *PricingHandler {
	return &PricingHandler{pricingService: pricingService}
}

// QuoteRequest is the HTTP request body for a contract price quote.
type QuoteRequest struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	TruckType     string `json:"truck_type"`
	Subcontractor string `json:"subcontractor"`
	DropCount     int    `json:"drop_count"`
}

// QuoteResponse is the HTTP response for a contract price quote.
type QuoteResponse struct {
	Contracted bool    `json:"contracted"`
	Cost       float64 `json:"cost"`
	Revenue    float64 `json:"revenue"`
}

// MatrixEntryResponse is the HTTP representation of one contract rate.
type MatrixEntryResponse struct {
	Origin           string  `json:"origin"`
	Destination      string  `json:"destination"`
	TruckType        string  `json:"truck_type"`
	Subcontractor    string  `json:"subcontractor"`
	BasePrice        float64 `json:"base_price"`
	SellingBasePrice float64 `json:"selling_base_price"`
	DropOffFee       float64 `json:"drop_off_fee"`
}

// Quote handles POST /v1/pricing/quote. The UI calls this on every edit to
// drive live recalculation, so the path stays read-only and cheap.
func (h *PricingHandler) Quote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	quote, err := h.pricingService.Quote(c.Request.Context(), service.QuoteRequest{
		Origin:        req.Origin,
		Destination:   req.Destination,
		TruckType:     req.TruckType,
		Subcontractor: req.Subcontractor,
		DropCount:     req.DropCount,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, QuoteResponse{
		Contracted: quote.Contracted,
		Cost:       quote.Cost,
		Revenue:    quote.Revenue,
	})
}

// GetMatrix handles GET /v1/pricing/matrix
func (h *PricingHandler) GetMatrix(c *gin.Context) {
	entries, err := h.pricingService.Snapshot(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]MatrixEntryResponse, 0, len(entries))
	for _, e := range entries {
		response = append(response, MatrixEntryResponse{
			Origin:           e.Origin,
			Destination:      e.Destination,
			TruckType:        e.TruckType,
			Subcontractor:    e.Subcontractor,
			BasePrice:        e.BasePrice,
			SellingBasePrice: e.SellingBasePrice,
			DropOffFee:       e.DropOffFee,
		})
	}

	c.JSON(http.StatusOK, response)
}
