package pricing

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"launchquote/internal/pkg/response"
)

// QuoteRequest asks for a price without recording anything.
type QuoteRequest struct {
	FullName     string    `json:"fullName"`
	Tier         TierRef   `json:"tier"`
	AddOns       AddOnRefs `json:"addOns"`
	BillingCycle string    `json:"billingCycle"`
	IsRush       bool      `json:"isRush"`
}

// Handler handles pricing HTTP requests
type Handler struct {
	calc *Calculator
}

// NewHandler creates pricing handler
func NewHandler(calc *Calculator) *Handler {
	return &Handler{calc: calc}
}

// GetCatalog handles GET /api/pricing
func (h *Handler) GetCatalog(c *gin.Context) {
	response.Success(c, http.StatusOK, "Success", h.calc.Catalog())
}

// Quote handles POST /api/pricing/quote
func (h *Handler) Quote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	pkg, err := h.calc.Calculate(Input{
		FullName:     req.FullName,
		TierID:       req.Tier.String(),
		AddOnIDs:     req.AddOns,
		BillingCycle: BillingCycle(req.BillingCycle),
		IsRush:       req.IsRush,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrUnknownTier):
			response.Error(c, http.StatusBadRequest, "UNKNOWN_TIER", "Unknown tier")
		case errors.Is(err, ErrInvalidBillingCycle):
			response.Error(c, http.StatusBadRequest, "INVALID_BILLING_CYCLE", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		}
		return
	}

	response.Success(c, http.StatusOK, "Success", pkg)
}
