package lead

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"launchquote/internal/domain/pricing"
	"launchquote/internal/pkg/response"
	"launchquote/internal/pkg/validator"
)

// Handler handles lead HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates lead handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// SubmitLead handles POST /api/submit
func (h *Handler) SubmitLead(c *gin.Context) {
	var req SubmitLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid lead data", errs)
		return
	}

	lead, err := h.service.Submit(c.Request.Context(), &req, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		switch {
		case errors.Is(err, ErrUnknownTier):
			response.Error(c, http.StatusBadRequest, "UNKNOWN_TIER", "Unknown tier")
		case errors.Is(err, pricing.ErrInvalidBillingCycle):
			response.Error(c, http.StatusBadRequest, "INVALID_BILLING_CYCLE", err.Error())
		default:
			_ = c.Error(err)
			response.Error(c, http.StatusInternalServerError, "INSERT_FAILED", err.Error())
		}
		return
	}

	response.Success(c, http.StatusOK, "Success", lead)
}

// GetLead handles GET /api/admin/leads/:id
func (h *Handler) GetLead(c *gin.Context) {
	lead, err := h.service.GetByPublicID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrLeadNotFound) {
			response.Error(c, http.StatusNotFound, "LEAD_NOT_FOUND", "Lead not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	response.Success(c, http.StatusOK, "Success", lead)
}

// ListLeads handles GET /api/admin/leads
func (h *Handler) ListLeads(c *gin.Context) {
	filter := ListFilter{
		Tier:   c.Query("tier"),
		Source: Source(c.Query("source")),
		Limit:  50,
	}

	if l := c.Query("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 && v <= 100 {
			filter.Limit = v
		}
	}

	if o := c.Query("offset"); o != "" {
		if v, err := strconv.Atoi(o); err == nil && v >= 0 {
			filter.Offset = v
		}
	}

	leads, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	if leads == nil {
		leads = []Lead{}
	}

	response.Success(c, http.StatusOK, "Success", LeadListResponse{Leads: leads, Total: total})
}

// GetStats handles GET /api/admin/leads/stats
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	response.Success(c, http.StatusOK, "Success", stats)
}
