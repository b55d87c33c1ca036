package mail

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"launchquote/internal/domain/pricing"
	"launchquote/internal/pkg/response"
	"launchquote/internal/pkg/validator"
)

const missingFieldsMessage = "Missing required form data."

// Handler handles email HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates mail handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// SendConfirmation handles POST /api/send-confirmation
func (h *Handler) SendConfirmation(c *gin.Context) {
	var req ConfirmationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "MISSING_FIELDS", missingFieldsMessage, errs)
		return
	}

	pkg, err := h.service.Price(req.FullName, req.FinalPackage)
	if err != nil {
		writeClientError(c, err)
		return
	}

	err = h.service.SendConfirmation(c.Request.Context(), Confirmation{
		FullName:         req.FullName,
		Email:            req.Email,
		Package:          pkg,
		ReferralCode:     req.ReferralCode,
		ConsultationTime: req.ConsultationTime,
	})
	if err != nil {
		if IsClientError(err) {
			writeClientError(c, err)
			return
		}
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "EMAIL_FAILED", err.Error())
		return
	}

	response.OK(c, "Emails sent successfully.")
}

// SendQuote handles POST /api/email
func (h *Handler) SendQuote(c *gin.Context) {
	var req QuoteEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "MISSING_FIELDS", missingFieldsMessage, errs)
		return
	}

	if err := h.service.SendQuote(c.Request.Context(), &req); err != nil {
		if IsClientError(err) {
			writeClientError(c, err)
			return
		}
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "EMAIL_FAILED", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "sent"})
}

func writeClientError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, pricing.ErrUnknownTier):
		response.Error(c, http.StatusBadRequest, "UNKNOWN_TIER", "Unknown tier")
	case errors.Is(err, pricing.ErrInvalidBillingCycle):
		response.Error(c, http.StatusBadRequest, "INVALID_BILLING_CYCLE", err.Error())
	default:
		response.Error(c, http.StatusBadRequest, "MISSING_FIELDS", missingFieldsMessage)
	}
}
