package wizard

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"launchquote/internal/domain/pricing"
	"launchquote/internal/domain/submission"
	"launchquote/internal/pkg/logger"
	"launchquote/internal/pkg/response"
)

// submitTimeout bounds a submission detached from its request.
const submitTimeout = 30 * time.Second

// Handler exposes wizard sessions over HTTP
type Handler struct {
	store     *Store
	submitter Submitter
	lggr      logger.Logger
	now       func() time.Time
}

// NewHandler creates wizard handler
func NewHandler(store *Store, submitter Submitter, lggr logger.Logger) *Handler {
	return &Handler{store: store, submitter: submitter, lggr: lggr.Named("wizard"), now: time.Now}
}

type addOnRequest struct {
	Selected *bool `json:"selected"`
}

// CreateSession handles POST /api/wizard/sessions
func (h *Handler) CreateSession(c *gin.Context) {
	response.Success(c, http.StatusCreated, "Success", h.store.Create())
}

// GetSession handles GET /api/wizard/sessions/:id
func (h *Handler) GetSession(c *gin.Context) {
	view, err := h.store.Get(c.Param("id"))
	if err != nil {
		writeError(c, err, nil)
		return
	}
	response.Success(c, http.StatusOK, "Success", view)
}

// UpdateFields handles PATCH /api/wizard/sessions/:id/fields. The body maps
// field names to strings or booleans.
func (h *Handler) UpdateFields(c *gin.Context) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	names := make([]string, 0, len(body))
	for name := range body {
		names = append(names, name)
	}
	sort.Strings(names)

	var view View
	err := h.store.Update(c.Param("id"), func(sess *Session) error {
		for _, name := range names {
			value, err := fieldValue(body[name])
			if err != nil {
				return fmt.Errorf("%w: %s", err, name)
			}
			if err := sess.SetField(Field(name), value); err != nil {
				return err
			}
		}
		view = sess.View()
		return nil
	})
	if err != nil {
		writeError(c, err, nil)
		return
	}
	response.Success(c, http.StatusOK, "Success", view)
}

// ToggleAddOn handles POST /api/wizard/sessions/:id/addons/:addonId
func (h *Handler) ToggleAddOn(c *gin.Context) {
	var req addOnRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Selected == nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", `Body must be {"selected": true|false}`)
		return
	}

	var view View
	err := h.store.Update(c.Param("id"), func(sess *Session) error {
		if err := sess.ToggleAddOn(c.Param("addonId"), *req.Selected); err != nil {
			return err
		}
		view = sess.View()
		return nil
	})
	if err != nil {
		writeError(c, err, nil)
		return
	}
	response.Success(c, http.StatusOK, "Success", view)
}

// Dispatch handles POST /api/wizard/sessions/:id/actions/:action. Submitting
// actions advance the session first, then run the submission outside the
// store lock and record its outcome.
func (h *Handler) Dispatch(c *gin.Context) {
	action, err := ParseAction(c.Param("action"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "UNKNOWN_ACTION", err.Error())
		return
	}

	id := c.Param("id")
	var (
		view   View
		effect Effect
		req    submission.Request
		ticket submitTicket
	)
	err = h.store.Update(id, func(sess *Session) error {
		defer func() { view = sess.View() }()

		eff, err := sess.Dispatch(action)
		if err != nil {
			return err
		}
		effect = eff
		if eff.Submit {
			ticket = sess.ticket()
			req, err = sess.SubmissionRequest(eff.Source)
		}
		return err
	})
	if err != nil {
		writeError(c, err, view.Errors)
		return
	}

	if effect.Submit {
		req.IPAddress = c.ClientIP()
		req.UserAgent = c.Request.UserAgent()
		// The session already shows the confirmation step, so the lead is
		// saved even if the visitor disconnects.
		ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request.Context()), submitTimeout)
		outcome := h.submitter.Submit(ctx, req)
		cancel()
		if outcome.Status != submission.StatusCompleted {
			h.lggr.Warnw("Wizard submission incomplete", "session_id", id, "status", outcome.Status, "err", outcome.Err)
		}

		err = h.store.Update(id, func(sess *Session) error {
			defer func() { view = sess.View() }()
			if !sess.awaiting(ticket) {
				h.lggr.Infow("Wizard session moved on before submission finished", "session_id", id, "status", outcome.Status)
				return nil
			}
			sess.RecordOutcome(outcome, h.now())
			return nil
		})
		if err != nil {
			writeError(c, err, nil)
			return
		}
	}

	response.Success(c, http.StatusOK, "Success", view)
}

// Slots handles GET /api/wizard/sessions/:id/slots?date=YYYY-MM-DD&tz=Area/City
func (h *Handler) Slots(c *gin.Context) {
	if _, err := h.store.Get(c.Param("id")); err != nil {
		writeError(c, err, nil)
		return
	}

	var loc *time.Location
	if tz := strings.TrimSpace(c.Query("tz")); tz != "" {
		l, err := time.LoadLocation(tz)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "INVALID_TIMEZONE", "Unknown time zone")
			return
		}
		loc = l
	}

	slots, err := AvailableSlots(c.Query("date"), h.now(), loc)
	if err != nil {
		writeError(c, err, nil)
		return
	}
	response.Success(c, http.StatusOK, "Success", slots)
}

func fieldValue(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	case bool:
		if val {
			return "true", nil
		}
		return "false", nil
	default:
		return "", ErrInvalidValue
	}
}

func writeError(c *gin.Context, err error, fieldErrors map[Field]string) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		response.Error(c, http.StatusNotFound, "SESSION_NOT_FOUND", "Wizard session not found")
	case errors.Is(err, ErrValidation), errors.Is(err, ErrConsultationTimeRequired):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), fieldErrors)
	case errors.Is(err, ErrInvalidTransition), errors.Is(err, ErrQuoteBasedTier):
		response.Error(c, http.StatusConflict, "INVALID_TRANSITION", err.Error())
	case errors.Is(err, pricing.ErrUnknownTier):
		response.Error(c, http.StatusBadRequest, "UNKNOWN_TIER", "Unknown tier")
	case errors.Is(err, ErrUnknownAddOn):
		response.Error(c, http.StatusBadRequest, "UNKNOWN_ADDON", err.Error())
	case errors.Is(err, ErrUnknownField),
		errors.Is(err, ErrInvalidValue),
		errors.Is(err, ErrInvalidDate),
		errors.Is(err, ErrInvalidTime),
		errors.Is(err, pricing.ErrInvalidBillingCycle):
		response.Error(c, http.StatusBadRequest, "INVALID_FIELD", err.Error())
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
	}
}
