package wizard

import "errors"

var (
	ErrSessionNotFound          = errors.New("wizard session not found")
	ErrInvalidTransition        = errors.New("action not available on this step")
	ErrUnknownAction            = errors.New("unknown action")
	ErrUnknownStep              = errors.New("unknown step")
	ErrUnknownField             = errors.New("unknown field")
	ErrUnknownAddOn             = errors.New("unknown add-on")
	ErrValidation               = errors.New("step has invalid fields")
	ErrQuoteBasedTier           = errors.New("tier is priced after a consultation")
	ErrConsultationTimeRequired = errors.New("consultation time is required")
	ErrInvalidDate              = errors.New("date must be YYYY-MM-DD")
	ErrInvalidTime              = errors.New("time must be RFC 3339")
	ErrInvalidValue             = errors.New("invalid field value")
)
