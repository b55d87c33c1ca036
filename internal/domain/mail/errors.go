package mail

import "errors"

var (
	ErrMissingFields = errors.New("missing required form data")
	ErrSendFailed    = errors.New("email sending failed")
)
