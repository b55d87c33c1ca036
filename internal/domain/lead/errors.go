package lead

import "errors"

var (
	ErrLeadNotFound = errors.New("lead not found")
	ErrUnknownTier  = errors.New("unknown tier")
	ErrInsertFailed = errors.New("failed to record lead")
)
