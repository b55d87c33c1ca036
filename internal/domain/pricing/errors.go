package pricing

import "errors"

var (
	ErrUnknownTier         = errors.New("unknown tier")
	ErrInvalidBillingCycle = errors.New("billing cycle must be monthly or annual")
	ErrInvalidCatalog      = errors.New("invalid pricing catalog")
	ErrInvalidReference    = errors.New("reference must be an id or an object with an id")
)
