package lead

import (
	"time"

	"launchquote/internal/domain/pricing"
)

// SubmitLeadRequest is the body of POST /api/submit.
type SubmitLeadRequest struct {
	FullName      string `json:"fullName" validate:"notblank"`
	Email         string `json:"email" validate:"notblank,emailshape"`
	ContactNumber string `json:"contactNumber" validate:"notblank,phone"`

	// Tier and AddOns accept bare ids or catalog objects.
	Tier         pricing.TierRef   `json:"tier" validate:"required"`
	AddOns       pricing.AddOnRefs `json:"addOns"`
	BillingCycle string            `json:"billingCycle"`
	IsRush       bool              `json:"isRush"`

	ConsultationTimestamp *time.Time `json:"consultation_timestamp"`
}

// RecordInput is a validated lead ready to persist.
type RecordInput struct {
	FullName              string
	Email                 string
	ContactNumber         string
	Package               *pricing.FinalPackage
	ConsultationTimestamp *time.Time
	Source                Source
	IPAddress             string
	UserAgent             string
}

// ListFilter narrows the admin listing.
type ListFilter struct {
	Tier   string
	Source Source
	Limit  int
	Offset int
}

// LeadListResponse represents paginated list
type LeadListResponse struct {
	Leads []Lead `json:"leads"`
	Total int64  `json:"total"`
}

// StatsResponse counts leads per tier.
type StatsResponse struct {
	Total  int64            `json:"total"`
	ByTier map[string]int64 `json:"byTier"`
}
