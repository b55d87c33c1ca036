package mail

import (
	"time"

	"launchquote/internal/domain/pricing"
)

// PackageRef is the client's view of the chosen package. Only the
// selections are read; prices are recomputed from the catalog.
type PackageRef struct {
	Tier         pricing.TierRef   `json:"tier"`
	AddOns       pricing.AddOnRefs `json:"addOns"`
	BillingCycle string            `json:"billingCycle"`
	IsRush       bool              `json:"isRush"`
}

// ConfirmationRequest is the body of POST /api/send-confirmation.
type ConfirmationRequest struct {
	FullName         string      `json:"fullName" validate:"notblank"`
	Email            string      `json:"email" validate:"notblank,emailshape"`
	FinalPackage     *PackageRef `json:"finalPackage" validate:"required"`
	ReferralCode     string      `json:"referralCode"`
	ConsultationTime *time.Time  `json:"consultationTime"`
}

// QuoteEmailRequest is the body of the legacy POST /api/email. When
// quoteSummary is empty the summary is rendered from finalPackage.
type QuoteEmailRequest struct {
	Email        string      `json:"email" validate:"notblank,emailshape"`
	FullName     string      `json:"fullName" validate:"notblank"`
	QuoteSummary string      `json:"quoteSummary"`
	FinalPackage *PackageRef `json:"finalPackage"`
}

// Confirmation is a priced lead ready to be emailed.
type Confirmation struct {
	FullName         string
	Email            string
	Package          *pricing.FinalPackage
	ReferralCode     string
	ConsultationTime *time.Time
}
