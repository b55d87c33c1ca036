package wizard

import (
	"launchquote/internal/domain/pricing"
)

// StepID names a wizard step.
type StepID string

const (
	StepWelcome              StepID = "welcome"
	StepFullName             StepID = "fullName"
	StepEmail                StepID = "email"
	StepContactNumber        StepID = "contactNumber"
	StepTier                 StepID = "tier"
	StepAddOns               StepID = "addOns"
	StepBilling              StepID = "billing"
	StepSummary              StepID = "summary"
	StepResults              StepID = "results"
	StepAvailNow             StepID = "availNow"
	StepScheduleForm         StepID = "scheduleForm"
	StepScheduleConfirmation StepID = "scheduleConfirmation"
)

// StepKind tags a step with the role it plays in the flow.
type StepKind string

const (
	KindIntro        StepKind = "intro"
	KindInput        StepKind = "input"
	KindSingleChoice StepKind = "singleChoice"
	KindMultiChoice  StepKind = "multiChoice"
	KindOptions      StepKind = "options"
	KindSummary      StepKind = "summary"
	KindResults      StepKind = "results"
	KindConfirmation StepKind = "confirmation"
	KindScheduling   StepKind = "scheduling"
)

// Option is one selectable value of a choice step.
type Option struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
	Price       int64  `json:"price,omitempty"`
}

// Step describes one screen of the wizard.
type Step struct {
	ID          StepID   `json:"id"`
	Kind        StepKind `json:"kind"`
	Field       Field    `json:"field,omitempty"`
	Required    bool     `json:"required,omitempty"`
	Title       string   `json:"title"`
	Subtitle    string   `json:"subtitle,omitempty"`
	Placeholder string   `json:"placeholder,omitempty"`
	Message     string   `json:"message,omitempty"`
	Options     []Option `json:"options,omitempty"`
}

// Terminal reports whether only "start over" leaves the step.
func (s Step) Terminal() bool {
	return s.Kind == KindConfirmation
}

// Personalized reports whether the title is prefixed with the visitor's
// first name once it is known.
func (s Step) Personalized() bool {
	switch s.Kind {
	case KindInput, KindSingleChoice, KindMultiChoice, KindOptions:
		return true
	}
	return false
}

// DefaultSteps builds the ordered step list for catalog.
func DefaultSteps(catalog *pricing.Catalog) []Step {
	tierOptions := make([]Option, 0, len(catalog.Tiers))
	for _, t := range catalog.Tiers {
		tierOptions = append(tierOptions, Option{Value: t.ID, Label: t.Description, Description: t.Name})
	}
	addOnOptions := make([]Option, 0, len(catalog.AddOns))
	for _, a := range catalog.AddOns {
		addOnOptions = append(addOnOptions, Option{Value: a.ID, Label: a.Label, Description: a.Description, Price: a.Price})
	}

	return []Step{
		{
			ID:       StepWelcome,
			Kind:     KindIntro,
			Title:    "Start Your Instant Quote, Tailored for Your Business",
			Subtitle: "Our smart tool gives you a transparent, custom website price in less than 60 seconds. No sales talk, just honest numbers.",
		},
		{
			ID:          StepFullName,
			Kind:        KindInput,
			Field:       FieldFullName,
			Required:    true,
			Title:       "What's your full name?",
			Placeholder: "e.g., Juan dela Cruz",
		},
		{
			ID:          StepEmail,
			Kind:        KindInput,
			Field:       FieldEmail,
			Required:    true,
			Title:       "And your email address?",
			Placeholder: "you@company.com",
		},
		{
			ID:          StepContactNumber,
			Kind:        KindInput,
			Field:       FieldContactNumber,
			Required:    true,
			Title:       "What's the best number to reach you on?",
			Placeholder: "e.g., 09171234567",
		},
		{
			ID:      StepTier,
			Kind:    KindSingleChoice,
			Field:   FieldTier,
			Title:   "Which of these best describes your business?",
			Options: tierOptions,
		},
		{
			ID:       StepAddOns,
			Kind:     KindMultiChoice,
			Field:    FieldAddOns,
			Title:    "Any additional one-time features?",
			Subtitle: "Select all that you need.",
			Options:  addOnOptions,
		},
		{
			ID:       StepBilling,
			Kind:     KindOptions,
			Title:    "How would you like to be billed?",
			Subtitle: "Annual billing replaces the setup and monthly fees with one yearly payment. Rush delivery shortens the timeline for a fee.",
			Options: []Option{
				{Value: string(pricing.BillingMonthly), Label: "Setup fee + monthly subscription"},
				{Value: string(pricing.BillingAnnual), Label: "One annual payment"},
			},
		},
		{
			ID:       StepSummary,
			Kind:     KindSummary,
			Title:    "Review Your Quote",
			Subtitle: "Here's your personalized package. You can still add or remove optional features.",
		},
		{
			ID:    StepResults,
			Kind:  KindResults,
			Title: "Your Quote is Ready!",
		},
		{
			ID:      StepAvailNow,
			Kind:    KindConfirmation,
			Title:   "We'll Be In Touch!",
			Message: "Thank you for choosing to proceed. A WeblitzStack team member will contact you shortly using the information you provided to finalize your project.",
		},
		{
			ID:       StepScheduleForm,
			Kind:     KindScheduling,
			Title:    "Schedule Your Free Consultation",
			Subtitle: "Please select a date and time that works for you.",
		},
		{
			ID:      StepScheduleConfirmation,
			Kind:    KindConfirmation,
			Title:   "Consultation Booked!",
			Message: "Your consultation time has been reserved. We've sent a confirmation to your email and will send a Zoom/Meet link soon. We look forward to speaking with you!",
		},
	}
}
