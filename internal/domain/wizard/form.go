package wizard

import (
	"slices"
	"strconv"
	"time"

	"launchquote/internal/domain/pricing"
)

// Field names a form value a step can edit.
type Field string

const (
	FieldFullName         Field = "fullName"
	FieldEmail            Field = "email"
	FieldContactNumber    Field = "contactNumber"
	FieldTier             Field = "tier"
	FieldAddOns           Field = "addOns"
	FieldBillingCycle     Field = "billingCycle"
	FieldIsRush           Field = "isRush"
	FieldConsultationDate Field = "consultationDate"
	FieldConsultationTime Field = "consultationTime"
)

// FormData is everything the visitor has entered so far.
type FormData struct {
	FullName         string               `json:"fullName"`
	Email            string               `json:"email"`
	ContactNumber    string               `json:"contactNumber"`
	Tier             string               `json:"tier"`
	AddOns           []string             `json:"addOns"`
	BillingCycle     pricing.BillingCycle `json:"billingCycle"`
	IsRush           bool                 `json:"isRush"`
	ConsultationDate string               `json:"consultationDate,omitempty"`
	ConsultationTime *time.Time           `json:"consultationTime,omitempty"`
}

// NewFormData returns the blank form with the first tier preselected.
func NewFormData(catalog *pricing.Catalog) FormData {
	return FormData{
		Tier:         catalog.DefaultTierID(),
		AddOns:       []string{},
		BillingCycle: pricing.BillingMonthly,
	}
}

// PricingInput is the pricing-relevant slice of the form.
func (f FormData) PricingInput() pricing.Input {
	return pricing.Input{
		FullName:     f.FullName,
		TierID:       f.Tier,
		AddOnIDs:     slices.Clone(f.AddOns),
		BillingCycle: f.BillingCycle,
		IsRush:       f.IsRush,
	}
}

// HasAddOn reports whether id is selected.
func (f FormData) HasAddOn(id string) bool {
	return slices.Contains(f.AddOns, id)
}

// setAddOn keeps AddOns an insertion-ordered set.
func (f *FormData) setAddOn(id string, selected bool) {
	idx := slices.Index(f.AddOns, id)
	switch {
	case selected && idx < 0:
		f.AddOns = append(f.AddOns, id)
	case !selected && idx >= 0:
		f.AddOns = slices.Delete(f.AddOns, idx, idx+1)
	}
}

// Value returns the string form of field, as validated.
func (f FormData) Value(field Field) string {
	switch field {
	case FieldFullName:
		return f.FullName
	case FieldEmail:
		return f.Email
	case FieldContactNumber:
		return f.ContactNumber
	case FieldTier:
		return f.Tier
	case FieldBillingCycle:
		return string(f.BillingCycle)
	case FieldIsRush:
		return strconv.FormatBool(f.IsRush)
	case FieldConsultationDate:
		return f.ConsultationDate
	case FieldConsultationTime:
		if f.ConsultationTime == nil {
			return ""
		}
		return f.ConsultationTime.UTC().Format(time.RFC3339)
	}
	return ""
}

func (f FormData) clone() FormData {
	out := f
	out.AddOns = slices.Clone(f.AddOns)
	if f.ConsultationTime != nil {
		t := *f.ConsultationTime
		out.ConsultationTime = &t
	}
	return out
}
