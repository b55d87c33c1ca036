package wizard

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"launchquote/internal/domain/pricing"
	"launchquote/internal/pkg/validator"
)

// SubmissionRecord is what happened when the session's lead was submitted.
type SubmissionRecord struct {
	Status string    `json:"status"`
	Error  string    `json:"error,omitempty"`
	LeadID string    `json:"leadId,omitempty"`
	At     time.Time `json:"at"`
}

// Session is one visitor's pass through the wizard. It is not safe for
// concurrent use; Store serializes access.
type Session struct {
	ID string

	calc  *pricing.Calculator
	steps []Step
	index int
	now   func() time.Time

	form       FormData
	errors     map[Field]string
	submission *SubmissionRecord
	// generation changes on every restart and every submitting transition.
	generation int
}

// NewSession starts a session at the welcome step.
func NewSession(id string, calc *pricing.Calculator) *Session {
	s := &Session{
		ID:    id,
		calc:  calc,
		steps: DefaultSteps(calc.Catalog()),
		now:   time.Now,
	}
	s.StartOver()
	return s
}

// SetClock replaces time.Now for consultation slot checks.
func (s *Session) SetClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// Current returns the active step.
func (s *Session) Current() Step {
	return s.steps[s.index]
}

// Form returns a copy of the form data.
func (s *Session) Form() FormData {
	return s.form.clone()
}

// Errors returns the current per-field validation messages.
func (s *Session) Errors() map[Field]string {
	out := make(map[Field]string, len(s.errors))
	for k, v := range s.errors {
		out[k] = v
	}
	return out
}

// Submission returns the recorded submission outcome, if any.
func (s *Session) Submission() *SubmissionRecord {
	if s.submission == nil {
		return nil
	}
	rec := *s.submission
	return &rec
}

// Steps returns the ordered step descriptors.
func (s *Session) Steps() []Step {
	return s.steps
}

// Package prices the current form.
func (s *Session) Package() (*pricing.FinalPackage, error) {
	return s.calc.Calculate(s.form.PricingInput())
}

// Actions lists what Dispatch accepts on the current step.
func (s *Session) Actions() []Action {
	available := transitions[s.Current().ID]
	out := make([]Action, 0, len(available))
	for _, a := range actionOrder {
		if _, ok := available[a]; ok {
			out = append(out, a)
		}
	}
	return out
}

// Next advances one step, gated by the current step's field validation.
func (s *Session) Next() (Effect, error) {
	return s.Dispatch(ActionNext)
}

// Back returns to the previous step.
func (s *Session) Back() error {
	_, err := s.Dispatch(ActionBack)
	return err
}

// GoTo jumps directly to a named step.
func (s *Session) GoTo(id StepID) error {
	for i, st := range s.steps {
		if st.ID == id {
			s.index = i
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownStep, id)
}

// Dispatch applies action to the current step. The returned Effect asks the
// caller to submit the lead; the session has already advanced by then.
func (s *Session) Dispatch(action Action) (Effect, error) {
	current := s.Current()
	t, ok := transitions[current.ID][action]
	if !ok {
		return Effect{}, fmt.Errorf("%w: %s on %s", ErrInvalidTransition, action, current.ID)
	}

	if action == ActionNext && current.Required {
		if err := s.validate(current.Field, s.form.Value(current.Field)); err != nil {
			return Effect{}, fmt.Errorf("%w: %s", ErrValidation, current.Field)
		}
	}

	dest, err := t.route(s)
	if err != nil {
		return Effect{}, err
	}

	if action == ActionStartOver {
		s.StartOver()
		return Effect{}, nil
	}
	if err := s.GoTo(dest); err != nil {
		return Effect{}, err
	}
	if t.effect.Submit {
		s.submission = nil
		s.generation++
	}
	return t.effect, nil
}

// SetField stores value for field. Input fields are stored even when they
// fail validation; the message is kept in Errors and blocks Next. Other
// fields return an error and leave the form unchanged.
func (s *Session) SetField(field Field, value string) error {
	switch field {
	case FieldFullName, FieldEmail, FieldContactNumber:
		s.validate(field, value)
		switch field {
		case FieldFullName:
			s.form.FullName = value
		case FieldEmail:
			s.form.Email = value
		default:
			s.form.ContactNumber = value
		}
		return nil

	case FieldTier:
		id := strings.TrimSpace(value)
		if _, ok := s.calc.Catalog().Tier(id); !ok {
			return pricing.ErrUnknownTier
		}
		s.form.Tier = id

	case FieldBillingCycle:
		cycle, err := pricing.ParseBillingCycle(value)
		if err != nil {
			return err
		}
		s.form.BillingCycle = cycle

	case FieldIsRush:
		rush, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%w: isRush must be true or false", ErrInvalidValue)
		}
		s.form.IsRush = rush

	case FieldConsultationDate:
		date := strings.TrimSpace(value)
		if date != "" {
			if _, err := time.Parse(time.DateOnly, date); err != nil {
				return ErrInvalidDate
			}
		}
		if date != s.form.ConsultationDate {
			s.form.ConsultationTime = nil
		}
		s.form.ConsultationDate = date

	case FieldConsultationTime:
		raw := strings.TrimSpace(value)
		if raw == "" {
			s.form.ConsultationTime = nil
			return nil
		}
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return ErrInvalidTime
		}
		if !IsSlot(t, s.now()) {
			return fmt.Errorf("%w: not a bookable slot", ErrInvalidTime)
		}
		t = t.UTC()
		s.form.ConsultationTime = &t
		s.form.ConsultationDate = t.In(bookingZone).Format(time.DateOnly)
		delete(s.errors, FieldConsultationTime)

	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	return nil
}

// ToggleAddOn selects or deselects a catalog add-on.
func (s *Session) ToggleAddOn(id string, selected bool) error {
	if _, ok := s.calc.Catalog().AddOn(id); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAddOn, id)
	}
	s.form.setAddOn(id, selected)
	return nil
}

// StartOver clears the form and returns to the welcome step.
func (s *Session) StartOver() {
	s.index = 0
	s.form = NewFormData(s.calc.Catalog())
	s.errors = make(map[Field]string)
	s.submission = nil
	s.generation++
}

// RecordSubmission stores the outcome of the submission an Effect asked for.
func (s *Session) RecordSubmission(rec SubmissionRecord) {
	s.submission = &rec
}

func (s *Session) quoteBased() bool {
	tier, ok := s.calc.Catalog().Tier(s.form.Tier)
	return ok && tier.QuoteBased
}

// validate records or clears the error for field and returns it.
func (s *Session) validate(field Field, value string) error {
	err := validateField(field, value)
	if err != nil {
		s.errors[field] = fieldMessage(err)
	} else {
		delete(s.errors, field)
	}
	return err
}

func validateField(field Field, value string) error {
	if err := validator.Required(value); err != nil {
		return err
	}
	switch field {
	case FieldEmail:
		return validator.Email(value)
	case FieldContactNumber:
		return validator.Phone(value)
	}
	return nil
}

// fieldMessage turns a validator error into a sentence for display.
func fieldMessage(err error) string {
	var msg string
	switch {
	case errors.Is(err, validator.ErrRequired):
		msg = "This field is required."
	case errors.Is(err, validator.ErrInvalidEmail):
		msg = "Please enter a valid email address."
	case errors.Is(err, validator.ErrInvalidPhone):
		msg = "Please enter a valid phone number."
	default:
		msg = err.Error()
	}
	return msg
}
