package wizard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"launchquote/internal/domain/lead"
	"launchquote/internal/domain/pricing"
)

var sessionNow = time.Date(2030, 1, 10, 9, 0, 0, 0, time.UTC)

func newTestSession() *Session {
	s := NewSession("test", pricing.NewCalculator(pricing.DefaultCatalog()))
	s.SetClock(func() time.Time { return sessionNow })
	return s
}

// fillContact walks from welcome to the tier step.
func fillContact(t *testing.T, s *Session) {
	t.Helper()
	_, err := s.Next()
	require.NoError(t, err)
	require.NoError(t, s.SetField(FieldFullName, "Juan Dela Cruz"))
	_, err = s.Next()
	require.NoError(t, err)
	require.NoError(t, s.SetField(FieldEmail, "juan@x.com"))
	_, err = s.Next()
	require.NoError(t, err)
	require.NoError(t, s.SetField(FieldContactNumber, "0917 123 4567"))
	_, err = s.Next()
	require.NoError(t, err)
	require.Equal(t, StepTier, s.Current().ID)
}

func TestSession_InitialState(t *testing.T) {
	s := newTestSession()

	assert.Equal(t, StepWelcome, s.Current().ID)
	assert.Equal(t, []Action{ActionNext}, s.Actions())
	assert.Equal(t, "standard", s.Form().Tier)
	assert.Equal(t, pricing.BillingMonthly, s.Form().BillingCycle)
	assert.Empty(t, s.Errors())

	assert.ErrorIs(t, s.Back(), ErrInvalidTransition)
}

func TestSession_NextIsGatedByValidation(t *testing.T) {
	s := newTestSession()
	_, err := s.Next()
	require.NoError(t, err)

	_, err = s.Next()
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, StepFullName, s.Current().ID)
	assert.Equal(t, "This field is required.", s.Errors()[FieldFullName])

	require.NoError(t, s.SetField(FieldFullName, "   "))
	_, err = s.Next()
	assert.ErrorIs(t, err, ErrValidation)

	require.NoError(t, s.SetField(FieldFullName, "Ana"))
	assert.NotContains(t, s.Errors(), FieldFullName)
	_, err = s.Next()
	require.NoError(t, err)

	require.NoError(t, s.SetField(FieldEmail, "not-an-email"))
	assert.Equal(t, "Please enter a valid email address.", s.Errors()[FieldEmail])
	_, err = s.Next()
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "not-an-email", s.Form().Email)

	require.NoError(t, s.SetField(FieldEmail, "ana@x.com"))
	_, err = s.Next()
	require.NoError(t, err)

	require.NoError(t, s.SetField(FieldContactNumber, "12345"))
	assert.Equal(t, "Please enter a valid phone number.", s.Errors()[FieldContactNumber])
	_, err = s.Next()
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSession_PricedFlowToAvailNow(t *testing.T) {
	s := newTestSession()
	fillContact(t, s)

	require.NoError(t, s.SetField(FieldTier, "pro"))
	_, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, StepAddOns, s.Current().ID)

	require.NoError(t, s.ToggleAddOn("gallery", true))
	require.NoError(t, s.ToggleAddOn("logo", true))
	require.NoError(t, s.ToggleAddOn("logo", true))
	assert.ErrorIs(t, s.ToggleAddOn("hologram", true), ErrUnknownAddOn)
	assert.Equal(t, []string{"gallery", "logo"}, s.Form().AddOns)

	_, err = s.Next()
	require.NoError(t, err)
	assert.Equal(t, StepBilling, s.Current().ID)
	require.NoError(t, s.SetField(FieldBillingCycle, "annual"))
	require.NoError(t, s.SetField(FieldIsRush, "true"))

	_, err = s.Next()
	require.NoError(t, err)
	assert.Equal(t, StepSummary, s.Current().ID)

	pkg, err := s.Package()
	require.NoError(t, err)
	assert.Equal(t, int64(73500), pkg.TotalCost)
	assert.Equal(t, "JUANDELACRUZ5OFF", pkg.ReferralCode)

	_, err = s.Next()
	require.NoError(t, err)
	assert.Equal(t, StepResults, s.Current().ID)
	assert.Equal(t, []Action{ActionBack, ActionAvail, ActionSchedule, ActionStartOver}, s.Actions())

	effect, err := s.Dispatch(ActionAvail)
	require.NoError(t, err)
	assert.Equal(t, Effect{Submit: true, Source: lead.SourceAvailNow}, effect)
	assert.Equal(t, StepAvailNow, s.Current().ID)
	assert.True(t, s.Current().Terminal())

	assert.ErrorIs(t, s.Back(), ErrInvalidTransition)

	_, err = s.Dispatch(ActionStartOver)
	require.NoError(t, err)
	assert.Equal(t, StepWelcome, s.Current().ID)
	assert.Empty(t, s.Form().FullName)
	assert.Empty(t, s.Form().AddOns)
	assert.Equal(t, "standard", s.Form().Tier)
}

func TestSession_QuoteBasedTierGoesToConsultation(t *testing.T) {
	s := newTestSession()
	fillContact(t, s)

	require.NoError(t, s.SetField(FieldTier, "enterprise"))
	_, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, StepSummary, s.Current().ID)
	assert.Equal(t, quoteBasedSummaryTitle, s.View().Step.Title)

	_, err = s.Next()
	assert.ErrorIs(t, err, ErrQuoteBasedTier)

	require.NoError(t, s.Back())
	assert.Equal(t, StepTier, s.Current().ID)

	_, err = s.Next()
	require.NoError(t, err)
	_, err = s.Dispatch(ActionSchedule)
	require.NoError(t, err)
	assert.Equal(t, StepScheduleForm, s.Current().ID)

	require.NoError(t, s.Back())
	assert.Equal(t, StepSummary, s.Current().ID)
	_, err = s.Dispatch(ActionSchedule)
	require.NoError(t, err)

	_, err = s.Dispatch(ActionConfirm)
	assert.ErrorIs(t, err, ErrConsultationTimeRequired)
	assert.Contains(t, s.Errors(), FieldConsultationTime)
	assert.Equal(t, StepScheduleForm, s.Current().ID)

	require.NoError(t, s.SetField(FieldConsultationTime, "2030-01-15T02:00:00Z"))
	assert.Equal(t, "2030-01-15", s.Form().ConsultationDate)
	assert.NotContains(t, s.Errors(), FieldConsultationTime)

	effect, err := s.Dispatch(ActionConfirm)
	require.NoError(t, err)
	assert.Equal(t, Effect{Submit: true, Source: lead.SourceConsultation}, effect)
	assert.Equal(t, StepScheduleConfirmation, s.Current().ID)
}

func TestSession_ScheduleBackFromPricedTier(t *testing.T) {
	s := newTestSession()
	require.NoError(t, s.GoTo(StepResults))

	_, err := s.Dispatch(ActionSchedule)
	require.NoError(t, err)
	require.NoError(t, s.Back())
	assert.Equal(t, StepResults, s.Current().ID)
}

func TestSession_SetFieldErrors(t *testing.T) {
	s := newTestSession()

	assert.ErrorIs(t, s.SetField(FieldTier, "platinum"), pricing.ErrUnknownTier)
	assert.Equal(t, "standard", s.Form().Tier)
	assert.ErrorIs(t, s.SetField(FieldBillingCycle, "weekly"), pricing.ErrInvalidBillingCycle)
	assert.ErrorIs(t, s.SetField(FieldIsRush, "maybe"), ErrInvalidValue)
	assert.ErrorIs(t, s.SetField(FieldConsultationDate, "15/01/2030"), ErrInvalidDate)
	assert.ErrorIs(t, s.SetField(FieldConsultationTime, "tomorrow"), ErrInvalidTime)
	// 10:15 PHT is not on the half hour
	assert.ErrorIs(t, s.SetField(FieldConsultationTime, "2030-01-15T02:15:00Z"), ErrInvalidTime)
	// 00:00 PHT is outside booking hours
	assert.ErrorIs(t, s.SetField(FieldConsultationTime, "2030-01-15T16:00:00Z"), ErrInvalidTime)
	assert.ErrorIs(t, s.SetField("favouriteColour", "blue"), ErrUnknownField)
	assert.ErrorIs(t, s.GoTo("nowhere"), ErrUnknownStep)
}

func TestSession_RejectsPastConsultationTime(t *testing.T) {
	s := newTestSession()

	err := s.SetField(FieldConsultationTime, "2001-01-02T09:00:00+08:00")
	assert.ErrorIs(t, err, ErrInvalidTime)
	assert.Nil(t, s.Form().ConsultationTime)

	// 17:00 PHT on the session's current day has already gone
	err = s.SetField(FieldConsultationTime, "2030-01-10T09:00:00Z")
	assert.ErrorIs(t, err, ErrInvalidTime)
	assert.Nil(t, s.Form().ConsultationTime)

	require.NoError(t, s.SetField(FieldConsultationTime, "2030-01-10T09:30:00Z"))
	require.NotNil(t, s.Form().ConsultationTime)
	assert.Equal(t, "2030-01-10", s.Form().ConsultationDate)
}

func TestSession_ChangingDateClearsTime(t *testing.T) {
	s := newTestSession()
	require.NoError(t, s.SetField(FieldConsultationTime, "2030-01-15T15:30:00Z"))
	require.NotNil(t, s.Form().ConsultationTime)

	require.NoError(t, s.SetField(FieldConsultationDate, "2030-01-15"))
	assert.NotNil(t, s.Form().ConsultationTime)

	require.NoError(t, s.SetField(FieldConsultationDate, "2030-01-16"))
	assert.Nil(t, s.Form().ConsultationTime)
}

func TestSession_UnknownAddOnNeverChangesTotal(t *testing.T) {
	s := newTestSession()
	before, err := s.Package()
	require.NoError(t, err)

	_ = s.ToggleAddOn("hologram", true)
	after, err := s.Package()
	require.NoError(t, err)

	assert.Equal(t, before.TotalCost, after.TotalCost)
}

func TestSession_PersonalizedPrompt(t *testing.T) {
	s := newTestSession()
	assert.Equal(t, s.Current().Title, s.Prompt())

	_, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, "What's your full name?", s.Prompt())

	require.NoError(t, s.SetField(FieldFullName, "  Juan Dela Cruz"))
	assert.Equal(t, "Okay, Juan! What's your full name?", s.Prompt())

	require.NoError(t, s.GoTo(StepResults))
	view := s.View()
	assert.Equal(t, "Your Quote is Ready!", view.Step.Title)
	assert.Equal(t, "Thank you, Juan Dela Cruz. Here is your complete package summary.", view.Step.Message)
}

func TestSession_FormIsACopy(t *testing.T) {
	s := newTestSession()
	require.NoError(t, s.ToggleAddOn("logo", true))

	form := s.Form()
	form.AddOns[0] = "mutated"

	assert.Equal(t, []string{"logo"}, s.Form().AddOns)
}

func TestTransitionTable_TargetsExist(t *testing.T) {
	steps := DefaultSteps(pricing.DefaultCatalog())
	known := make(map[StepID]bool, len(steps))
	for _, st := range steps {
		known[st.ID] = true
	}

	for from, actions := range transitions {
		assert.True(t, known[from], "unknown source step %s", from)
		for action, tr := range actions {
			for _, tier := range []string{"standard", "enterprise"} {
				s := newTestSession()
				require.NoError(t, s.SetField(FieldTier, tier))
				dest, err := tr.route(s)
				if err != nil {
					continue
				}
				assert.True(t, known[dest], "%s --%s--> %s", from, action, dest)
			}
		}
	}
	for _, st := range steps {
		assert.Contains(t, transitions, st.ID)
	}
}
