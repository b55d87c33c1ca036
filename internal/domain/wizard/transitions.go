package wizard

import "launchquote/internal/domain/lead"

// Action is a visitor intent dispatched to the current step.
type Action string

const (
	ActionNext      Action = "next"
	ActionBack      Action = "back"
	ActionAvail     Action = "avail"
	ActionSchedule  Action = "schedule"
	ActionConfirm   Action = "confirm"
	ActionStartOver Action = "startOver"
)

// actionOrder fixes the order actions are listed in views.
var actionOrder = []Action{ActionBack, ActionNext, ActionAvail, ActionSchedule, ActionConfirm, ActionStartOver}

// route resolves the destination of an action, or refuses it.
type route func(s *Session) (StepID, error)

// Effect is work the caller must perform after a transition.
type Effect struct {
	Submit bool
	Source lead.Source
}

type transition struct {
	route  route
	effect Effect
}

func to(id StepID) transition {
	return transition{route: func(*Session) (StepID, error) { return id, nil }}
}

// byTier routes quote-based tiers to quoteBased and everything else to priced.
func byTier(priced, quoteBased StepID) transition {
	return transition{route: func(s *Session) (StepID, error) {
		if s.quoteBased() {
			return quoteBased, nil
		}
		return priced, nil
	}}
}

func pricedOnly(id StepID) transition {
	return transition{route: func(s *Session) (StepID, error) {
		if s.quoteBased() {
			return "", ErrQuoteBasedTier
		}
		return id, nil
	}}
}

func submitTo(id StepID, source lead.Source) transition {
	t := to(id)
	t.effect = Effect{Submit: true, Source: source}
	return t
}

func withConsultation(t transition) transition {
	next := t.route
	t.route = func(s *Session) (StepID, error) {
		if s.form.ConsultationTime == nil {
			s.errors[FieldConsultationTime] = "Please choose a consultation time."
			return "", ErrConsultationTimeRequired
		}
		return next(s)
	}
	return t
}

// transitions is the complete step graph. Input steps validate their field
// before "next" is routed.
var transitions = map[StepID]map[Action]transition{
	StepWelcome: {
		ActionNext: to(StepFullName),
	},
	StepFullName: {
		ActionNext: to(StepEmail),
		ActionBack: to(StepWelcome),
	},
	StepEmail: {
		ActionNext: to(StepContactNumber),
		ActionBack: to(StepFullName),
	},
	StepContactNumber: {
		ActionNext: to(StepTier),
		ActionBack: to(StepEmail),
	},
	StepTier: {
		ActionNext: byTier(StepAddOns, StepSummary),
		ActionBack: to(StepContactNumber),
	},
	StepAddOns: {
		ActionNext: to(StepBilling),
		ActionBack: to(StepTier),
	},
	StepBilling: {
		ActionNext: to(StepSummary),
		ActionBack: to(StepAddOns),
	},
	StepSummary: {
		ActionNext:     pricedOnly(StepResults),
		ActionBack:     byTier(StepBilling, StepTier),
		ActionSchedule: to(StepScheduleForm),
	},
	StepResults: {
		ActionBack:      to(StepSummary),
		ActionAvail:     submitTo(StepAvailNow, lead.SourceAvailNow),
		ActionSchedule:  to(StepScheduleForm),
		ActionStartOver: to(StepWelcome),
	},
	StepScheduleForm: {
		ActionBack:    byTier(StepResults, StepSummary),
		ActionConfirm: withConsultation(submitTo(StepScheduleConfirmation, lead.SourceConsultation)),
	},
	StepAvailNow: {
		ActionStartOver: to(StepWelcome),
	},
	StepScheduleConfirmation: {
		ActionStartOver: to(StepWelcome),
	},
}

// ParseAction validates a wire action name.
func ParseAction(s string) (Action, error) {
	for _, a := range actionOrder {
		if string(a) == s {
			return a, nil
		}
	}
	return "", ErrUnknownAction
}
