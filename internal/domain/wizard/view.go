package wizard

import (
	"strings"

	"launchquote/internal/domain/pricing"
)

const (
	quoteBasedSummaryTitle   = "Enterprise Consultation"
	quoteBasedSummaryMessage = "For a custom Enterprise solution, we need to connect directly to understand your unique requirements. Please schedule a call with us to get a detailed quote."
)

// StepView is a step as presented to the visitor.
type StepView struct {
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

// View is the serializable state of a session.
type View struct {
	SessionID  string                `json:"sessionId"`
	Step       StepView              `json:"step"`
	Form       FormData              `json:"form"`
	Errors     map[Field]string      `json:"errors"`
	Package    *pricing.FinalPackage `json:"package,omitempty"`
	Actions    []Action              `json:"actions"`
	Submission *SubmissionRecord     `json:"submission,omitempty"`
}

// View snapshots the session.
func (s *Session) View() View {
	st := s.Current()
	v := View{
		SessionID: s.ID,
		Step: StepView{
			ID:          st.ID,
			Kind:        st.Kind,
			Field:       st.Field,
			Required:    st.Required,
			Title:       s.Prompt(),
			Subtitle:    st.Subtitle,
			Placeholder: st.Placeholder,
			Message:     st.Message,
			Options:     st.Options,
		},
		Form:       s.Form(),
		Errors:     s.Errors(),
		Actions:    s.Actions(),
		Submission: s.Submission(),
	}

	if pkg, err := s.Package(); err == nil {
		v.Package = pkg
	}

	switch {
	case st.Kind == KindSummary && s.quoteBased():
		v.Step.Title = quoteBasedSummaryTitle
		v.Step.Subtitle = ""
		v.Step.Message = quoteBasedSummaryMessage
	case st.Kind == KindResults && s.form.FullName != "":
		v.Step.Message = "Thank you, " + strings.TrimSpace(s.form.FullName) + ". Here is your complete package summary."
	}
	return v
}

// Prompt is the current step's title, addressed to the visitor by first
// name once it is known.
func (s *Session) Prompt() string {
	st := s.Current()
	name := firstName(s.form.FullName)
	if name == "" || !st.Personalized() || s.index == 0 {
		return st.Title
	}
	return "Okay, " + name + "! " + st.Title
}

func firstName(fullName string) string {
	fields := strings.Fields(fullName)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
