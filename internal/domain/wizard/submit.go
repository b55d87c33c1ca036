package wizard

import (
	"context"
	"time"

	"launchquote/internal/domain/lead"
	"launchquote/internal/domain/submission"
)

// Submitter runs the two-phase lead submission.
type Submitter interface {
	Submit(ctx context.Context, req submission.Request) submission.Outcome
}

// SubmissionRequest snapshots the form as a priced submission.
func (s *Session) SubmissionRequest(source lead.Source) (submission.Request, error) {
	pkg, err := s.Package()
	if err != nil {
		return submission.Request{}, err
	}
	form := s.Form()
	return submission.Request{
		FullName:         form.FullName,
		Email:            form.Email,
		ContactNumber:    form.ContactNumber,
		Package:          pkg,
		ConsultationTime: form.ConsultationTime,
		Source:           source,
	}, nil
}

// submitTicket identifies the submission a Dispatch started.
type submitTicket struct {
	step       StepID
	generation int
}

func (s *Session) ticket() submitTicket {
	return submitTicket{step: s.Current().ID, generation: s.generation}
}

// awaiting reports whether the session is still on the step that started t
// and has not been restarted or resubmitted since.
func (s *Session) awaiting(t submitTicket) bool {
	return s.submission == nil && s.ticket() == t
}

// RecordOutcome stores a submission outcome on the session.
func (s *Session) RecordOutcome(out submission.Outcome, at time.Time) {
	rec := SubmissionRecord{
		Status: string(out.Status),
		Error:  out.ErrorMessage(),
		At:     at,
	}
	if out.Lead != nil {
		rec.LeadID = out.Lead.PublicID
	}
	s.RecordSubmission(rec)
}
