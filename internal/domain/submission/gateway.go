// Package submission records a finished quote and then emails it.
package submission

import (
	"context"
	"time"

	"launchquote/internal/domain/lead"
	"launchquote/internal/domain/mail"
	"launchquote/internal/domain/pricing"
	"launchquote/internal/pkg/logger"
)

// Status is the outcome of one two-phase submission.
type Status string

const (
	StatusCompleted            Status = "completed"
	StatusLeadSavedEmailFailed Status = "lead_saved_email_failed"
	StatusLeadFailed           Status = "lead_failed"
)

// LeadRecorder persists a lead.
type LeadRecorder interface {
	Record(ctx context.Context, in lead.RecordInput) (*lead.Lead, error)
}

// Confirmer sends the admin and client emails.
type Confirmer interface {
	SendConfirmation(ctx context.Context, in mail.Confirmation) error
}

// Request is a finished wizard form, already priced.
type Request struct {
	FullName         string
	Email            string
	ContactNumber    string
	Package          *pricing.FinalPackage
	ConsultationTime *time.Time
	Source           lead.Source
	IPAddress        string
	UserAgent        string
}

// Outcome reports how far a submission got. Err holds the failure of the
// phase named by Status.
type Outcome struct {
	Status Status     `json:"status"`
	Lead   *lead.Lead `json:"lead,omitempty"`
	Err    error      `json:"-"`
}

// ErrorMessage returns the failure message, empty when completed.
func (o Outcome) ErrorMessage() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.Error()
}

// Gateway runs the record-then-notify sequence. Nothing is retried or
// rolled back.
type Gateway struct {
	leads     LeadRecorder
	confirmer Confirmer
	lggr      logger.Logger
}

func NewGateway(leads LeadRecorder, confirmer Confirmer, lggr logger.Logger) *Gateway {
	return &Gateway{leads: leads, confirmer: confirmer, lggr: lggr.Named("submission")}
}

// Submit records the lead and, only if that succeeds, sends the emails.
func (g *Gateway) Submit(ctx context.Context, req Request) Outcome {
	saved, err := g.leads.Record(ctx, lead.RecordInput{
		FullName:              req.FullName,
		Email:                 req.Email,
		ContactNumber:         req.ContactNumber,
		Package:               req.Package,
		ConsultationTimestamp: req.ConsultationTime,
		Source:                req.Source,
		IPAddress:             req.IPAddress,
		UserAgent:             req.UserAgent,
	})
	if err != nil {
		g.lggr.Errorw("Lead not recorded, skipping emails", "err", err, "source", req.Source)
		return Outcome{Status: StatusLeadFailed, Err: err}
	}

	err = g.confirmer.SendConfirmation(ctx, mail.Confirmation{
		FullName:         req.FullName,
		Email:            req.Email,
		Package:          req.Package,
		ReferralCode:     req.Package.ReferralCode,
		ConsultationTime: req.ConsultationTime,
	})
	if err != nil {
		g.lggr.Errorw("Lead recorded but confirmation failed", "err", err, "public_id", saved.PublicID)
		return Outcome{Status: StatusLeadSavedEmailFailed, Lead: saved, Err: err}
	}

	return Outcome{Status: StatusCompleted, Lead: saved}
}
