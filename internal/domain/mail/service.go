package mail

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"launchquote/internal/domain/pricing"
	"launchquote/internal/pkg/logger"
	"launchquote/internal/quotemail"
)

const (
	clientSubject = "🎈 Your Website Quote & Consultation Details"
	quoteSubject  = "Your Website Quote from WeblitzStack"

	consultationHeading = "Consultation Booked!"
	quoteHeading        = "Your Quote is Ready!"
	adminHeading        = "You Have a New Lead!"
)

// Settings are the sender and recipient addresses used for every email.
type Settings struct {
	From       string
	AdminEmail string
	AdminName  string
	SiteURL    string
}

// Service renders and sends the quote emails
type Service struct {
	mailer   Mailer
	calc     *pricing.Calculator
	settings Settings
	lggr     logger.Logger
}

// NewService creates mail service
func NewService(mailer Mailer, calc *pricing.Calculator, settings Settings, lggr logger.Logger) *Service {
	return &Service{mailer: mailer, calc: calc, settings: settings, lggr: lggr.Named("mail")}
}

// Price recomputes a client-supplied package against the catalog.
func (s *Service) Price(fullName string, ref *PackageRef) (*pricing.FinalPackage, error) {
	if ref == nil {
		return nil, ErrMissingFields
	}
	return s.calc.Calculate(pricing.Input{
		FullName:     fullName,
		TierID:       ref.Tier.String(),
		AddOnIDs:     ref.AddOns,
		BillingCycle: pricing.BillingCycle(ref.BillingCycle),
		IsRush:       ref.IsRush,
	})
}

// SendConfirmation sends the admin notification, then the client
// confirmation. A failed admin email skips the client email.
func (s *Service) SendConfirmation(ctx context.Context, in Confirmation) error {
	if strings.TrimSpace(in.FullName) == "" || strings.TrimSpace(in.Email) == "" || in.Package == nil {
		return ErrMissingFields
	}

	referral := in.ReferralCode
	if referral == "" {
		referral = in.Package.ReferralCode
	}
	base := quotemail.Params{
		Package:          in.Package,
		ReferralCode:     referral,
		ConsultationTime: in.ConsultationTime,
		FeatureListHTML:  quotemail.FeatureListHTML(in.Package),
		FeatureListText:  quotemail.FeatureListText(in.Package),
		SiteURL:          s.settings.SiteURL,
	}

	adminHTML := base
	adminHTML.Heading = adminHeading
	adminHTML.Name = "Lead from: " + in.FullName
	adminText := base
	adminText.Heading = "New Lead: " + in.FullName
	adminText.Name = s.settings.AdminName

	admin, err := s.render(adminHTML, adminText)
	if err != nil {
		return err
	}
	admin.From = s.settings.From
	admin.To = []string{s.settings.AdminEmail}
	admin.Subject = "🚨 New Lead: " + in.FullName

	client := base
	client.Heading = quoteHeading
	if in.ConsultationTime != nil {
		client.Heading = consultationHeading
	}
	client.Name = in.FullName

	confirmation, err := s.render(client, client)
	if err != nil {
		return err
	}
	confirmation.From = s.settings.From
	confirmation.To = []string{in.Email}
	confirmation.Subject = clientSubject

	adminID, err := s.mailer.Send(ctx, admin)
	if err != nil {
		s.lggr.Errorw("Admin notification failed", "err", err, "tier", in.Package.Tier.ID)
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	clientID, err := s.mailer.Send(ctx, confirmation)
	if err != nil {
		s.lggr.Errorw("Client confirmation failed", "err", err, "admin_message_id", adminID)
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	s.lggr.Infow("Confirmation emails sent", "admin_message_id", adminID, "client_message_id", clientID, "tier", in.Package.Tier.ID)
	return nil
}

// SendQuote sends the short quote summary email.
func (s *Service) SendQuote(ctx context.Context, req *QuoteEmailRequest) error {
	summary := strings.TrimSpace(req.QuoteSummary)
	if summary == "" && req.FinalPackage != nil {
		pkg, err := s.Price(req.FullName, req.FinalPackage)
		if err != nil {
			return err
		}
		summary = quotemail.SummaryText(pkg)
	}
	if summary == "" {
		return fmt.Errorf("%w: quoteSummary or finalPackage", ErrMissingFields)
	}

	name := strings.TrimSpace(req.FullName)
	msg := Message{
		From:    s.settings.From,
		To:      []string{strings.TrimSpace(req.Email)},
		Subject: quoteSubject,
		HTML: "<strong>Hi " + html.EscapeString(name) + "</strong><br/>Here’s your quote: " +
			strings.ReplaceAll(html.EscapeString(summary), "\n", "<br/>"),
		Text: "Hi " + name + "\nHere’s your quote: " + summary,
	}

	id, err := s.mailer.Send(ctx, msg)
	if err != nil {
		s.lggr.Errorw("Quote email failed", "err", err)
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	s.lggr.Infow("Quote email sent", "message_id", id)
	return nil
}

func (s *Service) render(htmlParams, textParams quotemail.Params) (Message, error) {
	body, err := quotemail.RenderHTML(htmlParams)
	if err != nil {
		return Message{}, err
	}
	text, err := quotemail.RenderText(textParams)
	if err != nil {
		return Message{}, err
	}
	return Message{HTML: body, Text: text}, nil
}

// IsClientError reports whether err was caused by the request rather than
// the provider.
func IsClientError(err error) bool {
	return errors.Is(err, ErrMissingFields) ||
		errors.Is(err, pricing.ErrUnknownTier) ||
		errors.Is(err, pricing.ErrInvalidBillingCycle)
}
