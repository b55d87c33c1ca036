package mail

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/resend/resend-go/v2"

	"launchquote/internal/pkg/logger"
)

// Message is one outgoing email with HTML and plain-text bodies.
type Message struct {
	From    string
	To      []string
	Subject string
	HTML    string
	Text    string
}

// Mailer delivers a message and returns the provider's message id.
type Mailer interface {
	Send(ctx context.Context, msg Message) (string, error)
}

// ResendMailer sends through the Resend transactional email API.
type ResendMailer struct {
	client *resend.Client
}

func NewResendMailer(apiKey string) *ResendMailer {
	return &ResendMailer{client: resend.NewClient(apiKey)}
}

func (m *ResendMailer) Send(ctx context.Context, msg Message) (string, error) {
	sent, err := m.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    msg.From,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
	})
	if err != nil {
		return "", fmt.Errorf("resend: %w", err)
	}
	return sent.Id, nil
}

// ConsoleMailer logs messages instead of sending them. Used when no
// provider key is configured.
type ConsoleMailer struct {
	lggr logger.Logger
}

func NewConsoleMailer(lggr logger.Logger) *ConsoleMailer {
	return &ConsoleMailer{lggr: lggr.Named("console_mailer")}
}

func (m *ConsoleMailer) Send(_ context.Context, msg Message) (string, error) {
	id := "console-" + uuid.NewString()
	m.lggr.Infow("[DEV-EMAIL]", "id", id, "from", msg.From, "to", msg.To, "subject", msg.Subject, "text", msg.Text)
	return id, nil
}
