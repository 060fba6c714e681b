// Package mail sends transactional email through Resend.
package mail

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

// ErrNoRecipient indicates a message without a destination address.
var ErrNoRecipient = errors.New("email recipient required")

// Message is an outbound HTML email.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Sender delivers email messages.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// New returns a Resend sender when an API key is configured and a
// logging sender otherwise.
func New(cfg *Config, logger *slog.Logger) Sender {
	logger = logger.With("system", "mail")
	if !cfg.Enabled() {
		logger.Warn("no mail api key configured, emails will only be logged")
		return &logSender{logger: logger}
	}
	return &resendSender{
		client: resend.NewClient(cfg.APIKey),
		from:   cfg.From,
		logger: logger,
	}
}

type resendSender struct {
	client *resend.Client
	from   string
	logger *slog.Logger
}

func (s *resendSender) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return ErrNoRecipient
	}

	sent, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
	})
	if err != nil {
		return fmt.Errorf("send email to %s: %w", msg.To, err)
	}

	s.logger.Info("email sent", "id", sent.Id, "to", msg.To, "subject", msg.Subject)
	return nil
}

type logSender struct {
	logger *slog.Logger
}

func (s *logSender) Send(_ context.Context, msg Message) error {
	if msg.To == "" {
		return ErrNoRecipient
	}
	s.logger.Info("email not delivered", "to", msg.To, "subject", msg.Subject)
	return nil
}

// WelcomeEmail builds the message sent after registration.
func WelcomeEmail(to, username string) Message {
	name := html.EscapeString(username)
	return Message{
		To:      to,
		Subject: "Welcome to Prompt Saver!",
		HTML: fmt.Sprintf(
			"<h1>Welcome to Prompt Saver, %s!</h1>\n<p>Thank you for joining our platform. Start saving your prompts today!</p>",
			name,
		),
	}
}
