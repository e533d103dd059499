// Package mailer delivers transactional email over SMTP. Callers depend on
// the Mailer interface so tests can substitute a recording implementation
// instead of the real transport.
package mailer

import (
	"context"

	"github.com/wneessen/go-mail"

	"cashtrackr/internal/config"
)

// Message is a single outbound email.
type Message struct {
	From    string
	To      string
	Subject string
	HTML    string
}

// Mailer sends a message and reports transport failures to the caller.
// Delivery is awaited synchronously; there is no retry or queueing.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPMailer sends messages through an SMTP relay using go-mail.
type SMTPMailer struct {
	client *mail.Client
}

// NewSMTPMailer builds an SMTP-backed Mailer from the application config.
func NewSMTPMailer(cfg *config.Config) (*SMTPMailer, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.SMTPPort),
	}
	if cfg.SMTPUser != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.SMTPUser),
			mail.WithPassword(cfg.SMTPPass),
		)
	}

	client, err := mail.NewClient(cfg.SMTPHost, opts...)
	if err != nil {
		return nil, err
	}
	return &SMTPMailer{client: client}, nil
}

// Send delivers a single message, blocking until the relay accepts it.
func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	out := mail.NewMsg()
	if err := out.From(msg.From); err != nil {
		return err
	}
	if err := out.To(msg.To); err != nil {
		return err
	}
	out.Subject(msg.Subject)
	out.SetBodyString(mail.TypeTextHTML, msg.HTML)

	return m.client.DialAndSendWithContext(ctx, out)
}
