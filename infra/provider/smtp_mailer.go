package provider

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/unas-org/unas-backend/pkg/config"
	"github.com/unas-org/unas-backend/pkg/provider"
	"github.com/wneessen/go-mail"
)

// sender is the part of *mail.Client the mailer needs.
type sender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// SMTPMailer delivers transactional mails through an SMTP relay.
type SMTPMailer struct {
	client  sender
	from    string
	content content
	logger  *slog.Logger
}

var _ provider.Mailer = (*SMTPMailer)(nil)

// NewSMTPMailer builds a mailer for cfg.Smtp. SMTP_SSL selects implicit TLS;
// otherwise STARTTLS is attempted opportunistically.
func NewSMTPMailer(cfg *config.App, logger *slog.Logger) (*SMTPMailer, error) {
	smtp := cfg.Smtp
	opts := []mail.Option{
		mail.WithTimeout(15 * time.Second),
	}
	if smtp.SSL {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPortPolicy(mail.TLSOpportunistic))
	}
	if smtp.User != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(smtp.User),
			mail.WithPassword(smtp.Pass),
		)
	}
	opts = append(opts, mail.WithPort(smtp.Port))

	client, err := mail.NewClient(smtp.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	return newSMTPMailer(client, cfg, logger), nil
}

func newSMTPMailer(client sender, cfg *config.App, logger *slog.Logger) *SMTPMailer {
	return &SMTPMailer{
		client:  client,
		from:    cfg.Smtp.From,
		content: newContent(cfg),
		logger:  logger,
	}
}

func (m *SMTPMailer) SendEmailVerification(ctx context.Context, to provider.Recipient, code string) error {
	link := m.content.VerificationLink(code)
	body, err := m.content.render(verifyTemplate, m.content.data(to.Username, code, link))
	if err != nil {
		return err
	}
	return m.send(ctx, to, SubjectEmailVerification, body)
}

func (m *SMTPMailer) SendPasswordReset(ctx context.Context, to provider.Recipient, code string) error {
	body, err := m.content.render(resetTemplate, m.content.data(to.Username, code, ""))
	if err != nil {
		return err
	}
	return m.send(ctx, to, SubjectPasswordReset, body)
}

func (m *SMTPMailer) send(ctx context.Context, to provider.Recipient, subject, body string) error {
	log := m.logger.With("handler", "SMTPMailer.send", "subject", subject)
	msg, err := m.message(to, subject, body)
	if err != nil {
		return err
	}
	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		log.Error("Failed to send mail", "error", err)
		return fmt.Errorf("%w: %v", provider.ErrMailerUnavailable, err)
	}
	log.Info("Mail sent")
	return nil
}

func (m *SMTPMailer) message(to provider.Recipient, subject, body string) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.FromFormat(m.content.appName, m.from); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", m.from, err)
	}
	if err := msg.AddToFormat(to.Username, to.Email); err != nil {
		return nil, fmt.Errorf("invalid recipient %q: %w", to.Email, err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, body)
	return msg, nil
}
