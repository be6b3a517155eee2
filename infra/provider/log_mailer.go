package provider

import (
	"context"
	"log/slog"

	"github.com/unas-org/unas-backend/pkg/config"
	"github.com/unas-org/unas-backend/pkg/provider"
)

// LogMailer writes mails to the log instead of sending them. It is used when
// no SMTP host is configured.
type LogMailer struct {
	content content
	logger  *slog.Logger
}

var _ provider.Mailer = (*LogMailer)(nil)

func NewLogMailer(cfg *config.App, logger *slog.Logger) *LogMailer {
	return &LogMailer{content: newContent(cfg), logger: logger}
}

func (m *LogMailer) SendEmailVerification(_ context.Context, to provider.Recipient, code string) error {
	m.logger.Info("Email verification mail",
		"handler", "LogMailer",
		"to", to.Email,
		"subject", SubjectEmailVerification,
		"link", m.content.VerificationLink(code),
	)
	return nil
}

func (m *LogMailer) SendPasswordReset(_ context.Context, to provider.Recipient, code string) error {
	m.logger.Info("Password reset mail",
		"handler", "LogMailer",
		"to", to.Email,
		"subject", SubjectPasswordReset,
		"code", code,
	)
	return nil
}
