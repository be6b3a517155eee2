package provider

import (
	"context"
	"errors"
)

// ErrMailerUnavailable is returned when no mail transport is configured.
var ErrMailerUnavailable = errors.New("mailer unavailable")

// Recipient identifies who a transactional mail is addressed to.
type Recipient struct {
	Email    string
	Username string
}

// Mailer delivers the transactional mails of the auth flows.
type Mailer interface {
	// SendEmailVerification mails the link that confirms ownership of the address.
	SendEmailVerification(ctx context.Context, to Recipient, code string) error
	// SendPasswordReset mails the six-digit reset code.
	SendPasswordReset(ctx context.Context, to Recipient, code string) error
}
