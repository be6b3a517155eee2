package fixtures

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"
	"github.com/unas-org/unas-backend/pkg/provider"
)

// MockMailer is a testify mock of provider.Mailer.
type MockMailer struct {
	mock.Mock
}

var _ provider.Mailer = (*MockMailer)(nil)

func (m *MockMailer) SendEmailVerification(ctx context.Context, to provider.Recipient, code string) error {
	args := m.Called(ctx, to, code)
	return args.Error(0)
}

func (m *MockMailer) SendPasswordReset(ctx context.Context, to provider.Recipient, code string) error {
	args := m.Called(ctx, to, code)
	return args.Error(0)
}

// Mail is one message captured by RecordingMailer.
type Mail struct {
	Kind string
	To   provider.Recipient
	Code string
}

// RecordingMailer keeps every mail in memory. Safe for concurrent use.
type RecordingMailer struct {
	mu   sync.Mutex
	sent []Mail
	Fail error
}

var _ provider.Mailer = (*RecordingMailer)(nil)

func (m *RecordingMailer) record(kind string, to provider.Recipient, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return m.Fail
	}
	m.sent = append(m.sent, Mail{Kind: kind, To: to, Code: code})
	return nil
}

func (m *RecordingMailer) SendEmailVerification(_ context.Context, to provider.Recipient, code string) error {
	return m.record("verify", to, code)
}

func (m *RecordingMailer) SendPasswordReset(_ context.Context, to provider.Recipient, code string) error {
	return m.record("reset", to, code)
}

// Last returns the newest mail of kind sent to email.
func (m *RecordingMailer) Last(kind, email string) (Mail, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.sent) - 1; i >= 0; i-- {
		if m.sent[i].Kind == kind && m.sent[i].To.Email == email {
			return m.sent[i], true
		}
	}
	return Mail{}, false
}

func (m *RecordingMailer) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}
