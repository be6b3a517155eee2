package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/unas-org/unas-backend/internal/fixtures"
	"github.com/unas-org/unas-backend/pkg/config"
	"github.com/unas-org/unas-backend/pkg/domain"
	"github.com/unas-org/unas-backend/pkg/provider"
	"github.com/unas-org/unas-backend/pkg/repository"
	authsvc "github.com/unas-org/unas-backend/pkg/service/auth"
	"github.com/unas-org/unas-backend/pkg/service/code"
	"github.com/unas-org/unas-backend/pkg/utils"
)

const testSecret = "test-secret"

type env struct {
	svc    *authsvc.Service
	uow    repository.UnitOfWork
	mailer *fixtures.MockMailer
	user   *domain.User
}

func setup(t *testing.T) env {
	t.Helper()
	uow := fixtures.NewTestUoW(t)
	mailer := new(fixtures.MockMailer)
	logger := fixtures.Logger()
	codes := code.New(uow, &config.Code{TTL: 30 * time.Minute}, logger)
	svc := authsvc.New(uow, codes, mailer, &config.Jwt{Secret: testSecret, Expiry: 168 * time.Hour}, logger)
	u := fixtures.SeedUser(t, uow, "gestor@unas.org.br", "secret1")
	return env{svc: svc, uow: uow, mailer: mailer, user: u}
}

func TestLogin_Success(t *testing.T) {
	t.Parallel()
	e := setup(t)

	res, err := e.svc.Login(context.Background(), "Gestor@UNAS.org.br ", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "bearer", res.TokenType)
	assert.Equal(t, e.user.ID, res.User.ID)

	claims, err := e.svc.ValidateToken(res.AccessToken)
	require.NoError(t, err)
	sub, err := claims.GetSubject()
	require.NoError(t, err)
	assert.Equal(t, e.user.ID.String(), sub)

	iat, err := claims.GetIssuedAt()
	require.NoError(t, err)
	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.Equal(t, 7*24*time.Hour, exp.Sub(iat.Time))
}

func TestLogin_Rejections(t *testing.T) {
	t.Parallel()
	e := setup(t)
	ctx := context.Background()

	_, err := e.svc.Login(ctx, "gestor@unas.org.br", "wrong-password")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = e.svc.Login(ctx, "nobody@unas.org.br", "secret1")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = e.uow.Users().Update(ctx, e.user.ID, map[string]any{"active": false})
	require.NoError(t, err)
	_, err = e.svc.Login(ctx, "gestor@unas.org.br", "secret1")
	assert.ErrorIs(t, err, authsvc.ErrInvalidCredentials)
}

func TestValidateToken(t *testing.T) {
	t.Parallel()
	e := setup(t)

	_, err := e.svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": e.user.ID.String(),
		"exp": time.Now().Add(-time.Minute).Unix(),
	})
	signed, err := expired.SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = e.svc.ValidateToken(signed)
	assert.ErrorIs(t, err, authsvc.ErrInvalidToken)

	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": e.user.ID.String(),
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err = foreign.SignedString([]byte("another-secret"))
	require.NoError(t, err)
	_, err = e.svc.ValidateToken(signed)
	assert.ErrorIs(t, err, authsvc.ErrInvalidToken)
}

func TestUserIDFromToken(t *testing.T) {
	t.Parallel()
	e := setup(t)
	id := uuid.New()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": id.String()})

	got, err := e.svc.UserIDFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = e.svc.UserIDFromToken(jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "x"}))
	assert.ErrorIs(t, err, authsvc.ErrInvalidToken)
	_, err = e.svc.UserIDFromToken(nil)
	assert.ErrorIs(t, err, authsvc.ErrInvalidToken)
}

func TestPasswordResetFlow(t *testing.T) {
	t.Parallel()
	e := setup(t)
	ctx := context.Background()
	to := provider.Recipient{Email: e.user.Email, Username: e.user.Username}

	e.mailer.On("SendPasswordReset", mock.Anything, to, mock.AnythingOfType("string")).Return(nil).Once()
	require.NoError(t, e.svc.SendResetCode(ctx, e.user.Email))
	e.mailer.AssertExpectations(t)
	sent := e.mailer.Calls[0].Arguments.String(2)
	assert.Len(t, sent, 6)

	require.NoError(t, e.svc.SendResetCode(ctx, "unknown@unas.org.br"), "unknown emails are not reported")

	token, err := e.svc.ValidateResetCode(ctx, sent)
	require.NoError(t, err)
	_, err = uuid.Parse(token)
	require.NoError(t, err)

	_, err = e.svc.ValidateResetCode(ctx, sent)
	assert.ErrorIs(t, err, code.ErrInvalidCode, "codes are single use")

	err = e.svc.ResetPassword(ctx, token, "newsecret", "different")
	assert.ErrorIs(t, err, authsvc.ErrPasswordMismatch)

	require.NoError(t, e.svc.ResetPassword(ctx, token, "newsecret", "newsecret"))
	stored, err := e.uow.Users().Get(ctx, e.user.ID)
	require.NoError(t, err)
	assert.True(t, utils.CheckPasswordHash("newsecret", stored.Password))

	err = e.svc.ResetPassword(ctx, token, "other-secret", "other-secret")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestEmailVerificationFlow(t *testing.T) {
	t.Parallel()
	e := setup(t)
	ctx := context.Background()

	err := e.svc.SendVerificationCode(ctx, "missing@unas.org.br")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	e.mailer.On("SendEmailVerification", mock.Anything, mock.Anything, mock.AnythingOfType("string")).Return(nil).Once()
	require.NoError(t, e.svc.SendVerificationCode(ctx, e.user.Email))
	sent := e.mailer.Calls[0].Arguments.String(2)
	assert.Contains(t, sent, "UNAS_")

	assert.ErrorIs(t, e.svc.VerifyEmail(ctx, "UNAS_unknown"), code.ErrInvalidCode)
	require.NoError(t, e.svc.VerifyEmail(ctx, sent))

	stored, err := e.uow.Users().Get(ctx, e.user.ID)
	require.NoError(t, err)
	assert.True(t, stored.EmailVerified)

	err = e.svc.SendVerificationCode(ctx, e.user.Email)
	assert.ErrorIs(t, err, authsvc.ErrAlreadyVerified)
	e.mailer.AssertExpectations(t)
}
