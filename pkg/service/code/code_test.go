package code_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unas-org/unas-backend/internal/fixtures"
	"github.com/unas-org/unas-backend/pkg/config"
	"github.com/unas-org/unas-backend/pkg/domain"
	"github.com/unas-org/unas-backend/pkg/repository"
	"github.com/unas-org/unas-backend/pkg/service/code"
)

func newService(t *testing.T) (*code.Service, repository.UnitOfWork, *domain.User) {
	t.Helper()
	uow := fixtures.NewTestUoW(t)
	u := fixtures.SeedUser(t, uow, "ana@unas.org.br", "secret1")
	return code.New(uow, &config.Code{TTL: 30 * time.Minute}, fixtures.Logger()), uow, u
}

func TestIssue_RevokesPreviousCodeOfSameType(t *testing.T) {
	t.Parallel()
	svc, uow, u := newService(t)
	ctx := context.Background()

	first, err := svc.Issue(ctx, u.ID, domain.CodeResetPassword)
	require.NoError(t, err)
	other, err := svc.Issue(ctx, u.ID, domain.CodeEmailVerification)
	require.NoError(t, err)
	second, err := svc.Issue(ctx, u.ID, domain.CodeResetPassword)
	require.NoError(t, err)

	stored, err := uow.SecurityCodes().Get(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, stored.Revoked)

	stored, err = uow.SecurityCodes().Get(ctx, second.ID)
	require.NoError(t, err)
	assert.False(t, stored.Revoked)

	stored, err = uow.SecurityCodes().Get(ctx, other.ID)
	require.NoError(t, err)
	assert.False(t, stored.Revoked, "codes of other purposes stay active")

	active, err := uow.SecurityCodes().Count(ctx,
		repository.Eq("user_id", u.ID),
		repository.Eq("type", string(domain.CodeResetPassword)),
		repository.Eq("revoked", false),
	)
	require.NoError(t, err)
	assert.EqualValues(t, 1, active)
}

func TestIssue_InvalidType(t *testing.T) {
	t.Parallel()
	svc, _, u := newService(t)
	_, err := svc.Issue(context.Background(), u.ID, "magic_link")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestVerify_ConsumesCode(t *testing.T) {
	t.Parallel()
	svc, _, u := newService(t)
	ctx := context.Background()

	issued, err := svc.Issue(ctx, u.ID, domain.CodeResetPassword)
	require.NoError(t, err)

	got, err := svc.Verify(ctx, issued.Code, domain.CodeResetPassword, domain.CodeResetPasswordToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.UserID)
	assert.True(t, got.Revoked)

	_, err = svc.Verify(ctx, issued.Code, domain.CodeResetPassword)
	assert.ErrorIs(t, err, code.ErrInvalidCode)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestVerify_Rejections(t *testing.T) {
	t.Parallel()
	svc, uow, u := newService(t)
	ctx := context.Background()

	issued, err := svc.Issue(ctx, u.ID, domain.CodeEmailVerification)
	require.NoError(t, err)

	t.Run("wrong purpose", func(t *testing.T) {
		_, err := svc.Verify(ctx, issued.Code, domain.CodeResetPassword)
		assert.ErrorIs(t, err, code.ErrInvalidCode)
	})

	t.Run("unknown code", func(t *testing.T) {
		_, err := svc.Verify(ctx, "UNAS_"+uuid.NewString(), domain.CodeEmailVerification)
		assert.ErrorIs(t, err, code.ErrInvalidCode)
	})

	t.Run("empty code", func(t *testing.T) {
		_, err := svc.Verify(ctx, "", domain.CodeEmailVerification)
		assert.ErrorIs(t, err, code.ErrInvalidCode)
	})

	t.Run("expired", func(t *testing.T) {
		old := &domain.SecurityCode{
			ID:        uuid.New(),
			UserID:    u.ID,
			Code:      "123456",
			Type:      domain.CodeResetPassword,
			CreatedAt: time.Now().Add(-2 * time.Hour),
		}
		require.NoError(t, uow.SecurityCodes().Create(ctx, old))
		_, err := svc.Verify(ctx, old.Code, domain.CodeResetPassword)
		assert.ErrorIs(t, err, code.ErrInvalidCode)

		stored, err := uow.SecurityCodes().Get(ctx, old.ID)
		require.NoError(t, err)
		assert.False(t, stored.Revoked)
	})

	t.Run("still valid after rejections", func(t *testing.T) {
		_, err := svc.Verify(ctx, issued.Code, domain.CodeEmailVerification)
		assert.NoError(t, err)
	})
}
