// Package auth covers login, JWT issuance and the code-based email
// verification and password reset flows.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/unas-org/unas-backend/pkg/config"
	"github.com/unas-org/unas-backend/pkg/domain"
	"github.com/unas-org/unas-backend/pkg/dto"
	"github.com/unas-org/unas-backend/pkg/provider"
	"github.com/unas-org/unas-backend/pkg/repository"
	"github.com/unas-org/unas-backend/pkg/service/code"
	"github.com/unas-org/unas-backend/pkg/utils"
)

const TokenType = "bearer"

var (
	ErrInvalidCredentials = fmt.Errorf("%w: invalid email or password", domain.ErrUnauthorized)
	ErrInvalidToken       = fmt.Errorf("%w: invalid or expired token", domain.ErrUnauthorized)
	ErrPasswordMismatch   = domain.Validationf("password and confirmation do not match")
	ErrAlreadyVerified    = domain.Validationf("email already verified")
)

// dummyHash is compared against when the email is unknown so that both
// branches of Login pay for one bcrypt comparison.
var dummyHash = sync.OnceValue(func() string {
	h, err := utils.HashPassword("unas-timing-guard")
	if err != nil {
		return ""
	}
	return h
})

type Service struct {
	uow    repository.UnitOfWork
	codes  *code.Service
	mailer provider.Mailer
	cfg    *config.Jwt
	logger *slog.Logger
	now    func() time.Time
}

func New(
	uow repository.UnitOfWork,
	codes *code.Service,
	mailer provider.Mailer,
	cfg *config.Jwt,
	logger *slog.Logger,
) *Service {
	return &Service{
		uow:    uow,
		codes:  codes,
		mailer: mailer,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// Login checks the credentials of an active user and issues an access token.
func (s *Service) Login(ctx context.Context, email, password string) (*dto.LoginResponse, error) {
	log := s.logger.With("handler", "Login")
	u, err := s.uow.Users().FindOne(ctx, repository.Eq("email", domain.NormalizeEmail(email)))
	if errors.Is(err, domain.ErrNotFound) {
		_ = utils.CheckPasswordHash(password, dummyHash())
		log.Warn("Login failed", "reason", "unknown email")
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		log.Error("Failed to look up user", "error", err)
		return nil, err
	}
	if !utils.CheckPasswordHash(password, u.Password) {
		log.Warn("Login failed", "reason", "wrong password", "user_id", u.ID)
		return nil, ErrInvalidCredentials
	}
	if !u.Active {
		log.Warn("Login failed", "reason", "inactive user", "user_id", u.ID)
		return nil, ErrInvalidCredentials
	}
	token, err := s.GenerateToken(u.ID)
	if err != nil {
		log.Error("Failed to sign token", "error", err)
		return nil, err
	}
	log.Info("Login successful", "user_id", u.ID)
	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   TokenType,
		User:        dto.ToUserRead(u),
	}, nil
}

// GenerateToken signs an HS256 token with sub, iat and exp claims.
func (s *Service) GenerateToken(userID uuid.UUID) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID.String(),
		"iat": now.Unix(),
		"exp": now.Add(s.cfg.Expiry).Unix(),
	})
	return token.SignedString([]byte(s.cfg.Secret))
}

// ValidateToken checks signature and expiry and returns the claims.
func (s *Service) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return []byte(s.cfg.Secret), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		s.logger.Debug("Token rejected", "handler", "ValidateToken", "error", err)
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// UserIDFromToken extracts the subject of a token already verified by the
// JWT middleware.
func (s *Service) UserIDFromToken(token *jwt.Token) (uuid.UUID, error) {
	if token == nil {
		return uuid.Nil, ErrInvalidToken
	}
	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return uuid.Nil, ErrInvalidToken
	}
	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	return id, nil
}

// SendResetCode mails a six-digit reset code. Unknown emails are ignored so
// the caller cannot tell which addresses are registered.
func (s *Service) SendResetCode(ctx context.Context, email string) error {
	log := s.logger.With("handler", "SendResetCode")
	u, err := s.uow.Users().FindOne(ctx, repository.Eq("email", domain.NormalizeEmail(email)))
	if errors.Is(err, domain.ErrNotFound) {
		log.Info("Reset requested for unknown email")
		return nil
	}
	if err != nil {
		return err
	}
	c, err := s.codes.Issue(ctx, u.ID, domain.CodeResetPassword)
	if err != nil {
		return err
	}
	if err := s.mailer.SendPasswordReset(ctx, recipient(u), c.Code); err != nil {
		log.Error("Failed to mail reset code", "user_id", u.ID, "error", err)
		return nil
	}
	log.Info("Reset code sent", "user_id", u.ID)
	return nil
}

// ValidateResetCode consumes a reset code and exchanges it for a reset token.
func (s *Service) ValidateResetCode(ctx context.Context, value string) (string, error) {
	var token string
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		c, err := s.codes.VerifyTx(ctx, uow, value, domain.CodeResetPassword)
		if err != nil {
			return err
		}
		if _, err := uow.Users().Get(ctx, c.UserID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return code.ErrInvalidCode
			}
			return err
		}
		issued, err := s.codes.IssueTx(ctx, uow, c.UserID, domain.CodeResetPasswordToken)
		if err != nil {
			return err
		}
		token = issued.Code
		return nil
	})
	if err != nil {
		s.logger.Warn("Reset code rejected", "handler", "ValidateResetCode", "error", err)
		return "", err
	}
	return token, nil
}

// VerifyEmail consumes an email verification code and marks the address verified.
func (s *Service) VerifyEmail(ctx context.Context, value string) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		c, err := s.codes.VerifyTx(ctx, uow, value, domain.CodeEmailVerification)
		if err != nil {
			return err
		}
		_, err = uow.Users().Update(ctx, c.UserID, map[string]any{"email_verified": true})
		if errors.Is(err, domain.ErrNotFound) {
			return code.ErrInvalidCode
		}
		return err
	})
	if err != nil {
		s.logger.Warn("Email verification failed", "handler", "VerifyEmail", "error", err)
	}
	return err
}

// SendVerificationCode issues and mails a fresh email verification code.
func (s *Service) SendVerificationCode(ctx context.Context, email string) error {
	log := s.logger.With("handler", "SendVerificationCode")
	u, err := s.uow.Users().FindOne(ctx, repository.Eq("email", domain.NormalizeEmail(email)))
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NotFoundf("user with email '%s' not found", email)
	}
	if err != nil {
		return err
	}
	if u.EmailVerified {
		return ErrAlreadyVerified
	}
	c, err := s.codes.Issue(ctx, u.ID, domain.CodeEmailVerification)
	if err != nil {
		return err
	}
	if err := s.mailer.SendEmailVerification(ctx, recipient(u), c.Code); err != nil {
		log.Error("Failed to mail verification code", "user_id", u.ID, "error", err)
		return fmt.Errorf("send verification email: %w", err)
	}
	log.Info("Verification code sent", "user_id", u.ID)
	return nil
}

// ResetPassword consumes a reset token (or a raw reset code) and stores the
// new password.
func (s *Service) ResetPassword(ctx context.Context, token, password, confirm string) error {
	log := s.logger.With("handler", "ResetPassword")
	if password != confirm {
		return ErrPasswordMismatch
	}
	if len(password) < domain.MinPasswordLength {
		return domain.Validationf("password must have at least %d characters", domain.MinPasswordLength)
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		c, err := s.codes.VerifyTx(ctx, uow, token, domain.CodeResetPasswordToken, domain.CodeResetPassword)
		if err != nil {
			return err
		}
		_, err = uow.Users().Update(ctx, c.UserID, map[string]any{"password": hash})
		if errors.Is(err, domain.ErrNotFound) {
			return code.ErrInvalidCode
		}
		return err
	})
	if err != nil {
		log.Warn("Password reset failed", "error", err)
		return err
	}
	log.Info("Password reset")
	return nil
}

func recipient(u *domain.User) provider.Recipient {
	return provider.Recipient{Email: u.Email, Username: u.Username}
}
