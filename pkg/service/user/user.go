// Package user provides business logic for user registration and management.
package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/unas-org/unas-backend/pkg/domain"
	"github.com/unas-org/unas-backend/pkg/dto"
	"github.com/unas-org/unas-backend/pkg/provider"
	"github.com/unas-org/unas-backend/pkg/repository"
	"github.com/unas-org/unas-backend/pkg/service/code"
	"github.com/unas-org/unas-backend/pkg/utils"
)

// Service provides business logic for user operations.
type Service struct {
	uow    repository.UnitOfWork
	codes  *code.Service
	mailer provider.Mailer
	logger *slog.Logger
}

// New creates a new Service. mailer may be nil, in which case no
// verification mail is sent on registration.
func New(
	uow repository.UnitOfWork,
	codes *code.Service,
	mailer provider.Mailer,
	logger *slog.Logger,
) *Service {
	return &Service{uow: uow, codes: codes, mailer: mailer, logger: logger}
}

// Register creates an active, unverified user and mails an email
// verification code. Mail failures are logged, not returned.
func (s *Service) Register(ctx context.Context, in dto.UserCreate) (*dto.UserRead, error) {
	log := s.logger.With("handler", "Register")
	email := domain.NormalizeEmail(in.Email)
	if !utils.IsEmail(email) {
		return nil, domain.Validationf("invalid email %q", in.Email)
	}
	if len(in.Password) < domain.MinPasswordLength {
		return nil, domain.Validationf("password must have at least %d characters", domain.MinPasswordLength)
	}
	exists, err := s.uow.Users().Exists(ctx, repository.Eq("email", email))
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errAlreadyRegistered(email)
	}
	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := domain.NewUser(email, hash, in.Username, in.Role)
	if err := s.uow.Users().Create(ctx, u); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, errAlreadyRegistered(email)
		}
		log.Error("Failed to create user", "error", err)
		return nil, err
	}
	log.Info("User registered", "user_id", u.ID)
	s.sendVerification(ctx, u)
	return dto.ToUserRead(u), nil
}

func (s *Service) sendVerification(ctx context.Context, u *domain.User) {
	if s.codes == nil || s.mailer == nil {
		return
	}
	log := s.logger.With("handler", "sendVerification", "user_id", u.ID)
	c, err := s.codes.Issue(ctx, u.ID, domain.CodeEmailVerification)
	if err != nil {
		log.Error("Failed to issue verification code", "error", err)
		return
	}
	to := provider.Recipient{Email: u.Email, Username: u.Username}
	if err := s.mailer.SendEmailVerification(ctx, to, c.Code); err != nil {
		log.Error("Failed to mail verification code", "error", err)
	}
}

func errAlreadyRegistered(email string) error {
	return fmt.Errorf("%w: email '%s' is already registered", domain.ErrAlreadyExists, email)
}

// List returns every user, optionally restricted to one role.
func (s *Service) List(ctx context.Context, role string) ([]*dto.UserRead, error) {
	users, err := s.uow.Users().List(ctx,
		repository.When(role != "", repository.Eq("role", role)),
		repository.OrderBy("created_at", false),
	)
	if err != nil {
		return nil, err
	}
	return dto.ToUserReads(users), nil
}

// Get returns the user with the ids of the units it belongs to.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*dto.UserRead, error) {
	u, err := s.uow.Users().Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NotFoundf("user with ID '%s' not found", id)
	}
	if err != nil {
		return nil, err
	}
	links, err := s.uow.UnitUsers().List(ctx,
		repository.Eq("user_id", id),
		repository.OrderBy("created_at", false),
	)
	if err != nil {
		return nil, err
	}
	out := dto.ToUserRead(u)
	out.Units = make([]uuid.UUID, 0, len(links))
	for _, l := range links {
		out.Units = append(out.Units, l.UnitID)
	}
	return out, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in dto.UserUpdate) (*dto.UserRead, error) {
	fields := map[string]any{}
	if in.Username != nil {
		fields["username"] = *in.Username
	}
	if in.Role != nil {
		fields["role"] = *in.Role
	}
	u, err := s.uow.Users().Update(ctx, id, fields)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NotFoundf("user with ID '%s' not found", id)
	}
	if err != nil {
		return nil, err
	}
	s.logger.Info("User updated", "handler", "Update", "user_id", id)
	return dto.ToUserRead(u), nil
}

// Delete deactivates the user. The row is kept for the memberships and
// codes that reference it.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := s.uow.Users().Update(ctx, id, map[string]any{"active": false})
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NotFoundf("user with ID '%s' not found", id)
	}
	if err != nil {
		return err
	}
	s.logger.Info("User deactivated", "handler", "Delete", "user_id", id)
	return nil
}
