// Package bootstrap seeds the first manager account and its administrative unit.
package bootstrap

import (
	"context"
	"errors"
	"log/slog"

	"github.com/unas-org/unas-backend/pkg/config"
	"github.com/unas-org/unas-backend/pkg/domain"
	"github.com/unas-org/unas-backend/pkg/dto"
	"github.com/unas-org/unas-backend/pkg/provider"
	"github.com/unas-org/unas-backend/pkg/repository"
	"github.com/unas-org/unas-backend/pkg/service/code"
	"github.com/unas-org/unas-backend/pkg/utils"
)

const (
	AdminUnitName     = "Unidade Administrativa"
	AdminUnitAddress  = "Endereço Administrativo"
	AdminUnitType     = "CCA"
	AdminUnitCapacity = 100
)

type Service struct {
	uow    repository.UnitOfWork
	codes  *code.Service
	mailer provider.Mailer
	cfg    *config.Admin
	logger *slog.Logger
}

func New(
	uow repository.UnitOfWork,
	codes *code.Service,
	mailer provider.Mailer,
	cfg *config.Admin,
	logger *slog.Logger,
) *Service {
	return &Service{uow: uow, codes: codes, mailer: mailer, cfg: cfg, logger: logger}
}

// EnsureAdmin creates the admin user, the administrative unit and the link
// between them unless a user with the admin e-mail already exists. It
// reports whether anything was created.
func (s *Service) EnsureAdmin(ctx context.Context) (*dto.UserRead, bool, error) {
	log := s.logger.With("handler", "EnsureAdmin")
	email := domain.NormalizeEmail(s.cfg.Email)
	if !utils.IsEmail(email) {
		return nil, false, domain.Validationf("invalid admin email %q", s.cfg.Email)
	}

	existing, err := s.uow.Users().FindOne(ctx, repository.Eq("email", email))
	if err == nil {
		log.Debug("Admin user already exists", "user_id", existing.ID)
		return dto.ToUserRead(existing), false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, false, err
	}

	hash, err := utils.HashPassword(s.cfg.Password)
	if err != nil {
		return nil, false, err
	}
	admin := domain.NewUser(email, hash, s.cfg.Username, domain.RoleManager)
	capacity := AdminUnitCapacity
	unit, err := domain.NewUnit(AdminUnitName, AdminUnitAddress, AdminUnitType, &capacity)
	if err != nil {
		return nil, false, err
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if err := uow.Users().Create(ctx, admin); err != nil {
			return err
		}
		if err := uow.Units().Create(ctx, unit); err != nil {
			return err
		}
		return uow.UnitUsers().Create(ctx, domain.NewUnitUser(unit.ID, admin.ID, domain.RoleManager))
	})
	if err != nil {
		log.Error("Failed to create admin user", "error", err)
		return nil, false, err
	}
	log.Info("Admin user created", "user_id", admin.ID, "unit_id", unit.ID)

	s.sendVerification(ctx, admin)
	return dto.ToUserRead(admin), true, nil
}

func (s *Service) sendVerification(ctx context.Context, u *domain.User) {
	if s.codes == nil || s.mailer == nil {
		return
	}
	c, err := s.codes.Issue(ctx, u.ID, domain.CodeEmailVerification)
	if err != nil {
		s.logger.Warn("Failed to issue admin verification code", "error", err)
		return
	}
	if err := s.mailer.SendEmailVerification(ctx, provider.Recipient{Email: u.Email, Username: u.Username}, c.Code); err != nil {
		s.logger.Warn("Failed to mail admin verification code", "error", err)
	}
}
