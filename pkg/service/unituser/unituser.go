// Package unituser manages which users belong to which units.
package unituser

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/unas-org/unas-backend/pkg/domain"
	"github.com/unas-org/unas-backend/pkg/dto"
	"github.com/unas-org/unas-backend/pkg/repository"
)

type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

func notFound(id uuid.UUID) error {
	return domain.NotFoundf("unit user with ID '%s' not found", id)
}

// Create links a user to a unit. Both must exist and the pair must be new.
func (s *Service) Create(ctx context.Context, in dto.UnitUserCreate) (*dto.UnitUserRead, error) {
	log := s.logger.With("handler", "Create", "unit_id", in.UnitID, "user_id", in.UserID)
	link := domain.NewUnitUser(in.UnitID, in.UserID, in.Role)
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if ok, err := uow.Users().Exists(ctx, repository.Eq("id", in.UserID)); err != nil {
			return err
		} else if !ok {
			return domain.NotFoundf("user with ID '%s' not found", in.UserID)
		}
		if ok, err := uow.Units().Exists(ctx, repository.Eq("id", in.UnitID)); err != nil {
			return err
		} else if !ok {
			return domain.NotFoundf("unit with ID '%s' not found", in.UnitID)
		}
		dup, err := uow.UnitUsers().Exists(ctx,
			repository.Eq("unit_id", in.UnitID),
			repository.Eq("user_id", in.UserID),
		)
		if err != nil {
			return err
		}
		if dup {
			return domain.Conflictf("user '%s' is already linked to unit '%s'", in.UserID, in.UnitID)
		}
		return uow.UnitUsers().Create(ctx, link)
	})
	if err != nil {
		log.Warn("Failed to link user to unit", "error", err)
		return nil, err
	}
	log.Info("User linked to unit", "unit_user_id", link.ID)
	return dto.ToUnitUserRead(link), nil
}

func (s *Service) List(ctx context.Context) ([]*dto.UnitUserRead, error) {
	links, err := s.uow.UnitUsers().List(ctx, repository.OrderBy("created_at", false))
	if err != nil {
		return nil, err
	}
	return dto.ToUnitUserReads(links), nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*dto.UnitUserRead, error) {
	link, err := s.uow.UnitUsers().Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, err
	}
	return dto.ToUnitUserRead(link), nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in dto.UnitUserUpdate) (*dto.UnitUserRead, error) {
	fields := map[string]any{}
	if in.Role != nil {
		fields["role"] = *in.Role
	}
	link, err := s.uow.UnitUsers().Update(ctx, id, fields)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, err
	}
	return dto.ToUnitUserRead(link), nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.uow.UnitUsers().Delete(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return notFound(id)
	}
	if err != nil {
		return err
	}
	s.logger.Info("User unlinked from unit", "handler", "Delete", "unit_user_id", id)
	return nil
}

// ListUnitsOfUser returns the user's memberships, oldest first.
func (s *Service) ListUnitsOfUser(ctx context.Context, userID uuid.UUID) ([]*dto.UnitUserRead, error) {
	links, err := s.uow.UnitUsers().List(ctx,
		repository.Eq("user_id", userID),
		repository.OrderBy("created_at", false),
	)
	if err != nil {
		return nil, err
	}
	return dto.ToUnitUserReads(links), nil
}

func (s *Service) ListUsersOfUnit(ctx context.Context, unitID uuid.UUID) ([]*dto.UnitUserRead, error) {
	links, err := s.uow.UnitUsers().List(ctx,
		repository.Eq("unit_id", unitID),
		repository.OrderBy("created_at", false),
	)
	if err != nil {
		return nil, err
	}
	return dto.ToUnitUserReads(links), nil
}
