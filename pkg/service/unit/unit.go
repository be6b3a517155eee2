// Package unit manages the organization's physical units.
package unit

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
	return domain.NotFoundf("unit with ID '%s' not found", id)
}

func (s *Service) Create(ctx context.Context, in dto.UnitCreate) (*dto.UnitRead, error) {
	u, err := domain.NewUnit(in.Name, in.Address, in.Type, in.Capacity)
	if err != nil {
		return nil, err
	}
	if err := s.uow.Units().Create(ctx, u); err != nil {
		s.logger.Error("Failed to create unit", "handler", "Create", "error", err)
		return nil, err
	}
	s.logger.Info("Unit created", "handler", "Create", "unit_id", u.ID)
	return dto.ToUnitRead(u), nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*dto.UnitRead, error) {
	u, err := s.uow.Units().Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, err
	}
	return dto.ToUnitRead(u), nil
}

// List returns every unit, optionally only those of unitType.
func (s *Service) List(ctx context.Context, unitType string) ([]*dto.UnitRead, error) {
	return s.list(ctx,
		repository.When(unitType != "", repository.Eq("type", unitType)),
		repository.OrderBy("name", false),
	)
}

// GetByName returns the first unit with exactly this name.
func (s *Service) GetByName(ctx context.Context, name string) (*dto.UnitRead, error) {
	u, err := s.uow.Units().FindOne(ctx, repository.Eq("name", name), repository.OrderBy("created_at", false))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NotFoundf("unit with name '%s' not found", name)
	}
	if err != nil {
		return nil, err
	}
	return dto.ToUnitRead(u), nil
}

func (s *Service) ListByAddress(ctx context.Context, address string) ([]*dto.UnitRead, error) {
	return s.list(ctx, repository.Eq("address", address), repository.OrderBy("name", false))
}

func (s *Service) ListByType(ctx context.Context, unitType string) ([]*dto.UnitRead, error) {
	return s.list(ctx, repository.Eq("type", unitType), repository.OrderBy("name", false))
}

func (s *Service) list(ctx context.Context, opts ...repository.Option) ([]*dto.UnitRead, error) {
	units, err := s.uow.Units().List(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return dto.ToUnitReads(units), nil
}

// Update applies the non-nil fields of in.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in dto.UnitUpdate) (*dto.UnitRead, error) {
	if err := domain.ValidateCapacity(in.Capacity); err != nil {
		return nil, err
	}
	fields := map[string]any{}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.Validationf("unit name is required")
		}
		fields["name"] = *in.Name
	}
	if in.Address != nil {
		fields["address"] = *in.Address
	}
	if in.Type != nil {
		fields["type"] = *in.Type
	}
	if in.Capacity != nil {
		fields["capacity"] = *in.Capacity
	}
	u, err := s.uow.Units().Update(ctx, id, fields)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, err
	}
	s.logger.Info("Unit updated", "handler", "Update", "unit_id", id)
	return dto.ToUnitRead(u), nil
}

// Delete removes the unit. Units still referenced by other records are
// reported as a conflict.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.uow.Units().Delete(ctx, id)
	var ref *domain.ReferenceError
	switch {
	case errors.As(err, &ref):
		return domain.Conflictf("unit with ID '%s' is still referenced by other records", id)
	case errors.Is(err, domain.ErrNotFound):
		return notFound(id)
	case err != nil:
		return err
	}
	s.logger.Info("Unit deleted", "handler", "Delete", "unit_id", id)
	return nil
}
