// Package storage implements unit inventory: entries, exits and the
// movement history behind them.
package storage

import (
	"context"
	"errors"
	"log/slog"
	"strings"

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

func unitNotFound(id uuid.UUID) error {
	return domain.NotFoundf("unit with ID '%s' not found", id)
}

// translate names the unit when a write hit a missing foreign key.
func translate(err error, unitID uuid.UUID) error {
	var ref *domain.ReferenceError
	if errors.As(err, &ref) {
		return unitNotFound(unitID)
	}
	return err
}

// RegisterEntry adds stock. An existing (unit_id, name) line grows by the
// submitted initial quantity and takes the new price and provenance; otherwise
// a new line is created. Either way an entry movement is recorded.
func (s *Service) RegisterEntry(ctx context.Context, in dto.StorageEntry) (*dto.StorageRead, error) {
	log := s.logger.With("handler", "RegisterEntry", "unit_id", in.UnitID, "name", in.Name)
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Validationf("name is required")
	}
	if !domain.IsValidStorageType(in.Type) {
		return nil, domain.Validationf("type must be '%s' or '%s'", domain.StorageTypeBought, domain.StorageTypeDonated)
	}
	if !in.Amount.IsPositive() {
		return nil, domain.Validationf("amount must be greater than 0")
	}
	date, err := domain.ParseDate(in.Date)
	if err != nil {
		return nil, err
	}

	var result *domain.StorageItem
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if ok, err := uow.Units().Exists(ctx, repository.Eq("id", in.UnitID)); err != nil {
			return err
		} else if !ok {
			return unitNotFound(in.UnitID)
		}

		item, err := uow.Storage().FindOne(ctx,
			repository.Eq("unit_id", in.UnitID),
			repository.Eq("name", name),
			repository.ForUpdate(),
		)
		switch {
		case err == nil:
			if in.InitialQuantity <= 0 {
				return domain.Validationf("initial_quantity must be greater than 0 for an existing item")
			}
			fields := map[string]any{
				"initial_quantity": item.InitialQuantity + in.InitialQuantity,
				"amount":           in.Amount,
				"type":             in.Type,
			}
			if in.MeasureUnit != nil {
				fields["measure_unit"] = *in.MeasureUnit
			}
			result, err = uow.Storage().Update(ctx, item.ID, fields)
			if err != nil {
				return err
			}
		case errors.Is(err, domain.ErrNotFound):
			if err := domain.ValidateQuantities(in.InitialQuantity, in.UsedQuantity); err != nil {
				return err
			}
			result = &domain.StorageItem{
				ID:              uuid.New(),
				UnitID:          in.UnitID,
				Name:            name,
				Amount:          in.Amount,
				Type:            in.Type,
				InitialQuantity: in.InitialQuantity,
				UsedQuantity:    in.UsedQuantity,
			}
			if in.MeasureUnit != nil {
				result.MeasureUnit = *in.MeasureUnit
			}
			if err := uow.Storage().Create(ctx, result); err != nil {
				return err
			}
		default:
			return err
		}

		return uow.StorageMovements().Create(ctx, &domain.StorageMovement{
			ID:          uuid.New(),
			UnitID:      in.UnitID,
			StorageID:   result.ID,
			Name:        name,
			Kind:        domain.MovementEntry,
			Quantity:    in.InitialQuantity,
			Responsible: in.Responsible,
			Date:        date,
			Supplier:    in.Supplier,
			Invoice:     in.Invoice,
		})
	})
	if err != nil {
		log.Warn("Storage entry rejected", "error", err)
		return nil, translate(err, in.UnitID)
	}
	log.Info("Storage entry registered", "storage_id", result.ID, "quantity", in.InitialQuantity)
	return dto.ToStorageRead(result), nil
}

// RegisterExit consumes stock for every requested item. The exit is applied
// as a whole: if any item is missing or short, nothing changes.
func (s *Service) RegisterExit(ctx context.Context, in dto.StorageExit) ([]*dto.StorageRead, error) {
	log := s.logger.With("handler", "RegisterExit", "unit_id", in.UnitID)
	if len(in.Items) == 0 {
		return nil, domain.Validationf("items must not be empty")
	}
	date, err := domain.ParseDate(in.Date)
	if err != nil {
		return nil, err
	}

	updated := make([]*domain.StorageItem, 0, len(in.Items))
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		for _, req := range in.Items {
			name := strings.TrimSpace(req.Name)
			item, err := uow.Storage().FindOne(ctx,
				repository.Eq("unit_id", in.UnitID),
				repository.Eq("name", name),
				repository.ForUpdate(),
			)
			if errors.Is(err, domain.ErrNotFound) {
				return domain.NotFoundf("item '%s' not found in unit '%s'", name, in.UnitID)
			}
			if err != nil {
				return err
			}
			used, err := item.Consume(req.UsedQuantity)
			if err != nil {
				return err
			}
			next, err := uow.Storage().Update(ctx, item.ID, map[string]any{"used_quantity": used})
			if err != nil {
				return err
			}
			err = uow.StorageMovements().Create(ctx, &domain.StorageMovement{
				ID:          uuid.New(),
				UnitID:      in.UnitID,
				StorageID:   item.ID,
				Name:        item.Name,
				Kind:        domain.MovementExit,
				Quantity:    req.UsedQuantity,
				Responsible: in.Responsible,
				Date:        date,
				Purpose:     &in.Purpose,
				Notes:       in.Notes,
			})
			if err != nil {
				return err
			}
			updated = append(updated, next)
		}
		return nil
	})
	if err != nil {
		log.Warn("Storage exit rejected", "error", err)
		return nil, translate(err, in.UnitID)
	}
	log.Info("Storage exit registered", "items", len(updated))
	return dto.ToStorageReads(updated), nil
}

// List returns the inventory of one unit ordered by name.
func (s *Service) List(ctx context.Context, unitID uuid.UUID) ([]*dto.StorageRead, error) {
	items, err := s.uow.Storage().List(ctx,
		repository.Eq("unit_id", unitID),
		repository.OrderBy("name", false),
	)
	if err != nil {
		return nil, err
	}
	return dto.ToStorageReads(items), nil
}

func (s *Service) GetByName(ctx context.Context, unitID uuid.UUID, name string) (*dto.StorageRead, error) {
	item, err := s.uow.Storage().FindOne(ctx,
		repository.Eq("unit_id", unitID),
		repository.Eq("name", strings.TrimSpace(name)),
	)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NotFoundf("item '%s' not found in unit '%s'", name, unitID)
	}
	if err != nil {
		return nil, err
	}
	return dto.ToStorageRead(item), nil
}

// UpdateUsedQuantity sets the used quantity of an item to an absolute value.
func (s *Service) UpdateUsedQuantity(ctx context.Context, id uuid.UUID, used int) (*dto.StorageRead, error) {
	var result *domain.StorageItem
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		item, err := uow.Storage().FindOne(ctx, repository.Eq("id", id), repository.ForUpdate())
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NotFoundf("storage item with ID '%s' not found", id)
		}
		if err != nil {
			return err
		}
		if err := domain.ValidateQuantities(item.InitialQuantity, used); err != nil {
			return err
		}
		result, err = uow.Storage().Update(ctx, id, map[string]any{"used_quantity": used})
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("Used quantity set", "handler", "UpdateUsedQuantity", "storage_id", id, "used_quantity", used)
	return dto.ToStorageRead(result), nil
}

// ListMovements returns the movement history of a unit, newest first. kind
// may be empty, "entry" or "exit".
func (s *Service) ListMovements(ctx context.Context, unitID uuid.UUID, kind string) ([]*dto.StorageMovementRead, error) {
	if kind != "" && kind != domain.MovementEntry && kind != domain.MovementExit {
		return nil, domain.Validationf("kind must be '%s' or '%s'", domain.MovementEntry, domain.MovementExit)
	}
	ms, err := s.uow.StorageMovements().List(ctx,
		repository.Eq("unit_id", unitID),
		repository.When(kind != "", repository.Eq("kind", kind)),
		repository.OrderBy("date", true),
		repository.OrderBy("created_at", true),
	)
	if err != nil {
		return nil, err
	}
	return dto.ToStorageMovementReads(ms), nil
}
