// Package frequency records daily attendance per unit.
package frequency

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/unas-org/unas-backend/pkg/domain"
	"github.com/unas-org/unas-backend/pkg/dto"
	"github.com/unas-org/unas-backend/pkg/repository"
	"gorm.io/datatypes"
)

type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

func notFound(id uuid.UUID) error {
	return domain.NotFoundf("frequency with ID '%s' not found", id)
}

func duplicate(unitID uuid.UUID, date datatypes.Date) error {
	return domain.Conflictf("frequency for unit '%s' on %s already exists", unitID, domain.FormatDate(date))
}

// Create stores the attendance of a unit for one day. A second record for
// the same unit and day is a conflict.
func (s *Service) Create(ctx context.Context, in dto.FrequencyCreate) (*dto.FrequencyRead, error) {
	if in.Amount < 0 {
		return nil, domain.Validationf("amount must be greater than or equal to 0")
	}
	date, err := domain.ParseDate(in.Date)
	if err != nil {
		return nil, err
	}
	f := &domain.Frequency{ID: uuid.New(), UnitID: in.UnitID, Amount: in.Amount, Date: date}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if ok, err := uow.Units().Exists(ctx, repository.Eq("id", in.UnitID)); err != nil {
			return err
		} else if !ok {
			return domain.NotFoundf("unit with ID '%s' not found", in.UnitID)
		}
		taken, err := uow.Frequencies().Exists(ctx,
			repository.Eq("unit_id", in.UnitID),
			repository.Eq("date", date),
		)
		if err != nil {
			return err
		}
		if taken {
			return duplicate(in.UnitID, date)
		}
		return uow.Frequencies().Create(ctx, f)
	})
	if errors.Is(err, domain.ErrAlreadyExists) {
		err = duplicate(in.UnitID, date)
	}
	if err != nil {
		s.logger.Warn("Frequency rejected", "handler", "Create", "unit_id", in.UnitID, "error", err)
		return nil, err
	}
	s.logger.Info("Frequency recorded", "handler", "Create", "frequency_id", f.ID)
	return dto.ToFrequencyRead(f), nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*dto.FrequencyRead, error) {
	f, err := s.uow.Frequencies().Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, err
	}
	return dto.ToFrequencyRead(f), nil
}

// List returns records with InitialDate <= date <= FinalDate, newest first.
func (s *Service) List(ctx context.Context, f dto.FrequencyFilter) ([]*dto.FrequencyRead, error) {
	opts := []repository.Option{
		repository.When(f.UnitID != nil, repository.Eq("unit_id", f.UnitID)),
		repository.OrderBy("date", true),
	}
	if f.InitialDate != "" {
		d, err := domain.ParseDate(f.InitialDate)
		if err != nil {
			return nil, err
		}
		opts = append(opts, repository.Gte("date", d))
	}
	if f.FinalDate != "" {
		d, err := domain.ParseDate(f.FinalDate)
		if err != nil {
			return nil, err
		}
		opts = append(opts, repository.Lte("date", d))
	}
	fs, err := s.uow.Frequencies().List(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return dto.ToFrequencyReads(fs), nil
}

// Update changes the amount or moves the record to another day, as long as
// that day is free for the unit.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in dto.FrequencyUpdate) (*dto.FrequencyRead, error) {
	if in.Amount != nil && *in.Amount < 0 {
		return nil, domain.Validationf("amount must be greater than or equal to 0")
	}
	var out *domain.Frequency
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		cur, err := uow.Frequencies().FindOne(ctx, repository.Eq("id", id), repository.ForUpdate())
		if errors.Is(err, domain.ErrNotFound) {
			return notFound(id)
		}
		if err != nil {
			return err
		}
		fields := map[string]any{}
		if in.Amount != nil {
			fields["amount"] = *in.Amount
		}
		if in.Date != nil {
			date, err := domain.ParseDate(*in.Date)
			if err != nil {
				return err
			}
			taken, err := uow.Frequencies().Exists(ctx,
				repository.Eq("unit_id", cur.UnitID),
				repository.Eq("date", date),
				repository.NotEq("id", id),
			)
			if err != nil {
				return err
			}
			if taken {
				return duplicate(cur.UnitID, date)
			}
			fields["date"] = date
		}
		out, err = uow.Frequencies().Update(ctx, id, fields)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("Frequency updated", "handler", "Update", "frequency_id", id)
	return dto.ToFrequencyRead(out), nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.uow.Frequencies().Delete(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return notFound(id)
	}
	if err != nil {
		return err
	}
	s.logger.Info("Frequency deleted", "handler", "Delete", "frequency_id", id)
	return nil
}
