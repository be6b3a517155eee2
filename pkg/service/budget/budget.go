// Package budget manages funding envelopes.
package budget

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
	return domain.NotFoundf("budget with ID '%s' not found", id)
}

func (s *Service) Create(ctx context.Context, in dto.BudgetCreate) (*dto.BudgetRead, error) {
	start, err := domain.ParseDate(in.InitialDate)
	if err != nil {
		return nil, err
	}
	end, err := domain.ParseDate(in.FinalDate)
	if err != nil {
		return nil, err
	}
	b := &domain.Budget{
		ID:          uuid.New(),
		Description: in.Description,
		InitialDate: start,
		FinalDate:   end,
		Amount:      in.Amount,
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if err := s.uow.Budgets().Create(ctx, b); err != nil {
		s.logger.Error("Failed to create budget", "handler", "Create", "error", err)
		return nil, err
	}
	s.logger.Info("Budget created", "handler", "Create", "budget_id", b.ID)
	return dto.ToBudgetRead(b), nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*dto.BudgetRead, error) {
	b, err := s.uow.Budgets().Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, err
	}
	return dto.ToBudgetRead(b), nil
}

// List returns budgets starting on or after f.InitialDate and ending on or
// before f.FinalDate, ordered by initial date.
func (s *Service) List(ctx context.Context, f dto.BudgetFilter) ([]*dto.BudgetRead, error) {
	opts := []repository.Option{repository.OrderBy("initial_date", false)}
	if f.InitialDate != "" {
		d, err := domain.ParseDate(f.InitialDate)
		if err != nil {
			return nil, err
		}
		opts = append(opts, repository.Gte("initial_date", d))
	}
	if f.FinalDate != "" {
		d, err := domain.ParseDate(f.FinalDate)
		if err != nil {
			return nil, err
		}
		opts = append(opts, repository.Lte("final_date", d))
	}
	budgets, err := s.uow.Budgets().List(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return dto.ToBudgetReads(budgets), nil
}

// Update merges in with the stored budget and validates the result before
// writing it.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in dto.BudgetUpdate) (*dto.BudgetRead, error) {
	var out *domain.Budget
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		b, err := uow.Budgets().FindOne(ctx, repository.Eq("id", id), repository.ForUpdate())
		if errors.Is(err, domain.ErrNotFound) {
			return notFound(id)
		}
		if err != nil {
			return err
		}
		fields := map[string]any{}
		if in.Description != nil {
			b.Description = *in.Description
			fields["description"] = b.Description
		}
		if in.InitialDate != nil {
			if b.InitialDate, err = domain.ParseDate(*in.InitialDate); err != nil {
				return err
			}
			fields["initial_date"] = b.InitialDate
		}
		if in.FinalDate != nil {
			if b.FinalDate, err = domain.ParseDate(*in.FinalDate); err != nil {
				return err
			}
			fields["final_date"] = b.FinalDate
		}
		if in.Amount != nil {
			b.Amount = *in.Amount
			fields["amount"] = b.Amount
		}
		if err := b.Validate(); err != nil {
			return err
		}
		out, err = uow.Budgets().Update(ctx, id, fields)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("Budget updated", "handler", "Update", "budget_id", id)
	return dto.ToBudgetRead(out), nil
}

// Delete removes the budget unless an order still references it.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		ok, err := uow.Budgets().Exists(ctx, repository.Eq("id", id))
		if err != nil {
			return err
		}
		if !ok {
			return notFound(id)
		}
		used, err := uow.Orders().Count(ctx, repository.Eq("budget_id", id))
		if err != nil {
			return err
		}
		if used > 0 {
			return domain.Validationf("budget with ID '%s' is referenced by %d order(s) and cannot be deleted", id, used)
		}
		return uow.Budgets().Delete(ctx, id)
	})
	if err != nil {
		s.logger.Warn("Budget not deleted", "handler", "Delete", "budget_id", id, "error", err)
		return err
	}
	s.logger.Info("Budget deleted", "handler", "Delete", "budget_id", id)
	return nil
}
