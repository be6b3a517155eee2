// Package order handles purchase and donation orders and their items.
package order

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
	return domain.NotFoundf("order with ID '%s' not found", id)
}

// checkRefs makes sure the optional unit and budget exist. PostgreSQL would
// reject them anyway; checking first lets the error name the id.
func checkRefs(ctx context.Context, uow repository.UnitOfWork, unitID, budgetID *uuid.UUID) error {
	if unitID != nil {
		ok, err := uow.Units().Exists(ctx, repository.Eq("id", *unitID))
		if err != nil {
			return err
		}
		if !ok {
			return domain.NotFoundf("unit with ID '%s' not found", *unitID)
		}
	}
	if budgetID != nil {
		ok, err := uow.Budgets().Exists(ctx, repository.Eq("id", *budgetID))
		if err != nil {
			return err
		}
		if !ok {
			return domain.NotFoundf("budget with ID '%s' not found", *budgetID)
		}
	}
	return nil
}

// translate names the failing reference of a write when the driver reports one.
func translate(err error, orderID uuid.UUID, unitID, budgetID *uuid.UUID) error {
	var ref *domain.ReferenceError
	if !errors.As(err, &ref) {
		return err
	}
	switch {
	case ref.Column == "unit_id" && unitID != nil:
		return domain.NotFoundf("unit with ID '%s' not found", *unitID)
	case ref.Column == "budget_id" && budgetID != nil:
		return domain.NotFoundf("budget with ID '%s' not found", *budgetID)
	default:
		return notFound(orderID)
	}
}

// Create stores the order and its items in one transaction. When the order
// has items and no amount (or a zero amount), the amount becomes the sum of
// the items.
func (s *Service) Create(ctx context.Context, in dto.OrderCreate) (*dto.OrderRead, error) {
	log := s.logger.With("handler", "Create")
	for _, it := range in.Items {
		if it.Amount.IsNegative() {
			return nil, domain.Validationf("item amount must be greater than or equal to 0")
		}
	}
	if in.Amount != nil && in.Amount.IsNegative() {
		return nil, domain.Validationf("amount must be greater than or equal to 0")
	}

	o := &domain.Order{
		ID:          uuid.New(),
		Description: in.Description,
		Amount:      in.Amount,
		UnitID:      in.UnitID,
		BudgetID:    in.BudgetID,
		Status:      domain.OrderPending,
	}
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if err := checkRefs(ctx, uow, in.UnitID, in.BudgetID); err != nil {
			return err
		}
		if err := uow.Orders().Create(ctx, o); err != nil {
			return err
		}
		for _, req := range in.Items {
			it := domain.OrderItem{
				ID:          uuid.New(),
				OrderID:     o.ID,
				Description: req.Description,
				Amount:      req.Amount,
				MeasureUnit: domain.DefaultMeasureUnit,
				Received:    true,
			}
			if req.MeasureUnit != nil && *req.MeasureUnit != "" {
				it.MeasureUnit = *req.MeasureUnit
			}
			if req.Received != nil {
				it.Received = *req.Received
			}
			if err := uow.OrderItems().Create(ctx, &it); err != nil {
				return err
			}
			o.Items = append(o.Items, it)
		}
		if len(o.Items) > 0 && o.AmountOrZero().IsZero() {
			total := domain.SumItems(o.Items)
			updated, err := uow.Orders().Update(ctx, o.ID, map[string]any{"amount": total})
			if err != nil {
				return err
			}
			o.Amount = updated.Amount
		}
		return nil
	})
	if err != nil {
		log.Warn("Failed to create order", "error", err)
		return nil, translate(err, o.ID, in.UnitID, in.BudgetID)
	}
	log.Info("Order created", "order_id", o.ID, "items", len(o.Items))
	return dto.ToOrderRead(o), nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*dto.OrderRead, error) {
	o, err := s.uow.Orders().Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, err
	}
	if err := LoadItems(ctx, s.uow, []*domain.Order{o}); err != nil {
		return nil, err
	}
	return dto.ToOrderRead(o), nil
}

// List returns orders newest first, optionally filtered by unit and budget.
func (s *Service) List(ctx context.Context, unitID, budgetID *uuid.UUID) ([]*dto.OrderRead, error) {
	orders, err := s.uow.Orders().List(ctx,
		repository.When(unitID != nil, repository.Eq("unit_id", unitID)),
		repository.When(budgetID != nil, repository.Eq("budget_id", budgetID)),
		repository.OrderBy("created_at", true),
	)
	if err != nil {
		return nil, err
	}
	if err := LoadItems(ctx, s.uow, orders); err != nil {
		return nil, err
	}
	return dto.ToOrderReads(orders), nil
}

func (s *Service) ListByUnit(ctx context.Context, unitID uuid.UUID) ([]*dto.OrderRead, error) {
	return s.List(ctx, &unitID, nil)
}

func (s *Service) ListByBudget(ctx context.Context, budgetID uuid.UUID) ([]*dto.OrderRead, error) {
	return s.List(ctx, nil, &budgetID)
}

// LoadItems fills o.Items for every order using one query.
func LoadItems(ctx context.Context, uow repository.UnitOfWork, orders []*domain.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(orders))
	byID := make(map[uuid.UUID]*domain.Order, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
		byID[o.ID] = o
		o.Items = nil
	}
	items, err := uow.OrderItems().List(ctx,
		repository.In("order_id", ids),
		repository.OrderBy("created_at", false),
	)
	if err != nil {
		return err
	}
	for _, it := range items {
		if o, ok := byID[it.OrderID]; ok {
			o.Items = append(o.Items, *it)
		}
	}
	return nil
}

// Update applies the non-nil fields of in.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in dto.OrderUpdate) (*dto.OrderRead, error) {
	fields := map[string]any{}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.Amount != nil {
		if in.Amount.IsNegative() {
			return nil, domain.Validationf("amount must be greater than or equal to 0")
		}
		fields["amount"] = *in.Amount
	}
	if in.UnitID != nil {
		fields["unit_id"] = *in.UnitID
	}
	if in.BudgetID != nil {
		fields["budget_id"] = *in.BudgetID
	}
	if in.Status != nil {
		status := domain.OrderStatus(*in.Status)
		if !status.Valid() {
			return nil, domain.Validationf("invalid status '%s'", *in.Status)
		}
		fields["status"] = status
	}

	var o *domain.Order
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if err := checkRefs(ctx, uow, in.UnitID, in.BudgetID); err != nil {
			return err
		}
		var err error
		o, err = uow.Orders().Update(ctx, id, fields)
		if errors.Is(err, domain.ErrNotFound) {
			return notFound(id)
		}
		if err != nil {
			return err
		}
		return LoadItems(ctx, uow, []*domain.Order{o})
	})
	if err != nil {
		return nil, translate(err, id, in.UnitID, in.BudgetID)
	}
	s.logger.Info("Order updated", "handler", "Update", "order_id", id)
	return dto.ToOrderRead(o), nil
}

// Approve sets the status to approved regardless of the current status.
func (s *Service) Approve(ctx context.Context, id uuid.UUID) (*dto.OrderRead, error) {
	return s.setStatus(ctx, id, domain.OrderApproved)
}

// Reject sets the status to rejected regardless of the current status.
func (s *Service) Reject(ctx context.Context, id uuid.UUID) (*dto.OrderRead, error) {
	return s.setStatus(ctx, id, domain.OrderRejected)
}

func (s *Service) setStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) (*dto.OrderRead, error) {
	st := string(status)
	return s.Update(ctx, id, dto.OrderUpdate{Status: &st})
}

// Delete removes the order items and then the order in one transaction.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := uow.OrderItems().DeleteWhere(ctx, repository.Eq("order_id", id)); err != nil {
			return err
		}
		err := uow.Orders().Delete(ctx, id)
		if errors.Is(err, domain.ErrNotFound) {
			return notFound(id)
		}
		return err
	})
	if err != nil {
		return err
	}
	s.logger.Info("Order deleted", "handler", "Delete", "order_id", id)
	return nil
}
