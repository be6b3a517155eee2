// Package report builds the per-unit dashboard: spending, stock, attendance
// and budget comparison for a month or for the whole history.
package report

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/unas-org/unas-backend/pkg/domain"
	"github.com/unas-org/unas-backend/pkg/dto"
	"github.com/unas-org/unas-backend/pkg/repository"
	ordersvc "github.com/unas-org/unas-backend/pkg/service/order"
	"github.com/unas-org/unas-backend/pkg/utils"
	"golang.org/x/sync/errgroup"
)

type Service struct {
	uow    repository.UnitOfWork
	loc    *time.Location
	logger *slog.Logger
	now    func() time.Time
}

// New returns a report service stamping generated_at in loc.
func New(uow repository.UnitOfWork, loc *time.Location, logger *slog.Logger) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{uow: uow, loc: loc, logger: logger, now: time.Now}
}

// snapshot is everything a report is computed from.
type snapshot struct {
	unit        *domain.Unit
	storage     []*domain.StorageItem
	orders      []*domain.Order
	budgets     []*domain.Budget
	members     []*domain.UnitUser
	frequencies []*domain.Frequency
}

// ForUnit builds the report of a unit. month is YYYY-MM or empty for no range.
func (s *Service) ForUnit(ctx context.Context, unitID uuid.UUID, month string) (*dto.UnitReport, error) {
	log := s.logger.With("handler", "ForUnit", "unit_id", unitID, "month", month)

	unit, err := s.uow.Units().Get(ctx, unitID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NotFoundf("unit with ID '%s' not found", unitID)
	}
	if err != nil {
		return nil, err
	}
	rng, err := utils.ParseMonth(month)
	if err != nil {
		return nil, domain.Validationf("%s", err)
	}

	snap, err := s.fetch(ctx, unit, rng)
	if err != nil {
		log.Error("Failed to load report data", "error", err)
		return nil, err
	}
	r := build(snap, rng)
	r.GeneratedAt = s.now().In(s.loc)
	log.Debug("Report built", "orders", len(snap.orders), "storage", len(snap.storage))
	return r, nil
}

// ForUser builds the report of the user's oldest unit membership.
func (s *Service) ForUser(ctx context.Context, userID uuid.UUID, month string) (*dto.UnitReport, error) {
	link, err := s.uow.UnitUsers().FindOne(ctx,
		repository.Eq("user_id", userID),
		repository.OrderBy("created_at", false),
	)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NotFoundf("user '%s' is not linked to any unit", userID)
	}
	if err != nil {
		return nil, err
	}
	return s.ForUnit(ctx, link.UnitID, month)
}

// fetch loads the report inputs concurrently.
func (s *Service) fetch(ctx context.Context, unit *domain.Unit, rng *utils.MonthRange) (*snapshot, error) {
	snap := &snapshot{unit: unit}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		snap.storage, err = s.uow.Storage().List(ctx,
			repository.Eq("unit_id", unit.ID),
			repository.OrderBy("created_at", false),
		)
		return err
	})
	g.Go(func() error {
		orders, err := s.uow.Orders().List(ctx,
			repository.Eq("unit_id", unit.ID),
			repository.OrderBy("created_at", true),
		)
		if err != nil {
			return err
		}
		if err := ordersvc.LoadItems(ctx, s.uow, orders); err != nil {
			return err
		}
		snap.orders = orders
		return nil
	})
	g.Go(func() error {
		var err error
		snap.budgets, err = s.uow.Budgets().List(ctx,
			repository.When(rng != nil, repository.Gte("initial_date", startOf(rng))),
			repository.When(rng != nil, repository.Lte("final_date", endOf(rng))),
			repository.OrderBy("initial_date", false),
		)
		return err
	})
	g.Go(func() error {
		var err error
		snap.members, err = s.uow.UnitUsers().List(ctx, repository.Eq("unit_id", unit.ID))
		return err
	})
	g.Go(func() error {
		var err error
		snap.frequencies, err = s.uow.Frequencies().List(ctx,
			repository.Eq("unit_id", unit.ID),
			repository.When(rng != nil, repository.Gte("date", startOf(rng))),
			repository.When(rng != nil, repository.Lt("date", endOf(rng))),
			repository.OrderBy("date", false),
		)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}

func startOf(rng *utils.MonthRange) any {
	if rng == nil {
		return nil
	}
	return domain.DateOf(rng.Start)
}

func endOf(rng *utils.MonthRange) any {
	if rng == nil {
		return nil
	}
	return domain.DateOf(rng.End)
}
