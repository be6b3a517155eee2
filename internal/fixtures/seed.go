package fixtures

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/unas-org/unas-backend/pkg/domain"
	"github.com/unas-org/unas-backend/pkg/repository"
	"golang.org/x/crypto/bcrypt"
)

func Ptr[T any](v T) *T { return &v }

func MustDate(t testing.TB, s string) time.Time {
	t.Helper()
	d, err := domain.ParseDate(s)
	require.NoError(t, err)
	return time.Time(d)
}

func SeedUnit(t testing.TB, uow repository.UnitOfWork, name string, capacity *int) *domain.Unit {
	t.Helper()
	u, err := domain.NewUnit(name, "Rua das Flores, 100", "CCA", capacity)
	require.NoError(t, err)
	require.NoError(t, uow.Units().Create(context.Background(), u))
	return u
}

// SeedUser stores an active user whose password hash uses the minimum bcrypt
// cost to keep tests fast.
func SeedUser(t testing.TB, uow repository.UnitOfWork, email, password string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := domain.NewUser(email, string(hash), "user-"+uuid.NewString()[:8], "colaborador")
	require.NoError(t, uow.Users().Create(context.Background(), u))
	return u
}

func SeedMembership(t testing.TB, uow repository.UnitOfWork, unitID, userID uuid.UUID, createdAt time.Time) *domain.UnitUser {
	t.Helper()
	m := domain.NewUnitUser(unitID, userID, domain.RoleManager)
	m.CreatedAt = createdAt
	require.NoError(t, uow.UnitUsers().Create(context.Background(), m))
	return m
}

func SeedBudget(t testing.TB, uow repository.UnitOfWork, start, end string, amount int64) *domain.Budget {
	t.Helper()
	b := &domain.Budget{
		ID:          uuid.New(),
		Description: "Orçamento " + start,
		InitialDate: domain.DateOf(MustDate(t, start)),
		FinalDate:   domain.DateOf(MustDate(t, end)),
		Amount:      decimal.NewFromInt(amount),
	}
	require.NoError(t, uow.Budgets().Create(context.Background(), b))
	return b
}

// SeedOrder stores an order with the given creation time and one item per
// entry of items.
func SeedOrder(
	t testing.TB,
	uow repository.UnitOfWork,
	unitID, budgetID *uuid.UUID,
	amount int64,
	createdAt time.Time,
	items ...int64,
) *domain.Order {
	t.Helper()
	ctx := context.Background()
	total := decimal.NewFromInt(amount)
	o := &domain.Order{
		ID:        uuid.New(),
		UnitID:    unitID,
		BudgetID:  budgetID,
		Amount:    &total,
		Status:    domain.OrderPending,
		CreatedAt: createdAt,
	}
	require.NoError(t, uow.Orders().Create(ctx, o))
	for _, a := range items {
		it := domain.OrderItem{
			ID:          uuid.New(),
			OrderID:     o.ID,
			Amount:      decimal.NewFromInt(a),
			MeasureUnit: domain.DefaultMeasureUnit,
			Received:    true,
		}
		require.NoError(t, uow.OrderItems().Create(ctx, &it))
		o.Items = append(o.Items, it)
	}
	return o
}

func SeedStorage(
	t testing.TB,
	uow repository.UnitOfWork,
	unitID uuid.UUID,
	name, kind, measureUnit string,
	initial, used int,
) *domain.StorageItem {
	t.Helper()
	s := &domain.StorageItem{
		ID:              uuid.New(),
		UnitID:          unitID,
		Name:            name,
		Amount:          decimal.NewFromInt(10),
		Type:            kind,
		MeasureUnit:     measureUnit,
		InitialQuantity: initial,
		UsedQuantity:    used,
	}
	require.NoError(t, uow.Storage().Create(context.Background(), s))
	return s
}

func SeedFrequency(t testing.TB, uow repository.UnitOfWork, unitID uuid.UUID, date string, amount int) *domain.Frequency {
	t.Helper()
	f := &domain.Frequency{
		ID:     uuid.New(),
		UnitID: unitID,
		Amount: amount,
		Date:   domain.DateOf(MustDate(t, date)),
	}
	require.NoError(t, uow.Frequencies().Create(context.Background(), f))
	return f
}
