package budget_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unas-org/unas-backend/internal/fixtures"
	"github.com/unas-org/unas-backend/pkg/domain"
	"github.com/unas-org/unas-backend/pkg/dto"
	"github.com/unas-org/unas-backend/pkg/service/budget"
)

func TestCreateValidation(t *testing.T) {
	t.Parallel()
	uow := fixtures.NewTestUoW(t)
	svc := budget.New(uow, fixtures.Logger())
	ctx := context.Background()

	b, err := svc.Create(ctx, dto.BudgetCreate{
		Description: "Verba anual",
		InitialDate: "2025-01-01",
		FinalDate:   "2025-12-31",
		Amount:      decimal.RequireFromString("1500.50"),
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-01-01", b.InitialDate)
	assert.Equal(t, "2025-12-31", b.FinalDate)
	assert.InDelta(t, 1500.50, b.Amount, 0.001)

	tests := []struct {
		name string
		in   dto.BudgetCreate
	}{
		{"final before initial", dto.BudgetCreate{Description: "x", InitialDate: "2025-05-01", FinalDate: "2025-04-30"}},
		{"negative amount", dto.BudgetCreate{Description: "x", InitialDate: "2025-05-01", FinalDate: "2025-05-01", Amount: decimal.NewFromInt(-1)}},
		{"bad date", dto.BudgetCreate{Description: "x", InitialDate: "2025-13-01", FinalDate: "2025-12-31"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.in)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestUpdateMergesWithStoredValues(t *testing.T) {
	t.Parallel()
	uow := fixtures.NewTestUoW(t)
	svc := budget.New(uow, fixtures.Logger())
	ctx := context.Background()
	b := fixtures.SeedBudget(t, uow, "2025-03-01", "2025-03-31", 500)

	_, err := svc.Update(ctx, b.ID, dto.BudgetUpdate{FinalDate: fixtures.Ptr("2025-02-28")})
	assert.ErrorIs(t, err, domain.ErrValidation, "new final date is checked against the stored initial date")

	amount := decimal.NewFromInt(-10)
	_, err = svc.Update(ctx, b.ID, dto.BudgetUpdate{Amount: &amount})
	assert.ErrorIs(t, err, domain.ErrValidation)

	updated, err := svc.Update(ctx, b.ID, dto.BudgetUpdate{
		Description: fixtures.Ptr("Março"),
		FinalDate:   fixtures.Ptr("2025-04-15"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Março", updated.Description)
	assert.Equal(t, "2025-03-01", updated.InitialDate)
	assert.Equal(t, "2025-04-15", updated.FinalDate)
	assert.InDelta(t, 500.0, updated.Amount, 0.001)

	_, err = svc.Update(ctx, uuid.New(), dto.BudgetUpdate{Description: fixtures.Ptr("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListFilter(t *testing.T) {
	t.Parallel()
	uow := fixtures.NewTestUoW(t)
	svc := budget.New(uow, fixtures.Logger())
	ctx := context.Background()
	fixtures.SeedBudget(t, uow, "2025-01-01", "2025-01-31", 100)
	fixtures.SeedBudget(t, uow, "2025-02-01", "2025-02-28", 100)
	fixtures.SeedBudget(t, uow, "2025-03-01", "2025-06-30", 100)

	all, err := svc.List(ctx, dto.BudgetFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "2025-01-01", all[0].InitialDate)

	from, err := svc.List(ctx, dto.BudgetFilter{InitialDate: "2025-02-01"})
	require.NoError(t, err)
	assert.Len(t, from, 2)

	within, err := svc.List(ctx, dto.BudgetFilter{InitialDate: "2025-01-01", FinalDate: "2025-02-28"})
	require.NoError(t, err)
	assert.Len(t, within, 2)

	_, err = svc.List(ctx, dto.BudgetFilter{FinalDate: "ontem"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDeleteBlockedWhileReferenced(t *testing.T) {
	t.Parallel()
	uow := fixtures.NewTestUoW(t)
	svc := budget.New(uow, fixtures.Logger())
	ctx := context.Background()
	b := fixtures.SeedBudget(t, uow, "2025-01-01", "2025-12-31", 1000)
	o := fixtures.SeedOrder(t, uow, nil, &b.ID, 10, time.Now().UTC())

	err := svc.Delete(ctx, b.ID)
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Get(ctx, b.ID)
	require.NoError(t, err)

	require.NoError(t, uow.Orders().Delete(ctx, o.ID))
	require.NoError(t, svc.Delete(ctx, b.ID))

	_, err = svc.Get(ctx, b.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, b.ID), domain.ErrNotFound)
}
