package order_test

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
	"github.com/unas-org/unas-backend/pkg/repository"
	"github.com/unas-org/unas-backend/pkg/service/order"
)

func TestCreateSumsItemsWhenAmountMissing(t *testing.T) {
	t.Parallel()
	uow := fixtures.NewTestUoW(t)
	svc := order.New(uow, fixtures.Logger())
	ctx := context.Background()
	unit := fixtures.SeedUnit(t, uow, "Centro", nil)

	o, err := svc.Create(ctx, dto.OrderCreate{
		UnitID: &unit.ID,
		Items: []dto.OrderItemCreate{
			{Amount: decimal.NewFromInt(10)},
			{Amount: decimal.NewFromInt(5), MeasureUnit: fixtures.Ptr("kg"), Received: fixtures.Ptr(false)},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, o.Amount)
	assert.InDelta(t, 15.0, *o.Amount, 0.001)
	assert.Equal(t, string(domain.OrderPending), o.Status)
	require.Len(t, o.Items, 2)
	assert.Equal(t, domain.DefaultMeasureUnit, o.Items[0].MeasureUnit)
	assert.True(t, o.Items[0].Received)
	assert.Equal(t, "kg", o.Items[1].MeasureUnit)
	assert.False(t, o.Items[1].Received)

	got, err := svc.Get(ctx, o.ID)
	require.NoError(t, err)
	assert.InDelta(t, 15.0, *got.Amount, 0.001)
	require.Len(t, got.Items, 2)
	assert.False(t, got.Items[0].Received && got.Items[1].Received)
}

func TestCreateKeepsExplicitAmount(t *testing.T) {
	t.Parallel()
	uow := fixtures.NewTestUoW(t)
	svc := order.New(uow, fixtures.Logger())
	ctx := context.Background()

	amount := decimal.NewFromInt(100)
	o, err := svc.Create(ctx, dto.OrderCreate{
		Amount: &amount,
		Items:  []dto.OrderItemCreate{{Amount: decimal.NewFromInt(10)}},
	})
	require.NoError(t, err)
	assert.InDelta(t, 100.0, *o.Amount, 0.001)

	bare, err := svc.Create(ctx, dto.OrderCreate{Description: fixtures.Ptr("sem itens")})
	require.NoError(t, err)
	assert.Nil(t, bare.Amount)
	assert.Nil(t, bare.UnitID)
	assert.Empty(t, bare.Items)
}

func TestCreateRejectsMissingReferences(t *testing.T) {
	t.Parallel()
	uow := fixtures.NewTestUoW(t)
	svc := order.New(uow, fixtures.Logger())
	ctx := context.Background()

	missingUnit := uuid.New()
	_, err := svc.Create(ctx, dto.OrderCreate{UnitID: &missingUnit})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), missingUnit.String())

	missingBudget := uuid.New()
	_, err = svc.Create(ctx, dto.OrderCreate{
		BudgetID: &missingBudget,
		Items:    []dto.OrderItemCreate{{Amount: decimal.NewFromInt(1)}},
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), missingBudget.String())

	n, err := uow.OrderItems().Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n, "failed creates leave no items behind")
}

func TestListFiltersAndEmbedsItems(t *testing.T) {
	t.Parallel()
	uow := fixtures.NewTestUoW(t)
	svc := order.New(uow, fixtures.Logger())
	ctx := context.Background()
	centro := fixtures.SeedUnit(t, uow, "Centro", nil)
	abrigo := fixtures.SeedUnit(t, uow, "Abrigo", nil)
	budget := fixtures.SeedBudget(t, uow, "2025-01-01", "2025-12-31", 1000)
	now := time.Now().UTC()

	fixtures.SeedOrder(t, uow, &centro.ID, &budget.ID, 30, now.Add(-2*time.Hour), 10, 20)
	fixtures.SeedOrder(t, uow, &centro.ID, nil, 5, now.Add(-time.Hour), 5)
	fixtures.SeedOrder(t, uow, &abrigo.ID, &budget.ID, 7, now)

	all, err := svc.List(ctx, nil, nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, abrigo.ID, *all[0].UnitID, "newest first")
	assert.Empty(t, all[0].Items)

	byUnit, err := svc.ListByUnit(ctx, centro.ID)
	require.NoError(t, err)
	require.Len(t, byUnit, 2)
	assert.Len(t, byUnit[1].Items, 2)

	byBudget, err := svc.ListByBudget(ctx, budget.ID)
	require.NoError(t, err)
	assert.Len(t, byBudget, 2)

	both, err := svc.List(ctx, &centro.ID, &budget.ID)
	require.NoError(t, err)
	assert.Len(t, both, 1)
}

func TestUpdateStatusAndDelete(t *testing.T) {
	t.Parallel()
	uow := fixtures.NewTestUoW(t)
	svc := order.New(uow, fixtures.Logger())
	ctx := context.Background()
	o := fixtures.SeedOrder(t, uow, nil, nil, 20, time.Now().UTC(), 20)

	approved, err := svc.Approve(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.OrderApproved), approved.Status)

	rejected, err := svc.Reject(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.OrderRejected), rejected.Status)

	updated, err := svc.Update(ctx, o.ID, dto.OrderUpdate{
		Description: fixtures.Ptr("cesta básica"),
		Status:      fixtures.Ptr("completed"),
	})
	require.NoError(t, err)
	assert.Equal(t, "cesta básica", *updated.Description)
	assert.Equal(t, string(domain.OrderCompleted), updated.Status)
	assert.Len(t, updated.Items, 1)

	_, err = svc.Update(ctx, o.ID, dto.OrderUpdate{Status: fixtures.Ptr("shipped")})
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = svc.Approve(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, svc.Delete(ctx, o.ID))
	n, err := uow.OrderItems().Count(ctx, repository.Eq("order_id", o.ID))
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.ErrorIs(t, svc.Delete(ctx, o.ID), domain.ErrNotFound)
}
