package frequency_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unas-org/unas-backend/internal/fixtures"
	"github.com/unas-org/unas-backend/pkg/domain"
	"github.com/unas-org/unas-backend/pkg/dto"
	"github.com/unas-org/unas-backend/pkg/service/frequency"
)

func TestOneRecordPerUnitAndDay(t *testing.T) {
	t.Parallel()
	uow := fixtures.NewTestUoW(t)
	svc := frequency.New(uow, fixtures.Logger())
	ctx := context.Background()
	centro := fixtures.SeedUnit(t, uow, "Centro", nil)
	abrigo := fixtures.SeedUnit(t, uow, "Abrigo", nil)

	first, err := svc.Create(ctx, dto.FrequencyCreate{UnitID: centro.ID, Amount: 80, Date: "2025-10-01"})
	require.NoError(t, err)
	assert.Equal(t, "2025-10-01", first.Date)

	_, err = svc.Create(ctx, dto.FrequencyCreate{UnitID: centro.ID, Amount: 70, Date: "2025-10-01"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = svc.Create(ctx, dto.FrequencyCreate{UnitID: abrigo.ID, Amount: 10, Date: "2025-10-01"})
	require.NoError(t, err, "the same day is free for another unit")

	second, err := svc.Create(ctx, dto.FrequencyCreate{UnitID: centro.ID, Amount: 90, Date: "2025-10-02"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, second.ID, dto.FrequencyUpdate{Date: fixtures.Ptr("2025-10-01")})
	assert.ErrorIs(t, err, domain.ErrConflict)

	kept, err := svc.Update(ctx, second.ID, dto.FrequencyUpdate{Date: fixtures.Ptr("2025-10-02"), Amount: fixtures.Ptr(95)})
	require.NoError(t, err, "keeping its own date is not a conflict")
	assert.Equal(t, 95, kept.Amount)

	moved, err := svc.Update(ctx, second.ID, dto.FrequencyUpdate{Date: fixtures.Ptr("2025-10-03")})
	require.NoError(t, err)
	assert.Equal(t, "2025-10-03", moved.Date)
}

func TestCreateRejections(t *testing.T) {
	t.Parallel()
	uow := fixtures.NewTestUoW(t)
	svc := frequency.New(uow, fixtures.Logger())
	ctx := context.Background()
	unit := fixtures.SeedUnit(t, uow, "Centro", nil)

	tests := []struct {
		name string
		in   dto.FrequencyCreate
		want error
	}{
		{"negative amount", dto.FrequencyCreate{UnitID: unit.ID, Amount: -1, Date: "2025-10-01"}, domain.ErrValidation},
		{"bad date", dto.FrequencyCreate{UnitID: unit.ID, Amount: 1, Date: "2025-10"}, domain.ErrValidation},
		{"missing unit", dto.FrequencyCreate{UnitID: uuid.New(), Amount: 1, Date: "2025-10-01"}, domain.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestListAndDelete(t *testing.T) {
	t.Parallel()
	uow := fixtures.NewTestUoW(t)
	svc := frequency.New(uow, fixtures.Logger())
	ctx := context.Background()
	centro := fixtures.SeedUnit(t, uow, "Centro", nil)
	abrigo := fixtures.SeedUnit(t, uow, "Abrigo", nil)
	fixtures.SeedFrequency(t, uow, centro.ID, "2025-09-30", 50)
	oct := fixtures.SeedFrequency(t, uow, centro.ID, "2025-10-01", 60)
	fixtures.SeedFrequency(t, uow, centro.ID, "2025-10-31", 70)
	fixtures.SeedFrequency(t, uow, abrigo.ID, "2025-10-15", 5)

	all, err := svc.List(ctx, dto.FrequencyFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 4)

	october, err := svc.List(ctx, dto.FrequencyFilter{InitialDate: "2025-10-01", FinalDate: "2025-10-31", UnitID: &centro.ID})
	require.NoError(t, err)
	require.Len(t, october, 2)
	assert.Equal(t, "2025-10-31", october[0].Date)

	got, err := svc.Get(ctx, oct.ID)
	require.NoError(t, err)
	assert.Equal(t, 60, got.Amount)

	require.NoError(t, svc.Delete(ctx, oct.ID))
	_, err = svc.Get(ctx, oct.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, oct.ID), domain.ErrNotFound)
}
