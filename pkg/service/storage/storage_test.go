package storage_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unas-org/unas-backend/internal/fixtures"
	"github.com/unas-org/unas-backend/pkg/domain"
	"github.com/unas-org/unas-backend/pkg/dto"
	"github.com/unas-org/unas-backend/pkg/service/storage"
)

func entry(unitID uuid.UUID, name string, initial int) dto.StorageEntry {
	return dto.StorageEntry{
		UnitID:          unitID,
		Name:            name,
		Amount:          decimal.NewFromFloat(12.5),
		Type:            domain.StorageTypeBought,
		MeasureUnit:     fixtures.Ptr("pacote"),
		Responsible:     "Maria",
		Date:            "2025-10-01",
		InitialQuantity: initial,
	}
}

func TestRegisterEntry(t *testing.T) {
	t.Parallel()
	uow := fixtures.NewTestUoW(t)
	svc := storage.New(uow, fixtures.Logger())
	ctx := context.Background()
	unit := fixtures.SeedUnit(t, uow, "Centro", nil)

	created, err := svc.RegisterEntry(ctx, entry(unit.ID, "Arroz", 10))
	require.NoError(t, err)
	assert.Equal(t, 10, created.InitialQuantity)
	assert.Equal(t, 0, created.UsedQuantity)
	assert.Equal(t, 10, created.CurrentQuantity)
	assert.Equal(t, "pacote", created.MeasureUnit)

	_, err = svc.RegisterExit(ctx, dto.StorageExit{
		UnitID:      unit.ID,
		Items:       []dto.StorageExitItem{{Name: "Arroz", UsedQuantity: 3}},
		Purpose:     "Almoço",
		Responsible: "Maria",
		Date:        "2025-10-02",
	})
	require.NoError(t, err)

	donated := entry(unit.ID, "Arroz", 5)
	donated.Type = domain.StorageTypeDonated
	grown, err := svc.RegisterEntry(ctx, donated)
	require.NoError(t, err)
	assert.Equal(t, created.ID, grown.ID)
	assert.Equal(t, 15, grown.InitialQuantity)
	assert.Equal(t, 3, grown.UsedQuantity)
	assert.Equal(t, 12, grown.CurrentQuantity)
	assert.Equal(t, domain.StorageTypeDonated, grown.Type)

	n, err := uow.Storage().Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	entries, err := svc.ListMovements(ctx, unit.ID, domain.MovementEntry)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestRegisterEntryRejections(t *testing.T) {
	t.Parallel()
	uow := fixtures.NewTestUoW(t)
	svc := storage.New(uow, fixtures.Logger())
	ctx := context.Background()
	unit := fixtures.SeedUnit(t, uow, "Centro", nil)
	fixtures.SeedStorage(t, uow, unit.ID, "Feijão", domain.StorageTypeBought, "pacote", 4, 0)

	badType := entry(unit.ID, "Arroz", 1)
	badType.Type = "emprestado"
	zeroOnExisting := entry(unit.ID, "Feijão", 0)
	usedAboveInitial := entry(unit.ID, "Leite", 2)
	usedAboveInitial.UsedQuantity = 3
	badDate := entry(unit.ID, "Arroz", 1)
	badDate.Date = "01/10/2025"

	tests := []struct {
		name string
		in   dto.StorageEntry
		want error
	}{
		{"invalid type", badType, domain.ErrValidation},
		{"zero quantity on existing item", zeroOnExisting, domain.ErrValidation},
		{"used above initial", usedAboveInitial, domain.ErrValidation},
		{"invalid date", badDate, domain.ErrValidation},
		{"missing unit", entry(uuid.New(), "Arroz", 1), domain.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.RegisterEntry(ctx, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	n, err := uow.StorageMovements().Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRegisterExitIsAllOrNothing(t *testing.T) {
	t.Parallel()
	uow := fixtures.NewTestUoW(t)
	svc := storage.New(uow, fixtures.Logger())
	ctx := context.Background()
	unit := fixtures.SeedUnit(t, uow, "Centro", nil)
	arroz := fixtures.SeedStorage(t, uow, unit.ID, "Arroz", domain.StorageTypeBought, "pacote", 10, 2)
	feijao := fixtures.SeedStorage(t, uow, unit.ID, "Feijão", domain.StorageTypeBought, "pacote", 5, 4)

	_, err := svc.RegisterExit(ctx, dto.StorageExit{
		UnitID: unit.ID,
		Items: []dto.StorageExitItem{
			{Name: "Arroz", UsedQuantity: 3},
			{Name: "Feijão", UsedQuantity: 2},
		},
		Purpose:     "Jantar",
		Responsible: "João",
		Date:        "2025-10-03",
	})
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "Feijão: used quantity exceeds initial quantity. Initial: 5, Requested: 6")

	got, err := uow.Storage().Get(ctx, arroz.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.UsedQuantity)
	got, err = uow.Storage().Get(ctx, feijao.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, got.UsedQuantity)

	_, err = svc.RegisterExit(ctx, dto.StorageExit{
		UnitID:      unit.ID,
		Items:       []dto.StorageExitItem{{Name: "Açúcar", UsedQuantity: 1}},
		Purpose:     "Café",
		Responsible: "João",
		Date:        "2025-10-03",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	moves, err := svc.ListMovements(ctx, unit.ID, "")
	require.NoError(t, err)
	assert.Empty(t, moves)
}

func TestRegisterExit(t *testing.T) {
	t.Parallel()
	uow := fixtures.NewTestUoW(t)
	svc := storage.New(uow, fixtures.Logger())
	ctx := context.Background()
	unit := fixtures.SeedUnit(t, uow, "Centro", nil)
	fixtures.SeedStorage(t, uow, unit.ID, "Arroz", domain.StorageTypeBought, "pacote", 10, 2)

	out, err := svc.RegisterExit(ctx, dto.StorageExit{
		UnitID:      unit.ID,
		Items:       []dto.StorageExitItem{{Name: "Arroz", UsedQuantity: 8}},
		Purpose:     "Almoço",
		Responsible: "Maria",
		Date:        "2025-10-04",
		Notes:       fixtures.Ptr("turma da manhã"),
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 10, out[0].UsedQuantity)
	assert.Zero(t, out[0].CurrentQuantity)

	exits, err := svc.ListMovements(ctx, unit.ID, domain.MovementExit)
	require.NoError(t, err)
	require.Len(t, exits, 1)
	assert.Equal(t, 8, exits[0].Quantity)
	assert.Equal(t, "2025-10-04", exits[0].Date)
	assert.Equal(t, "Almoço", *exits[0].Purpose)

	_, err = svc.ListMovements(ctx, unit.ID, "transfer")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestQueriesAndUsedQuantity(t *testing.T) {
	t.Parallel()
	uow := fixtures.NewTestUoW(t)
	svc := storage.New(uow, fixtures.Logger())
	ctx := context.Background()
	unit := fixtures.SeedUnit(t, uow, "Centro", nil)
	other := fixtures.SeedUnit(t, uow, "Abrigo", nil)
	item := fixtures.SeedStorage(t, uow, unit.ID, "Leite", domain.StorageTypeDonated, "litro", 6, 1)
	fixtures.SeedStorage(t, uow, unit.ID, "Arroz", domain.StorageTypeBought, "pacote", 3, 0)
	fixtures.SeedStorage(t, uow, other.ID, "Arroz", domain.StorageTypeBought, "pacote", 3, 0)

	list, err := svc.List(ctx, unit.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Arroz", list[0].Name)

	byName, err := svc.GetByName(ctx, unit.ID, "Leite")
	require.NoError(t, err)
	assert.Equal(t, item.ID, byName.ID)
	assert.Equal(t, 5, byName.CurrentQuantity)

	_, err = svc.GetByName(ctx, other.ID, "Leite")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	updated, err := svc.UpdateUsedQuantity(ctx, item.ID, 6)
	require.NoError(t, err)
	assert.Zero(t, updated.CurrentQuantity)

	_, err = svc.UpdateUsedQuantity(ctx, item.ID, 7)
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = svc.UpdateUsedQuantity(ctx, item.ID, -1)
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = svc.UpdateUsedQuantity(ctx, uuid.New(), 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegisterEntry_MeasureUnitOptional(t *testing.T) {
	t.Parallel()
	uow := fixtures.NewTestUoW(t)
	svc := storage.New(uow, fixtures.Logger())
	unit := fixtures.SeedUnit(t, uow, "Centro", nil)

	in := entry(unit.ID, "Feijão", 4)
	in.MeasureUnit = nil
	created, err := svc.RegisterEntry(context.Background(), in)
	require.NoError(t, err)
	assert.Empty(t, created.MeasureUnit)
}
