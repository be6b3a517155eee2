package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/unas-org/unas-backend/pkg/domain"
)

// StorageEntry registers incoming stock for a unit. A known (unit_id, name)
// pair adds InitialQuantity to the existing line.
type StorageEntry struct {
	UnitID          uuid.UUID       `json:"unit_id" validate:"required"`
	Name            string          `json:"name" validate:"required,max=255"`
	Amount          decimal.Decimal `json:"amount" swaggertype:"number"`
	Type            string          `json:"type" validate:"required"`
	MeasureUnit     *string         `json:"measure_unit,omitempty" validate:"omitempty,max=50"`
	Supplier        *string         `json:"supplier,omitempty"`
	Invoice         *string         `json:"invoice,omitempty"`
	Responsible     string          `json:"responsible" validate:"required"`
	Date            string          `json:"date" validate:"required"`
	InitialQuantity int             `json:"initial_quantity" validate:"min=0"`
	UsedQuantity    int             `json:"used_quantity" validate:"min=0"`
}

// StorageExitItem asks for UsedQuantity more units of the named item.
type StorageExitItem struct {
	Name         string `json:"name" validate:"required"`
	UsedQuantity int    `json:"used_quantity" validate:"min=1"`
}

type StorageExit struct {
	UnitID      uuid.UUID         `json:"unit_id" validate:"required"`
	Items       []StorageExitItem `json:"items" validate:"required,min=1,dive"`
	Purpose     string            `json:"purpose" validate:"required"`
	Responsible string            `json:"responsible" validate:"required"`
	Date        string            `json:"date" validate:"required"`
	Notes       *string           `json:"notes,omitempty"`
}

type StorageUsedUpdate struct {
	UsedQuantity int `json:"used_quantity" validate:"min=0"`
}

type StorageRead struct {
	ID              uuid.UUID `json:"id"`
	UnitID          uuid.UUID `json:"unit_id"`
	Name            string    `json:"name"`
	Amount          float64   `json:"amount"`
	Type            string    `json:"type"`
	MeasureUnit     string    `json:"measure_unit"`
	InitialQuantity int       `json:"initial_quantity"`
	UsedQuantity    int       `json:"used_quantity"`
	CurrentQuantity int       `json:"current_quantity"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func ToStorageRead(s *domain.StorageItem) *StorageRead {
	return &StorageRead{
		ID:              s.ID,
		UnitID:          s.UnitID,
		Name:            s.Name,
		Amount:          s.Amount.InexactFloat64(),
		Type:            s.Type,
		MeasureUnit:     s.MeasureUnit,
		InitialQuantity: s.InitialQuantity,
		UsedQuantity:    s.UsedQuantity,
		CurrentQuantity: s.CurrentQuantity(),
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func ToStorageReads(items []*domain.StorageItem) []*StorageRead {
	out := make([]*StorageRead, 0, len(items))
	for _, s := range items {
		out = append(out, ToStorageRead(s))
	}
	return out
}

type StorageMovementRead struct {
	ID          uuid.UUID `json:"id"`
	UnitID      uuid.UUID `json:"unit_id"`
	StorageID   uuid.UUID `json:"storage_id"`
	Name        string    `json:"name"`
	Kind        string    `json:"kind"`
	Quantity    int       `json:"quantity"`
	Responsible string    `json:"responsible"`
	Date        string    `json:"date"`
	Supplier    *string   `json:"supplier,omitempty"`
	Invoice     *string   `json:"invoice,omitempty"`
	Purpose     *string   `json:"purpose,omitempty"`
	Notes       *string   `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func ToStorageMovementRead(m *domain.StorageMovement) *StorageMovementRead {
	return &StorageMovementRead{
		ID:          m.ID,
		UnitID:      m.UnitID,
		StorageID:   m.StorageID,
		Name:        m.Name,
		Kind:        m.Kind,
		Quantity:    m.Quantity,
		Responsible: m.Responsible,
		Date:        domain.FormatDate(m.Date),
		Supplier:    m.Supplier,
		Invoice:     m.Invoice,
		Purpose:     m.Purpose,
		Notes:       m.Notes,
		CreatedAt:   m.CreatedAt,
	}
}

func ToStorageMovementReads(ms []*domain.StorageMovement) []*StorageMovementRead {
	out := make([]*StorageMovementRead, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToStorageMovementRead(m))
	}
	return out
}
