package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/unas-org/unas-backend/pkg/domain"
)

// UnitCreate represents the data needed to create a new unit.
type UnitCreate struct {
	Name     string `json:"name" validate:"required,max=255"`
	Address  string `json:"address" validate:"required,max=255"`
	Type     string `json:"type" validate:"required,max=50"`
	Capacity *int   `json:"capacity,omitempty" validate:"omitempty,min=0"`
}

// UnitUpdate carries the unit fields to change. Nil fields are left as stored.
type UnitUpdate struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Address  *string `json:"address,omitempty" validate:"omitempty,max=255"`
	Type     *string `json:"type,omitempty" validate:"omitempty,max=50"`
	Capacity *int    `json:"capacity,omitempty" validate:"omitempty,min=0"`
}

// UnitRead represents a unit as returned by the API.
type UnitRead struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Type      string    `json:"type"`
	Capacity  *int      `json:"capacity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToUnitRead(u *domain.Unit) *UnitRead {
	return &UnitRead{
		ID:        u.ID,
		Name:      u.Name,
		Address:   u.Address,
		Type:      u.Type,
		Capacity:  u.Capacity,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func ToUnitReads(units []*domain.Unit) []*UnitRead {
	out := make([]*UnitRead, 0, len(units))
	for _, u := range units {
		out = append(out, ToUnitRead(u))
	}
	return out
}
