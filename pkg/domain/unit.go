package domain

import (
	"time"

	"github.com/google/uuid"
)

const TableUnits = "units"

// Unit is a physical site (shelter or center) run by the organization.
type Unit struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"not null"`
	Address   string    `gorm:"not null"`
	Type      string    `gorm:"not null;index"`
	Capacity  *int
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Unit) TableName() string { return TableUnits }

// NewUnit validates the capacity and assigns a fresh id.
func NewUnit(name, address, unitType string, capacity *int) (*Unit, error) {
	if name == "" {
		return nil, Validationf("unit name is required")
	}
	if err := ValidateCapacity(capacity); err != nil {
		return nil, err
	}
	return &Unit{
		ID:       uuid.New(),
		Name:     name,
		Address:  address,
		Type:     unitType,
		Capacity: capacity,
	}, nil
}

func ValidateCapacity(capacity *int) error {
	if capacity != nil && *capacity < 0 {
		return Validationf("capacity must be greater than or equal to 0")
	}
	return nil
}

// CapacityOrZero returns the capacity, treating unknown as zero.
func (u *Unit) CapacityOrZero() int {
	if u.Capacity == nil {
		return 0
	}
	return *u.Capacity
}
