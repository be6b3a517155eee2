package domain

import (
	"time"

	"github.com/google/uuid"
)

const TableUnitUsers = "unit_users"

// UnitUser links a user to a unit with a unit-scoped role.
type UnitUser struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UnitID    uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Role      string    `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (UnitUser) TableName() string { return TableUnitUsers }

func NewUnitUser(unitID, userID uuid.UUID, role string) *UnitUser {
	return &UnitUser{
		ID:     uuid.New(),
		UnitID: unitID,
		UserID: userID,
		Role:   role,
	}
}
