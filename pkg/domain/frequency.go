package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const TableFrequency = "frequency"

// Frequency is the attendance count of one unit on one day.
type Frequency struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UnitID    uuid.UUID      `gorm:"type:uuid;not null;index"`
	Amount    int            `gorm:"not null"`
	Date      datatypes.Date `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Frequency) TableName() string { return TableFrequency }
