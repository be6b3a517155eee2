package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const TableBudgets = "budgets"

// Budget is a funding envelope valid between two calendar dates (inclusive).
type Budget struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Description string          `gorm:"not null"`
	InitialDate datatypes.Date  `gorm:"not null"`
	FinalDate   datatypes.Date  `gorm:"not null"`
	Amount      decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Budget) TableName() string { return TableBudgets }

// Validate enforces amount >= 0 and final_date >= initial_date.
func (b *Budget) Validate() error {
	if b.Amount.IsNegative() {
		return Validationf("amount must be greater than or equal to 0")
	}
	if time.Time(b.FinalDate).Before(time.Time(b.InitialDate)) {
		return Validationf("final_date must be greater than or equal to initial_date")
	}
	return nil
}
