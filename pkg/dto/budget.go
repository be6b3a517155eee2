package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/unas-org/unas-backend/pkg/domain"
)

// BudgetCreate dates are YYYY-MM-DD.
type BudgetCreate struct {
	Description string          `json:"description" validate:"required,max=255"`
	InitialDate string          `json:"initial_date" validate:"required"`
	FinalDate   string          `json:"final_date" validate:"required"`
	Amount      decimal.Decimal `json:"amount" swaggertype:"number"`
}

type BudgetUpdate struct {
	Description *string          `json:"description,omitempty" validate:"omitempty,max=255"`
	InitialDate *string          `json:"initial_date,omitempty"`
	FinalDate   *string          `json:"final_date,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty" swaggertype:"number"`
}

// BudgetFilter bounds are inclusive; empty strings disable a bound.
type BudgetFilter struct {
	InitialDate string
	FinalDate   string
}

type BudgetRead struct {
	ID          uuid.UUID `json:"id"`
	Description string    `json:"description"`
	InitialDate string    `json:"initial_date"`
	FinalDate   string    `json:"final_date"`
	Amount      float64   `json:"amount"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToBudgetRead(b *domain.Budget) *BudgetRead {
	return &BudgetRead{
		ID:          b.ID,
		Description: b.Description,
		InitialDate: domain.FormatDate(b.InitialDate),
		FinalDate:   domain.FormatDate(b.FinalDate),
		Amount:      b.Amount.InexactFloat64(),
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func ToBudgetReads(budgets []*domain.Budget) []*BudgetRead {
	out := make([]*BudgetRead, 0, len(budgets))
	for _, b := range budgets {
		out = append(out, ToBudgetRead(b))
	}
	return out
}
