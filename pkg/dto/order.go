package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/unas-org/unas-backend/pkg/domain"
)

type OrderItemCreate struct {
	Description *string         `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount" swaggertype:"number"`
	MeasureUnit *string         `json:"measure_unit,omitempty"`
	Received    *bool           `json:"received,omitempty"`
}

// OrderCreate persists an order and its items. A missing or zero Amount is
// replaced by the sum of the item amounts.
type OrderCreate struct {
	Description *string           `json:"description,omitempty"`
	Amount      *decimal.Decimal  `json:"amount,omitempty" swaggertype:"number"`
	UnitID      *uuid.UUID        `json:"unit_id,omitempty"`
	BudgetID    *uuid.UUID        `json:"budget_id,omitempty"`
	Items       []OrderItemCreate `json:"items,omitempty" validate:"omitempty,dive"`
}

type OrderUpdate struct {
	Description *string          `json:"description,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty" swaggertype:"number"`
	UnitID      *uuid.UUID       `json:"unit_id,omitempty"`
	BudgetID    *uuid.UUID       `json:"budget_id,omitempty"`
	Status      *string          `json:"status,omitempty" validate:"omitempty,oneof=pending approved rejected completed"`
}

type OrderItemRead struct {
	ID          uuid.UUID `json:"id"`
	OrderID     uuid.UUID `json:"order_id"`
	Description *string   `json:"description"`
	Amount      float64   `json:"amount"`
	MeasureUnit string    `json:"measure_unit"`
	Received    bool      `json:"received"`
	CreatedAt   time.Time `json:"created_at"`
}

type OrderRead struct {
	ID          uuid.UUID        `json:"id"`
	Description *string          `json:"description"`
	Amount      *float64         `json:"amount"`
	UnitID      *uuid.UUID       `json:"unit_id"`
	BudgetID    *uuid.UUID       `json:"budget_id"`
	Status      string           `json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	Items       []*OrderItemRead `json:"items"`
}

func ToOrderItemRead(it *domain.OrderItem) *OrderItemRead {
	return &OrderItemRead{
		ID:          it.ID,
		OrderID:     it.OrderID,
		Description: it.Description,
		Amount:      it.Amount.InexactFloat64(),
		MeasureUnit: it.MeasureUnit,
		Received:    it.Received,
		CreatedAt:   it.CreatedAt,
	}
}

// ToOrderRead maps an order together with the items loaded into o.Items.
func ToOrderRead(o *domain.Order) *OrderRead {
	out := &OrderRead{
		ID:          o.ID,
		Description: o.Description,
		UnitID:      o.UnitID,
		BudgetID:    o.BudgetID,
		Status:      string(o.Status),
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
		Items:       make([]*OrderItemRead, 0, len(o.Items)),
	}
	if o.Amount != nil {
		f := o.Amount.InexactFloat64()
		out.Amount = &f
	}
	for i := range o.Items {
		out.Items = append(out.Items, ToOrderItemRead(&o.Items[i]))
	}
	return out
}

func ToOrderReads(orders []*domain.Order) []*OrderRead {
	out := make([]*OrderRead, 0, len(orders))
	for _, o := range orders {
		out = append(out, ToOrderRead(o))
	}
	return out
}
