package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	TableOrders     = "orders"
	TableOrderItems = "order_items"

	DefaultMeasureUnit = "pacote"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderApproved  OrderStatus = "approved"
	OrderRejected  OrderStatus = "rejected"
	OrderCompleted OrderStatus = "completed"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderApproved, OrderRejected, OrderCompleted:
		return true
	}
	return false
}

type Order struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey"`
	Description *string
	Amount      *decimal.Decimal `gorm:"type:numeric(14,2)"`
	UnitID      *uuid.UUID       `gorm:"type:uuid;index"`
	BudgetID    *uuid.UUID       `gorm:"type:uuid;index"`
	Status      OrderStatus      `gorm:"not null;default:'pending'"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Items []OrderItem `gorm:"-"`
}

func (Order) TableName() string { return TableOrders }

// AmountOrZero returns the order amount, treating a missing amount as zero.
func (o *Order) AmountOrZero() decimal.Decimal {
	if o.Amount == nil {
		return decimal.Zero
	}
	return *o.Amount
}

type OrderItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description *string
	Amount      decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	MeasureUnit string          `gorm:"not null;default:'pacote'"`
	Received    bool            `gorm:"not null"`
	CreatedAt   time.Time
}

func (OrderItem) TableName() string { return TableOrderItems }

// SumItems adds up item amounts.
func SumItems(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Amount)
	}
	return total
}
