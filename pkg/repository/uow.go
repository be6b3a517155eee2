package repository

import (
	"context"

	"github.com/unas-org/unas-backend/pkg/domain"
)

// UnitOfWork hands out one repository per table. Repositories obtained from
// the uow passed to Do's callback share its transaction.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	Units() Repository[domain.Unit]
	Users() Repository[domain.User]
	UnitUsers() Repository[domain.UnitUser]
	Storage() Repository[domain.StorageItem]
	StorageMovements() Repository[domain.StorageMovement]
	Orders() Repository[domain.Order]
	OrderItems() Repository[domain.OrderItem]
	Budgets() Repository[domain.Budget]
	Frequencies() Repository[domain.Frequency]
	SecurityCodes() Repository[domain.SecurityCode]
}
