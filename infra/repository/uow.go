package repository

import (
	"context"

	"github.com/unas-org/unas-backend/pkg/domain"
	"github.com/unas-org/unas-backend/pkg/repository"
	"gorm.io/gorm"
)

// UoW provides the transaction boundary and repository access in one place,
// so every repository used inside Do shares the same session.
type UoW struct {
	db *gorm.DB
}

var _ repository.UnitOfWork = (*UoW)(nil)

func NewUoW(db *gorm.DB) *UoW {
	return &UoW{db: db}
}

// Do runs fn in a transaction. Returning an error from fn rolls it back.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: tx})
	})
}

func (u *UoW) Units() repository.Repository[domain.Unit] {
	return NewRepository[domain.Unit](u.db, domain.TableUnits)
}

func (u *UoW) Users() repository.Repository[domain.User] {
	return NewRepository[domain.User](u.db, domain.TableUsers)
}

func (u *UoW) UnitUsers() repository.Repository[domain.UnitUser] {
	return NewRepository[domain.UnitUser](u.db, domain.TableUnitUsers)
}

func (u *UoW) Storage() repository.Repository[domain.StorageItem] {
	return NewRepository[domain.StorageItem](u.db, domain.TableStorage)
}

func (u *UoW) StorageMovements() repository.Repository[domain.StorageMovement] {
	return NewRepository[domain.StorageMovement](u.db, domain.TableStorageMovements)
}

func (u *UoW) Orders() repository.Repository[domain.Order] {
	return NewRepository[domain.Order](u.db, domain.TableOrders)
}

func (u *UoW) OrderItems() repository.Repository[domain.OrderItem] {
	return NewRepository[domain.OrderItem](u.db, domain.TableOrderItems)
}

func (u *UoW) Budgets() repository.Repository[domain.Budget] {
	return NewRepository[domain.Budget](u.db, domain.TableBudgets)
}

func (u *UoW) Frequencies() repository.Repository[domain.Frequency] {
	return NewRepository[domain.Frequency](u.db, domain.TableFrequency)
}

func (u *UoW) SecurityCodes() repository.Repository[domain.SecurityCode] {
	return NewRepository[domain.SecurityCode](u.db, domain.TableSecurityCodes)
}

// Models lists every persisted entity, for schema setup in tests and tools.
func Models() []any {
	return []any{
		&domain.Unit{}, &domain.User{}, &domain.UnitUser{},
		&domain.StorageItem{}, &domain.StorageMovement{},
		&domain.Budget{}, &domain.Order{}, &domain.OrderItem{},
		&domain.Frequency{}, &domain.SecurityCode{},
	}
}
