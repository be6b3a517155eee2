package repository

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the data access contract shared by every table. Errors are
// domain errors: domain.ErrNotFound, domain.ErrAlreadyExists or
// *domain.ReferenceError.
type Repository[T any] interface {
	Create(ctx context.Context, entity *T) error
	Get(ctx context.Context, id uuid.UUID) (*T, error)
	FindOne(ctx context.Context, opts ...Option) (*T, error)
	List(ctx context.Context, opts ...Option) ([]*T, error)
	// Update sets the given columns on the row with id and returns the fresh row.
	Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*T, error)
	UpdateWhere(ctx context.Context, fields map[string]any, opts ...Option) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteWhere(ctx context.Context, opts ...Option) (int64, error)
	Exists(ctx context.Context, opts ...Option) (bool, error)
	Count(ctx context.Context, opts ...Option) (int64, error)
	Table() string
}
