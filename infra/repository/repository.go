package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/unas-org/unas-backend/pkg/domain"
	"github.com/unas-org/unas-backend/pkg/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRepository implements repository.Repository for entity T stored in table.
type GormRepository[T any] struct {
	db    *gorm.DB
	table string
}

var _ repository.Repository[domain.Unit] = (*GormRepository[domain.Unit])(nil)

func NewRepository[T any](db *gorm.DB, table string) *GormRepository[T] {
	return &GormRepository[T]{db: db, table: table}
}

func (r *GormRepository[T]) Table() string { return r.table }

func (r *GormRepository[T]) session(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table(r.table)
}

func (r *GormRepository[T]) scoped(ctx context.Context, opts []repository.Option) *gorm.DB {
	q := repository.Build(opts...)
	db := r.session(ctx)
	for _, c := range q.Conditions {
		db = db.Where(conditionExpr(c))
	}
	for _, o := range q.Orders {
		db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: o.Column}, Desc: o.Desc})
	}
	if q.Limit > 0 {
		db = db.Limit(q.Limit)
	}
	// SQLite has no row locks; the single writer already serialises.
	if q.ForUpdate && db.Dialector.Name() == "postgres" {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return db
}

func conditionExpr(c repository.Condition) clause.Expression {
	col := clause.Column{Name: c.Column}
	switch c.Op {
	case repository.OpNotEq:
		return clause.Neq{Column: col, Value: c.Value}
	case repository.OpGt:
		return clause.Gt{Column: col, Value: c.Value}
	case repository.OpGte:
		return clause.Gte{Column: col, Value: c.Value}
	case repository.OpLt:
		return clause.Lt{Column: col, Value: c.Value}
	case repository.OpLte:
		return clause.Lte{Column: col, Value: c.Value}
	case repository.OpIn:
		return clause.Expr{SQL: "? IN ?", Vars: []any{col, c.Value}}
	case repository.OpILike:
		return clause.Expr{SQL: "LOWER(?) LIKE LOWER(?)", Vars: []any{col, c.Value}}
	default:
		return clause.Eq{Column: col, Value: c.Value}
	}
}

func byID(id uuid.UUID) clause.Expression {
	return clause.Eq{Column: clause.Column{Name: "id"}, Value: id}
}

func (r *GormRepository[T]) Create(ctx context.Context, entity *T) error {
	return WrapError(func() error {
		return r.session(ctx).Create(entity).Error
	})
}

func (r *GormRepository[T]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	var entity T
	if err := r.session(ctx).Where(byID(id)).Take(&entity).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return &entity, nil
}

func (r *GormRepository[T]) FindOne(ctx context.Context, opts ...repository.Option) (*T, error) {
	var entity T
	if err := r.scoped(ctx, opts).Take(&entity).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return &entity, nil
}

func (r *GormRepository[T]) List(ctx context.Context, opts ...repository.Option) ([]*T, error) {
	entities := make([]*T, 0)
	if err := r.scoped(ctx, opts).Find(&entities).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return entities, nil
}

func (r *GormRepository[T]) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*T, error) {
	if len(fields) > 0 {
		res := r.session(ctx).Model(new(T)).Where(byID(id)).Updates(fields)
		if res.Error != nil {
			return nil, MapGormErrorToDomain(res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, domain.ErrNotFound
		}
	}
	return r.Get(ctx, id)
}

func (r *GormRepository[T]) UpdateWhere(ctx context.Context, fields map[string]any, opts ...repository.Option) (int64, error) {
	res := r.scoped(ctx, opts).Model(new(T)).Updates(fields)
	return res.RowsAffected, MapGormErrorToDomain(res.Error)
}

func (r *GormRepository[T]) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.session(ctx).Where(byID(id)).Delete(new(T))
	if res.Error != nil {
		return MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *GormRepository[T]) DeleteWhere(ctx context.Context, opts ...repository.Option) (int64, error) {
	res := r.scoped(ctx, opts).Delete(new(T))
	return res.RowsAffected, MapGormErrorToDomain(res.Error)
}

func (r *GormRepository[T]) Count(ctx context.Context, opts ...repository.Option) (int64, error) {
	var n int64
	if err := r.scoped(ctx, opts).Model(new(T)).Count(&n).Error; err != nil {
		return 0, MapGormErrorToDomain(err)
	}
	return n, nil
}

func (r *GormRepository[T]) Exists(ctx context.Context, opts ...repository.Option) (bool, error) {
	n, err := r.Count(ctx, opts...)
	return n > 0, err
}
