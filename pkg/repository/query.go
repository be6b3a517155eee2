package repository

// Operator is a comparison used in a query condition.
type Operator string

const (
	OpEq    Operator = "="
	OpNotEq Operator = "<>"
	OpGt    Operator = ">"
	OpGte   Operator = ">="
	OpLt    Operator = "<"
	OpLte   Operator = "<="
	OpIn    Operator = "IN"
	OpILike Operator = "ILIKE"
)

// Condition is a single column comparison. Column names come from code,
// never from request input.
type Condition struct {
	Column string
	Op     Operator
	Value  any
}

type Order struct {
	Column string
	Desc   bool
}

// Query collects the options of a repository call.
type Query struct {
	Conditions []Condition
	Orders     []Order
	Limit      int
	ForUpdate  bool
}

type Option func(*Query)

// Build applies opts to an empty query.
func Build(opts ...Option) Query {
	var q Query
	for _, opt := range opts {
		if opt != nil {
			opt(&q)
		}
	}
	return q
}

func where(column string, op Operator, value any) Option {
	return func(q *Query) {
		q.Conditions = append(q.Conditions, Condition{Column: column, Op: op, Value: value})
	}
}

func Eq(column string, value any) Option    { return where(column, OpEq, value) }
func NotEq(column string, value any) Option { return where(column, OpNotEq, value) }
func Gt(column string, value any) Option    { return where(column, OpGt, value) }
func Gte(column string, value any) Option   { return where(column, OpGte, value) }
func Lt(column string, value any) Option    { return where(column, OpLt, value) }
func Lte(column string, value any) Option   { return where(column, OpLte, value) }

// In matches any of values. An empty slice matches nothing.
func In(column string, values any) Option { return where(column, OpIn, values) }

// ILike is a case-insensitive pattern match.
func ILike(column string, pattern string) Option { return where(column, OpILike, pattern) }

func OrderBy(column string, desc bool) Option {
	return func(q *Query) {
		q.Orders = append(q.Orders, Order{Column: column, Desc: desc})
	}
}

func Limit(n int) Option {
	return func(q *Query) { q.Limit = n }
}

// ForUpdate locks the selected rows until the surrounding transaction ends.
func ForUpdate() Option {
	return func(q *Query) { q.ForUpdate = true }
}

// When returns opt only if cond holds, for optional filters.
func When(cond bool, opt Option) Option {
	if !cond {
		return nil
	}
	return opt
}
