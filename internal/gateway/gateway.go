// Package gateway is the single access path to the relational store. Every
// operation is exactly one round trip; there are no retries, no transactions
// spanning calls and no client-side caching.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"regexp"
)

// Row is a flat record as the store returns it, keyed by column name.
type Row map[string]any

var (
	// ErrNotConfigured is returned by every call of a gateway that was built
	// without credentials.
	ErrNotConfigured = errors.New("database gateway not configured: missing URL or API key")

	// ErrMultipleRows is returned by MaybeSingle when more than one row matched.
	ErrMultipleRows = errors.New("JSON object requested, multiple (or no) rows returned")
)

// Op is a filter operator.
type Op string

const (
	OpEq     Op = "eq"
	OpEqFold Op = "eqfold"
)

// Filter restricts a select, update or delete to matching rows.
type Filter struct {
	Column string
	Op     Op
	Value  any
}

// Eq matches rows whose column equals value.
func Eq(column string, value any) Filter {
	return Filter{Column: column, Op: OpEq, Value: value}
}

// EqFold matches rows whose column equals value ignoring case. PostgREST
// reads '*' in the pattern as a wildcard, so callers that need an exact
// match must compare the returned values themselves.
func EqFold(column string, value string) Filter {
	return Filter{Column: column, Op: OpEqFold, Value: value}
}

// Order is one sort key.
type Order struct {
	Column     string
	Descending bool
}

func Asc(column string) Order  { return Order{Column: column} }
func Desc(column string) Order { return Order{Column: column, Descending: true} }

// Query describes a select.
type Query struct {
	Table   string
	Columns []string
	Filters []Filter
	Orders  []Order
}

// From starts a query on table selecting every column.
func From(table string) Query {
	return Query{Table: table}
}

// Select narrows the selected columns.
func (q Query) Select(columns ...string) Query {
	q.Columns = append([]string(nil), columns...)
	return q
}

// Where appends filters.
func (q Query) Where(filters ...Filter) Query {
	q.Filters = append(append([]Filter(nil), q.Filters...), filters...)
	return q
}

// OrderBy appends sort keys; the first key is the primary one.
func (q Query) OrderBy(orders ...Order) Query {
	q.Orders = append(append([]Order(nil), q.Orders...), orders...)
	return q
}

// Gateway performs single-statement operations against the store.
type Gateway interface {
	Select(ctx context.Context, q Query) ([]Row, error)
	// Insert stores one row and returns what the store returned for it.
	Insert(ctx context.Context, table string, row Row) ([]Row, error)
	// Update applies values to every row matching filters and returns the
	// updated rows. Zero matches is not an error.
	Update(ctx context.Context, table string, values Row, filters ...Filter) ([]Row, error)
	// Delete removes every row matching filters. Zero matches is not an error.
	Delete(ctx context.Context, table string, filters ...Filter) error
}

// MaybeSingle returns nil for zero rows, the row for one row and
// ErrMultipleRows otherwise.
func MaybeSingle(rows []Row) (Row, error) {
	switch len(rows) {
	case 0:
		return nil, nil
	case 1:
		return rows[0], nil
	default:
		return nil, ErrMultipleRows
	}
}

// First returns the first row or nil.
func First(rows []Row) Row {
	if len(rows) == 0 {
		return nil
	}
	return rows[0]
}

// Error is a failure reported by the store itself.
type Error struct {
	Code       string
	Message    string
	Details    string
	Hint       string
	StatusCode int
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("store error (status %d)", e.StatusCode)
}

var identRegexp = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func validIdent(name string) error {
	if !identRegexp.MatchString(name) {
		return fmt.Errorf("invalid identifier %q", name)
	}
	return nil
}

func validateQuery(q Query) error {
	if err := validIdent(q.Table); err != nil {
		return err
	}
	for _, c := range q.Columns {
		if c == "*" {
			continue
		}
		if err := validIdent(c); err != nil {
			return err
		}
	}
	if err := validateFilters(q.Filters); err != nil {
		return err
	}
	for _, o := range q.Orders {
		if err := validIdent(o.Column); err != nil {
			return err
		}
	}
	return nil
}

func validateFilters(filters []Filter) error {
	for _, f := range filters {
		if err := validIdent(f.Column); err != nil {
			return err
		}
		if f.Op != OpEq && f.Op != OpEqFold {
			return fmt.Errorf("unsupported filter operator %q", f.Op)
		}
	}
	return nil
}
