package gateway

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Dialect selects placeholder style and case-insensitive comparison.
type Dialect int

const (
	SQLite Dialect = iota
	Postgres
)

// SQL runs gateway operations directly against a database/sql handle.
// Inserts and updates use RETURNING so each operation stays one statement.
type SQL struct {
	db          *sql.DB
	dialect     Dialect
	jsonColumns map[string]map[string]bool
}

// SQLOption customizes a SQL gateway.
type SQLOption func(*SQL)

// WithJSONColumns declares, per table, the columns holding JSON documents.
// Their stored text is decoded back into maps and slices on read.
func WithJSONColumns(cols map[string][]string) SQLOption {
	return func(s *SQL) {
		for table, names := range cols {
			set := make(map[string]bool, len(names))
			for _, n := range names {
				set[n] = true
			}
			s.jsonColumns[table] = set
		}
	}
}

func NewSQL(db *sql.DB, dialect Dialect, opts ...SQLOption) *SQL {
	s := &SQL{
		db:          db,
		dialect:     dialect,
		jsonColumns: make(map[string]map[string]bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SQL) Select(ctx context.Context, q Query) ([]Row, error) {
	if err := validateQuery(q); err != nil {
		return nil, err
	}

	b := s.builder()
	cols := "*"
	if len(q.Columns) > 0 {
		quoted := make([]string, len(q.Columns))
		for i, c := range q.Columns {
			quoted[i] = quoteIdent(c)
		}
		cols = strings.Join(quoted, ", ")
	}
	b.sb.WriteString("SELECT " + cols + " FROM " + quoteIdent(q.Table))
	b.where(q.Filters)
	if len(q.Orders) > 0 {
		keys := make([]string, len(q.Orders))
		for i, o := range q.Orders {
			dir := "ASC"
			if o.Descending {
				dir = "DESC"
			}
			keys[i] = quoteIdent(o.Column) + " " + dir
		}
		b.sb.WriteString(" ORDER BY " + strings.Join(keys, ", "))
	}

	return s.query(ctx, q.Table, b)
}

func (s *SQL) Insert(ctx context.Context, table string, row Row) ([]Row, error) {
	if err := validIdent(table); err != nil {
		return nil, err
	}

	b := s.builder()
	keys, err := sortedKeys(row)
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		b.sb.WriteString("INSERT INTO " + quoteIdent(table) + " DEFAULT VALUES RETURNING *")
		return s.query(ctx, table, b)
	}

	cols := make([]string, len(keys))
	marks := make([]string, len(keys))
	for i, k := range keys {
		cols[i] = quoteIdent(k)
		v, err := encodeValue(row[k])
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", k, err)
		}
		marks[i] = b.arg(v)
	}
	fmt.Fprintf(&b.sb, "INSERT INTO %s (%s) VALUES (%s) RETURNING *",
		quoteIdent(table), strings.Join(cols, ", "), strings.Join(marks, ", "))

	return s.query(ctx, table, b)
}

func (s *SQL) Update(ctx context.Context, table string, values Row, filters ...Filter) ([]Row, error) {
	if err := validIdent(table); err != nil {
		return nil, err
	}
	if err := validateFilters(filters); err != nil {
		return nil, err
	}

	keys, err := sortedKeys(values)
	if err != nil {
		return nil, err
	}
	// Nothing to set matches nothing, as with PostgREST.
	if len(keys) == 0 {
		return nil, nil
	}

	b := s.builder()
	sets := make([]string, len(keys))
	for i, k := range keys {
		v, err := encodeValue(values[k])
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", k, err)
		}
		sets[i] = quoteIdent(k) + " = " + b.arg(v)
	}
	b.sb.WriteString("UPDATE " + quoteIdent(table) + " SET " + strings.Join(sets, ", "))
	b.where(filters)
	b.sb.WriteString(" RETURNING *")

	return s.query(ctx, table, b)
}

func (s *SQL) Delete(ctx context.Context, table string, filters ...Filter) error {
	if err := validIdent(table); err != nil {
		return err
	}
	if err := validateFilters(filters); err != nil {
		return err
	}

	b := s.builder()
	b.sb.WriteString("DELETE FROM " + quoteIdent(table))
	b.where(filters)
	if _, err := s.db.ExecContext(ctx, b.sb.String(), b.args...); err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	return nil
}

func (s *SQL) query(ctx context.Context, table string, b *stmtBuilder) ([]Row, error) {
	rows, err := s.db.QueryContext(ctx, b.sb.String(), b.args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns %s: %w", table, err)
	}

	jsonCols := s.jsonColumns[table]
	var out []Row
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		row := make(Row, len(cols))
		for i, c := range cols {
			row[c] = decodeValue(vals[i], jsonCols[c])
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", table, err)
	}
	return out, nil
}

type stmtBuilder struct {
	dialect Dialect
	sb      strings.Builder
	args    []any
}

func (s *SQL) builder() *stmtBuilder {
	return &stmtBuilder{dialect: s.dialect}
}

// arg records a bind value and returns its placeholder.
func (b *stmtBuilder) arg(v any) string {
	b.args = append(b.args, v)
	if b.dialect == Postgres {
		return "$" + strconv.Itoa(len(b.args))
	}
	return "?"
}

func (b *stmtBuilder) where(filters []Filter) {
	if len(filters) == 0 {
		return
	}
	conds := make([]string, len(filters))
	for i, f := range filters {
		col := quoteIdent(f.Column)
		switch f.Op {
		case OpEqFold:
			pattern := escapeLike(fmt.Sprint(f.Value))
			if b.dialect == Postgres {
				conds[i] = col + " ILIKE " + b.arg(pattern)
			} else {
				conds[i] = "LOWER(" + col + ") LIKE LOWER(" + b.arg(pattern) + `) ESCAPE '\'`
			}
		default:
			conds[i] = col + " = " + b.arg(f.Value)
		}
	}
	b.sb.WriteString(" WHERE " + strings.Join(conds, " AND "))
}

func quoteIdent(name string) string {
	return `"` + name + `"`
}

func sortedKeys(row Row) ([]string, error) {
	keys := make([]string, 0, len(row))
	for k := range row {
		if err := validIdent(k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// encodeValue stores maps and slices as JSON text.
func encodeValue(v any) (any, error) {
	switch v.(type) {
	case map[string]any, []any, []map[string]any:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		return string(b), nil
	default:
		return v, nil
	}
}

// decodeValue normalizes driver values to the shapes a JSON API would return.
func decodeValue(v any, isJSON bool) any {
	switch t := v.(type) {
	case []byte:
		if isJSON {
			return decodeJSONText(string(t))
		}
		return string(t)
	case string:
		if isJSON {
			return decodeJSONText(t)
		}
		return t
	case time.Time:
		return t.Format(time.RFC3339Nano)
	default:
		return v
	}
}

func decodeJSONText(s string) any {
	if s == "" {
		return nil
	}
	var out any
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return s
	}
	return out
}
