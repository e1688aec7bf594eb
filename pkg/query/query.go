// Package query filters, projects, and joins table rows. Conditions use
// the store's permissive comparison model: a condition that cannot be
// evaluated for a row (absent column, mismatched kinds, unknown
// operator) is a non-match, never an error.
package query

import (
	"github.com/marrowdb/marrow/pkg/schema"
	"github.com/marrowdb/marrow/pkg/table"
)

// Query accumulates filter conditions and a projection over one table.
// It evaluates nothing until Execute and is bound to its table for life.
type Query struct {
	table      *table.Table
	projection []string
	conditions []condition
}

type condition struct {
	column   string
	operator string
	value    any
}

// New starts a query over t.
func New(t *table.Table) *Query {
	return &Query{table: t}
}

// Select appends column names to the projection. With no Select calls
// the result rows keep all their fields.
func (q *Query) Select(columns ...string) *Query {
	q.projection = append(q.projection, columns...)
	return q
}

// Where appends a condition. All conditions must match, and they are
// evaluated in the order added. Supported operators are "==", ">", and
// "<"; anything else never matches.
func (q *Query) Where(column, operator string, value any) *Query {
	q.conditions = append(q.conditions, condition{column, operator, value})
	return q
}

// Execute evaluates the query against the table's current rows and
// returns detached result rows in table order. Result rows keep the
// source row's id.
func (q *Query) Execute() []table.Row {
	var out []table.Row
	for _, row := range q.table.Scan() {
		if !q.matches(row) {
			continue
		}
		if len(q.projection) == 0 {
			out = append(out, row)
			continue
		}
		out = append(out, q.project(row))
	}
	return out
}

func (q *Query) matches(row table.Row) bool {
	for _, c := range q.conditions {
		value, present := row.Fields[c.column]
		if !present {
			return false
		}
		switch c.operator {
		case "==":
			if !schema.Equal(value, c.value) {
				return false
			}
		case ">":
			cmp, ordered := schema.Compare(value, c.value)
			if !ordered || cmp <= 0 {
				return false
			}
		case "<":
			cmp, ordered := schema.Compare(value, c.value)
			if !ordered || cmp >= 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// project copies the projected fields present on the row; projected
// names the row lacks are silently dropped.
func (q *Query) project(row table.Row) table.Row {
	fields := make(map[string]any, len(q.projection))
	for _, name := range q.projection {
		if value, present := row.Fields[name]; present {
			fields[name] = value
		}
	}
	return table.Row{ID: row.ID, Fields: fields}
}
