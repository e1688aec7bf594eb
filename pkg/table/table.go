package table

import (
	"github.com/marrowdb/marrow/pkg/schema"
)

// Resolver supplies referenced tables during foreign key checks. A
// registry satisfies this; anything that maps a name to a table will do.
type Resolver interface {
	Lookup(name string) (*Table, bool)
}

// Table stores rows conforming to a fixed schema. It is not safe for
// concurrent use; callers sharing a table across goroutines must
// synchronize externally.
type Table struct {
	name     string
	schema   *schema.Schema
	rows     []Row
	nextID   int64
	snapshot []Row
	inTx     bool
	resolver Resolver
}

// New creates an empty table with the given schema.
func New(name string, s *schema.Schema) *Table {
	return &Table{name: name, schema: s}
}

// Name returns the table name.
func (t *Table) Name() string {
	return t.name
}

// Schema returns the table's column declarations.
func (t *Table) Schema() *schema.Schema {
	return t.schema
}

// Len returns the current number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// SetResolver wires the table to a catalog for foreign key resolution.
// The registry calls this on registration; tables used standalone can
// set any Resolver directly.
func (t *Table) SetResolver(r Resolver) {
	t.resolver = r
}

// Insert validates data against the schema and appends it as a new row.
// Columns are checked in declaration order and the first failure is
// reported; on failure nothing is stored and no id is consumed. The
// stored row copies the full supplied map, undeclared keys included, and
// the returned Row is a detached copy of it.
func (t *Table) Insert(data map[string]any) (Row, error) {
	for i := 0; i < t.schema.Len(); i++ {
		col := t.schema.At(i)
		value := data[col.Name]
		if value == nil {
			if !col.Nullable {
				return Row{}, &ValidationError{
					Table:    t.name,
					Column:   col.Name,
					Expected: col.Type,
					Reason:   NullNotAllowed,
				}
			}
			continue
		}
		if !col.Type.Validate(value) {
			return Row{}, &ValidationError{
				Table:    t.name,
				Column:   col.Name,
				Expected: col.Type,
				Value:    value,
				Reason:   TypeMismatch,
			}
		}
		if col.Ref != nil {
			if err := t.checkReference(col, value); err != nil {
				return Row{}, err
			}
		}
	}

	t.nextID++
	row := Row{ID: t.nextID, Fields: copyFields(data)}
	t.rows = append(t.rows, row)
	return row.Clone(), nil
}

func (t *Table) checkReference(col schema.Column, value any) error {
	fkErr := &ForeignKeyError{
		Table:            t.name,
		Column:           col.Name,
		ReferencedTable:  col.Ref.ReferencedTable,
		ReferencedColumn: col.Ref.ReferencedColumn,
		Value:            value,
	}
	if t.resolver == nil {
		fkErr.Kind = TableMissing
		return fkErr
	}
	target, ok := t.resolver.Lookup(col.Ref.ReferencedTable)
	if !ok {
		fkErr.Kind = TableMissing
		return fkErr
	}
	for _, row := range target.rows {
		if schema.Equal(row.Fields[col.Ref.ReferencedColumn], value) {
			return nil
		}
	}
	fkErr.Kind = KeyNotFound
	return fkErr
}

// Scan returns detached copies of all rows in insertion order.
func (t *Table) Scan() []Row {
	out := make([]Row, len(t.rows))
	for i, row := range t.rows {
		out[i] = row.Clone()
	}
	return out
}

// Begin starts a transaction by snapshotting the current row sequence.
// The snapshot is shallow: Row values are copied, field maps are shared.
// Beginning again while a snapshot is active overwrites it; only one
// level of undo is kept.
func (t *Table) Begin() {
	t.snapshot = append([]Row(nil), t.rows...)
	t.inTx = true
}

// Commit drops the snapshot, making changes since Begin permanent.
// Without an active snapshot it is a no-op.
func (t *Table) Commit() {
	if !t.inTx {
		return
	}
	t.snapshot = nil
	t.inTx = false
}

// Rollback restores the row sequence captured by Begin and drops the
// snapshot. The id counter is not restored: ids consumed under a rolled
// back transaction stay burned. Without an active snapshot it is a
// no-op.
func (t *Table) Rollback() {
	if !t.inTx {
		return
	}
	t.rows = t.snapshot
	t.snapshot = nil
	t.inTx = false
}

// InTransaction reports whether a snapshot is active.
func (t *Table) InTransaction() bool {
	return t.inTx
}
