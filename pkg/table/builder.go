package table

import (
	"sort"

	"github.com/marrowdb/marrow/pkg/schema"
)

// Builder accumulates column declarations and freezes them into a table.
type Builder struct {
	name string
	cols []schema.Column
}

// NewBuilder starts a builder for a table with the given name.
func NewBuilder(name string) *Builder {
	return &Builder{name: name}
}

// AddColumn appends a nullable column.
func (b *Builder) AddColumn(name string, typ schema.DataType) *Builder {
	b.cols = append(b.cols, schema.Column{Name: name, Type: typ, Nullable: true})
	return b
}

// AddNotNull appends a non-nullable column.
func (b *Builder) AddNotNull(name string, typ schema.DataType) *Builder {
	b.cols = append(b.cols, schema.Column{Name: name, Type: typ})
	return b
}

// AddForeignKey appends a column referencing another table's column.
// Foreign key columns are always non-nullable.
func (b *Builder) AddForeignKey(name string, typ schema.DataType, refTable, refColumn string) *Builder {
	b.cols = append(b.cols, schema.Column{
		Name: name,
		Type: typ,
		Ref: &schema.ForeignKey{
			ReferencedTable:  refTable,
			ReferencedColumn: refColumn,
		},
	})
	return b
}

// Build freezes the accumulated columns into a new empty table.
func (b *Builder) Build() (*Table, error) {
	s, err := schema.NewSchema(b.name, b.cols)
	if err != nil {
		return nil, err
	}
	return New(b.name, s), nil
}

// FromTypeNames builds a table from a mapping of column names to type
// name strings such as "int", "string", or "bool" (case-insensitive).
// All columns are nullable and carry no foreign keys. Columns are
// declared in sorted name order so construction is deterministic.
func FromTypeNames(name string, columns map[string]string) (*Table, error) {
	names := make([]string, 0, len(columns))
	for col := range columns {
		names = append(names, col)
	}
	sort.Strings(names)

	b := NewBuilder(name)
	for _, col := range names {
		dt, err := schema.ParseDataType(columns[col])
		if err != nil {
			if serr, ok := err.(*schema.SchemaError); ok {
				serr.Table = name
				serr.Column = col
			}
			return nil, err
		}
		b.AddColumn(col, dt)
	}
	return b.Build()
}
