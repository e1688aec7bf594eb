package schema

// ForeignKey declares that a column's non-null values must match an
// existing value in another table's column.
type ForeignKey struct {
	ReferencedTable  string
	ReferencedColumn string
}

// Column describes a single field of a table schema.
type Column struct {
	Name     string
	Type     DataType
	Nullable bool
	Ref      *ForeignKey
}

// Schema is an ordered set of column declarations, fixed at table
// construction.
type Schema struct {
	cols  []Column
	index map[string]int
}

// NewSchema builds a schema from columns in declaration order. Column
// names must be unique.
func NewSchema(table string, cols []Column) (*Schema, error) {
	index := make(map[string]int, len(cols))
	for i, c := range cols {
		if _, dup := index[c.Name]; dup {
			return nil, &SchemaError{Kind: DuplicateColumn, Table: table, Column: c.Name}
		}
		index[c.Name] = i
	}
	return &Schema{cols: append([]Column(nil), cols...), index: index}, nil
}

// Len returns the number of declared columns.
func (s *Schema) Len() int {
	return len(s.cols)
}

// At returns the column at position i in declaration order.
func (s *Schema) At(i int) Column {
	return s.cols[i]
}

// Column returns the declaration for the named column.
func (s *Schema) Column(name string) (Column, bool) {
	i, ok := s.index[name]
	if !ok {
		return Column{}, false
	}
	return s.cols[i], true
}

// Columns returns a copy of the declarations in order.
func (s *Schema) Columns() []Column {
	return append([]Column(nil), s.cols...)
}
