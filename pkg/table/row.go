package table

// Row is a single stored record: an engine-assigned id plus the field
// values supplied at insert. Fields may hold a subset of the declared
// columns, or extra undeclared keys.
type Row struct {
	ID     int64
	Fields map[string]any
}

// Clone returns a detached copy of the row. The field map is copied;
// the values themselves are shared.
func (r Row) Clone() Row {
	return Row{ID: r.ID, Fields: copyFields(r.Fields)}
}

func copyFields(src map[string]any) map[string]any {
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
