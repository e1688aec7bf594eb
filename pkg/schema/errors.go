package schema

import "fmt"

// SchemaErrorKind discriminates the ways a schema declaration or a
// registration can be invalid.
type SchemaErrorKind int

const (
	// UnknownType reports a type name that maps to no DataType.
	UnknownType SchemaErrorKind = iota
	// MissingReferencedTable reports a foreign key whose target table is
	// not registered.
	MissingReferencedTable
	// DuplicateColumn reports two columns declared with the same name.
	DuplicateColumn
)

// SchemaError is reported at construction or registration time, before
// any row exists.
type SchemaError struct {
	Kind       SchemaErrorKind
	Table      string
	Column     string
	TypeName   string
	Referenced string
}

func (e *SchemaError) Error() string {
	switch e.Kind {
	case UnknownType:
		if e.Column != "" {
			return fmt.Sprintf("unknown type %q for column %q", e.TypeName, e.Column)
		}
		return fmt.Sprintf("unknown type %q", e.TypeName)
	case MissingReferencedTable:
		return fmt.Sprintf("table %q references table %q, which is not registered", e.Table, e.Referenced)
	case DuplicateColumn:
		return fmt.Sprintf("table %q declares column %q more than once", e.Table, e.Column)
	}
	return "invalid schema"
}
