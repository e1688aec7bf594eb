package table

import (
	"fmt"

	"github.com/marrowdb/marrow/pkg/schema"
)

// ValidationReason distinguishes why a supplied value was rejected.
type ValidationReason int

const (
	// NullNotAllowed reports a null or absent value for a non-nullable
	// column.
	NullNotAllowed ValidationReason = iota
	// TypeMismatch reports a value that does not satisfy the column's
	// type.
	TypeMismatch
)

// ValidationError reports a row that does not conform to the table
// schema. The row is not created.
type ValidationError struct {
	Table    string
	Column   string
	Expected schema.DataType
	Value    any
	Reason   ValidationReason
}

func (e *ValidationError) Error() string {
	if e.Reason == NullNotAllowed {
		return fmt.Sprintf("insert into %q: column %q is not nullable", e.Table, e.Column)
	}
	return fmt.Sprintf("insert into %q: column %q expects %s, got %T (%v)",
		e.Table, e.Column, e.Expected, e.Value, e.Value)
}

// ForeignKeyErrorKind discriminates referential-integrity failures.
type ForeignKeyErrorKind int

const (
	// TableMissing reports a foreign key whose target table cannot be
	// resolved.
	TableMissing ForeignKeyErrorKind = iota
	// KeyNotFound reports a foreign key value with no match in the
	// referenced column.
	KeyNotFound
)

// ForeignKeyError reports a row whose foreign key value cannot be
// satisfied. The row is not created.
type ForeignKeyError struct {
	Kind             ForeignKeyErrorKind
	Table            string
	Column           string
	ReferencedTable  string
	ReferencedColumn string
	Value            any
}

func (e *ForeignKeyError) Error() string {
	if e.Kind == TableMissing {
		return fmt.Sprintf("insert into %q: column %q references table %q, which is not registered",
			e.Table, e.Column, e.ReferencedTable)
	}
	return fmt.Sprintf("insert into %q: column %q value %v has no match in %s.%s",
		e.Table, e.Column, e.Value, e.ReferencedTable, e.ReferencedColumn)
}
