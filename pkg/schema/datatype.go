package schema

import (
	"fmt"
	"strings"
)

// DataType identifies the kind of value a column stores.
type DataType int

const (
	Integer DataType = iota
	String
	Bool
	Float
)

// String returns the canonical lower-case name of the type.
func (dt DataType) String() string {
	switch dt {
	case Integer:
		return "int"
	case String:
		return "string"
	case Bool:
		return "bool"
	case Float:
		return "float"
	default:
		return fmt.Sprintf("DataType(%d)", int(dt))
	}
}

// Validate reports whether v is a value of this kind. A nil value never
// validates; whether null is acceptable is the column's decision, not the
// type's.
func (dt DataType) Validate(v any) bool {
	if v == nil {
		return false
	}
	switch dt {
	case Integer:
		switch v.(type) {
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
			return true
		}
	case String:
		_, ok := v.(string)
		return ok
	case Bool:
		_, ok := v.(bool)
		return ok
	case Float:
		switch v.(type) {
		case float32, float64:
			return true
		}
	}
	return false
}

// ParseDataType resolves a type name to a DataType. Names are matched
// case-insensitively and common aliases are accepted.
func ParseDataType(name string) (DataType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "int", "integer":
		return Integer, nil
	case "string", "text", "varchar":
		return String, nil
	case "bool", "boolean":
		return Bool, nil
	case "float", "double":
		return Float, nil
	}
	return 0, &SchemaError{Kind: UnknownType, TypeName: name}
}
