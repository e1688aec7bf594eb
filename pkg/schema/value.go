package schema

import (
	"reflect"
	"strings"
)

// Values move through the store as untyped interfaces. Comparisons are
// permissive: values of different kinds are unequal and unordered rather
// than an error, so a bad comparison surfaces as a non-match, never a
// panic.

// Equal reports natural equality between two values. Two nils are equal,
// nil never equals a value, and integer values compare by numeric value
// regardless of width or signedness.
func Equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if ai, aok := intValue(a); aok {
		bi, bok := intValue(b)
		return bok && compareIntValues(ai, bi) == 0
	}
	if af, aok := floatValue(a); aok {
		bf, bok := floatValue(b)
		return bok && af == bf
	}
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	}
	// Rows may carry values outside the column kinds in undeclared
	// fields. DeepEqual handles those without panicking on uncomparable
	// types such as maps and slices.
	return reflect.DeepEqual(a, b)
}

// Compare orders two values. The result is meaningful only when ordered
// is true: ordering is defined within the Integer, Float, and String
// kinds. Everything else, including any cross-kind pair, bools, and
// nils, is unordered.
func Compare(a, b any) (cmp int, ordered bool) {
	if a == nil || b == nil {
		return 0, false
	}
	if ai, aok := intValue(a); aok {
		if bi, bok := intValue(b); bok {
			return compareIntValues(ai, bi), true
		}
		return 0, false
	}
	if af, aok := floatValue(a); aok {
		if bf, bok := floatValue(b); bok {
			switch {
			case af < bf:
				return -1, true
			case af > bf:
				return 1, true
			}
			return 0, true
		}
		return 0, false
	}
	if as, aok := a.(string); aok {
		if bs, bok := b.(string); bok {
			return strings.Compare(as, bs), true
		}
	}
	return 0, false
}

// intRep holds an integer in whichever of the two representations fits.
// Values above MaxInt64 keep the unsigned form.
type intRep struct {
	i        int64
	u        uint64
	unsigned bool
}

func intValue(v any) (intRep, bool) {
	switch n := v.(type) {
	case int:
		return intRep{i: int64(n)}, true
	case int8:
		return intRep{i: int64(n)}, true
	case int16:
		return intRep{i: int64(n)}, true
	case int32:
		return intRep{i: int64(n)}, true
	case int64:
		return intRep{i: n}, true
	case uint8:
		return intRep{i: int64(n)}, true
	case uint16:
		return intRep{i: int64(n)}, true
	case uint32:
		return intRep{i: int64(n)}, true
	case uint:
		return intRep{u: uint64(n), unsigned: true}, true
	case uint64:
		return intRep{u: n, unsigned: true}, true
	}
	return intRep{}, false
}

func compareIntValues(a, b intRep) int {
	switch {
	case !a.unsigned && !b.unsigned:
		return compareInt64(a.i, b.i)
	case a.unsigned && b.unsigned:
		return compareUint64(a.u, b.u)
	case a.unsigned:
		if b.i < 0 {
			return 1
		}
		return compareUint64(a.u, uint64(b.i))
	default:
		if a.i < 0 {
			return -1
		}
		return compareUint64(uint64(a.i), b.u)
	}
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareUint64(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func floatValue(v any) (float64, bool) {
	switch f := v.(type) {
	case float32:
		return float64(f), true
	case float64:
		return f, true
	}
	return 0, false
}
