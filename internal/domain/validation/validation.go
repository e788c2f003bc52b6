// Package validation checks a single user-supplied value against a small set
// of optional constraints. It has no state and never returns an error; the
// caller decides how to report a failed check.
package validation

import (
	"strings"
	"unicode/utf8"
)

// Validatable pairs a value with the constraints it must satisfy. Nil
// constraint pointers are absent and never checked.
//
// Value is expected to be a string or a number. Length constraints only apply
// to strings and range constraints only apply to numbers; a constraint of the
// wrong kind for the value is skipped rather than failed.
type Validatable struct {
	Value     any
	Required  bool
	MinLength *int
	MaxLength *int
	Min       *float64
	Max       *float64
}

// Validate reports whether every present constraint in v is satisfied.
//
// Required fails on an empty (or whitespace-only) string and on numeric zero.
// String lengths are counted in runes after trimming surrounding whitespace
// and must lie strictly between MinLength and MaxLength. Numeric bounds are
// inclusive.
func Validate(v Validatable) bool {
	text, isText := v.Value.(string)
	num, isNum := toFloat(v.Value)

	if v.Required {
		switch {
		case isText && strings.TrimSpace(text) == "":
			return false
		case isNum && num == 0:
			return false
		case !isText && !isNum:
			return false
		}
	}

	if isText {
		length := utf8.RuneCountInString(strings.TrimSpace(text))
		if v.MinLength != nil && length <= *v.MinLength {
			return false
		}
		if v.MaxLength != nil && length >= *v.MaxLength {
			return false
		}
	}

	if isNum {
		if v.Min != nil && num < *v.Min {
			return false
		}
		if v.Max != nil && num > *v.Max {
			return false
		}
	}

	return true
}

// Int returns a pointer to n, for building length constraints inline.
func Int(n int) *int { return &n }

// Float returns a pointer to f, for building range constraints inline.
func Float(f float64) *float64 { return &f }

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
