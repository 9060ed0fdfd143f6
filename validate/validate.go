// Package validate checks single form values against optional constraints.
// Checks are pure: no side effects, no errors, always a boolean verdict.
package validate

import "strings"

// Value is a single input value, either textual or numeric.
type Value struct {
	text     string
	number   float64
	isNumber bool
}

// Text wraps a textual value.
func Text(s string) Value { return Value{text: s} }

// Number wraps a numeric value.
func Number(n float64) Value { return Value{number: n, isNumber: true} }

// Rules is the optional constraint set for one value. Nil fields are absent
// constraints and pass vacuously. Length bounds apply only to textual values,
// numeric bounds only to numeric values.
type Rules struct {
	Required  bool
	MinLength *int
	MaxLength *int
	Min       *float64
	Max       *float64
}

// OK reports whether v satisfies every supplied constraint. Required on a
// textual value means non-empty after trimming whitespace; a numeric value is
// always present.
func OK(v Value, r Rules) bool {
	if r.Required && !v.isNumber && strings.TrimSpace(v.text) == "" {
		return false
	}
	if !v.isNumber {
		if r.MinLength != nil && len(v.text) < *r.MinLength {
			return false
		}
		if r.MaxLength != nil && len(v.text) > *r.MaxLength {
			return false
		}
		return true
	}
	// Comparisons are written so that NaN (an unparseable numeric input)
	// fails any supplied bound.
	if r.Min != nil && !(v.number >= *r.Min) {
		return false
	}
	if r.Max != nil && !(v.number <= *r.Max) {
		return false
	}
	return true
}
