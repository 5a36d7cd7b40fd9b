// Package dataset provides the typed, immutable in-memory table.
package dataset

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Type is the type of a column or value.
type Type int

const (
	// TypeEmpty marks a column with no non-null values.
	TypeEmpty Type = iota
	TypeInteger
	TypeFloat
	TypeDate
	TypeBoolean
	TypeText
)

// DefaultDateFormat is the layout used to display dates when none is configured.
const DefaultDateFormat = "2006-01-02"

// String returns the string representation of a Type.
func (t Type) String() string {
	switch t {
	case TypeEmpty:
		return "Empty"
	case TypeInteger:
		return "Integer"
	case TypeFloat:
		return "Float"
	case TypeDate:
		return "Date"
	case TypeBoolean:
		return "Boolean"
	case TypeText:
		return "Text"
	default:
		return fmt.Sprintf("Unknown(%d)", int(t))
	}
}

// ParseType parses a type name (case-insensitive).
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "empty":
		return TypeEmpty, nil
	case "integer", "int":
		return TypeInteger, nil
	case "float", "number":
		return TypeFloat, nil
	case "date":
		return TypeDate, nil
	case "boolean", "bool":
		return TypeBoolean, nil
	case "text", "string":
		return TypeText, nil
	default:
		return TypeEmpty, fmt.Errorf("unknown type %q", s)
	}
}

// IsNumeric reports whether values of t can be plotted on a continuous axis.
func (t Type) IsNumeric() bool {
	return t == TypeInteger || t == TypeFloat
}

// Value is a typed cell value. The zero Value is Null.
// Consumers switch on Type; the accessor matching the tag returns ok.
type Value struct {
	typ  Type
	null bool
	i    int64
	f    float64
	b    bool
	s    string
	t    time.Time
}

// Null returns a null value.
func Null() Value {
	return Value{typ: TypeEmpty, null: true}
}

// Int returns an Integer value.
func Int(v int64) Value { return Value{typ: TypeInteger, i: v} }

// Float returns a Float value.
func Float(v float64) Value { return Value{typ: TypeFloat, f: v} }

// Bool returns a Boolean value.
func Bool(v bool) Value { return Value{typ: TypeBoolean, b: v} }

// Text returns a Text value.
func Text(v string) Value { return Value{typ: TypeText, s: v} }

// Date returns a Date value.
func Date(v time.Time) Value { return Value{typ: TypeDate, t: v} }

// IsNull reports whether the value is null.
func (v Value) IsNull() bool {
	return v.null || v.typ == TypeEmpty
}

// Type returns the value's tag. Null values report TypeEmpty.
func (v Value) Type() Type {
	if v.IsNull() {
		return TypeEmpty
	}
	return v.typ
}

// Int returns the Integer payload.
func (v Value) Int() (int64, bool) {
	return v.i, v.Type() == TypeInteger
}

// Float returns the Float payload.
func (v Value) Float() (float64, bool) {
	return v.f, v.Type() == TypeFloat
}

// Bool returns the Boolean payload.
func (v Value) Bool() (bool, bool) {
	return v.b, v.Type() == TypeBoolean
}

// Text returns the Text payload.
func (v Value) Text() (string, bool) {
	return v.s, v.Type() == TypeText
}

// Date returns the Date payload.
func (v Value) Date() (time.Time, bool) {
	return v.t, v.Type() == TypeDate
}

// Number returns the value as a float64 for plotting.
// Dates are expressed as fractional days since the Unix epoch.
func (v Value) Number() (float64, bool) {
	switch v.Type() {
	case TypeInteger:
		return float64(v.i), true
	case TypeFloat:
		return v.f, true
	case TypeDate:
		return float64(v.t.Unix()) / secondsPerDay, true
	case TypeBoolean, TypeText, TypeEmpty:
		return 0, false
	}
	return 0, false
}

const secondsPerDay = 86400

// DateFromNumber converts a value produced by Number for a Date back to a time.
func DateFromNumber(days float64) time.Time {
	return time.Unix(int64(days*secondsPerDay), 0).UTC()
}

// Format renders the value for display. Null renders as "".
// dateFormat is a Go time layout; DefaultDateFormat is used when empty.
func (v Value) Format(dateFormat string) string {
	switch v.Type() {
	case TypeEmpty:
		return ""
	case TypeInteger:
		return strconv.FormatInt(v.i, 10)
	case TypeFloat:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case TypeBoolean:
		return strconv.FormatBool(v.b)
	case TypeDate:
		if dateFormat == "" {
			dateFormat = DefaultDateFormat
		}
		return v.t.Format(dateFormat)
	case TypeText:
		return v.s
	}
	return ""
}

// String implements fmt.Stringer.
func (v Value) String() string {
	return v.Format("")
}

// Equal reports whether two values have the same tag and payload.
func (v Value) Equal(o Value) bool {
	if v.Type() != o.Type() {
		return false
	}
	switch v.Type() {
	case TypeEmpty:
		return true
	case TypeInteger:
		return v.i == o.i
	case TypeFloat:
		return v.f == o.f
	case TypeBoolean:
		return v.b == o.b
	case TypeDate:
		return v.t.Equal(o.t)
	case TypeText:
		return v.s == o.s
	}
	return false
}

// Compare orders two values of the same column. Nulls sort last.
func Compare(a, b Value) int {
	switch {
	case a.IsNull() && b.IsNull():
		return 0
	case a.IsNull():
		return 1
	case b.IsNull():
		return -1
	}
	switch a.Type() {
	case TypeInteger, TypeFloat, TypeDate:
		x, _ := a.Number()
		y, ok := b.Number()
		if !ok {
			break
		}
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	case TypeBoolean:
		switch {
		case a.b == b.b:
			return 0
		case !a.b:
			return -1
		}
		return 1
	case TypeText, TypeEmpty:
	}
	return strings.Compare(a.Format(""), b.Format(""))
}
