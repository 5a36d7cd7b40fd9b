package dataset

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"
)

// DefaultDateLayouts are the date layouts recognized when parsing cells.
var DefaultDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"02-Jan-2006",
	"Jan 2, 2006",
}

// Parser converts cell strings into typed values.
type Parser struct {
	// DateLayouts lists accepted date layouts, tried in order.
	DateLayouts []string
}

// DefaultParser returns a Parser using DefaultDateLayouts.
func DefaultParser() Parser {
	return Parser{DateLayouts: DefaultDateLayouts}
}

// IsNullCell reports whether a raw cell represents a null value.
func IsNullCell(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Classify returns the narrowest type for a single non-null cell.
// Classification order: Integer, Float, Date, Boolean, Text.
func (p Parser) Classify(s string) Type {
	s = strings.TrimSpace(s)
	if s == "" {
		return TypeEmpty
	}
	if _, ok := parseInt(s); ok {
		return TypeInteger
	}
	if _, ok := parseFloat(s); ok {
		return TypeFloat
	}
	if _, ok := p.parseDate(s); ok {
		return TypeDate
	}
	if _, ok := parseBool(s); ok {
		return TypeBoolean
	}
	return TypeText
}

// Parse converts s to a value of type t.
// Null cells yield Null; ok is false when s cannot be represented as t.
func (p Parser) Parse(s string, t Type) (Value, bool) {
	if IsNullCell(s) {
		return Null(), true
	}
	trimmed := strings.TrimSpace(s)
	switch t {
	case TypeEmpty:
		return Null(), false
	case TypeInteger:
		if i, ok := parseInt(trimmed); ok {
			return Int(i), true
		}
	case TypeFloat:
		if f, ok := parseFloat(trimmed); ok {
			return Float(f), true
		}
	case TypeDate:
		if d, ok := p.parseDate(trimmed); ok {
			return Date(d), true
		}
	case TypeBoolean:
		if b, ok := parseBool(trimmed); ok {
			return Bool(b), true
		}
	case TypeText:
		return Text(s), true
	}
	return Null(), false
}

func parseInt(s string) (int64, bool) {
	i, err := strconv.ParseInt(s, 10, 64)
	return i, err == nil
}

// parseFloat rejects integer literals outside the int64 range, which a
// float64 cannot hold exactly.
func parseFloat(s string) (float64, bool) {
	if _, err := strconv.ParseInt(s, 10, 64); errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "true", "yes", "1":
		return true, true
	case "false", "no", "0":
		return false, true
	}
	return false, false
}

func (p Parser) parseDate(s string) (time.Time, bool) {
	layouts := p.DateLayouts
	if len(layouts) == 0 {
		layouts = DefaultDateLayouts
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
