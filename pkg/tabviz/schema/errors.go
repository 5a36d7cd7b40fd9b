package schema

import (
	"errors"
	"fmt"
)

// ErrDuplicateHeader indicates two header cells collide after normalization.
var ErrDuplicateHeader = errors.New("duplicate header")

// ErrRaggedRows indicates rows of different lengths with no fill policy.
var ErrRaggedRows = errors.New("ragged rows")

// ErrTypeMismatch indicates a cell that cannot be represented as a forced column type.
var ErrTypeMismatch = errors.New("cell does not match column type")

// SchemaError represents a failure while inferring a schema.
// Row and Column are 0-based data indexes and -1 when not applicable.
type SchemaError struct {
	Row    int
	Column int
	Name   string
	Err    error
}

func (e *SchemaError) Error() string {
	msg := fmt.Sprintf("schema: %v", e.Err)
	if e.Name != "" {
		msg += fmt.Sprintf(" %q", e.Name)
	}
	switch {
	case e.Row >= 0 && e.Column >= 0:
		msg += fmt.Sprintf(" (row %d, column %d)", e.Row, e.Column)
	case e.Row >= 0:
		msg += fmt.Sprintf(" (row %d)", e.Row)
	case e.Column >= 0:
		msg += fmt.Sprintf(" (column %d)", e.Column)
	}
	return msg
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}
