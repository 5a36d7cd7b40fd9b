package dataset

import (
	"errors"
	"fmt"
)

// Common errors returned by the dataset package.
var (
	// ErrColumnCount is returned when a row does not have one value per column.
	ErrColumnCount = errors.New("row has wrong number of values")

	// ErrTypeMismatch is returned when a value's tag differs from its column type.
	ErrTypeMismatch = errors.New("value type does not match column type")

	// ErrDuplicateColumn is returned when two columns share a name.
	ErrDuplicateColumn = errors.New("duplicate column name")

	// ErrColumnNotFound is returned when a column name is not found.
	ErrColumnNotFound = errors.New("column not found")

	// ErrInvalidRow is returned when a row index is out of range.
	ErrInvalidRow = errors.New("invalid row index")
)

// CellError locates a dataset error. Row and Column are -1 when not applicable.
type CellError struct {
	Row    int
	Column int
	Err    error
}

func (e *CellError) Error() string {
	switch {
	case e.Row >= 0 && e.Column >= 0:
		return fmt.Sprintf("row %d, column %d: %v", e.Row, e.Column, e.Err)
	case e.Row >= 0:
		return fmt.Sprintf("row %d: %v", e.Row, e.Err)
	case e.Column >= 0:
		return fmt.Sprintf("column %d: %v", e.Column, e.Err)
	}
	return e.Err.Error()
}

func (e *CellError) Unwrap() error {
	return e.Err
}
