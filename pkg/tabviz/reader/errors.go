package reader

import (
	"errors"
	"fmt"
)

// ErrMalformed indicates the input bytes could not be parsed in the declared format.
var ErrMalformed = errors.New("malformed input")

// ErrUnsupportedShape indicates JSON input whose structure cannot become a table.
var ErrUnsupportedShape = errors.New("unsupported shape")

// ErrSheetNotFound indicates the requested spreadsheet sheet does not exist.
var ErrSheetNotFound = errors.New("sheet not found")

// ErrUnknownFormat indicates the format could not be determined or is not supported.
var ErrUnknownFormat = errors.New("unknown format")

// ReadError represents a failure while reading a format.
// Row and Column are 0-based and -1 when not applicable.
type ReadError struct {
	Format string
	Row    int
	Column int
	Msg    string
	Err    error
}

func (e *ReadError) Error() string {
	msg := fmt.Sprintf("read %s: %v", e.Format, e.Err)
	if e.Msg != "" {
		msg += ": " + e.Msg
	}
	switch {
	case e.Row >= 0 && e.Column >= 0:
		msg += fmt.Sprintf(" (row %d, column %d)", e.Row, e.Column)
	case e.Row >= 0:
		msg += fmt.Sprintf(" (row %d)", e.Row)
	}
	return msg
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// newReadError creates a new ReadError.
func newReadError(format string, err error, row, col int, msg string) *ReadError {
	return &ReadError{
		Format: format,
		Row:    row,
		Column: col,
		Msg:    msg,
		Err:    err,
	}
}
