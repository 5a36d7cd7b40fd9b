package chart

import (
	"errors"
	"fmt"
)

// Common errors returned by the chart builders.
var (
	// ErrNonNumericSeries is returned when a value series uses a non-numeric column.
	ErrNonNumericSeries = errors.New("non-numeric series")

	// ErrCyclicReference is returned when tree parent references form a cycle.
	ErrCyclicReference = errors.New("cyclic reference")

	// ErrEmptyDataset is returned when no rows remain after filtering.
	ErrEmptyDataset = errors.New("empty dataset")

	// ErrUnknownColumn is returned when the configuration names a missing column.
	ErrUnknownColumn = errors.New("unknown column")

	// ErrDuplicateNode is returned when two tree rows share a node ID.
	ErrDuplicateNode = errors.New("duplicate node")

	// ErrInvalidConfig is returned when a required setting is missing or invalid.
	ErrInvalidConfig = errors.New("invalid chart configuration")
)

// ChartError represents a failure while building a chart.
// Row is the 0-based dataset row and -1 when not applicable.
type ChartError struct {
	Kind   string
	Column string
	Row    int
	Msg    string
	Err    error
}

func (e *ChartError) Error() string {
	msg := fmt.Sprintf("%s chart: %v", e.Kind, e.Err)
	if e.Column != "" {
		msg += fmt.Sprintf(" %q", e.Column)
	}
	if e.Msg != "" {
		msg += ": " + e.Msg
	}
	if e.Row >= 0 {
		msg += fmt.Sprintf(" (row %d)", e.Row)
	}
	return msg
}

func (e *ChartError) Unwrap() error {
	return e.Err
}

// newChartError creates a new ChartError without a row.
func newChartError(kind string, err error, column, msg string) *ChartError {
	return &ChartError{
		Kind:   kind,
		Column: column,
		Row:    -1,
		Msg:    msg,
		Err:    err,
	}
}
