package dataset

import (
	"fmt"
	"time"
)

// Retype returns a new Dataset with column col converted to type t.
// Each value is re-parsed from its text form, with dates in RFC 3339 so the
// time of day survives. A value that cannot be represented as t fails the
// whole conversion.
func (d *Dataset) Retype(col int, t Type, p Parser) (*Dataset, error) {
	if col < 0 || col >= len(d.columns) {
		return nil, &CellError{Row: -1, Column: col, Err: ErrColumnNotFound}
	}
	cols := d.Columns()
	cols[col] = NewColumn(cols[col].Name, t, false)

	rows := make([][]Value, len(d.rows))
	for r, row := range d.rows {
		next := append([]Value(nil), row...)
		if !row[col].IsNull() && row[col].Type() != t {
			v, ok := p.Parse(retypeText(row[col]), t)
			if !ok {
				return nil, &CellError{Row: r, Column: col, Err: ErrTypeMismatch}
			}
			next[col] = v
		}
		rows[r] = next
	}
	return New(cols, rows)
}

func retypeText(v Value) string {
	if d, ok := v.Date(); ok {
		return d.Format(time.RFC3339)
	}
	return v.Format("")
}

// Rename returns a new Dataset with column col renamed.
func (d *Dataset) Rename(col int, name string) (*Dataset, error) {
	if col < 0 || col >= len(d.columns) {
		return nil, &CellError{Row: -1, Column: col, Err: ErrColumnNotFound}
	}
	cols := d.Columns()
	cols[col].Name = name
	return New(cols, d.rows)
}

// SelectColumns returns a new Dataset holding only the given columns, in order.
func (d *Dataset) SelectColumns(indexes []int) (*Dataset, error) {
	cols := make([]ColumnSchema, len(indexes))
	for i, idx := range indexes {
		if idx < 0 || idx >= len(d.columns) {
			return nil, &CellError{Row: -1, Column: idx, Err: ErrColumnNotFound}
		}
		cols[i] = d.columns[idx]
	}
	rows := make([][]Value, len(d.rows))
	for r, row := range d.rows {
		next := make([]Value, len(indexes))
		for i, idx := range indexes {
			next[i] = row[idx]
		}
		rows[r] = next
	}
	return New(cols, rows)
}

// ExcludeColumns returns a new Dataset without the given columns.
func (d *Dataset) ExcludeColumns(indexes []int) (*Dataset, error) {
	drop := make(map[int]bool, len(indexes))
	for _, idx := range indexes {
		if idx < 0 || idx >= len(d.columns) {
			return nil, &CellError{Row: -1, Column: idx, Err: ErrColumnNotFound}
		}
		drop[idx] = true
	}
	var keep []int
	for i := range d.columns {
		if !drop[i] {
			keep = append(keep, i)
		}
	}
	return d.SelectColumns(keep)
}

// ExcludeRows returns a new Dataset without the given rows.
func (d *Dataset) ExcludeRows(indexes []int) (*Dataset, error) {
	drop := make(map[int]bool, len(indexes))
	for _, idx := range indexes {
		if idx < 0 || idx >= len(d.rows) {
			return nil, &CellError{Row: idx, Column: -1, Err: ErrInvalidRow}
		}
		drop[idx] = true
	}
	return d.Filter(func(r int, _ []Value) bool { return !drop[r] })
}

// Filter returns a new Dataset holding the rows for which keep returns true.
// keep must not retain or modify the row slice.
func (d *Dataset) Filter(keep func(r int, row []Value) bool) (*Dataset, error) {
	var rows [][]Value
	for r, row := range d.rows {
		if keep(r, row) {
			rows = append(rows, row)
		}
	}
	return New(d.columns, rows)
}

// String returns a short description of the dataset shape.
func (d *Dataset) String() string {
	return fmt.Sprintf("dataset %s (%d rows, %d columns)", d.id, len(d.rows), len(d.columns))
}
