package dataset

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
)

// ColumnSchema describes one column of a Dataset.
type ColumnSchema struct {
	// Name is unique within the Dataset (compared case-insensitively).
	Name string `json:"name"`
	// Type is the declared column type.
	Type Type `json:"-"`
	// TypeName is Type.String(), kept for serialization.
	TypeName string `json:"type"`
	// Nullable reports whether any value in the column is null.
	Nullable bool `json:"nullable"`
}

// NewColumn returns a ColumnSchema with TypeName filled in.
func NewColumn(name string, t Type, nullable bool) ColumnSchema {
	return ColumnSchema{Name: name, Type: t, TypeName: t.String(), Nullable: nullable}
}

// Dataset is a validated, typed, immutable table.
// Every row has exactly one value per column, and every value is Null or
// tagged with its column's type. Methods never mutate the receiver;
// transformations return a new Dataset with a new ID.
type Dataset struct {
	id      string
	columns []ColumnSchema
	rows    [][]Value
}

// NormalizeName returns the form used to compare column names.
// A Caser is stateful, so one is created per call.
func NormalizeName(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

// New validates columns and rows and returns a Dataset that owns copies of them.
// The Nullable flags are recomputed from rows.
func New(columns []ColumnSchema, rows [][]Value) (*Dataset, error) {
	seen := make(map[string]int, len(columns))
	cols := make([]ColumnSchema, len(columns))
	for i, c := range columns {
		key := NormalizeName(c.Name)
		if _, dup := seen[key]; dup {
			return nil, &CellError{Row: -1, Column: i, Err: ErrDuplicateColumn}
		}
		seen[key] = i
		cols[i] = NewColumn(c.Name, c.Type, false)
	}

	out := make([][]Value, len(rows))
	for r, row := range rows {
		if len(row) != len(cols) {
			return nil, &CellError{Row: r, Column: -1, Err: ErrColumnCount}
		}
		for c, v := range row {
			if v.IsNull() {
				cols[c].Nullable = true
				continue
			}
			if v.Type() != cols[c].Type {
				return nil, &CellError{Row: r, Column: c, Err: ErrTypeMismatch}
			}
		}
		out[r] = append([]Value(nil), row...)
	}

	return &Dataset{
		id:      uuid.NewString(),
		columns: cols,
		rows:    out,
	}, nil
}

// ID returns the snapshot identifier.
func (d *Dataset) ID() string {
	return d.id
}

// Columns returns a copy of the column schemas.
func (d *Dataset) Columns() []ColumnSchema {
	return append([]ColumnSchema(nil), d.columns...)
}

// Column returns the schema of column i.
func (d *Dataset) Column(i int) ColumnSchema {
	return d.columns[i]
}

// ColumnCount returns the number of columns.
func (d *Dataset) ColumnCount() int {
	return len(d.columns)
}

// RowCount returns the number of rows.
func (d *Dataset) RowCount() int {
	return len(d.rows)
}

// ColumnIndex returns the index of the named column (case-insensitive).
func (d *Dataset) ColumnIndex(name string) (int, error) {
	key := NormalizeName(name)
	for i, c := range d.columns {
		if NormalizeName(c.Name) == key {
			return i, nil
		}
	}
	return -1, ErrColumnNotFound
}

// Cell returns the value at row r, column c.
func (d *Dataset) Cell(r, c int) Value {
	return d.rows[r][c]
}

// Row returns a copy of row r.
func (d *Dataset) Row(r int) ([]Value, error) {
	if r < 0 || r >= len(d.rows) {
		return nil, ErrInvalidRow
	}
	return append([]Value(nil), d.rows[r]...), nil
}
