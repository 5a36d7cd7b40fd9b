package dataset

import (
	"errors"
	"testing"
	"time"
)

func sample(t *testing.T) *Dataset {
	t.Helper()

	ds, err := New(
		[]ColumnSchema{
			NewColumn("City", TypeText, false),
			NewColumn("Population", TypeInteger, false),
		},
		[][]Value{
			{Text("Oslo"), Int(700000)},
			{Text("Bergen"), Null()},
			{Text("Tromso"), Int(77000)},
		},
	)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return ds
}

func TestNew(t *testing.T) {
	ds := sample(t)

	if ds.ID() == "" {
		t.Errorf("Expected a dataset ID")
	}
	if ds.RowCount() != 3 || ds.ColumnCount() != 2 {
		t.Errorf("Shape = %d x %d, expected 3 x 2", ds.RowCount(), ds.ColumnCount())
	}
	if ds.Column(0).Nullable || !ds.Column(1).Nullable {
		t.Errorf("Nullable flags = %v, %v", ds.Column(0).Nullable, ds.Column(1).Nullable)
	}
	if ds.Column(1).TypeName != "Integer" {
		t.Errorf("TypeName = %q, expected Integer", ds.Column(1).TypeName)
	}
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name     string
		columns  []ColumnSchema
		rows     [][]Value
		expected error
	}{
		{
			"duplicate column",
			[]ColumnSchema{NewColumn("a", TypeText, false), NewColumn(" A", TypeText, false)},
			nil,
			ErrDuplicateColumn,
		},
		{
			"short row",
			[]ColumnSchema{NewColumn("a", TypeText, false), NewColumn("b", TypeText, false)},
			[][]Value{{Text("x")}},
			ErrColumnCount,
		},
		{
			"wrong tag",
			[]ColumnSchema{NewColumn("a", TypeInteger, false)},
			[][]Value{{Int(1)}, {Text("2")}},
			ErrTypeMismatch,
		},
	}

	for _, tt := range tests {
		_, err := New(tt.columns, tt.rows)
		if !errors.Is(err, tt.expected) {
			t.Errorf("%s: error = %v, expected %v", tt.name, err, tt.expected)
		}
	}
}

func TestDatasetImmutable(t *testing.T) {
	rows := [][]Value{{Int(1)}}
	ds, err := New([]ColumnSchema{NewColumn("n", TypeInteger, false)}, rows)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	rows[0][0] = Int(99)
	row, _ := ds.Row(0)
	row[0] = Int(42)
	cols := ds.Columns()
	cols[0].Name = "changed"

	if v, _ := ds.Cell(0, 0).Int(); v != 1 {
		t.Errorf("Dataset was mutated through a caller slice: %d", v)
	}
	if ds.Column(0).Name != "n" {
		t.Errorf("Column schema was mutated: %q", ds.Column(0).Name)
	}
}

func TestColumnIndex(t *testing.T) {
	ds := sample(t)

	if i, err := ds.ColumnIndex("population"); err != nil || i != 1 {
		t.Errorf("ColumnIndex(population) = %d, %v", i, err)
	}
	if _, err := ds.ColumnIndex("country"); !errors.Is(err, ErrColumnNotFound) {
		t.Errorf("Expected ErrColumnNotFound, got %v", err)
	}
	if _, err := ds.Row(5); !errors.Is(err, ErrInvalidRow) {
		t.Errorf("Expected ErrInvalidRow, got %v", err)
	}
}

func TestTransformations(t *testing.T) {
	ds := sample(t)

	renamed, err := ds.Rename(0, "Town")
	if err != nil {
		t.Fatalf("Rename failed: %v", err)
	}
	if renamed.Column(0).Name != "Town" || ds.Column(0).Name != "City" {
		t.Errorf("Rename should only affect the new dataset")
	}
	if renamed.ID() == ds.ID() {
		t.Errorf("Transformations must produce a new ID")
	}

	if _, err := ds.Rename(1, "city"); !errors.Is(err, ErrDuplicateColumn) {
		t.Errorf("Expected ErrDuplicateColumn, got %v", err)
	}

	selected, err := ds.SelectColumns([]int{1})
	if err != nil || selected.ColumnCount() != 1 || selected.Column(0).Name != "Population" {
		t.Errorf("SelectColumns = %v, %v", selected, err)
	}

	excluded, err := ds.ExcludeColumns([]int{1})
	if err != nil || excluded.ColumnCount() != 1 || excluded.Column(0).Name != "City" {
		t.Errorf("ExcludeColumns = %v, %v", excluded, err)
	}

	fewer, err := ds.ExcludeRows([]int{1})
	if err != nil {
		t.Fatalf("ExcludeRows failed: %v", err)
	}
	if fewer.RowCount() != 2 || fewer.Column(1).Nullable {
		t.Errorf("ExcludeRows = %d rows, nullable %v", fewer.RowCount(), fewer.Column(1).Nullable)
	}
	if _, err := ds.ExcludeRows([]int{3}); !errors.Is(err, ErrInvalidRow) {
		t.Errorf("Expected ErrInvalidRow, got %v", err)
	}
}

func TestRetype(t *testing.T) {
	ds := sample(t)

	floats, err := ds.Retype(1, TypeFloat, DefaultParser())
	if err != nil {
		t.Fatalf("Retype failed: %v", err)
	}
	if f, ok := floats.Cell(0, 1).Float(); !ok || f != 700000 {
		t.Errorf("Cell(0, 1) = %v, expected Float 700000", floats.Cell(0, 1))
	}
	if !floats.Cell(1, 1).IsNull() {
		t.Errorf("Nulls must survive Retype")
	}

	if _, err := ds.Retype(0, TypeInteger, DefaultParser()); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("Expected ErrTypeMismatch, got %v", err)
	}
}

func TestRetypeKeepsTimeOfDay(t *testing.T) {
	stamp := time.Date(2024, 1, 2, 13, 45, 0, 0, time.UTC)
	ds, err := New([]ColumnSchema{NewColumn("at", TypeDate, false)}, [][]Value{{Date(stamp)}})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	same, err := ds.Retype(0, TypeDate, DefaultParser())
	if err != nil {
		t.Fatalf("Retype to Date failed: %v", err)
	}
	if d, ok := same.Cell(0, 0).Date(); !ok || !d.Equal(stamp) {
		t.Errorf("Date -> Date = %v, expected %v", same.Cell(0, 0), stamp)
	}

	text, err := ds.Retype(0, TypeText, DefaultParser())
	if err != nil {
		t.Fatalf("Retype to Text failed: %v", err)
	}
	if s, _ := text.Cell(0, 0).Text(); s != "2024-01-02T13:45:00Z" {
		t.Errorf("Date -> Text = %q, expected RFC 3339 form", s)
	}

	back, err := text.Retype(0, TypeDate, DefaultParser())
	if err != nil {
		t.Fatalf("Retype back to Date failed: %v", err)
	}
	if d, _ := back.Cell(0, 0).Date(); !d.Equal(stamp) {
		t.Errorf("Text -> Date = %v, expected %v", d, stamp)
	}
}
