package reader

import (
	"errors"
	"reflect"
	"testing"
)

func TestReadJSONObjects(t *testing.T) {
	data := []byte(`[
		{"name": "a", "value": 1},
		{"value": 2.5, "active": true},
		{"name": null, "extra": "x"}
	]`)

	grid, err := ReadJSON(data, DefaultOptions())
	if err != nil {
		t.Fatalf("ReadJSON failed: %v", err)
	}

	expectedHeader := []string{"name", "value", "active", "extra"}
	if !reflect.DeepEqual(grid.Header, expectedHeader) {
		t.Errorf("Header = %v, expected %v", grid.Header, expectedHeader)
	}

	expectedRows := [][]string{
		{"a", "1", "", ""},
		{"", "2.5", "true", ""},
		{"", "", "", "x"},
	}
	if !reflect.DeepEqual(grid.Rows, expectedRows) {
		t.Errorf("Rows = %v, expected %v", grid.Rows, expectedRows)
	}
}

func TestReadJSONNestedCell(t *testing.T) {
	tests := []string{
		`[{"a": 1, "b": {"c": 2}}]`,
		`[{"a": [1, 2]}]`,
		`[["a", "b"], [1, [2]]]`,
	}

	for _, input := range tests {
		_, err := ReadJSON([]byte(input), DefaultOptions())
		if !errors.Is(err, ErrUnsupportedShape) {
			t.Errorf("ReadJSON(%s) error = %v, expected ErrUnsupportedShape", input, err)
		}
	}
}

func TestReadJSONNestedCellLocation(t *testing.T) {
	_, err := ReadJSON([]byte(`[{"a": 1}, {"a": 2, "b": {"c": 3}}]`), DefaultOptions())
	var re *ReadError
	if !errors.As(err, &re) {
		t.Fatalf("Expected *ReadError, got %v", err)
	}
	if re.Row != 1 || re.Column != 1 {
		t.Errorf("Expected row 1, column 1, got row %d, column %d", re.Row, re.Column)
	}
}

func TestReadJSONArrays(t *testing.T) {
	grid, err := ReadJSON([]byte(`[["x", "y"], [1, 2], [3, null]]`), DefaultOptions())
	if err != nil {
		t.Fatalf("ReadJSON failed: %v", err)
	}
	if !grid.HasHeader || !reflect.DeepEqual(grid.Header, []string{"x", "y"}) {
		t.Errorf("Header = %v", grid.Header)
	}
	if !reflect.DeepEqual(grid.Rows, [][]string{{"1", "2"}, {"3", ""}}) {
		t.Errorf("Rows = %v", grid.Rows)
	}
}

func TestReadJSONArraysWithoutHeader(t *testing.T) {
	grid, err := ReadJSON([]byte(`[[1, "a"], [2, "b"]]`), DefaultOptions())
	if err != nil {
		t.Fatalf("ReadJSON failed: %v", err)
	}
	if grid.HasHeader {
		t.Errorf("Expected no header when the first row is not all strings")
	}
	if len(grid.Rows) != 2 {
		t.Errorf("Expected 2 rows, got %d", len(grid.Rows))
	}

	withHeader := true
	opts := DefaultOptions()
	opts.HasHeader = &withHeader
	grid, err = ReadJSON([]byte(`[[1, 2], [3, 4]]`), opts)
	if err != nil {
		t.Fatalf("ReadJSON failed: %v", err)
	}
	if !reflect.DeepEqual(grid.Header, []string{"1", "2"}) {
		t.Errorf("Header = %v", grid.Header)
	}
}

func TestReadJSONTopLevelObject(t *testing.T) {
	_, err := ReadJSON([]byte(`{"a": 1}`), DefaultOptions())
	if !errors.Is(err, ErrUnsupportedShape) {
		t.Errorf("Expected ErrUnsupportedShape, got %v", err)
	}
}

func TestReadJSONMalformed(t *testing.T) {
	_, err := ReadJSON([]byte(`[{"a": 1},`), DefaultOptions())
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("Expected ErrMalformed, got %v", err)
	}
}

func TestSniff(t *testing.T) {
	tests := []struct {
		input    []byte
		expected Format
	}{
		{[]byte("PK\x03\x04rest"), FormatXLSX},
		{[]byte("PAR1rest"), FormatParquet},
		{[]byte("  [{\"a\":1}]"), FormatJSON},
		{[]byte("a\tb\n1\t2\n"), FormatTSV},
		{[]byte("a,b\n1,2\n"), FormatCSV},
	}

	for _, tt := range tests {
		result := Sniff(tt.input)
		if result != tt.expected {
			t.Errorf("Sniff(%q) = %q, expected %q", tt.input, result, tt.expected)
		}
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path     string
		expected Format
	}{
		{"data/sales.CSV", FormatCSV},
		{"x.tsv", FormatTSV},
		{"x.json", FormatJSON},
		{"book.xlsx", FormatXLSX},
		{"t.parquet", FormatParquet},
		{"notes.txt", FormatAuto},
	}

	for _, tt := range tests {
		if result := FormatFromPath(tt.path); result != tt.expected {
			t.Errorf("FormatFromPath(%q) = %q, expected %q", tt.path, result, tt.expected)
		}
	}
}

func TestReadUnknownFormat(t *testing.T) {
	opts := DefaultOptions()
	opts.Format = Format("ods")
	_, err := Read([]byte("x"), opts)
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Expected ErrUnknownFormat, got %v", err)
	}
}
