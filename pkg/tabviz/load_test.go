package tabviz

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/tabviz-go/pkg/tabviz/dataset"
	"github.com/ukaji3/tabviz-go/pkg/tabviz/reader"
	"github.com/ukaji3/tabviz-go/pkg/tabviz/schema"
)

func TestLoadCSV(t *testing.T) {
	data := []byte("region,sales,opened\nNorth,100,2020-01-05\nSouth,,2021-07-01\n")

	ds, err := Load(data, DefaultOptions())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	expected := []dataset.Type{dataset.TypeText, dataset.TypeInteger, dataset.TypeDate}
	for i, typ := range expected {
		if ds.Column(i).Type != typ {
			t.Errorf("Column %d type = %v, expected %v", i, ds.Column(i).Type, typ)
		}
	}
	if !ds.Column(1).Nullable {
		t.Errorf("Expected sales to be nullable")
	}
}

func TestLoadStages(t *testing.T) {
	tests := []struct {
		data     string
		opts     func(*Options)
		stage    string
		expected error
	}{
		{"a,b\n\"1,2\n", nil, StageRead, reader.ErrMalformed},
		{"a,a\n1,2\n", nil, StageInfer, schema.ErrDuplicateHeader},
		{"a,b\n1\n", func(o *Options) { o.Schema.Fill = schema.FillNone }, StageInfer, schema.ErrRaggedRows},
	}

	for _, tt := range tests {
		opts := DefaultOptions()
		if tt.opts != nil {
			tt.opts(&opts)
		}
		_, err := Load([]byte(tt.data), opts)
		if !errors.Is(err, tt.expected) {
			t.Errorf("Load(%q) error = %v, expected %v", tt.data, err, tt.expected)
			continue
		}
		var le *LoadError
		if !errors.As(err, &le) || le.Stage != tt.stage {
			t.Errorf("Load(%q) stage = %v, expected %s", tt.data, err, tt.stage)
		}
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "points.json")
	if err := os.WriteFile(path, []byte(`[{"x": 1, "y": 2.5}, {"x": 2, "y": 3}]`), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	ds, err := LoadFile(path, DefaultOptions())
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if ds.RowCount() != 2 || ds.Column(1).Type != dataset.TypeFloat {
		t.Errorf("Loaded %s with y type %v", ds, ds.Column(1).Type)
	}
}

func TestLoadFileNotFound(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.csv"), DefaultOptions())
	if !errors.Is(err, ErrFileNotFound) {
		t.Errorf("Expected ErrFileNotFound, got %v", err)
	}
	var le *LoadError
	if errors.As(err, &le) && le.Stage != StageOpen {
		t.Errorf("Expected open stage, got %q", le.Stage)
	}
}

func TestLoadSpreadsheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetCellValue("Sheet1", "A1", "day")
	f.SetCellValue("Sheet1", "B1", "note")
	f.SetCellValue("Sheet1", "A2", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))
	f.SetCellValue("Sheet1", "A3", time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC))
	f.SetCellValue("Sheet1", "B3", "late")
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("Failed to write workbook: %v", err)
	}

	opts := DefaultOptions()
	opts.Schema.Fill = schema.FillNone
	ds, err := Load(buf.Bytes(), opts)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if ds.Column(0).Type != dataset.TypeDate {
		t.Errorf("Column 0 type = %v, expected Date", ds.Column(0).Type)
	}
	if d, ok := ds.Cell(0, 0).Date(); !ok || !d.Equal(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Cell(0, 0) = %v, expected 2024-01-02", ds.Cell(0, 0))
	}
	if !ds.Cell(0, 1).IsNull() {
		t.Errorf("Expected trailing empty cell to be null, got %v", ds.Cell(0, 1))
	}
}
