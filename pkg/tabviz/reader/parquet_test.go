package reader

import (
	"bytes"
	"errors"
	"reflect"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
)

func buildParquet(t *testing.T) []byte {
	t.Helper()

	schema := arrow.NewSchema([]arrow.Field{
		{Name: "city", Type: arrow.BinaryTypes.String},
		{Name: "population", Type: arrow.PrimitiveTypes.Int64, Nullable: true},
	}, nil)

	b := array.NewRecordBuilder(memory.NewGoAllocator(), schema)
	defer b.Release()
	b.Field(0).(*array.StringBuilder).AppendValues([]string{"Oslo", "Bergen", "Tromso"}, nil)
	b.Field(1).(*array.Int64Builder).AppendValues([]int64{700000, 0, 77000}, []bool{true, false, true})

	rec := b.NewRecord()
	defer rec.Release()
	table := array.NewTableFromRecords(schema, []arrow.Record{rec})
	defer table.Release()

	var buf bytes.Buffer
	if err := pqarrow.WriteTable(table, &buf, 1024, parquet.NewWriterProperties(), pqarrow.DefaultWriterProps()); err != nil {
		t.Fatalf("Failed to write parquet: %v", err)
	}
	return buf.Bytes()
}

func TestReadParquet(t *testing.T) {
	data := buildParquet(t)

	if Sniff(data) != FormatParquet {
		t.Fatalf("Expected parquet magic to be sniffed")
	}

	grid, err := Read(data, DefaultOptions())
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if !reflect.DeepEqual(grid.Header, []string{"city", "population"}) {
		t.Errorf("Header = %v", grid.Header)
	}
	expected := [][]string{{"Oslo", "700000"}, {"Bergen", ""}, {"Tromso", "77000"}}
	if !reflect.DeepEqual(grid.Rows, expected) {
		t.Errorf("Rows = %v, expected %v", grid.Rows, expected)
	}
}

func TestReadParquetMalformed(t *testing.T) {
	_, err := ReadParquet([]byte("PAR1garbage"), DefaultOptions())
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("Expected ErrMalformed, got %v", err)
	}
}
