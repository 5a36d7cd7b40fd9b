package reader

import (
	"bytes"
	"context"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
	"github.com/ukaji3/tabviz-go/pkg/tabviz/models"
)

// ReadParquet reads every column of a Parquet file. Field names become the
// header and each cell is the Arrow string form of its value; nulls are empty.
func ReadParquet(data []byte, opts Options) (*models.RawGrid, error) {
	pf, err := file.NewParquetReader(bytes.NewReader(data), file.WithReadProps(&parquet.ReaderProperties{}))
	if err != nil {
		return nil, newReadError(string(FormatParquet), ErrMalformed, -1, -1, err.Error())
	}
	defer pf.Close()

	mem := memory.NewGoAllocator()
	arrowReader, err := pqarrow.NewFileReader(pf, pqarrow.ArrowReadProperties{}, mem)
	if err != nil {
		return nil, newReadError(string(FormatParquet), ErrMalformed, -1, -1, err.Error())
	}

	table, err := arrowReader.ReadTable(context.Background())
	if err != nil {
		return nil, newReadError(string(FormatParquet), ErrMalformed, -1, -1, err.Error())
	}
	defer table.Release()

	numRows := int(table.NumRows())
	numCols := int(table.NumCols())

	header := make([]string, numCols)
	for i, field := range table.Schema().Fields() {
		header[i] = field.Name
	}

	rows := make([][]string, numRows)
	for r := range rows {
		rows[r] = make([]string, numCols)
	}

	for c := 0; c < numCols; c++ {
		offset := 0
		for _, chunk := range table.Column(c).Data().Chunks() {
			for i := 0; i < chunk.Len(); i++ {
				if !chunk.IsNull(i) {
					rows[offset+i][c] = chunk.ValueStr(i)
				}
			}
			offset += chunk.Len()
		}
	}

	opts.logger().Debug("read parquet", "rows", numRows, "columns", numCols)
	return &models.RawGrid{
		Source:    string(FormatParquet),
		HasHeader: true,
		Header:    header,
		Rows:      rows,
	}, nil
}
