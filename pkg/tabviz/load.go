package tabviz

import (
	"errors"
	"io/fs"
	"os"

	"github.com/ukaji3/tabviz-go/pkg/tabviz/dataset"
	"github.com/ukaji3/tabviz-go/pkg/tabviz/reader"
	"github.com/ukaji3/tabviz-go/pkg/tabviz/schema"
)

// Load reads data and infers a Dataset from it.
func Load(data []byte, opts Options) (*dataset.Dataset, error) {
	return load("", data, opts)
}

// LoadFile reads the file at path and infers a Dataset from it.
// When no format is configured, the file extension is tried before sniffing.
func LoadFile(path string, opts Options) (*dataset.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			err = ErrFileNotFound
		}
		return nil, NewLoadError(path, StageOpen, err)
	}
	if opts.Reader.Format == reader.FormatAuto {
		opts.Reader.Format = reader.FormatFromPath(path)
	}
	return load(path, data, opts)
}

func load(path string, data []byte, opts Options) (*dataset.Dataset, error) {
	opts = opts.withLogger()

	grid, err := reader.Read(data, opts.Reader)
	if err != nil {
		return nil, NewLoadError(path, StageRead, err)
	}

	ds, err := schema.Infer(grid, opts.Schema)
	if err != nil {
		return nil, NewLoadError(path, StageInfer, err)
	}

	opts.Logger.Info("loaded dataset",
		"path", path,
		"source", grid.Source,
		"id", ds.ID(),
		"rows", ds.RowCount(),
		"columns", ds.ColumnCount(),
	)
	return ds, nil
}
