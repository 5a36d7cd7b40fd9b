package reader

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/ukaji3/tabviz-go/pkg/tabviz/models"
)

var (
	zipMagic     = []byte("PK\x03\x04")
	parquetMagic = []byte("PAR1")
)

// Read parses data into a RawGrid using the format in opts, sniffing it
// when opts.Format is FormatAuto. Read performs no file I/O.
func Read(data []byte, opts Options) (*models.RawGrid, error) {
	format := opts.Format
	if format == FormatAuto {
		format = Sniff(data)
	}
	opts.logger().Debug("reading input", "format", string(format), "bytes", len(data))

	switch format {
	case FormatXLSX:
		return ReadSpreadsheet(data, opts)
	case FormatParquet:
		return ReadParquet(data, opts)
	case FormatCSV, FormatTSV, FormatJSON:
	default:
		return nil, newReadError(string(format), ErrUnknownFormat, -1, -1, "")
	}

	text, err := decodeText(data)
	if err != nil {
		return nil, newReadError(string(format), ErrMalformed, -1, -1, err.Error())
	}
	switch format {
	case FormatJSON:
		return ReadJSON(text, opts)
	case FormatTSV:
		if opts.Delimiter == 0 {
			opts.Delimiter = '\t'
		}
		grid, err := ReadCSV(text, opts)
		if grid != nil {
			grid.Source = string(FormatTSV)
		}
		return grid, err
	default:
		return ReadCSV(text, opts)
	}
}

// Sniff guesses the format of data from its leading bytes.
func Sniff(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, zipMagic):
		return FormatXLSX
	case bytes.HasPrefix(data, parquetMagic):
		return FormatParquet
	}
	text, err := decodeText(data)
	if err != nil {
		return FormatCSV
	}
	trimmed := bytes.TrimLeft(text, " \t\r\n")
	if len(trimmed) > 0 && (trimmed[0] == '[' || trimmed[0] == '{') {
		return FormatJSON
	}
	if DetectDelimiter(text) == '\t' {
		return FormatTSV
	}
	return FormatCSV
}

// FormatFromPath maps a file extension to a format.
// Unknown extensions return FormatAuto.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV
	case ".tsv", ".tab":
		return FormatTSV
	case ".json":
		return FormatJSON
	case ".xlsx", ".xlsm":
		return FormatXLSX
	case ".parquet":
		return FormatParquet
	default:
		return FormatAuto
	}
}
