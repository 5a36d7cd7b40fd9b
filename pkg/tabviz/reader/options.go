// Package reader converts file bytes into raw cell grids.
package reader

import "log/slog"

// Format names an input format.
type Format string

const (
	// FormatAuto sniffs the format from the bytes.
	FormatAuto    Format = ""
	FormatCSV     Format = "csv"
	FormatTSV     Format = "tsv"
	FormatJSON    Format = "json"
	FormatXLSX    Format = "xlsx"
	FormatParquet Format = "parquet"
)

// Formats lists the supported formats.
var Formats = []Format{FormatCSV, FormatTSV, FormatJSON, FormatXLSX, FormatParquet}

// JSONShape hints at the layout of a JSON document.
type JSONShape string

const (
	// ShapeAuto detects objects or arrays from the first element.
	ShapeAuto JSONShape = ""
	// ShapeObjects is an array of flat objects.
	ShapeObjects JSONShape = "objects"
	// ShapeArrays is an array of arrays.
	ShapeArrays JSONShape = "arrays"
)

// Options configures reading behavior.
type Options struct {
	// Format selects the reader. FormatAuto sniffs the bytes.
	Format Format
	// Delimiter overrides CSV delimiter detection. 0 auto-detects.
	Delimiter rune
	// TrimSpace trims surrounding whitespace from every cell.
	TrimSpace bool
	// HasHeader specifies whether the first row is a header.
	// If nil, defaults to true for CSV, TSV and spreadsheets, and to
	// "first row is all strings" for JSON arrays of arrays.
	HasHeader *bool
	// Sheet selects a spreadsheet sheet by name or 0-based index.
	// Empty selects the first sheet.
	Sheet string
	// Range restricts a spreadsheet read to a cell range such as "B2:E20".
	Range string
	// Shape hints at the JSON layout.
	Shape JSONShape
	// Logger receives debug output. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// DefaultOptions returns default read options.
func DefaultOptions() Options {
	return Options{}
}

// ShouldReadHeader returns whether the first row is a header, given the
// format default when HasHeader is unset.
func (o Options) ShouldReadHeader(def bool) bool {
	if o.HasHeader != nil {
		return *o.HasHeader
	}
	return def
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}
