// Package output serializes datasets and chart models to JSON.
package output

import (
	"github.com/goccy/go-json"

	"github.com/ukaji3/tabviz-go/pkg/tabviz/dataset"
	"github.com/ukaji3/tabviz-go/pkg/tabviz/models"
)

// DefaultPreviewRows is the number of rows included in a dataset summary.
const DefaultPreviewRows = 10

// DatasetSummary describes a dataset's schema and its first rows.
type DatasetSummary struct {
	ID      string                 `json:"id"`
	Rows    int                    `json:"rows"`
	Columns []dataset.ColumnSchema `json:"columns"`
	// Preview holds formatted cells; nulls are JSON null.
	Preview [][]*string `json:"preview"`
}

// Summarize returns the summary of ds with at most previewRows rows.
// Dates are formatted with dateFormat.
func Summarize(ds *dataset.Dataset, previewRows int, dateFormat string) DatasetSummary {
	s := DatasetSummary{
		ID:      ds.ID(),
		Rows:    ds.RowCount(),
		Columns: ds.Columns(),
		Preview: [][]*string{},
	}
	n := min(max(previewRows, 0), ds.RowCount())
	for r := 0; r < n; r++ {
		row := make([]*string, ds.ColumnCount())
		for c := range row {
			if v := ds.Cell(r, c); !v.IsNull() {
				text := v.Format(dateFormat)
				row[c] = &text
			}
		}
		s.Preview = append(s.Preview, row)
	}
	return s
}

// ToJSON serializes v to JSON.
func ToJSON(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// DatasetToJSON serializes a summary of ds.
func DatasetToJSON(ds *dataset.Dataset, previewRows int, pretty bool) ([]byte, error) {
	return ToJSON(Summarize(ds, previewRows, ""), pretty)
}

// ChartToJSON serializes a chart model.
func ChartToJSON(m *models.ChartModel, pretty bool) ([]byte, error) {
	return ToJSON(m, pretty)
}
