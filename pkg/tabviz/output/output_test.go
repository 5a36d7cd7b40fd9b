package output

import (
	"bytes"
	"testing"

	"github.com/goccy/go-json"

	"github.com/ukaji3/tabviz-go/pkg/tabviz/dataset"
	"github.com/ukaji3/tabviz-go/pkg/tabviz/models"
)

func sample(t *testing.T) *dataset.Dataset {
	t.Helper()

	ds, err := dataset.New(
		[]dataset.ColumnSchema{
			dataset.NewColumn("name", dataset.TypeText, false),
			dataset.NewColumn("n", dataset.TypeInteger, false),
		},
		[][]dataset.Value{
			{dataset.Text("a"), dataset.Int(1)},
			{dataset.Text("b"), dataset.Null()},
			{dataset.Text("c"), dataset.Int(3)},
		},
	)
	if err != nil {
		t.Fatalf("dataset.New failed: %v", err)
	}
	return ds
}

func TestSummarize(t *testing.T) {
	ds := sample(t)

	s := Summarize(ds, 2, "")
	if s.Rows != 3 || len(s.Preview) != 2 {
		t.Fatalf("Summary = %d rows, %d preview rows", s.Rows, len(s.Preview))
	}
	if s.Preview[1][1] != nil {
		t.Errorf("Null cell should be nil, got %q", *s.Preview[1][1])
	}
	if s.Preview[0][0] == nil || *s.Preview[0][0] != "a" {
		t.Errorf("Preview[0][0] = %v", s.Preview[0][0])
	}

	if s := Summarize(ds, -1, ""); len(s.Preview) != 0 {
		t.Errorf("Negative preview should be empty, got %d rows", len(s.Preview))
	}
}

func TestDatasetToJSON(t *testing.T) {
	data, err := DatasetToJSON(sample(t), DefaultPreviewRows, false)
	if err != nil {
		t.Fatalf("DatasetToJSON failed: %v", err)
	}

	var decoded struct {
		Rows    int `json:"rows"`
		Columns []struct {
			Name     string `json:"name"`
			Type     string `json:"type"`
			Nullable bool   `json:"nullable"`
		} `json:"columns"`
		Preview [][]*string `json:"preview"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if decoded.Rows != 3 || len(decoded.Preview) != 3 {
		t.Errorf("Decoded = %+v", decoded)
	}
	if decoded.Columns[1].Type != "Integer" || !decoded.Columns[1].Nullable {
		t.Errorf("Column 1 = %+v", decoded.Columns[1])
	}
}

func TestChartToJSONPretty(t *testing.T) {
	m := &models.ChartModel{Kind: models.KindTable, DatasetID: "x", Table: &models.Table{}}

	compact, err := ChartToJSON(m, false)
	if err != nil {
		t.Fatalf("ChartToJSON failed: %v", err)
	}
	pretty, err := ChartToJSON(m, true)
	if err != nil {
		t.Fatalf("ChartToJSON failed: %v", err)
	}
	if bytes.Contains(compact, []byte("\n")) || !bytes.Contains(pretty, []byte("\n  ")) {
		t.Errorf("Unexpected formatting:\n%s\n%s", compact, pretty)
	}
	if bytes.Contains(compact, []byte(`"line"`)) {
		t.Errorf("Unset variants should be omitted: %s", compact)
	}
}
