package main

import (
	"reflect"
	"testing"

	"github.com/ukaji3/tabviz-go/pkg/tabviz/config"
	"github.com/ukaji3/tabviz-go/pkg/tabviz/models"
)

func TestChartArgs(t *testing.T) {
	p := config.NewProfile()
	if err := config.LoadProfileString("[sales]\nkind = bar\nx = region\n", "sales", &p); err != nil {
		t.Fatalf("LoadProfileString failed: %v", err)
	}

	tests := []struct {
		args  []string
		kinds []models.ChartKind
		path  string
	}{
		{[]string{"data.csv"}, []models.ChartKind{models.KindBar}, "data.csv"},
		{[]string{"line", "data.csv"}, []models.ChartKind{models.KindLine}, "data.csv"},
		{[]string{"line,table", "x.json"}, []models.ChartKind{models.KindLine, models.KindTable}, "x.json"},
	}

	for _, tt := range tests {
		kinds, path, err := chartArgs(tt.args, p.Chart.Kind)
		if err != nil {
			t.Errorf("chartArgs(%q) failed: %v", tt.args, err)
			continue
		}
		if !reflect.DeepEqual(kinds, tt.kinds) || path != tt.path {
			t.Errorf("chartArgs(%q) = %v, %q, expected %v, %q", tt.args, kinds, path, tt.kinds, tt.path)
		}
	}
}

func TestChartArgsErrors(t *testing.T) {
	if _, _, err := chartArgs([]string{"pie", "data.csv"}, models.KindTable); err == nil {
		t.Errorf("Expected an error for an unknown kind")
	}
	if _, _, err := chartArgs([]string{"data.csv"}, ""); err == nil {
		t.Errorf("Expected an error when no kind is known")
	}
}
