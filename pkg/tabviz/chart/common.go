package chart

import (
	"errors"
	"fmt"

	"github.com/aclements/go-moremath/stats"

	"github.com/ukaji3/tabviz-go/pkg/tabviz/dataset"
	"github.com/ukaji3/tabviz-go/pkg/tabviz/models"
)

// prepare applies row exclusions and rejects empty results.
func prepare(ds *dataset.Dataset, cfg Config) (*dataset.Dataset, error) {
	kind := string(cfg.Kind)
	if ds == nil {
		return nil, newChartError(kind, ErrEmptyDataset, "", "no dataset")
	}
	if len(cfg.ExcludeRows) > 0 {
		next, err := ds.ExcludeRows(cfg.ExcludeRows)
		if err != nil {
			return nil, &ChartError{Kind: kind, Row: rowOf(err), Msg: "exclude rows", Err: ErrInvalidConfig}
		}
		ds = next
	}
	if ds.RowCount() == 0 {
		return nil, newChartError(kind, ErrEmptyDataset, "", "no rows to chart")
	}
	return ds, nil
}

func rowOf(err error) int {
	var ce *dataset.CellError
	if errors.As(err, &ce) {
		return ce.Row
	}
	return -1
}

// resolve returns the index of the named column.
func resolve(ds *dataset.Dataset, kind models.ChartKind, role, name string) (int, error) {
	if name == "" {
		return -1, newChartError(string(kind), ErrInvalidConfig, "", fmt.Sprintf("no %s column selected", role))
	}
	idx, err := ds.ColumnIndex(name)
	if err != nil {
		return -1, newChartError(string(kind), ErrUnknownColumn, name, role)
	}
	return idx, nil
}

// resolveSeries resolves the value columns and checks that they are numeric.
func resolveSeries(ds *dataset.Dataset, cfg Config) ([]int, error) {
	if len(cfg.YColumns) == 0 {
		return nil, newChartError(string(cfg.Kind), ErrInvalidConfig, "", "no y columns selected")
	}
	cols := make([]int, len(cfg.YColumns))
	for i, name := range cfg.YColumns {
		idx, err := resolve(ds, cfg.Kind, "y", name)
		if err != nil {
			return nil, err
		}
		if t := ds.Column(idx).Type; !t.IsNumeric() {
			return nil, newChartError(string(cfg.Kind), ErrNonNumericSeries, ds.Column(idx).Name, "column type is "+t.String())
		}
		cols[i] = idx
	}
	return cols, nil
}

// legend pairs series names with palette colors.
func legend(names []string, seed float64) []models.LegendEntry {
	colors := NewPalette(seed).Colors(len(names))
	entries := make([]models.LegendEntry, len(names))
	for i, name := range names {
		entries[i] = models.LegendEntry{Name: name, Color: colors[i]}
	}
	return entries
}

// continuousAxis builds an axis whose domain covers values with nice ticks.
// Date columns are labeled with dateFormat.
func continuousAxis(values []float64, t dataset.Type, cfg Config, includeZero bool) models.AxisSpec {
	min, max := 0.0, 1.0
	if len(values) > 0 {
		min, max = stats.Bounds(values)
	}
	if includeZero {
		if min > 0 {
			min = 0
		}
		if max < 0 {
			max = 0
		}
	}

	set := NiceTicks(min, max, cfg.tickCount())
	axis := models.AxisSpec{
		Kind: models.AxisContinuous,
		Min:  set.Min,
		Max:  set.Max,
	}
	for _, v := range set.Values {
		label := set.Label(v)
		if t == dataset.TypeDate {
			label = dataset.Date(dataset.DateFromNumber(v)).Format(cfg.DateFormat)
		}
		axis.Ticks = append(axis.Ticks, models.Tick{
			Position: axis.Normalize(v),
			Value:    v,
			Label:    label,
		})
	}
	return axis
}

// categoricalAxis places categories at the centers of equal bands.
func categoricalAxis(categories []string) models.AxisSpec {
	axis := models.AxisSpec{Kind: models.AxisCategorical, Min: 0, Max: 1}
	n := float64(len(categories))
	for i, c := range categories {
		axis.Ticks = append(axis.Ticks, models.Tick{
			Position: (float64(i) + 0.5) / n,
			Value:    float64(i),
			Label:    c,
		})
	}
	return axis
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
