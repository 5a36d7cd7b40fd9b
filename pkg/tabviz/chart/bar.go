package chart

import (
	"math"

	"github.com/ukaji3/tabviz-go/pkg/tabviz/dataset"
	"github.com/ukaji3/tabviz-go/pkg/tabviz/models"
)

// barPadding is the share of each band left empty on either side.
const barPadding = 0.1

// BuildBar builds a bar chart with one group per distinct x value.
//
// Categories keep first-seen order. Rows sharing a category are combined
// per series with cfg.Aggregation, ignoring nulls. The value axis always
// includes zero.
func BuildBar(ds *dataset.Dataset, cfg Config) (*models.ChartModel, error) {
	cfg.Kind = models.KindBar
	src := ds
	ds, err := prepare(ds, cfg)
	if err != nil {
		return nil, err
	}
	agg := cfg.aggregation()
	if _, err := ParseAggregation(string(agg)); err != nil {
		return nil, newChartError(string(cfg.Kind), ErrInvalidConfig, "", err.Error())
	}
	xcol, err := resolve(ds, cfg.Kind, "x", cfg.XColumn)
	if err != nil {
		return nil, err
	}
	ycols, err := resolveSeries(ds, cfg)
	if err != nil {
		return nil, err
	}

	var categories []string
	index := make(map[string]int)
	var accs [][]accumulator
	for r := 0; r < ds.RowCount(); r++ {
		x := ds.Cell(r, xcol)
		if x.IsNull() {
			continue
		}
		label := x.Format(cfg.DateFormat)
		i, ok := index[label]
		if !ok {
			i = len(categories)
			index[label] = i
			categories = append(categories, label)
			accs = append(accs, make([]accumulator, len(ycols)))
		}
		for s, c := range ycols {
			accs[i][s].add(ds.Cell(r, c))
		}
	}
	if len(categories) == 0 {
		return nil, newChartError(string(cfg.Kind), ErrEmptyDataset, ds.Column(xcol).Name, "no non-null categories")
	}

	names := make([]string, len(ycols))
	for s, c := range ycols {
		names[s] = ds.Column(c).Name
	}
	entries := legend(names, cfg.ColorSeed)

	groups := make([]models.BarGroup, len(categories))
	var extent []float64
	for i, category := range categories {
		groups[i] = models.BarGroup{Category: category, Bars: make([]models.Bar, len(ycols))}
		pos, neg := 0.0, 0.0
		for s := range ycols {
			v := accs[i][s].result(agg)
			groups[i].Bars[s] = models.Bar{
				Series: names[s],
				Value:  v,
				Count:  accs[i][s].count(),
				Color:  entries[s].Color,
			}
			if !cfg.Stacked {
				extent = append(extent, v)
			} else if v >= 0 {
				pos += v
			} else {
				neg += v
			}
		}
		if cfg.Stacked {
			extent = append(extent, pos, neg)
		}
	}

	chart := &models.BarChart{
		XAxis:      categoricalAxis(categories),
		YAxis:      continuousAxis(extent, dataset.TypeFloat, cfg, true),
		Groups:     groups,
		Stacked:    cfg.Stacked,
		Horizontal: cfg.Horizontal,
	}
	chart.XAxis.Column = ds.Column(xcol).Name
	chart.XAxis.Label = firstNonEmpty(cfg.XLabel, ds.Column(xcol).Name)
	if len(names) == 1 {
		chart.YAxis.Column = names[0]
		chart.YAxis.Label = firstNonEmpty(cfg.YLabel, names[0])
	} else {
		chart.YAxis.Label = cfg.YLabel
	}
	layoutBars(chart)

	return &models.ChartModel{
		Kind:      models.KindBar,
		Title:     cfg.Title,
		DatasetID: src.ID(),
		Legend:    entries,
		Bar:       chart,
	}, nil
}

// layoutBars fills in the rectangle of every bar.
func layoutBars(chart *models.BarChart) {
	band := 1 / float64(len(chart.Groups))
	inner := band * (1 - 2*barPadding)

	for i := range chart.Groups {
		bars := chart.Groups[i].Bars
		start := float64(i)*band + band*barPadding
		pos, neg := 0.0, 0.0
		for s := range bars {
			v := bars[s].Value
			var x0, x1, lo, hi float64
			if chart.Stacked {
				x0, x1 = start, start+inner
				if v >= 0 {
					lo, hi = pos, pos+v
					pos = hi
				} else {
					lo, hi = neg+v, neg
					neg = lo
				}
			} else {
				width := inner / float64(len(bars))
				x0 = start + float64(s)*width
				x1 = x0 + width
				lo, hi = math.Min(0, v), math.Max(0, v)
			}

			rect := models.Rect{
				X0: x0,
				Y0: chart.YAxis.Normalize(lo),
				X1: x1,
				Y1: chart.YAxis.Normalize(hi),
			}
			if chart.Horizontal {
				rect = models.Rect{X0: rect.Y0, Y0: rect.X0, X1: rect.Y1, Y1: rect.X1}
			}
			bars[s].Rect = rect
		}
	}
}
