package chart

import (
	"sort"

	"github.com/ukaji3/tabviz-go/pkg/tabviz/dataset"
	"github.com/ukaji3/tabviz-go/pkg/tabviz/models"
)

// BuildLine builds a line chart with one polyline per y column.
//
// Integer, Float and Date x columns use a continuous axis and points are
// ordered by x value. Other x columns are categorical: categories appear
// in first-seen order and points sit at the center of their band.
// Rows with a null x are skipped, and a null y skips that point only.
func BuildLine(ds *dataset.Dataset, cfg Config) (*models.ChartModel, error) {
	cfg.Kind = models.KindLine
	src := ds
	ds, err := prepare(ds, cfg)
	if err != nil {
		return nil, err
	}
	xcol, err := resolve(ds, cfg.Kind, "x", cfg.XColumn)
	if err != nil {
		return nil, err
	}
	ycols, err := resolveSeries(ds, cfg)
	if err != nil {
		return nil, err
	}

	xtype := ds.Column(xcol).Type
	continuous := xtype.IsNumeric() || xtype == dataset.TypeDate

	// Raw x positions: domain values for continuous axes, band indexes otherwise.
	xs := make([]float64, ds.RowCount())
	valid := make([]bool, ds.RowCount())
	var categories []string
	index := make(map[string]int)
	var xvalues []float64
	for r := 0; r < ds.RowCount(); r++ {
		v := ds.Cell(r, xcol)
		if v.IsNull() {
			continue
		}
		valid[r] = true
		if continuous {
			xs[r], _ = v.Number()
			xvalues = append(xvalues, xs[r])
			continue
		}
		label := v.Format(cfg.DateFormat)
		i, ok := index[label]
		if !ok {
			i = len(categories)
			index[label] = i
			categories = append(categories, label)
		}
		xs[r] = float64(i)
	}

	var yvalues []float64
	for r := 0; r < ds.RowCount(); r++ {
		if !valid[r] {
			continue
		}
		for _, c := range ycols {
			if y, ok := ds.Cell(r, c).Number(); ok {
				yvalues = append(yvalues, y)
			}
		}
	}

	chart := &models.LineChart{}
	if continuous {
		chart.XAxis = continuousAxis(xvalues, xtype, cfg, false)
	} else {
		chart.XAxis = categoricalAxis(categories)
	}
	chart.XAxis.Column = ds.Column(xcol).Name
	chart.XAxis.Label = firstNonEmpty(cfg.XLabel, ds.Column(xcol).Name)

	chart.YAxis = continuousAxis(yvalues, dataset.TypeFloat, cfg, false)
	names := make([]string, len(ycols))
	for i, c := range ycols {
		names[i] = ds.Column(c).Name
	}
	if len(names) == 1 {
		chart.YAxis.Column = names[0]
		chart.YAxis.Label = firstNonEmpty(cfg.YLabel, names[0])
	} else {
		chart.YAxis.Label = cfg.YLabel
	}

	entries := legend(names, cfg.ColorSeed)
	for i, c := range ycols {
		type raw struct{ x, y float64 }
		var pts []raw
		for r := 0; r < ds.RowCount(); r++ {
			if !valid[r] {
				continue
			}
			y, ok := ds.Cell(r, c).Number()
			if !ok {
				continue
			}
			pts = append(pts, raw{xs[r], y})
		}
		sort.SliceStable(pts, func(a, b int) bool { return pts[a].x < pts[b].x })

		line := models.Polyline{Name: names[i], Color: entries[i].Color, Points: make([]models.Point, 0, len(pts))}
		for _, p := range pts {
			x := (p.x + 0.5) / float64(len(categories))
			if continuous {
				x = chart.XAxis.Normalize(p.x)
			}
			line.Points = append(line.Points, models.Point{X: x, Y: chart.YAxis.Normalize(p.y)})
		}
		chart.Series = append(chart.Series, line)
	}

	return &models.ChartModel{
		Kind:      models.KindLine,
		Title:     cfg.Title,
		DatasetID: src.ID(),
		Legend:    entries,
		Line:      chart,
	}, nil
}
