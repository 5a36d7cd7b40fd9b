package chart

import (
	"sort"

	"github.com/ukaji3/tabviz-go/pkg/tabviz/dataset"
	"github.com/ukaji3/tabviz-go/pkg/tabviz/models"
)

// BuildTable builds a formatted table of every column.
// Rows are optionally sorted by cfg.SortColumn (stable, nulls last) and
// paginated by cfg.PageSize. A page past the end is clamped to the last page.
func BuildTable(ds *dataset.Dataset, cfg Config) (*models.ChartModel, error) {
	cfg.Kind = models.KindTable
	src := ds
	ds, err := prepare(ds, cfg)
	if err != nil {
		return nil, err
	}

	order := make([]int, ds.RowCount())
	for r := range order {
		order[r] = r
	}

	table := &models.Table{TotalRows: ds.RowCount()}
	if cfg.SortColumn != "" {
		col, err := resolve(ds, cfg.Kind, "sort", cfg.SortColumn)
		if err != nil {
			return nil, err
		}
		sort.SliceStable(order, func(i, j int) bool {
			a, b := ds.Cell(order[i], col), ds.Cell(order[j], col)
			if cfg.Descending && !a.IsNull() && !b.IsNull() {
				a, b = b, a
			}
			return dataset.Compare(a, b) < 0
		})
		table.Sort = &models.TableSort{Column: ds.Column(col).Name, Descending: cfg.Descending}
	}

	for _, c := range ds.Columns() {
		table.Columns = append(table.Columns, models.TableColumn{Name: c.Name, Type: c.TypeName})
	}

	start, end := 0, len(order)
	table.PageCount = 1
	if cfg.PageSize > 0 {
		table.PageSize = cfg.PageSize
		table.PageCount = (len(order) + cfg.PageSize - 1) / cfg.PageSize
		table.Page = cfg.Page
		if table.Page < 0 {
			table.Page = 0
		}
		if table.Page >= table.PageCount {
			table.Page = table.PageCount - 1
		}
		start = table.Page * cfg.PageSize
		end = min(start+cfg.PageSize, len(order))
	}

	for _, r := range order[start:end] {
		row := make([]models.TableCell, ds.ColumnCount())
		for c := range row {
			v := ds.Cell(r, c)
			row[c] = models.TableCell{Text: v.Format(cfg.DateFormat), Null: v.IsNull()}
		}
		table.Rows = append(table.Rows, row)
	}

	return &models.ChartModel{
		Kind:      models.KindTable,
		Title:     cfg.Title,
		DatasetID: src.ID(),
		Table:     table,
	}, nil
}
