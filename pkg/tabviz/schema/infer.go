package schema

import (
	"fmt"
	"strings"

	"github.com/ukaji3/tabviz-go/pkg/tabviz/dataset"
	"github.com/ukaji3/tabviz-go/pkg/tabviz/models"
)

// Infer derives column names and types from grid and builds a Dataset.
//
// Each non-null cell is classified as Integer, Float, Date, Boolean or Text.
// A column takes the widest classification seen, in that precedence order,
// and falls back to Text when some cell cannot be parsed as that type.
// Columns without non-null cells are Empty.
func Infer(grid *models.RawGrid, opts Options) (*dataset.Dataset, error) {
	width := grid.Width()
	if err := checkRagged(grid, width, opts.fillPolicy()); err != nil {
		return nil, err
	}

	names, err := columnNames(grid, width, opts.Labels)
	if err != nil {
		return nil, err
	}

	forced := make(map[string]dataset.Type, len(opts.Types))
	for name, t := range opts.Types {
		forced[dataset.NormalizeName(name)] = t
	}

	p := opts.parser()
	columns := make([]dataset.ColumnSchema, width)
	for c := 0; c < width; c++ {
		t, ok := forced[dataset.NormalizeName(names[c])]
		if ok {
			delete(forced, dataset.NormalizeName(names[c]))
		} else {
			t = InferColumn(grid.Rows, c, p)
		}
		columns[c] = dataset.NewColumn(names[c], t, false)
	}
	for name := range forced {
		opts.logger().Warn("type override for unknown column", "column", name)
	}

	rows := make([][]dataset.Value, len(grid.Rows))
	for r, raw := range grid.Rows {
		row := make([]dataset.Value, width)
		for c := 0; c < width; c++ {
			cell := ""
			if c < len(raw) {
				cell = raw[c]
			}
			v, ok := p.Parse(cell, columns[c].Type)
			if !ok {
				return nil, &SchemaError{Row: r, Column: c, Name: names[c], Err: ErrTypeMismatch}
			}
			row[c] = v
		}
		rows[r] = row
	}

	ds, err := dataset.New(columns, rows)
	if err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}

	opts.logger().Debug("inferred schema", "columns", width, "rows", len(rows), "header", grid.HasHeader)
	return ds, nil
}

// InferColumn returns the type of column c across rows.
func InferColumn(rows [][]string, c int, p dataset.Parser) dataset.Type {
	widest := dataset.TypeEmpty
	for _, row := range rows {
		if c >= len(row) || dataset.IsNullCell(row[c]) {
			continue
		}
		widest = Widen(widest, p.Classify(row[c]))
		if widest == dataset.TypeText {
			return widest
		}
	}
	if widest == dataset.TypeEmpty {
		return widest
	}

	for _, row := range rows {
		if c >= len(row) {
			continue
		}
		if _, ok := p.Parse(row[c], widest); !ok {
			return dataset.TypeText
		}
	}
	return widest
}

// Widen returns the wider of two types under the precedence
// Empty < Integer < Float < Date < Boolean < Text.
func Widen(a, b dataset.Type) dataset.Type {
	if rank(b) > rank(a) {
		return b
	}
	return a
}

func rank(t dataset.Type) int {
	switch t {
	case dataset.TypeEmpty:
		return 0
	case dataset.TypeInteger:
		return 1
	case dataset.TypeFloat:
		return 2
	case dataset.TypeDate:
		return 3
	case dataset.TypeBoolean:
		return 4
	case dataset.TypeText:
		return 5
	}
	return 5
}

func checkRagged(grid *models.RawGrid, width int, policy FillPolicy) error {
	if policy != FillNone {
		return nil
	}
	if grid.HasHeader && len(grid.Header) != width {
		return &SchemaError{Row: -1, Column: len(grid.Header), Err: ErrRaggedRows}
	}
	for r, row := range grid.Rows {
		if len(row) != width {
			return &SchemaError{Row: r, Column: -1, Err: ErrRaggedRows}
		}
	}
	return nil
}

// columnNames returns one unique name per column, synthesizing
// Column1, Column2, ... for missing or blank header cells.
func columnNames(grid *models.RawGrid, width int, labels []string) ([]string, error) {
	names := make([]string, width)
	seen := make(map[string]int, width)

	for c := 0; c < width; c++ {
		name := ""
		if grid.HasHeader && c < len(grid.Header) {
			name = strings.TrimSpace(grid.Header[c])
		}
		if c < len(labels) && strings.TrimSpace(labels[c]) != "" {
			name = strings.TrimSpace(labels[c])
		}
		if name == "" {
			name = fmt.Sprintf("Column%d", c+1)
		}

		key := dataset.NormalizeName(name)
		if _, dup := seen[key]; dup {
			return nil, &SchemaError{Row: -1, Column: c, Name: name, Err: ErrDuplicateHeader}
		}
		seen[key] = c
		names[c] = name
	}
	return names, nil
}
