// Package chart derives renderer-agnostic chart models from datasets.
package chart

import (
	"fmt"
	"strings"

	"github.com/ukaji3/tabviz-go/pkg/tabviz/models"
)

// Aggregation combines duplicate category values in bar charts.
type Aggregation string

const (
	AggregateSum  Aggregation = "sum"
	AggregateMean Aggregation = "mean"
	AggregateMin  Aggregation = "min"
	AggregateMax  Aggregation = "max"
)

// ParseAggregation parses an aggregation name. Empty means sum.
func ParseAggregation(s string) (Aggregation, error) {
	switch a := Aggregation(strings.ToLower(strings.TrimSpace(s))); a {
	case "":
		return AggregateSum, nil
	case AggregateSum, AggregateMean, AggregateMin, AggregateMax:
		return a, nil
	case "avg", "average":
		return AggregateMean, nil
	default:
		return "", fmt.Errorf("unknown aggregation %q", s)
	}
}

// ParseKind parses a chart kind name.
func ParseKind(s string) (models.ChartKind, error) {
	switch k := models.ChartKind(strings.ToLower(strings.TrimSpace(s))); k {
	case models.KindLine, models.KindBar, models.KindTable, models.KindTree:
		return k, nil
	default:
		return "", fmt.Errorf("unknown chart kind %q", s)
	}
}

const (
	// DefaultTickCount is the tick count hint used when none is configured.
	DefaultTickCount = 6
	// MinTicks and MaxTicks bound the number of ticks on a continuous axis.
	MinTicks = 4
	MaxTicks = 10
)

// Config selects columns and presentation for a chart.
type Config struct {
	// Kind selects the builder used by Build.
	Kind models.ChartKind `json:"kind" ini:"kind"`
	// Title is copied to the chart model.
	Title string `json:"title,omitempty" ini:"title"`

	// XColumn is the category or x-axis column.
	XColumn string `json:"x_column,omitempty" ini:"x_column"`
	// YColumns are the value series.
	YColumns []string `json:"y_columns,omitempty" ini:"y_columns"`
	// XLabel and YLabel override the axis captions.
	XLabel string `json:"x_label,omitempty" ini:"x_label"`
	YLabel string `json:"y_label,omitempty" ini:"y_label"`

	// Aggregation combines duplicate categories in bar charts. Empty means sum.
	Aggregation Aggregation `json:"aggregation,omitempty" ini:"aggregation"`
	// DateFormat is a Go time layout for date labels and cells.
	DateFormat string `json:"date_format,omitempty" ini:"date_format"`
	// TickCount is a hint for continuous axes, clamped to [MinTicks, MaxTicks].
	TickCount int `json:"tick_count,omitempty" ini:"tick_count"`
	// ExcludeRows drops dataset rows by index before building.
	ExcludeRows []int `json:"exclude_rows,omitempty" ini:"exclude_rows"`

	// Stacked stacks bar series within a category.
	Stacked bool `json:"stacked,omitempty" ini:"stacked"`
	// Horizontal draws bars along the x axis.
	Horizontal bool `json:"horizontal,omitempty" ini:"horizontal"`

	// NodeColumn and ParentColumn define tree edges. They default to
	// XColumn and the first YColumns entry.
	NodeColumn   string `json:"node_column,omitempty" ini:"node_column"`
	ParentColumn string `json:"parent_column,omitempty" ini:"parent_column"`
	// LabelColumn optionally supplies tree node labels.
	LabelColumn string `json:"label_column,omitempty" ini:"label_column"`

	// Page and PageSize paginate tables. PageSize 0 shows every row.
	Page     int `json:"page,omitempty" ini:"page"`
	PageSize int `json:"page_size,omitempty" ini:"page_size"`
	// SortColumn orders table rows; nulls sort last.
	SortColumn string `json:"sort_column,omitempty" ini:"sort_column"`
	Descending bool   `json:"descending,omitempty" ini:"descending"`

	// ColorSeed selects the series palette.
	ColorSeed float64 `json:"color_seed,omitempty" ini:"color_seed"`
}

// DefaultConfig returns a configuration for the given kind.
func DefaultConfig(kind models.ChartKind) Config {
	return Config{
		Kind:        kind,
		Aggregation: AggregateSum,
		TickCount:   DefaultTickCount,
	}
}

func (c Config) tickCount() int {
	n := c.TickCount
	if n == 0 {
		n = DefaultTickCount
	}
	if n < MinTicks {
		return MinTicks
	}
	if n > MaxTicks {
		return MaxTicks
	}
	return n
}

func (c Config) aggregation() Aggregation {
	if c.Aggregation == "" {
		return AggregateSum
	}
	return c.Aggregation
}
