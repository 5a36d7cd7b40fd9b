package models

// ChartKind discriminates the ChartModel variants.
type ChartKind string

const (
	KindLine  ChartKind = "line"
	KindBar   ChartKind = "bar"
	KindTable ChartKind = "table"
	KindTree  ChartKind = "tree"
)

// LegendEntry maps a series name to its color.
type LegendEntry struct {
	// Name is the series name.
	Name string `json:"name"`
	// Color is the series color as #rrggbb.
	Color string `json:"color"`
}

// ChartModel is the renderer-agnostic description of a chart.
// Exactly one of Line, Bar, Table and Tree is set, selected by Kind.
// All coordinates are in unit space; renderers only scale to pixels.
type ChartModel struct {
	// Kind selects the populated variant.
	Kind ChartKind `json:"kind"`
	// Title is the chart title.
	Title string `json:"title,omitempty"`
	// DatasetID identifies the dataset snapshot the chart was built from.
	DatasetID string `json:"dataset_id"`
	// Legend lists series entries in series order.
	Legend []LegendEntry `json:"legend,omitempty"`

	Line  *LineChart `json:"line,omitempty"`
	Bar   *BarChart  `json:"bar,omitempty"`
	Table *Table     `json:"table,omitempty"`
	Tree  *TreeGraph `json:"tree,omitempty"`
}
