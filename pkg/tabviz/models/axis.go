package models

// AxisKind is the domain kind of an axis.
type AxisKind string

const (
	// AxisCategorical places distinct values in equal-width bands.
	AxisCategorical AxisKind = "categorical"
	// AxisContinuous maps a numeric domain linearly onto the axis.
	AxisContinuous AxisKind = "continuous"
)

// Tick is a labeled position on an axis.
type Tick struct {
	// Position is the tick location in unit space [0,1].
	Position float64 `json:"position"`
	// Value is the domain value at the tick (continuous axes only).
	Value float64 `json:"value"`
	// Label is the display text of the tick.
	Label string `json:"label"`
}

// AxisSpec describes the domain and ticks of one chart axis.
type AxisSpec struct {
	// Kind is the domain kind.
	Kind AxisKind `json:"kind"`
	// Label is the axis caption.
	Label string `json:"label,omitempty"`
	// Column is the source column name (empty for derived axes).
	Column string `json:"column,omitempty"`
	// Min is the domain minimum (continuous only).
	Min float64 `json:"min"`
	// Max is the domain maximum (continuous only).
	Max float64 `json:"max"`
	// Ticks lists tick positions and labels.
	Ticks []Tick `json:"ticks"`
}

// Normalize maps a domain value onto [0,1] for a continuous axis.
func (a *AxisSpec) Normalize(v float64) float64 {
	if a.Max == a.Min {
		return 0.5
	}
	return (v - a.Min) / (a.Max - a.Min)
}
