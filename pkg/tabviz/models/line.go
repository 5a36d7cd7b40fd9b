package models

// Point is a location in unit plot space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Polyline is one plotted series.
type Polyline struct {
	// Name is the series name (the y column).
	Name string `json:"name"`
	// Color is the series color as #rrggbb.
	Color string `json:"color"`
	// Points are ordered by x.
	Points []Point `json:"points"`
}

// LineChart holds line chart geometry.
type LineChart struct {
	XAxis  AxisSpec   `json:"x_axis"`
	YAxis  AxisSpec   `json:"y_axis"`
	Series []Polyline `json:"series"`
}
