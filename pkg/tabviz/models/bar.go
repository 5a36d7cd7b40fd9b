package models

// Rect is an axis-aligned rectangle in unit plot space.
type Rect struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

// Bar is one series value within a category.
type Bar struct {
	// Series is the y column the value came from.
	Series string `json:"series"`
	// Value is the aggregated value.
	Value float64 `json:"value"`
	// Count is the number of non-null values aggregated.
	Count int `json:"count"`
	// Color is the series color as #rrggbb.
	Color string `json:"color"`
	// Rect is the bar geometry.
	Rect Rect `json:"rect"`
}

// BarGroup holds the bars of one category.
type BarGroup struct {
	Category string `json:"category"`
	Bars     []Bar  `json:"bars"`
}

// BarChart holds bar chart geometry.
type BarChart struct {
	// XAxis is the category axis; YAxis is the value axis.
	// When Horizontal is set the renderer draws XAxis vertically, and the
	// rectangles are already swapped.
	XAxis      AxisSpec   `json:"x_axis"`
	YAxis      AxisSpec   `json:"y_axis"`
	Groups     []BarGroup `json:"groups"`
	Stacked    bool       `json:"stacked"`
	Horizontal bool       `json:"horizontal"`
}
