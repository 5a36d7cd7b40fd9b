// Package models defines data structures shared by the tabviz pipeline stages.
package models

// RawGrid represents untyped rows as read from a file, before type inference.
type RawGrid struct {
	// Source is the format the grid was read from (csv, tsv, json, xlsx, parquet).
	Source string `json:"source"`
	// HasHeader reports whether Header holds names read from the input.
	HasHeader bool `json:"has_header"`
	// Header contains the header cells (nil if absent).
	Header []string `json:"header,omitempty"`
	// Rows contains the data rows. Rows may have irregular lengths.
	// An empty string is a null cell.
	Rows [][]string `json:"rows"`
}

// Width returns the length of the longest row, header included.
func (g *RawGrid) Width() int {
	w := len(g.Header)
	for _, row := range g.Rows {
		if len(row) > w {
			w = len(row)
		}
	}
	return w
}
