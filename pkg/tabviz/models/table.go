package models

// TableColumn describes one displayed column.
type TableColumn struct {
	Name string `json:"name"`
	// Type is the dataset column type name.
	Type string `json:"type"`
}

// TableCell is a formatted cell.
type TableCell struct {
	Text string `json:"text"`
	Null bool   `json:"null,omitempty"`
}

// TableSort records the ordering applied to the rows.
type TableSort struct {
	Column     string `json:"column"`
	Descending bool   `json:"descending"`
}

// Table is a paginated grid of formatted cells.
type Table struct {
	Columns []TableColumn `json:"columns"`
	Rows    [][]TableCell `json:"rows"`
	// TotalRows is the row count before pagination.
	TotalRows int `json:"total_rows"`
	// Page is the 0-based page index.
	Page      int        `json:"page"`
	PageSize  int        `json:"page_size"`
	PageCount int        `json:"page_count"`
	Sort      *TableSort `json:"sort,omitempty"`
}
