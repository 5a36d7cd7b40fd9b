package reader

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ukaji3/tabviz-go/pkg/tabviz/models"
	"github.com/xuri/excelize/v2"
)

// CellRange represents cell coordinate bounds (0-based, inclusive).
type CellRange struct {
	R1, C1, R2, C2 int
}

// ReadSpreadsheet reads one sheet of an xlsx workbook.
// The first sheet is used unless opts.Sheet names a sheet or a 0-based index.
// opts.Range may be a cell range or a defined name such as Print_Area; a
// defined name also selects the sheet it refers to. Without opts.Range the
// grid is trimmed to the bounding box of non-empty cells.
func ReadSpreadsheet(data []byte, opts Options) (*models.RawGrid, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, newReadError(string(FormatXLSX), ErrMalformed, -1, -1, err.Error())
	}
	defer f.Close()

	sheetName, err := resolveSheet(f.GetSheetList(), opts.Sheet)
	if err != nil {
		return nil, err
	}

	var bounds CellRange
	hasRange := opts.Range != ""
	if hasRange {
		sheetName, bounds, err = resolveRange(f, sheetName, opts.Range)
		if err != nil {
			return nil, err
		}
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, newReadError(string(FormatXLSX), ErrMalformed, -1, -1, err.Error())
	}

	if !hasRange {
		var ok bool
		bounds, ok = dataBounds(rows)
		if !ok {
			return &models.RawGrid{Source: string(FormatXLSX), Rows: [][]string{}}, nil
		}
		if d := density(rows, bounds); d < sparseDensity {
			opts.logger().Warn("sparse sheet, consider selecting a range", "sheet", sheetName, "density", d)
		}
	}

	if err := convertDates(f, sheetName, rows, bounds); err != nil {
		return nil, newReadError(string(FormatXLSX), ErrMalformed, -1, -1, err.Error())
	}

	cells := sliceRows(rows, bounds, opts.TrimSpace)
	grid := &models.RawGrid{Source: string(FormatXLSX), Rows: cells}
	if len(cells) > 0 && opts.ShouldReadHeader(true) {
		grid.HasHeader = true
		grid.Header = cells[0]
		grid.Rows = cells[1:]
	}

	opts.logger().Debug("read spreadsheet", "sheet", sheetName, "rows", len(grid.Rows), "columns", grid.Width())
	return grid, nil
}

// resolveRange interprets ref as a cell range on sheet, or else as a
// defined name visible from sheet. Print_Area matches _xlnm.Print_Area.
func resolveRange(f *excelize.File, sheet, ref string) (string, CellRange, error) {
	if area, err := ParseRange(ref); err == nil {
		return sheet, area, nil
	}

	for _, dn := range f.GetDefinedName() {
		name := strings.TrimPrefix(dn.Name, "_xlnm.")
		if !strings.EqualFold(name, ref) && !strings.EqualFold(dn.Name, ref) {
			continue
		}
		if dn.Scope != "" && dn.Scope != "Workbook" && dn.Scope != sheet {
			continue
		}
		target, area, ok := parseReference(dn.RefersTo)
		if !ok {
			return "", CellRange{}, newReadError(string(FormatXLSX), ErrMalformed, -1, -1,
				fmt.Sprintf("defined name %q refers to %q", dn.Name, dn.RefersTo))
		}
		if target == "" {
			target = sheet
		}
		return target, area, nil
	}
	return "", CellRange{}, newReadError(string(FormatXLSX), ErrMalformed, -1, -1, fmt.Sprintf("invalid range %q", ref))
}

// parseReference parses a defined name reference such as
// 'My Sheet'!$A$1:$D$10. Only the first area of a multi-area reference is used.
func parseReference(ref string) (sheet string, area CellRange, ok bool) {
	first, _, _ := strings.Cut(ref, ",")
	first = strings.TrimPrefix(strings.TrimSpace(first), "=")
	if idx := strings.LastIndex(first, "!"); idx >= 0 {
		sheet = strings.ReplaceAll(strings.Trim(first[:idx], "'"), "''", "'")
		first = first[idx+1:]
	}
	area, err := ParseRange(first)
	if err != nil {
		return "", CellRange{}, false
	}
	return sheet, area, true
}

// resolveSheet picks a sheet by exact name first, then by 0-based index.
func resolveSheet(sheets []string, selector string) (string, error) {
	if len(sheets) == 0 {
		return "", newReadError(string(FormatXLSX), ErrSheetNotFound, -1, -1, "workbook has no sheets")
	}
	if selector == "" {
		return sheets[0], nil
	}
	for _, name := range sheets {
		if name == selector {
			return name, nil
		}
	}
	if idx, err := strconv.Atoi(selector); err == nil && idx >= 0 && idx < len(sheets) {
		return sheets[idx], nil
	}
	return "", newReadError(string(FormatXLSX), ErrSheetNotFound, -1, -1, fmt.Sprintf("%q", selector))
}

// sliceRows copies the cells inside bounds. excelize drops trailing empty
// cells, so every row is padded to the width of the bounds.
func sliceRows(rows [][]string, b CellRange, trim bool) [][]string {
	width := b.C2 - b.C1 + 1
	result := make([][]string, 0, b.R2-b.R1+1)
	for rowIdx := b.R1; rowIdx <= b.R2; rowIdx++ {
		var src []string
		if rowIdx < len(rows) {
			src = rows[rowIdx]
		}
		row := make([]string, width)
		for colIdx := b.C1; colIdx <= b.C2 && colIdx < len(src); colIdx++ {
			cell := src[colIdx]
			if trim {
				cell = strings.TrimSpace(cell)
			}
			row[colIdx-b.C1] = cell
		}
		result = append(result, row)
	}
	return result
}

// Built-in number formats that display a date, including the East Asian
// locale formats.
var dateNumFmts = map[int]bool{
	14: true, 15: true, 16: true, 17: true, 22: true,
	27: true, 28: true, 29: true, 30: true, 31: true, 32: true, 33: true, 34: true, 35: true, 36: true,
	50: true, 51: true, 52: true, 53: true, 54: true, 55: true, 56: true, 57: true, 58: true,
}

// convertDates rewrites date-formatted cells inside b, which GetRows
// returns in display form such as 01-02-24, as ISO dates taken from the
// raw serial value.
func convertDates(f *excelize.File, sheet string, rows [][]string, b CellRange) error {
	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return err
	}
	date1904 := false
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}

	styles := make(map[int]bool)
	for r := b.R1; r <= b.R2 && r < len(rows) && r < len(raw); r++ {
		for c := b.C1; c <= b.C2 && c < len(rows[r]) && c < len(raw[r]); c++ {
			if rows[r][c] == "" {
				continue
			}
			serial, err := strconv.ParseFloat(raw[r][c], 64)
			if err != nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			idx, err := f.GetCellStyle(sheet, cell)
			if err != nil {
				return err
			}
			isDate, seen := styles[idx]
			if !seen {
				isDate = dateStyle(f, idx)
				styles[idx] = isDate
			}
			if !isDate {
				continue
			}
			t, err := excelize.ExcelDateToTime(serial, date1904)
			if err != nil {
				continue
			}
			rows[r][c] = formatDate(t)
		}
	}
	return nil
}

func dateStyle(f *excelize.File, idx int) bool {
	style, err := f.GetStyle(idx)
	if err != nil || style == nil {
		return false
	}
	if style.CustomNumFmt != nil {
		return isDateFormat(*style.CustomNumFmt)
	}
	return dateNumFmts[style.NumFmt]
}

// isDateFormat reports whether a custom number format shows a year or a
// day. Quoted literals, escaped characters and [..] sections are ignored.
func isDateFormat(code string) bool {
	code = strings.ToLower(code)
	inQuote, inBracket := false, false
	for i := 0; i < len(code); i++ {
		ch := code[i]
		switch {
		case inQuote:
			inQuote = ch != '"'
		case inBracket:
			inBracket = ch != ']'
		case ch == '"':
			inQuote = true
		case ch == '[':
			inBracket = true
		case ch == '\\' || ch == '_' || ch == '*':
			i++
		case ch == 'y' || ch == 'd':
			return true
		}
	}
	return false
}

// formatDate renders t in a layout the dataset parser accepts. The time of
// day is kept only when it is not midnight.
func formatDate(t time.Time) string {
	t = t.Round(time.Second)
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
		return t.Format("2006-01-02")
	}
	return t.Format("2006-01-02T15:04:05")
}

// sparseDensity is the share of filled cells below which a sheet is
// unlikely to hold a single table.
const sparseDensity = 0.04

// dataBounds returns the bounding box of non-empty cells.
// ok is false when every cell is empty.
func dataBounds(rows [][]string) (b CellRange, ok bool) {
	for r, row := range rows {
		for c, cell := range row {
			if cell == "" {
				continue
			}
			if !ok {
				b, ok = CellRange{R1: r, C1: c, R2: r, C2: c}, true
				continue
			}
			b.R1, b.R2 = min(b.R1, r), max(b.R2, r)
			b.C1, b.C2 = min(b.C1, c), max(b.C2, c)
		}
	}
	return b, ok
}

// density returns the share of non-empty cells within b.
func density(rows [][]string, b CellRange) float64 {
	filled := 0
	for r := b.R1; r <= b.R2 && r < len(rows); r++ {
		for c := b.C1; c <= b.C2 && c < len(rows[r]); c++ {
			if rows[r][c] != "" {
				filled++
			}
		}
	}
	return float64(filled) / float64((b.R2-b.R1+1)*(b.C2-b.C1+1))
}

// ParseRange parses a range string like $A$1:$D$10 or Sheet1!B2:E20.
// A sheet prefix is ignored; select the sheet with Options.Sheet.
func ParseRange(rangeStr string) (CellRange, error) {
	if idx := strings.LastIndex(rangeStr, "!"); idx >= 0 {
		rangeStr = rangeStr[idx+1:]
	}
	// Remove $ signs
	rangeStr = strings.ReplaceAll(rangeStr, "$", "")

	parts := strings.Split(rangeStr, ":")
	if len(parts) != 2 {
		return CellRange{}, fmt.Errorf("invalid range %q", rangeStr)
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return CellRange{}, err
	}
	endCol, endRow, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return CellRange{}, err
	}
	if endRow < startRow {
		startRow, endRow = endRow, startRow
	}
	if endCol < startCol {
		startCol, endCol = endCol, startCol
	}

	return CellRange{
		R1: startRow - 1,
		C1: startCol - 1,
		R2: endRow - 1,
		C2: endCol - 1,
	}, nil
}
