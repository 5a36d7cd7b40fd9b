package reader

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/ukaji3/tabviz-go/pkg/tabviz/models"
)

// ReadJSON parses an array of flat objects or an array of arrays.
//
// For objects, the union of keys in first-seen order defines the columns and
// missing keys become null cells. For arrays, the first row is a header when
// opts.HasHeader says so, or by default when every cell in it is a string.
// Nested objects or arrays inside cells fail with ErrUnsupportedShape.
func ReadJSON(data []byte, opts Options) (*models.RawGrid, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		trimmed := bytes.TrimSpace(data)
		if len(trimmed) > 0 && trimmed[0] != '[' {
			return nil, newReadError(string(FormatJSON), ErrUnsupportedShape, -1, -1, "top-level value must be an array")
		}
		return nil, newReadError(string(FormatJSON), ErrMalformed, -1, -1, err.Error())
	}

	shape := opts.Shape
	if shape == ShapeAuto {
		shape = ShapeObjects
		for _, e := range elems {
			if k := leadingByte(e); k == '[' {
				shape = ShapeArrays
				break
			} else if k == '{' {
				break
			}
		}
	}

	var (
		grid *models.RawGrid
		err  error
	)
	switch shape {
	case ShapeObjects:
		grid, err = readJSONObjects(elems)
	case ShapeArrays:
		grid, err = readJSONArrays(elems, opts)
	default:
		return nil, newReadError(string(FormatJSON), ErrUnsupportedShape, -1, -1, fmt.Sprintf("unknown shape hint %q", shape))
	}
	if err != nil {
		return nil, err
	}
	if opts.TrimSpace {
		trimGrid(grid)
	}
	opts.logger().Debug("read json", "shape", string(shape), "rows", len(grid.Rows), "columns", grid.Width())
	return grid, nil
}

func readJSONObjects(elems []json.RawMessage) (*models.RawGrid, error) {
	var keys []string
	index := make(map[string]int)
	records := make([]map[string]string, len(elems))

	for r, e := range elems {
		if leadingByte(e) != '{' {
			return nil, newReadError(string(FormatJSON), ErrUnsupportedShape, r, -1, "expected an object")
		}
		fields, order, err := decodeObject(e)
		if err != nil {
			return nil, newReadError(string(FormatJSON), ErrMalformed, r, -1, err.Error())
		}
		record := make(map[string]string, len(fields))
		for _, k := range order {
			if _, ok := index[k]; !ok {
				index[k] = len(keys)
				keys = append(keys, k)
			}
			cell, err := cellText(fields[k])
			if err != nil {
				return nil, newReadError(string(FormatJSON), err, r, index[k], fmt.Sprintf("field %q", k))
			}
			record[k] = cell
		}
		records[r] = record
	}

	rows := make([][]string, len(records))
	for r, record := range records {
		row := make([]string, len(keys))
		for i, k := range keys {
			row[i] = record[k]
		}
		rows[r] = row
	}
	return &models.RawGrid{
		Source:    string(FormatJSON),
		HasHeader: true,
		Header:    keys,
		Rows:      rows,
	}, nil
}

func readJSONArrays(elems []json.RawMessage, opts Options) (*models.RawGrid, error) {
	rows := make([][]string, 0, len(elems))
	firstAllStrings := true

	for r, e := range elems {
		if leadingByte(e) != '[' {
			return nil, newReadError(string(FormatJSON), ErrUnsupportedShape, r, -1, "expected an array")
		}
		var cells []json.RawMessage
		if err := json.Unmarshal(e, &cells); err != nil {
			return nil, newReadError(string(FormatJSON), ErrMalformed, r, -1, err.Error())
		}
		row := make([]string, len(cells))
		for c, cell := range cells {
			text, err := cellText(cell)
			if err != nil {
				return nil, newReadError(string(FormatJSON), err, r, c, "")
			}
			if r == 0 && leadingByte(cell) != '"' {
				firstAllStrings = false
			}
			row[c] = text
		}
		rows = append(rows, row)
	}

	grid := &models.RawGrid{Source: string(FormatJSON), Rows: rows}
	if len(rows) > 0 && opts.ShouldReadHeader(firstAllStrings) {
		grid.HasHeader = true
		grid.Header = rows[0]
		grid.Rows = rows[1:]
	}
	return grid, nil
}

// decodeObject returns the fields of a JSON object and their key order.
func decodeObject(data []byte) (map[string]json.RawMessage, []string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return nil, nil, err
	}
	fields := make(map[string]json.RawMessage)
	var order []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("unexpected token %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, nil, err
		}
		if _, dup := fields[key]; !dup {
			order = append(order, key)
		}
		fields[key] = raw
	}
	if _, err := dec.Token(); err != nil && err != io.EOF {
		return nil, nil, err
	}
	return fields, order, nil
}

// cellText renders a scalar JSON value as a raw cell. null becomes "".
func cellText(raw json.RawMessage) (string, error) {
	switch leadingByte(raw) {
	case '{', '[':
		return "", ErrUnsupportedShape
	case 'n':
		return "", nil
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", ErrMalformed
		}
		return s, nil
	default:
		return string(bytes.TrimSpace(raw)), nil
	}
}

func leadingByte(raw []byte) byte {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}

func trimGrid(g *models.RawGrid) {
	for i := range g.Header {
		g.Header[i] = strings.TrimSpace(g.Header[i])
	}
	for _, row := range g.Rows {
		for i := range row {
			row[i] = strings.TrimSpace(row[i])
		}
	}
}
