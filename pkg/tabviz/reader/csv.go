package reader

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"github.com/ukaji3/tabviz-go/pkg/tabviz/models"
)

// candidateDelimiters are tried in order; earlier entries win ties.
var candidateDelimiters = []rune{',', ';', '\t', '|'}

// DetectDelimiter guesses the CSV delimiter from the first line of data.
// Delimiters inside quoted sections are ignored. Comma is the default.
func DetectDelimiter(data []byte) rune {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	if !scanner.Scan() {
		return ','
	}
	firstLine := scanner.Text()

	counts := make(map[rune]int, len(candidateDelimiters))
	inQuotes := false
	for _, r := range firstLine {
		if r == '"' {
			inQuotes = !inQuotes
			continue
		}
		if !inQuotes {
			counts[r]++
		}
	}

	detected, maxCount := ',', 0
	for _, sep := range candidateDelimiters {
		if counts[sep] > maxCount {
			detected, maxCount = sep, counts[sep]
		}
	}
	return detected
}

// ReadCSV parses delimited text. The delimiter is opts.Delimiter or detected.
// Quoted fields may contain delimiters and line breaks, and a stray quote
// inside a field is kept as text. An unterminated quote fails with ErrMalformed.
func ReadCSV(data []byte, opts Options) (*models.RawGrid, error) {
	delim := opts.Delimiter
	if delim == 0 {
		delim = DetectDelimiter(data)
	}
	if line, col, open := unterminatedQuote(data, delim); open {
		return nil, newReadError(string(FormatCSV), ErrMalformed, line, col, "unterminated quote")
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var records [][]string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, csvError(err)
		}
		if opts.TrimSpace {
			for i := range record {
				record[i] = strings.TrimSpace(record[i])
			}
		}
		records = append(records, record)
	}

	grid := &models.RawGrid{Source: string(FormatCSV)}
	if len(records) > 0 && opts.ShouldReadHeader(true) {
		grid.HasHeader = true
		grid.Header = records[0]
		records = records[1:]
	}
	grid.Rows = records
	if grid.Rows == nil {
		grid.Rows = [][]string{}
	}

	opts.logger().Debug("read csv", "delimiter", string(delim), "rows", len(grid.Rows), "header", grid.HasHeader)
	return grid, nil
}

// unterminatedQuote reports the 0-based line and column of a quoted field
// that is still open at the end of data. Quotes that do not start a field
// are literal, and inside a quoted field only a quote followed by the
// delimiter or a line break closes it.
func unterminatedQuote(data []byte, delim rune) (line, col int, open bool) {
	runes := []rune(string(data))
	fieldStart := true
	ln, c := 0, 0
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if open && r == '"' {
			var next rune
			if i+1 < len(runes) {
				next = runes[i+1]
			}
			switch {
			case next == '"':
				i++
				c += 2
				continue
			case next == 0 || next == delim || next == '\n' || next == '\r':
				open = false
			}
		} else if !open && fieldStart && r == '"' {
			open = true
			line, col = ln, c
		}
		fieldStart = !open && (r == delim || r == '\n')
		if r == '\n' {
			ln++
			c = 0
		} else {
			c++
		}
	}
	return line, col, open
}

// csvError converts an encoding/csv error into a ReadError.
// csv.ParseError lines and columns are 1-based.
func csvError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		msg := pe.Err.Error()
		if errors.Is(pe.Err, csv.ErrQuote) {
			msg = "unterminated or stray quote"
		}
		return newReadError(string(FormatCSV), ErrMalformed, pe.StartLine-1, pe.Column-1, msg)
	}
	return newReadError(string(FormatCSV), ErrMalformed, -1, -1, err.Error())
}
