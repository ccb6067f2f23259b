package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrEmptyFile is returned for files without a header row.
var ErrEmptyFile = errors.New("file has no header row")

// Table is a raw parsed file: one header row plus data rows. Rows may be
// ragged; missing trailing cells read as empty.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Cell returns the cell at (row, col), empty when the row is short.
func (t Table) Cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

// ReadCSV parses CSV bytes into a Table. Quoting follows RFC 4180; a UTF-8
// BOM on the first header is stripped.
func ReadCSV(r io.Reader) (Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return Table{}, ErrEmptyFile
	}

	headers := records[0]
	if len(headers) > 0 {
		headers[0] = strings.TrimPrefix(headers[0], "\ufeff")
	}
	return Table{Headers: headers, Rows: records[1:]}, nil
}
