package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gyeh/namecleaner/internal/normalize"
)

const utf8BOM = "\ufeff"

// ReadCSV parses a comma-delimited file whose first row is the header.
// Empty fields become missing cells; short rows are padded with missing cells.
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // allow ragged rows
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("csv: no columns to parse from file")
	}
	if err != nil {
		return nil, fmt.Errorf("csv: read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	t := New(header...)
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("csv: read row %d: %w", line, err)
		}
		if len(record) > len(header) {
			return nil, fmt.Errorf("csv: row %d has %d fields, header has %d", line, len(record), len(header))
		}

		cells := make([]any, len(record))
		for i, field := range record {
			if field != "" {
				cells[i] = field
			}
		}
		t.AddRow(cells...)
	}
	return t, nil
}

// WriteCSV writes the header and one line per record. Missing cells are
// written as empty fields.
func WriteCSV(w io.Writer, t *Table) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(t.Columns); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}

	record := make([]string, len(t.Columns))
	for i, row := range t.Rows {
		for j, cell := range row {
			record[j] = cellText(cell)
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("csv: write row %d: %w", i+1, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("csv: flush: %w", err)
	}
	return nil
}

// cellText renders a cell for text-based outputs; missing stays empty.
func cellText(v any) string {
	if v == nil {
		return ""
	}
	return normalize.ToText(v)
}
