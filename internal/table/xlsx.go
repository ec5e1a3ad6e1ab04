package table

import (
	"fmt"
	"io"

	"github.com/tealeg/xlsx/v2"
)

// XLSXOptions selects the sheet to read.
type XLSXOptions struct {
	SheetIndex int    // default 0
	SheetName  string // if set, overrides SheetIndex
}

// outputSheet is the sheet name used by WriteXLSX.
const outputSheet = "cleaned"

// ReadXLSX reads one sheet of a workbook. The first row is the header;
// empty cells are missing and fully blank rows are skipped.
func ReadXLSX(r io.Reader, opts XLSXOptions) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("xlsx: read: %w", err)
	}
	f, err := xlsx.OpenBinary(data)
	if err != nil {
		return nil, fmt.Errorf("xlsx: open workbook: %w", err)
	}

	sheet, err := getSheet(f, opts)
	if err != nil {
		return nil, err
	}
	if len(sheet.Rows) == 0 {
		return nil, fmt.Errorf("xlsx: sheet %q has no columns", sheet.Name)
	}

	header := make([]string, len(sheet.Rows[0].Cells))
	for i, cell := range sheet.Rows[0].Cells {
		header[i] = cell.String()
	}
	t := New(header...)

	for i, row := range sheet.Rows[1:] {
		if row == nil {
			continue
		}
		if len(row.Cells) > len(header) {
			return nil, fmt.Errorf("xlsx: row %d has %d cells, header has %d", i+2, len(row.Cells), len(header))
		}
		cells := make([]any, len(row.Cells))
		blank := true
		for j, cell := range row.Cells {
			if s := cell.String(); s != "" {
				cells[j] = s
				blank = false
			}
		}
		if blank {
			continue
		}
		t.AddRow(cells...)
	}
	return t, nil
}

// WriteXLSX writes the table to a single-sheet workbook.
func WriteXLSX(w io.Writer, t *Table) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet(outputSheet)
	if err != nil {
		return fmt.Errorf("xlsx: add sheet: %w", err)
	}

	header := sheet.AddRow()
	for _, name := range t.Columns {
		header.AddCell().SetString(name)
	}
	for _, row := range t.Rows {
		xr := sheet.AddRow()
		for _, cell := range row {
			xr.AddCell().SetString(cellText(cell))
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx: write workbook: %w", err)
	}
	return nil
}

func getSheet(f *xlsx.File, opts XLSXOptions) (*xlsx.Sheet, error) {
	if opts.SheetName != "" {
		sheet, ok := f.Sheet[opts.SheetName]
		if !ok {
			return nil, fmt.Errorf("xlsx: sheet %q not found", opts.SheetName)
		}
		return sheet, nil
	}

	if opts.SheetIndex >= len(f.Sheets) {
		return nil, fmt.Errorf("xlsx: sheet index %d out of range (file has %d sheets)", opts.SheetIndex, len(f.Sheets))
	}
	return f.Sheets[opts.SheetIndex], nil
}
