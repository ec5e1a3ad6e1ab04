// Package table holds tabular data in memory and reads/writes it as CSV,
// XLSX or Parquet.
package table

import (
	"fmt"
	"strings"
)

// Table is a header plus rows of cell values. A nil cell is a missing value.
// Every row has exactly len(Columns) cells.
type Table struct {
	Columns []string
	Rows    [][]any
}

// New returns an empty table with the given header.
func New(columns ...string) *Table {
	return &Table{Columns: append([]string(nil), columns...)}
}

// NumRows returns the number of records, excluding the header.
func (t *Table) NumRows() int {
	return len(t.Rows)
}

// AddRow appends a record, padding or truncating it to the header width.
func (t *Table) AddRow(cells ...any) {
	row := make([]any, len(t.Columns))
	copy(row, cells)
	t.Rows = append(t.Rows, row)
}

// ColumnIndex returns the position of the named column.
func (t *Table) ColumnIndex(name string) (int, bool) {
	for i, c := range t.Columns {
		if c == name {
			return i, true
		}
	}
	return -1, false
}

// Column returns the values of the named column in row order.
func (t *Table) Column(name string) ([]any, error) {
	idx, ok := t.ColumnIndex(name)
	if !ok {
		return nil, missingColumnError(t, name)
	}
	out := make([]any, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row[idx]
	}
	return out, nil
}

// AppendColumn adds a column at the right edge of the table.
func (t *Table) AppendColumn(name string, values []string) error {
	if _, exists := t.ColumnIndex(name); exists {
		return fmt.Errorf("column %q already exists", name)
	}
	if len(values) != len(t.Rows) {
		return fmt.Errorf("column %q has %d values for %d rows", name, len(values), len(t.Rows))
	}
	t.Columns = append(t.Columns, name)
	for i := range t.Rows {
		t.Rows[i] = append(t.Rows[i], values[i])
	}
	return nil
}

// Head returns a table sharing the first n rows.
func (t *Table) Head(n int) *Table {
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	if n < 0 {
		n = 0
	}
	return &Table{Columns: t.Columns, Rows: t.Rows[:n]}
}

// ValidateColumn checks that the table has a header and contains the named column.
func ValidateColumn(t *Table, name string) error {
	if len(t.Columns) == 0 {
		return fmt.Errorf("table has no columns")
	}
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("column name is required")
	}
	if _, ok := t.ColumnIndex(name); !ok {
		return missingColumnError(t, name)
	}
	return nil
}

func missingColumnError(t *Table, name string) error {
	return fmt.Errorf("missing column: %s; available: %s", name, strings.Join(t.Columns, ", "))
}
