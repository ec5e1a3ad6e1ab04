package table

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/gyeh/namecleaner/internal/normalize"
)

const readBatchSize = 256

// ReadParquet reads a flat Parquet file. Leaf values keep their physical type
// (bool, int32, int64, float32, float64, string) and nulls become missing cells.
func ReadParquet(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("parquet: read: %w", err)
	}
	pf, err := parquet.OpenFile(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("parquet: open: %w", err)
	}

	header, err := flatColumns(pf.Schema())
	if err != nil {
		return nil, err
	}
	t := New(header...)

	reader := parquet.NewReader(pf)
	defer reader.Close()

	buf := make([]parquet.Row, readBatchSize)
	for {
		n, readErr := reader.ReadRows(buf)
		for i := 0; i < n; i++ {
			cells := make([]any, len(header))
			for _, v := range buf[i] {
				if col := v.Column(); col >= 0 && col < len(cells) {
					cells[col] = parquetCell(v)
				}
			}
			t.AddRow(cells...)
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return nil, fmt.Errorf("parquet: read rows at %d: %w", t.NumRows(), readErr)
		}
	}
	return t, nil
}

// WriteParquet writes every column as an optional UTF-8 string, keeping nulls.
// Columns appear in schema order, which parquet-go sorts by name.
func WriteParquet(w io.Writer, t *Table) error {
	group := parquet.Group{}
	for _, name := range t.Columns {
		if _, dup := group[name]; dup {
			return fmt.Errorf("parquet: duplicate column %q", name)
		}
		group[name] = parquet.Optional(parquet.String())
	}
	schema := parquet.NewSchema("namecleaner", group)

	leafIndex := make([]int, len(t.Columns))
	for i, name := range t.Columns {
		leaf, ok := schema.Lookup(name)
		if !ok {
			return fmt.Errorf("parquet: column %q missing from schema", name)
		}
		leafIndex[i] = leaf.ColumnIndex
	}

	writer := parquet.NewWriter(w, schema)
	rows := make([]parquet.Row, 0, readBatchSize)
	flush := func() error {
		if len(rows) == 0 {
			return nil
		}
		if _, err := writer.WriteRows(rows); err != nil {
			return fmt.Errorf("parquet: write rows: %w", err)
		}
		rows = rows[:0]
		return nil
	}

	for _, row := range t.Rows {
		pr := make(parquet.Row, len(t.Columns))
		for i, cell := range row {
			col := leafIndex[i]
			if cell == nil {
				pr[col] = parquet.NullValue().Level(0, 0, col)
				continue
			}
			pr[col] = parquet.ByteArrayValue([]byte(normalize.ToText(cell))).Level(0, 1, col)
		}
		rows = append(rows, pr)
		if len(rows) == readBatchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	if err := flush(); err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("parquet: close writer: %w", err)
	}
	return nil
}

// flatColumns returns the leaf column names, rejecting nested schemas.
func flatColumns(schema *parquet.Schema) ([]string, error) {
	paths := schema.Columns()
	if len(paths) == 0 {
		return nil, fmt.Errorf("parquet: schema has no columns")
	}
	names := make([]string, len(paths))
	for i, p := range paths {
		if len(p) != 1 {
			return nil, fmt.Errorf("parquet: nested column %s is not supported", strings.Join(p, "."))
		}
		names[i] = p[0]
	}
	return names, nil
}

func parquetCell(v parquet.Value) any {
	if v.IsNull() {
		return nil
	}
	switch v.Kind() {
	case parquet.Boolean:
		return v.Boolean()
	case parquet.Int32:
		return v.Int32()
	case parquet.Int64:
		return v.Int64()
	case parquet.Float:
		return v.Float()
	case parquet.Double:
		return v.Double()
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return string(v.ByteArray())
	default:
		return v.String()
	}
}
