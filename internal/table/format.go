package table

import (
	"fmt"
	"io"
	"path"
	"strings"
)

// Format identifies a tabular file encoding.
type Format string

const (
	CSV     Format = "csv"
	XLSX    Format = "xlsx"
	Parquet Format = "parquet"
)

// ParseFormat accepts "csv", "xlsx" or "parquet" (case-insensitive).
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case CSV, XLSX, Parquet:
		return f, nil
	}
	return "", fmt.Errorf("unsupported format %q; supported: csv, xlsx, parquet", s)
}

// FormatFromPath guesses the format from the file extension, defaulting to CSV.
// It also handles s3:// URIs.
func FormatFromPath(p string) Format {
	switch strings.ToLower(path.Ext(p)) {
	case ".xlsx":
		return XLSX
	case ".parquet", ".pq":
		return Parquet
	default:
		return CSV
	}
}

// ContentType returns the MIME type used when serving a file of this format.
func (f Format) ContentType() string {
	switch f {
	case XLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case Parquet:
		return "application/vnd.apache.parquet"
	default:
		return "text/csv"
	}
}

// Read decodes a table in the given format.
func Read(r io.Reader, f Format) (*Table, error) {
	switch f {
	case XLSX:
		return ReadXLSX(r, XLSXOptions{})
	case Parquet:
		return ReadParquet(r)
	case CSV, "":
		return ReadCSV(r)
	}
	return nil, fmt.Errorf("unsupported format %q", f)
}

// Write encodes a table in the given format.
func Write(w io.Writer, t *Table, f Format) error {
	switch f {
	case XLSX:
		return WriteXLSX(w, t)
	case Parquet:
		return WriteParquet(w, t)
	case CSV, "":
		return WriteCSV(w, t)
	}
	return fmt.Errorf("unsupported format %q", f)
}
