package model

import (
	"github.com/google/uuid"
)

// ResultPair is one cleaned cell: the raw value, its text form and the
// cleaned name. RowNumber is 1-based and excludes the header.
type ResultPair struct {
	RowNumber int64
	Raw       any
	RawText   string
	Cleaned   string
}

// Modified reports whether cleaning changed the text.
func (p ResultPair) Modified() bool {
	return p.RawText != p.Cleaned
}

// CleanedRow is the DB-ready form of a ResultPair for one load run.
type CleanedRow struct {
	RunID     uuid.UUID
	RowNumber int64
	RawName   *string // nil when the source cell was missing
	Cleaned   string
	Modified  bool
}

// NewCleanedRow converts a ResultPair for COPY into namecleaner.cleaned_names.
func NewCleanedRow(runID uuid.UUID, p ResultPair) *CleanedRow {
	r := &CleanedRow{
		RunID:     runID,
		RowNumber: p.RowNumber,
		Cleaned:   p.Cleaned,
		Modified:  p.Modified(),
	}
	if p.Raw != nil {
		raw := p.RawText
		r.RawName = &raw
	}
	return r
}

// CleanedColumns returns the ordered column names for COPY into namecleaner.cleaned_names.
func CleanedColumns() []string {
	return []string{
		"run_id",
		"row_number",
		"raw_name",
		"cleaned_name",
		"modified",
	}
}

// CopyValues returns the row values in the same order as CleanedColumns(),
// suitable for pgx CopyFromSource.
func (r *CleanedRow) CopyValues() []any {
	return []any{
		r.RunID,
		r.RowNumber,
		r.RawName,
		r.Cleaned,
		r.Modified,
	}
}
