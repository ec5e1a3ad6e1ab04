package model

import "time"

// CleanSummary captures the outcome of cleaning one column of one file.
type CleanSummary struct {
	FilePath      string
	FileSHA256    string
	OutputPath    string
	Column        string
	CleanedColumn string
	RunID         string
	RowsTotal     int64
	RowsModified  int64
	RowsLoaded    int64
	AlreadyLoaded bool
	Preview       []ResultPair
	DurationRead  time.Duration
	DurationClean time.Duration
	DurationWrite time.Duration
	DurationLoad  time.Duration
	DurationTotal time.Duration
}
