package model

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewCleanedRow(t *testing.T) {
	runID := uuid.New()

	r := NewCleanedRow(runID, ResultPair{RowNumber: 3, Raw: "Acme Inc", RawText: "Acme Inc", Cleaned: "Acme"})
	if r.RawName == nil || *r.RawName != "Acme Inc" {
		t.Errorf("RawName = %v", r.RawName)
	}
	if !r.Modified {
		t.Error("expected Modified")
	}

	missing := NewCleanedRow(runID, ResultPair{RowNumber: 4, Raw: nil, RawText: "nan", Cleaned: "nan"})
	if missing.RawName != nil {
		t.Errorf("missing cell should have nil RawName, got %q", *missing.RawName)
	}
	if missing.Modified {
		t.Error("unchanged missing cell should not be Modified")
	}
}

func TestCopyValuesMatchColumns(t *testing.T) {
	r := NewCleanedRow(uuid.New(), ResultPair{RowNumber: 1, Raw: 12345, RawText: "12345", Cleaned: "12345"})
	if got, want := len(r.CopyValues()), len(CleanedColumns()); got != want {
		t.Fatalf("CopyValues has %d values, CleanedColumns has %d", got, want)
	}
	if r.CopyValues()[1] != int64(1) {
		t.Errorf("row_number = %#v", r.CopyValues()[1])
	}
}
