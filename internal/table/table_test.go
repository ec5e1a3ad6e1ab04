package table

import (
	"strings"
	"testing"
)

func sampleTable() *Table {
	t := New("id", "company")
	t.AddRow("1", "Acme Inc")
	t.AddRow("2", nil)
	t.AddRow("3", "Globex LLC")
	return t
}

func TestTable_Column(t *testing.T) {
	tbl := sampleTable()
	vals, err := tbl.Column("company")
	if err != nil {
		t.Fatalf("Column: %v", err)
	}
	if len(vals) != 3 || vals[0] != "Acme Inc" || vals[1] != nil || vals[2] != "Globex LLC" {
		t.Errorf("unexpected values: %#v", vals)
	}

	if _, err := tbl.Column("nope"); err == nil {
		t.Fatal("expected error for unknown column")
	}
}

func TestTable_AppendColumn(t *testing.T) {
	tbl := sampleTable()
	if err := tbl.AppendColumn("cleaned_company", []string{"Acme", "nan", "Globex"}); err != nil {
		t.Fatalf("AppendColumn: %v", err)
	}
	if got := strings.Join(tbl.Columns, ","); got != "id,company,cleaned_company" {
		t.Errorf("columns = %s", got)
	}
	if tbl.Rows[2][2] != "Globex" {
		t.Errorf("row 2 cleaned = %#v", tbl.Rows[2][2])
	}

	if err := tbl.AppendColumn("company", []string{"a", "b", "c"}); err == nil {
		t.Error("expected error for duplicate column")
	}
	if err := tbl.AppendColumn("short", []string{"a"}); err == nil {
		t.Error("expected error for length mismatch")
	}
}

func TestTable_AddRowPads(t *testing.T) {
	tbl := New("a", "b", "c")
	tbl.AddRow("x")
	if len(tbl.Rows[0]) != 3 || tbl.Rows[0][1] != nil || tbl.Rows[0][2] != nil {
		t.Errorf("row not padded: %#v", tbl.Rows[0])
	}
}

func TestTable_Head(t *testing.T) {
	tbl := sampleTable()
	if n := tbl.Head(2).NumRows(); n != 2 {
		t.Errorf("Head(2) rows = %d", n)
	}
	if n := tbl.Head(10).NumRows(); n != 3 {
		t.Errorf("Head(10) rows = %d", n)
	}
	if n := tbl.Head(-1).NumRows(); n != 0 {
		t.Errorf("Head(-1) rows = %d", n)
	}
}

func TestValidateColumn(t *testing.T) {
	tbl := sampleTable()
	if err := ValidateColumn(tbl, "company"); err != nil {
		t.Errorf("ValidateColumn: %v", err)
	}

	err := ValidateColumn(tbl, "name")
	if err == nil {
		t.Fatal("expected error for missing column")
	}
	if !strings.Contains(err.Error(), "id, company") {
		t.Errorf("error should list available columns: %v", err)
	}

	if err := ValidateColumn(tbl, " "); err == nil {
		t.Error("expected error for blank column name")
	}
	if err := ValidateColumn(New(), "company"); err == nil {
		t.Error("expected error for table without columns")
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"companies.csv":                CSV,
		"companies.CSV":                CSV,
		"companies":                    CSV,
		"book.xlsx":                    XLSX,
		"data/part-0.parquet":          Parquet,
		"s3://bucket/in/names.parquet": Parquet,
	}
	for in, want := range tests {
		if got := FormatFromPath(in); got != want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat(" XLSX "); err != nil || f != XLSX {
		t.Errorf("ParseFormat(XLSX) = %q, %v", f, err)
	}
	if _, err := ParseFormat("json"); err == nil {
		t.Error("expected error for unsupported format")
	}
}
