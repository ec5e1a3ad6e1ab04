package table

import (
	"bytes"
	"strings"
	"testing"

	"github.com/tealeg/xlsx/v2"
)

func TestWriteXLSX_RoundTrip(t *testing.T) {
	tbl := New("company", "cleaned_company")
	tbl.AddRow("Acme Inc", "Acme")
	tbl.AddRow("Globex LLC", "Globex")

	var buf bytes.Buffer
	if err := WriteXLSX(&buf, tbl); err != nil {
		t.Fatalf("WriteXLSX: %v", err)
	}

	back, err := ReadXLSX(&buf, XLSXOptions{})
	if err != nil {
		t.Fatalf("ReadXLSX: %v", err)
	}
	if got := strings.Join(back.Columns, ","); got != "company,cleaned_company" {
		t.Errorf("columns = %s", got)
	}
	if back.NumRows() != 2 {
		t.Fatalf("rows = %d, want 2", back.NumRows())
	}
	if back.Rows[1][0] != "Globex LLC" || back.Rows[1][1] != "Globex" {
		t.Errorf("row 1 = %#v", back.Rows[1])
	}
}

func TestReadXLSX_NamedSheetAndBlankRows(t *testing.T) {
	f := xlsx.NewFile()
	if _, err := f.AddSheet("other"); err != nil {
		t.Fatal(err)
	}
	sheet, err := f.AddSheet("names")
	if err != nil {
		t.Fatal(err)
	}
	sheet.AddRow().AddCell().SetString("company")
	sheet.AddRow().AddCell().SetString("Acme Corp")
	sheet.AddRow().AddCell().SetString("")
	sheet.AddRow().AddCell().SetString("Initech Inc")

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatal(err)
	}

	tbl, err := ReadXLSX(bytes.NewReader(buf.Bytes()), XLSXOptions{SheetName: "names"})
	if err != nil {
		t.Fatalf("ReadXLSX: %v", err)
	}
	if tbl.NumRows() != 2 {
		t.Fatalf("rows = %d, want 2 (blank row skipped)", tbl.NumRows())
	}
	if tbl.Rows[1][0] != "Initech Inc" {
		t.Errorf("row 1 = %#v", tbl.Rows[1])
	}

	if _, err := ReadXLSX(bytes.NewReader(buf.Bytes()), XLSXOptions{SheetName: "missing"}); err == nil {
		t.Error("expected error for unknown sheet")
	}
	if _, err := ReadXLSX(bytes.NewReader(buf.Bytes()), XLSXOptions{SheetIndex: 5}); err == nil {
		t.Error("expected error for sheet index out of range")
	}
}

func TestReadXLSX_NotAWorkbook(t *testing.T) {
	if _, err := ReadXLSX(strings.NewReader("company\nAcme\n"), XLSXOptions{}); err == nil {
		t.Fatal("expected error for non-xlsx input")
	}
}
