package table

import (
	"bytes"
	"strings"
	"testing"
)

func TestReadCSV_Basic(t *testing.T) {
	input := "id,company\n1,Acme Inc\n2,\n3,\"Globex, LLC\"\n"
	tbl, err := ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if got := strings.Join(tbl.Columns, "|"); got != "id|company" {
		t.Errorf("columns = %s", got)
	}
	if tbl.NumRows() != 3 {
		t.Fatalf("rows = %d, want 3", tbl.NumRows())
	}
	if tbl.Rows[1][1] != nil {
		t.Errorf("empty field should be missing, got %#v", tbl.Rows[1][1])
	}
	if tbl.Rows[2][1] != "Globex, LLC" {
		t.Errorf("quoted field = %#v", tbl.Rows[2][1])
	}
}

func TestReadCSV_StripsBOMAndPadsShortRows(t *testing.T) {
	input := "\ufeffcompany,city\nAcme Inc\n"
	tbl, err := ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if tbl.Columns[0] != "company" {
		t.Errorf("BOM not stripped: %q", tbl.Columns[0])
	}
	if len(tbl.Rows[0]) != 2 || tbl.Rows[0][1] != nil {
		t.Errorf("short row not padded: %#v", tbl.Rows[0])
	}
}

func TestReadCSV_HeaderOnly(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader("company\n"))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if tbl.NumRows() != 0 {
		t.Errorf("rows = %d, want 0", tbl.NumRows())
	}
}

func TestReadCSV_Errors(t *testing.T) {
	if _, err := ReadCSV(strings.NewReader("")); err == nil {
		t.Error("expected error for empty input")
	}
	if _, err := ReadCSV(strings.NewReader("a\n1,2,3\n")); err == nil {
		t.Error("expected error for row wider than header")
	}
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	tbl := New("id", "company")
	tbl.AddRow(int64(1), "Acme, Inc.")
	tbl.AddRow(int64(2), nil)

	var buf bytes.Buffer
	if err := WriteCSV(&buf, tbl); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	want := "id,company\n1,\"Acme, Inc.\"\n2,\n"
	if buf.String() != want {
		t.Errorf("WriteCSV output:\n%q\nwant:\n%q", buf.String(), want)
	}

	back, err := ReadCSV(&buf)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if back.Rows[0][1] != "Acme, Inc." || back.Rows[1][1] != nil {
		t.Errorf("round trip mismatch: %#v", back.Rows)
	}
}

func TestReadWrite_DispatchByFormat(t *testing.T) {
	tbl := sampleTable()
	for _, f := range []Format{CSV, XLSX, Parquet} {
		var buf bytes.Buffer
		if err := Write(&buf, tbl, f); err != nil {
			t.Fatalf("Write(%s): %v", f, err)
		}
		back, err := Read(&buf, f)
		if err != nil {
			t.Fatalf("Read(%s): %v", f, err)
		}
		if back.NumRows() != tbl.NumRows() {
			t.Errorf("%s: rows = %d, want %d", f, back.NumRows(), tbl.NumRows())
		}
	}

	if err := Write(&bytes.Buffer{}, tbl, Format("json")); err == nil {
		t.Error("expected error for unknown format")
	}
}
