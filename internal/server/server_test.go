package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gyeh/namecleaner/internal/logging"
)

const companiesCSV = "id,company\n1,Acme Inc\n2,Acme LLC\n3,Initech\n4,Acme Repair Co\n5,Globex Corporation\n6,Umbrella Ltd.\n"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	s := New(logging.New(io.Discard, "json", "info"), Options{Workers: 2})
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func multipartBody(t *testing.T, filename, content string, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if filename != "" {
		fw, err := mw.CreateFormFile("file", filename)
		if err != nil {
			t.Fatal(err)
		}
		io.WriteString(fw, content)
	}
	for k, v := range fields {
		mw.WriteField(k, v)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, mw.FormDataContentType()
}

func post(t *testing.T, ts *httptest.Server, path string, body io.Reader, contentType string) *http.Response {
	t.Helper()
	resp, err := http.Post(ts.URL+path, contentType, body)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var got map[string]string
	decode(t, resp, &got)
	if resp.StatusCode != http.StatusOK || got["status"] != "ok" {
		t.Errorf("healthz = %d %v", resp.StatusCode, got)
	}
}

func TestColumns(t *testing.T) {
	ts := newTestServer(t)
	body, ct := multipartBody(t, "companies.csv", companiesCSV, nil)
	resp := post(t, ts, "/api/columns", body, ct)

	var got columnsResponse
	decode(t, resp, &got)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if strings.Join(got.Columns, ",") != "id,company" || got.Records != 6 {
		t.Errorf("columns response = %+v", got)
	}
}

func TestClean_JSON(t *testing.T) {
	ts := newTestServer(t)
	body, ct := multipartBody(t, "companies.csv", companiesCSV, map[string]string{"column": "company"})
	resp := post(t, ts, "/api/clean", body, ct)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var got cleanResponse
	decode(t, resp, &got)
	if got.TotalRecords != 6 || got.RecordsModified != 5 {
		t.Errorf("total=%d modified=%d", got.TotalRecords, got.RecordsModified)
	}
	if got.CleanedColumn != "cleaned_company" {
		t.Errorf("cleaned column = %q", got.CleanedColumn)
	}
	if len(got.Preview) != 5 {
		t.Fatalf("preview len = %d, want 5", len(got.Preview))
	}
	if got.Preview[3].Original != "Acme Repair Co" || got.Preview[3].Cleaned != "Acme Repair" {
		t.Errorf("preview[3] = %+v", got.Preview[3])
	}
	if got.Preview[2].Modified {
		t.Errorf("Initech should be unmodified: %+v", got.Preview[2])
	}

	href, ok := strings.CutPrefix(got.Download, "data:file/csv;base64,")
	if !ok {
		t.Fatalf("download href = %.40q", got.Download)
	}
	csvData, err := base64.StdEncoding.DecodeString(href)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(csvData), "id,company,cleaned_company\n1,Acme Inc,Acme\n") {
		t.Errorf("download csv = %q", csvData)
	}
}

func TestClean_CSVAttachment(t *testing.T) {
	ts := newTestServer(t)
	body, ct := multipartBody(t, "companies.csv", companiesCSV, map[string]string{"column": "company", "format": "csv"})
	resp := post(t, ts, "/api/clean", body, ct)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, "cleaned_companies.csv") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	data, _ := io.ReadAll(resp.Body)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 7 || lines[6] != "6,Umbrella Ltd.,Umbrella" {
		t.Errorf("csv = %q", data)
	}
}

func TestClean_RecoverableErrors(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name     string
		filename string
		content  string
		column   string
	}{
		{name: "missing column", filename: "companies.csv", content: companiesCSV, column: "name"},
		{name: "ragged csv", filename: "companies.csv", content: "company\nAcme,Inc,x\n", column: "company"},
		{name: "not xlsx", filename: "companies.xlsx", content: companiesCSV, column: "company"},
		{name: "no file", column: "company"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, ct := multipartBody(t, tt.filename, tt.content, map[string]string{"column": tt.column})
			resp := post(t, ts, "/api/clean", body, ct)
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", resp.StatusCode)
			}
			var got errorResponse
			decode(t, resp, &got)
			if !strings.HasPrefix(got.Error, "Error processing file: ") || got.Hint == "" {
				t.Errorf("error response = %+v", got)
			}
		})
	}

	// The server keeps serving after failures.
	body, ct := multipartBody(t, "companies.csv", companiesCSV, map[string]string{"column": "company"})
	if resp := post(t, ts, "/api/clean", body, ct); resp.StatusCode != http.StatusOK {
		t.Errorf("status after errors = %d", resp.StatusCode)
	}
}

func TestClean_UploadTooLarge(t *testing.T) {
	s := New(logging.New(io.Discard, "json", "info"), Options{MaxUploadBytes: 64})
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	body, ct := multipartBody(t, "companies.csv", strings.Repeat("Acme Inc\n", 100), map[string]string{"column": "company"})
	resp := post(t, ts, "/api/clean", body, ct)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestNormalize(t *testing.T) {
	ts := newTestServer(t)
	resp := post(t, ts, "/api/normalize",
		strings.NewReader(`{"names":["Acme Inc", "  Acme   Corporation  ", 12345, null, "LLC", "ACME INC"]}`),
		"application/json")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var got normalizeResponse
	decode(t, resp, &got)
	want := []string{"Acme", "Acme", "12345", "nan", "", "ACME"}
	if strings.Join(got.Cleaned, "|") != strings.Join(want, "|") {
		t.Errorf("cleaned = %q, want %q", got.Cleaned, want)
	}

	resp = post(t, ts, "/api/normalize", strings.NewReader(`{"names":`), "application/json")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("bad json status = %d", resp.StatusCode)
	}
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer(t)
	req, _ := http.NewRequest(http.MethodOptions, ts.URL+"/api/clean", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.Header.Get("Access-Control-Allow-Origin") == "" {
		t.Error("missing Access-Control-Allow-Origin")
	}
}
