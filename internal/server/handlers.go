package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gyeh/namecleaner/internal/clean"
	"github.com/gyeh/namecleaner/internal/normalize"
	"github.com/gyeh/namecleaner/internal/table"
)

const (
	// DownloadName is the file name offered for the cleaned CSV.
	DownloadName = "cleaned_companies.csv"
	formatHint   = "Please make sure your CSV file is properly formatted and try again."
)

type errorResponse struct {
	Error string `json:"error"`
	Hint  string `json:"hint,omitempty"`
}

type columnsResponse struct {
	Columns []string `json:"columns"`
	Records int      `json:"records"`
}

type previewRow struct {
	RowNumber int64  `json:"row_number"`
	Original  string `json:"original"`
	Cleaned   string `json:"cleaned"`
	Modified  bool   `json:"modified"`
}

type cleanResponse struct {
	Column          string       `json:"column"`
	CleanedColumn   string       `json:"cleaned_column"`
	TotalRecords    int          `json:"total_records"`
	RecordsModified int64        `json:"records_modified"`
	Preview         []previewRow `json:"preview"`
	Download        string       `json:"download"`
	DownloadName    string       `json:"download_name"`
}

type normalizeRequest struct {
	Names []any `json:"names"`
}

type normalizeResponse struct {
	Cleaned []string `json:"cleaned"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleColumns(w http.ResponseWriter, r *http.Request) {
	tbl, err := s.readUpload(w, r)
	if err != nil {
		s.processError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, columnsResponse{Columns: tbl.Columns, Records: tbl.NumRows()})
}

func (s *Server) handleClean(w http.ResponseWriter, r *http.Request) {
	tbl, err := s.readUpload(w, r)
	if err != nil {
		s.processError(w, r, err)
		return
	}

	out, err := clean.Table(r.Context(), tbl, clean.Options{
		Column:  r.FormValue("column"),
		Prefix:  s.opts.Prefix,
		Workers: s.opts.Workers,
	})
	if err != nil {
		s.processError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := table.WriteCSV(&buf, tbl); err != nil {
		s.processError(w, r, &clean.PipelineError{Phase: clean.PhaseWrite, Err: err})
		return
	}

	if strings.EqualFold(r.FormValue("format"), "csv") {
		w.Header().Set("Content-Type", table.CSV.ContentType())
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", DownloadName))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(buf.Bytes())
		return
	}

	preview := make([]previewRow, 0, max(s.opts.PreviewRows, 0))
	for _, p := range out.Preview(s.opts.PreviewRows) {
		preview = append(preview, previewRow{
			RowNumber: p.RowNumber,
			Original:  p.RawText,
			Cleaned:   p.Cleaned,
			Modified:  p.Modified(),
		})
	}
	writeJSON(w, http.StatusOK, cleanResponse{
		Column:          out.Column,
		CleanedColumn:   out.CleanedColumn,
		TotalRecords:    len(out.Pairs),
		RecordsModified: out.RowsModified,
		Preview:         preview,
		Download:        "data:file/csv;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()),
		DownloadName:    DownloadName,
	})
}

func (s *Server) handleNormalize(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes)
	dec := json.NewDecoder(r.Body)
	// Keep numbers as json.Number so 12345 stays "12345".
	dec.UseNumber()

	var req normalizeRequest
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid request body: %v", err)})
		return
	}
	writeJSON(w, http.StatusOK, normalizeResponse{Cleaned: normalize.CompanyNames(req.Names)})
}

// readUpload parses the multipart "file" field into a table. The format is
// taken from the "format_in" field or the uploaded file name.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (*table.Table, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.opts.MaxUploadBytes); err != nil {
		return nil, fmt.Errorf("parse upload: %w", err)
	}
	f, hdr, err := r.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("missing upload field %q: %w", "file", err)
	}
	defer f.Close()

	format := table.FormatFromPath(hdr.Filename)
	if in := r.FormValue("format_in"); in != "" {
		if format, err = table.ParseFormat(in); err != nil {
			return nil, err
		}
	}
	return table.Read(f, format)
}

// processError reports a recoverable upload failure. The server keeps serving.
func (s *Server) processError(w http.ResponseWriter, r *http.Request, err error) {
	evt := s.log.Warn().Err(err).Str("path", r.URL.Path)
	var pe *clean.PipelineError
	if errors.As(err, &pe) {
		evt = evt.Str("phase", pe.Phase)
		err = pe.Err
	}
	evt.Msg("request failed")

	writeJSON(w, http.StatusBadRequest, errorResponse{
		Error: fmt.Sprintf("Error processing file: %v", err),
		Hint:  formatHint,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
