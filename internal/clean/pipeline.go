package clean

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/rs/zerolog"

	"github.com/gyeh/namecleaner/internal/config"
	"github.com/gyeh/namecleaner/internal/model"
	"github.com/gyeh/namecleaner/internal/normalize"
	"github.com/gyeh/namecleaner/internal/source"
	"github.com/gyeh/namecleaner/internal/table"
)

// Pipeline phases reported in PipelineError.
const (
	PhaseRead     = "read"
	PhaseValidate = "validate"
	PhaseClean    = "clean"
	PhaseWrite    = "write"
	PhaseLoad     = "load"
)

// PipelineError wraps an error with the phase where it occurred.
type PipelineError struct {
	Phase string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Phase, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// prepared is a cleaned table that has not been written anywhere yet.
type prepared struct {
	table   *table.Table
	outcome *Outcome
	summary *model.CleanSummary
	start   time.Time
}

// prepare reads the input, validates the column and cleans it.
func prepare(ctx context.Context, log zerolog.Logger, store *source.Store, cfg *config.Config) (*prepared, error) {
	start := time.Now()

	log.Info().Str("file", cfg.FilePath).Str("column", cfg.Column).Msg("reading input")
	tbl, sha, err := readTable(ctx, store, cfg)
	if err != nil {
		return nil, &PipelineError{Phase: PhaseRead, Err: err}
	}
	readDur := time.Since(start)

	log.Info().
		Str("sha256", sha).
		Int("rows", tbl.NumRows()).
		Int("columns", len(tbl.Columns)).
		Dur("duration", readDur).
		Msg("input read")

	cleanStart := time.Now()
	outcome, err := Table(ctx, tbl, Options{
		Column:  cfg.Column,
		Prefix:  cfg.Prefix,
		Workers: cfg.Workers,
	})
	if err != nil {
		return nil, err
	}
	cleanDur := time.Since(cleanStart)

	log.Info().
		Int("rows_total", len(outcome.Pairs)).
		Int64("rows_modified", outcome.RowsModified).
		Dur("duration", cleanDur).
		Msg("column cleaned")

	return &prepared{
		table:   tbl,
		outcome: outcome,
		start:   start,
		summary: &model.CleanSummary{
			FilePath:      cfg.FilePath,
			FileSHA256:    sha,
			Column:        outcome.Column,
			CleanedColumn: outcome.CleanedColumn,
			RowsTotal:     int64(len(outcome.Pairs)),
			RowsModified:  outcome.RowsModified,
			Preview:       outcome.Preview(cfg.PreviewRows),
			DurationRead:  readDur,
			DurationClean: cleanDur,
		},
	}, nil
}

// readTable parses the input and returns it with the SHA-256 of its bytes.
func readTable(ctx context.Context, store *source.Store, cfg *config.Config) (*table.Table, string, error) {
	var sha string
	if !config.IsS3(cfg.FilePath) {
		var err error
		if sha, err = normalize.FileHash(cfg.FilePath); err != nil {
			return nil, "", fmt.Errorf("read hash: %w", err)
		}
	}

	rc, err := store.Open(ctx, cfg.FilePath)
	if err != nil {
		return nil, "", err
	}
	defer rc.Close()

	hr := normalize.NewHashingReader(rc)
	tbl, err := table.Read(hr, cfg.ResolveInputFormat())
	if err != nil {
		return nil, "", fmt.Errorf("read parse: %w", err)
	}
	if sha == "" {
		if _, err := io.Copy(io.Discard, hr); err != nil {
			return nil, "", fmt.Errorf("read drain: %w", err)
		}
		sha = hr.Sum()
	}
	return tbl, sha, nil
}

// Plan cleans the column and reports what Run would write without writing it.
func Plan(ctx context.Context, log zerolog.Logger, store *source.Store, cfg *config.Config) (*model.CleanSummary, error) {
	p, err := prepare(ctx, log, store, cfg)
	if err != nil {
		return nil, err
	}
	p.summary.OutputPath = cfg.ResolveOutputPath()
	p.summary.DurationTotal = time.Since(p.start)
	return p.summary, nil
}

// Run executes the full clean pipeline: read → validate → clean → write.
func Run(ctx context.Context, log zerolog.Logger, store *source.Store, cfg *config.Config) (*model.CleanSummary, error) {
	p, err := prepare(ctx, log, store, cfg)
	if err != nil {
		return nil, err
	}

	writeStart := time.Now()
	out := cfg.ResolveOutputPath()
	if err := writeTable(ctx, store, out, cfg.ResolveOutputFormat(), p.table); err != nil {
		return nil, &PipelineError{Phase: PhaseWrite, Err: err}
	}

	s := p.summary
	s.OutputPath = out
	s.DurationWrite = time.Since(writeStart)
	s.DurationTotal = time.Since(p.start)

	log.Info().
		Str("output", out).
		Int64("rows_total", s.RowsTotal).
		Int64("rows_modified", s.RowsModified).
		Str("total_duration", s.DurationTotal.String()).
		Msg("clean pipeline complete")

	return s, nil
}

func writeTable(ctx context.Context, store *source.Store, out string, f table.Format, t *table.Table) error {
	w, err := store.Create(ctx, out)
	if err != nil {
		return err
	}
	if err := table.Write(w, t, f); err != nil {
		w.Close()
		return fmt.Errorf("write %s: %w", path.Base(out), err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path.Base(out), err)
	}
	return nil
}
