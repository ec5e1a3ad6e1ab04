package clean

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/namecleaner/internal/config"
	"github.com/gyeh/namecleaner/internal/db"
	"github.com/gyeh/namecleaner/internal/model"
	"github.com/gyeh/namecleaner/internal/source"
)

const copyBufferSize = 1024

// Load cleans the column and persists every result pair as a run in
// Postgres. A file whose hash and column were already loaded is skipped
// unless cfg.Force is set.
func Load(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, store *source.Store, cfg *config.Config) (*model.CleanSummary, error) {
	p, err := prepare(ctx, log, store, cfg)
	if err != nil {
		return nil, err
	}
	s := p.summary
	loadStart := time.Now()

	if !cfg.Force {
		id, rowsLoaded, ok, err := db.LookupLoadedRun(ctx, pool, s.FileSHA256, s.Column)
		if err != nil {
			return nil, &PipelineError{Phase: PhaseLoad, Err: err}
		}
		if ok {
			log.Info().
				Str("run_id", id.String()).
				Str("sha256", s.FileSHA256).
				Msg("column already loaded, skipping (use --force to reload)")
			s.AlreadyLoaded = true
			s.RunID = id.String()
			s.RowsLoaded = rowsLoaded
			s.DurationTotal = time.Since(p.start)
			return s, nil
		}
	}

	run := db.Run{
		ID:             uuid.New(),
		SourceFileName: path.Base(cfg.FilePath),
		FileSHA256:     s.FileSHA256,
		Column:         s.Column,
		CleanedColumn:  s.CleanedColumn,
		RowsTotal:      s.RowsTotal,
		RowsModified:   s.RowsModified,
	}
	if err := db.RegisterRun(ctx, pool, run); err != nil {
		return nil, &PipelineError{Phase: PhaseLoad, Err: err}
	}
	s.RunID = run.ID.String()

	loaded, err := copyPairs(ctx, pool, run.ID, p.outcome.Pairs)
	if err != nil {
		_ = db.UpdateRunStatus(ctx, pool, run.ID, db.StatusFailed)
		return nil, &PipelineError{Phase: PhaseLoad, Err: err}
	}
	if err := db.FinishRun(ctx, pool, run.ID, loaded); err != nil {
		return nil, &PipelineError{Phase: PhaseLoad, Err: err}
	}

	s.RowsLoaded = loaded
	s.DurationLoad = time.Since(loadStart)
	s.DurationTotal = time.Since(p.start)

	log.Info().
		Str("run_id", s.RunID).
		Int64("rows_loaded", loaded).
		Dur("duration", s.DurationLoad).
		Float64("rows_per_sec", float64(loaded)/s.DurationLoad.Seconds()).
		Msg("load complete")

	return s, nil
}

// copyPairs feeds pairs through a channel into COPY. The producer stops as
// soon as COPY returns so a failed COPY never leaves it blocked.
func copyPairs(ctx context.Context, pool *pgxpool.Pool, runID uuid.UUID, pairs []model.ResultPair) (int64, error) {
	copyCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	ch := make(chan *model.CleanedRow, copyBufferSize)
	done := make(chan error, 1)

	go func() {
		defer close(ch)
		for _, pr := range pairs {
			select {
			case ch <- model.NewCleanedRow(runID, pr):
			case <-copyCtx.Done():
				done <- copyCtx.Err()
				return
			}
		}
		done <- nil
	}()

	n, copyErr := db.CopyCleanedRows(copyCtx, pool, ch)
	cancel()
	prodErr := <-done

	if copyErr != nil {
		return 0, copyErr
	}
	if prodErr != nil {
		return 0, fmt.Errorf("load producer: %w", prodErr)
	}
	return n, nil
}
