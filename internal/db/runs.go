package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	embedsql "github.com/gyeh/namecleaner/internal/sql"
)

// Run statuses stored in namecleaner.runs.
const (
	StatusLoading = "loading"
	StatusLoaded  = "loaded"
	StatusFailed  = "failed"
)

// Run is one load of a cleaned column into Postgres.
type Run struct {
	ID             uuid.UUID
	SourceFileName string
	FileSHA256     string
	Column         string
	CleanedColumn  string
	RowsTotal      int64
	RowsModified   int64
}

// RegisterRun inserts r with status "loading".
func RegisterRun(ctx context.Context, pool *pgxpool.Pool, r Run) error {
	_, err := pool.Exec(ctx, embedsql.RegisterRun,
		r.ID, r.SourceFileName, r.FileSHA256, r.Column, r.CleanedColumn,
		r.RowsTotal, r.RowsModified,
	)
	if err != nil {
		return fmt.Errorf("register run: %w", err)
	}
	return nil
}

// LookupLoadedRun finds the latest loaded run for a file hash and column.
// ok is false when no such run exists.
func LookupLoadedRun(ctx context.Context, pool *pgxpool.Pool, sha, column string) (id uuid.UUID, rowsLoaded int64, ok bool, err error) {
	err = pool.QueryRow(ctx, embedsql.LookupLoadedRun, sha, column).Scan(&id, &rowsLoaded)
	if errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, 0, false, nil
	}
	if err != nil {
		return uuid.Nil, 0, false, fmt.Errorf("lookup loaded run: %w", err)
	}
	return id, rowsLoaded, true, nil
}

// UpdateRunStatus sets the status of a run.
func UpdateRunStatus(ctx context.Context, pool *pgxpool.Pool, id uuid.UUID, status string) error {
	if _, err := pool.Exec(ctx, embedsql.UpdateRunStatus, id, status); err != nil {
		return fmt.Errorf("update run status: %w", err)
	}
	return nil
}

// FinishRun marks a run loaded with its final row count.
func FinishRun(ctx context.Context, pool *pgxpool.Pool, id uuid.UUID, rowsLoaded int64) error {
	if _, err := pool.Exec(ctx, embedsql.FinishRun, id, rowsLoaded); err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}
