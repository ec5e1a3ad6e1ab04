package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gyeh/namecleaner/internal/model"
)

// ChannelSource implements pgx.CopyFromSource by reading CleanedRows from a channel.
// The channel gives backpressure between the producer and the COPY writer.
type ChannelSource struct {
	ch      <-chan *model.CleanedRow
	current *model.CleanedRow
	err     error
}

// NewChannelSource creates a CopyFromSource backed by a channel.
func NewChannelSource(ch <-chan *model.CleanedRow) *ChannelSource {
	return &ChannelSource{ch: ch}
}

// Next advances to the next row. Returns false when the channel is closed.
func (s *ChannelSource) Next() bool {
	row, ok := <-s.ch
	if !ok {
		return false
	}
	s.current = row
	return true
}

// Values returns the current row's values in COPY column order.
func (s *ChannelSource) Values() ([]any, error) {
	return s.current.CopyValues(), nil
}

// Err returns any error encountered during iteration.
func (s *ChannelSource) Err() error {
	return s.err
}

var _ pgx.CopyFromSource = (*ChannelSource)(nil)

// CopyCleanedRows streams rows from ch into namecleaner.cleaned_names.
// It returns once ch is closed or the COPY fails.
func CopyCleanedRows(ctx context.Context, pool *pgxpool.Pool, ch <-chan *model.CleanedRow) (int64, error) {
	n, err := pool.CopyFrom(ctx,
		pgx.Identifier{"namecleaner", "cleaned_names"},
		model.CleanedColumns(),
		NewChannelSource(ch),
	)
	if err != nil {
		return n, fmt.Errorf("copy cleaned names: %w", err)
	}
	return n, nil
}
