package clean

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/gyeh/namecleaner/internal/model"
	"github.com/gyeh/namecleaner/internal/normalize"
	"github.com/gyeh/namecleaner/internal/table"
)

const (
	// minChunk keeps small columns on a single goroutine.
	minChunk = 512
	// ctxCheckEvery is how many rows a worker cleans between context checks.
	ctxCheckEvery = 1024
)

// Column normalizes every value, returning the cleaned names in input order
// and the number of rows whose text changed.
func Column(ctx context.Context, values []any, workers int) ([]string, int64, error) {
	out := make([]string, len(values))
	if len(values) == 0 {
		return out, 0, ctx.Err()
	}
	if workers < 1 {
		workers = 1
	}
	chunk := max((len(values)+workers-1)/workers, minChunk)

	var modified atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	for start := 0; start < len(values); start += chunk {
		end := min(start+chunk, len(values))
		g.Go(func() error {
			var n int64
			for i := start; i < end; i++ {
				if (i-start)%ctxCheckEvery == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				out[i] = normalize.CompanyName(values[i])
				if normalize.Modified(values[i], out[i]) {
					n++
				}
			}
			modified.Add(n)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return out, modified.Load(), nil
}

// Pairs zips raw values with their cleaned names. Row numbers start at 1.
func Pairs(values []any, cleaned []string) []model.ResultPair {
	pairs := make([]model.ResultPair, len(values))
	for i, v := range values {
		pairs[i] = model.ResultPair{
			RowNumber: int64(i + 1),
			Raw:       v,
			RawText:   normalize.ToText(v),
			Cleaned:   cleaned[i],
		}
	}
	return pairs
}

// Options control how a table column is cleaned.
type Options struct {
	Column  string
	Prefix  string
	Workers int
}

// Outcome is the result of cleaning one column of an in-memory table.
type Outcome struct {
	Column        string
	CleanedColumn string
	Pairs         []model.ResultPair
	RowsModified  int64
}

// Preview returns at most n leading pairs.
func (o *Outcome) Preview(n int) []model.ResultPair {
	if n < 0 {
		n = 0
	}
	if n > len(o.Pairs) {
		n = len(o.Pairs)
	}
	return o.Pairs[:n]
}

// Table validates and cleans opts.Column, then appends the derived column
// "<prefix><column>" to t. Failures are returned as *PipelineError.
func Table(ctx context.Context, t *table.Table, opts Options) (*Outcome, error) {
	derived := opts.Prefix + opts.Column
	if err := table.ValidateColumn(t, opts.Column); err != nil {
		return nil, &PipelineError{Phase: PhaseValidate, Err: err}
	}
	if _, exists := t.ColumnIndex(derived); exists {
		return nil, &PipelineError{Phase: PhaseValidate, Err: fmt.Errorf("derived column %q already exists", derived)}
	}

	values, err := t.Column(opts.Column)
	if err != nil {
		return nil, &PipelineError{Phase: PhaseValidate, Err: err}
	}
	cleaned, modified, err := Column(ctx, values, opts.Workers)
	if err != nil {
		return nil, &PipelineError{Phase: PhaseClean, Err: err}
	}
	pairs := Pairs(values, cleaned)

	if err := t.AppendColumn(derived, cleaned); err != nil {
		return nil, &PipelineError{Phase: PhaseWrite, Err: err}
	}
	return &Outcome{
		Column:        opts.Column,
		CleanedColumn: derived,
		Pairs:         pairs,
		RowsModified:  modified,
	}, nil
}
