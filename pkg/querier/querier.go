package querier

import (
	"context"

	"github.com/hpcio/darsum/pkg/store"
)

// Querier provides a high-level interface for querying ingested records.
type Querier struct {
	store store.Store
}

// NewQuerier creates a new Querier backed by the given store.
func NewQuerier(s store.Store) *Querier {
	return &Querier{store: s}
}

// Modules returns the distinct module names across all ingested runs.
func (q *Querier) Modules(ctx context.Context) ([]string, error) {
	return q.store.Modules(ctx)
}

// Counters sums each counter of a module across records.
func (q *Querier) Counters(ctx context.Context, module string) ([]store.CounterTotal, error) {
	return q.store.CounterTotals(ctx, module)
}

// TopFiles returns the files with the largest summed value for a counter.
func (q *Querier) TopFiles(ctx context.Context, counter string, limit int) ([]store.FileTotal, error) {
	return q.store.TopFiles(ctx, counter, limit)
}

// Search returns records matching the given query options.
func (q *Querier) Search(ctx context.Context, opts store.QueryOpts) ([]store.Record, error) {
	return q.store.QueryRecords(ctx, opts)
}

// Runs returns all ingested runs.
func (q *Querier) Runs(ctx context.Context) ([]store.Run, error) {
	return q.store.Runs(ctx)
}
