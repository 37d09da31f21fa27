// Package store persists parsed Darshan counter records in DuckDB so runs
// can be explored with SQL after the workspace files are written.
package store

import (
	"context"
	"time"
)

// Run is one ingested Darshan log.
type Run struct {
	ID         string
	LogName    string
	Header     string
	IngestedAt time.Time
}

// Record is a single long-form counter observation.
type Record struct {
	RunID    string
	Module   string
	Rank     int
	RecordID string
	FileName string
	MountPt  string
	FSType   string
	Counter  string
	Value    float64
}

// CounterTotal aggregates one counter across all records of a module.
type CounterTotal struct {
	Counter string
	Total   float64
	Records int
}

// FileTotal aggregates one counter per file.
type FileTotal struct {
	FileName string
	Total    float64
}

// QueryOpts specifies filters for querying records.
type QueryOpts struct {
	RunID    string
	Module   string
	Counter  string
	FileName string
	Limit    int
}

// Store persists runs and counter records.
type Store interface {
	// Init creates tables if they don't exist.
	Init(ctx context.Context) error
	// InsertRun stores run metadata.
	InsertRun(ctx context.Context, run Run) error
	// InsertRecordBatch stores multiple records in one transaction.
	InsertRecordBatch(ctx context.Context, records []Record) error
	// Runs returns all ingested runs, newest first.
	Runs(ctx context.Context) ([]Run, error)
	// Modules returns the distinct module names across all records.
	Modules(ctx context.Context) ([]string, error)
	// CounterTotals sums each counter of a module across records.
	CounterTotals(ctx context.Context, module string) ([]CounterTotal, error)
	// TopFiles returns the files with the largest summed value for a counter.
	TopFiles(ctx context.Context, counter string, limit int) ([]FileTotal, error)
	// QueryRecords returns records matching the given options.
	QueryRecords(ctx context.Context, opts QueryOpts) ([]Record, error)
	// Close releases resources.
	Close() error
}
