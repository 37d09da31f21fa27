package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2"
)

// DuckDBStore implements Store using DuckDB.
type DuckDBStore struct {
	db *sql.DB
}

var _ Store = (*DuckDBStore)(nil)

// NewDuckDBStore creates a new DuckDB-backed store.
// Pass dsn="" for in-memory, or a file path for persistent storage.
func NewDuckDBStore(dsn string) (*DuckDBStore, error) {
	db, err := sql.Open("duckdb", dsn)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	return &DuckDBStore{db: db}, nil
}

// Init creates the runs and records tables if they do not exist.
func (s *DuckDBStore) Init(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS runs (
			run_id VARCHAR PRIMARY KEY,
			log_name VARCHAR,
			header VARCHAR,
			ingested_at TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("create runs table: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS records (
			run_id VARCHAR,
			module VARCHAR,
			rank INTEGER,
			record_id VARCHAR,
			file_name VARCHAR,
			mount_pt VARCHAR,
			fs_type VARCHAR,
			counter VARCHAR,
			value DOUBLE
		)
	`)
	if err != nil {
		return fmt.Errorf("create records table: %w", err)
	}

	return nil
}

// InsertRun stores run metadata.
func (s *DuckDBStore) InsertRun(ctx context.Context, run Run) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (run_id, log_name, header, ingested_at)
		 VALUES (?, ?, ?, ?)`,
		run.ID, run.LogName, run.Header, run.IngestedAt,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// InsertRecordBatch stores multiple records in a single transaction.
func (s *DuckDBStore) InsertRecordBatch(ctx context.Context, records []Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO records (run_id, module, rank, record_id, file_name, mount_pt, fs_type, counter, value)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, r := range records {
		_, err = stmt.ExecContext(ctx, r.RunID, r.Module, r.Rank, r.RecordID, r.FileName, r.MountPt, r.FSType, r.Counter, r.Value)
		if err != nil {
			return fmt.Errorf("exec: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Runs returns all ingested runs, newest first.
func (s *DuckDBStore) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, log_name, header, ingested_at
		 FROM runs ORDER BY ingested_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.LogName, &r.Header, &r.IngestedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return runs, nil
}

// Modules returns the distinct module names across all records.
func (s *DuckDBStore) Modules(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT module FROM records ORDER BY module`,
	)
	if err != nil {
		return nil, fmt.Errorf("query modules: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var modules []string
	for rows.Next() {
		var m string
		if err := rows.Scan(&m); err != nil {
			return nil, fmt.Errorf("scan module: %w", err)
		}
		modules = append(modules, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return modules, nil
}

// CounterTotals sums each counter of a module across records.
func (s *DuckDBStore) CounterTotals(ctx context.Context, module string) ([]CounterTotal, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT counter, SUM(value), COUNT(*)
		 FROM records WHERE module = ?
		 GROUP BY counter ORDER BY counter`,
		module,
	)
	if err != nil {
		return nil, fmt.Errorf("counter totals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var totals []CounterTotal
	for rows.Next() {
		var t CounterTotal
		if err := rows.Scan(&t.Counter, &t.Total, &t.Records); err != nil {
			return nil, fmt.Errorf("scan total: %w", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return totals, nil
}

// TopFiles returns the files with the largest summed value for a counter.
func (s *DuckDBStore) TopFiles(ctx context.Context, counter string, limit int) ([]FileTotal, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		fmt.Sprintf(`SELECT file_name, SUM(value) as total
		 FROM records WHERE counter = ? AND file_name <> ''
		 GROUP BY file_name ORDER BY total DESC LIMIT %d`, limit),
		counter,
	)
	if err != nil {
		return nil, fmt.Errorf("top files: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var files []FileTotal
	for rows.Next() {
		var f FileTotal
		if err := rows.Scan(&f.FileName, &f.Total); err != nil {
			return nil, fmt.Errorf("scan file total: %w", err)
		}
		files = append(files, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return files, nil
}

// QueryRecords returns records matching the given options.
func (s *DuckDBStore) QueryRecords(ctx context.Context, opts QueryOpts) ([]Record, error) {
	var conditions []string
	var args []any

	if opts.RunID != "" {
		conditions = append(conditions, "run_id = ?")
		args = append(args, opts.RunID)
	}
	if opts.Module != "" {
		conditions = append(conditions, "module = ?")
		args = append(args, opts.Module)
	}
	if opts.Counter != "" {
		conditions = append(conditions, "counter = ?")
		args = append(args, opts.Counter)
	}
	if opts.FileName != "" {
		conditions = append(conditions, "file_name = ?")
		args = append(args, opts.FileName)
	}

	query := "SELECT run_id, module, rank, record_id, file_name, mount_pt, fs_type, counter, value FROM records"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY module, rank, record_id, counter"
	if opts.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", opts.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.RunID, &r.Module, &r.Rank, &r.RecordID, &r.FileName, &r.MountPt, &r.FSType, &r.Counter, &r.Value); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return records, nil
}

// Close closes the underlying database connection.
func (s *DuckDBStore) Close() error {
	return s.db.Close()
}
