package store

import (
	"context"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *DuckDBStore {
	t.Helper()
	s, err := NewDuckDBStore("")
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	if err := s.Init(context.Background()); err != nil {
		t.Fatalf("init store: %v", err)
	}
	return s
}

func testRecords(runID string) []Record {
	return []Record{
		{RunID: runID, Module: "POSIX", Rank: -1, RecordID: "123", FileName: "/projects/out.dat", MountPt: "/projects", FSType: "lustre", Counter: "POSIX_BYTES_WRITTEN", Value: 1048576},
		{RunID: runID, Module: "POSIX", Rank: -1, RecordID: "456", FileName: "/home/cfg.ini", MountPt: "/home", FSType: "nfs", Counter: "POSIX_BYTES_WRITTEN", Value: 512},
		{RunID: runID, Module: "POSIX", Rank: -1, RecordID: "123", FileName: "/projects/out.dat", MountPt: "/projects", FSType: "lustre", Counter: "POSIX_OPENS", Value: 16},
		{RunID: runID, Module: "STDIO", Rank: 0, RecordID: "789", FileName: "/projects/log.txt", MountPt: "/projects", FSType: "lustre", Counter: "STDIO_WRITES", Value: 4},
	}
}

func TestInsertAndQueryRecords(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.InsertRecordBatch(ctx, testRecords("run-1")); err != nil {
		t.Fatalf("insert batch: %v", err)
	}

	records, err := s.QueryRecords(ctx, QueryOpts{Module: "POSIX"})
	if err != nil {
		t.Fatalf("query records: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 POSIX records, got %d", len(records))
	}

	records, err = s.QueryRecords(ctx, QueryOpts{Counter: "POSIX_OPENS"})
	if err != nil {
		t.Fatalf("query by counter: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Value != 16 {
		t.Errorf("expected value 16, got %g", records[0].Value)
	}

	records, err = s.QueryRecords(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("query with limit: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records with limit, got %d", len(records))
	}
}

func TestModules(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.InsertRecordBatch(ctx, testRecords("run-1")); err != nil {
		t.Fatalf("insert batch: %v", err)
	}

	modules, err := s.Modules(ctx)
	if err != nil {
		t.Fatalf("modules: %v", err)
	}
	if len(modules) != 2 || modules[0] != "POSIX" || modules[1] != "STDIO" {
		t.Errorf("expected [POSIX STDIO], got %v", modules)
	}
}

func TestCounterTotals(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.InsertRecordBatch(ctx, testRecords("run-1")); err != nil {
		t.Fatalf("insert batch: %v", err)
	}

	totals, err := s.CounterTotals(ctx, "POSIX")
	if err != nil {
		t.Fatalf("counter totals: %v", err)
	}
	if len(totals) != 2 {
		t.Fatalf("expected 2 counters, got %d", len(totals))
	}

	byName := make(map[string]CounterTotal)
	for _, ct := range totals {
		byName[ct.Counter] = ct
	}
	if got := byName["POSIX_BYTES_WRITTEN"]; got.Total != 1048576+512 || got.Records != 2 {
		t.Errorf("POSIX_BYTES_WRITTEN: got total=%g records=%d", got.Total, got.Records)
	}
	if got := byName["POSIX_OPENS"]; got.Total != 16 || got.Records != 1 {
		t.Errorf("POSIX_OPENS: got total=%g records=%d", got.Total, got.Records)
	}
}

func TestTopFiles(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.InsertRecordBatch(ctx, testRecords("run-1")); err != nil {
		t.Fatalf("insert batch: %v", err)
	}

	files, err := s.TopFiles(ctx, "POSIX_BYTES_WRITTEN", 1)
	if err != nil {
		t.Fatalf("top files: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected 1 file with limit 1, got %d", len(files))
	}
	if files[0].FileName != "/projects/out.dat" || files[0].Total != 1048576 {
		t.Errorf("expected /projects/out.dat on top, got %+v", files[0])
	}
}

func TestInsertAndListRuns(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	older := Run{ID: "run-1", LogName: "a.darshan", Header: "# nprocs: 64", IngestedAt: time.Now().Add(-time.Hour)}
	newer := Run{ID: "run-2", LogName: "b.darshan", Header: "# nprocs: 128", IngestedAt: time.Now()}
	for _, r := range []Run{older, newer} {
		if err := s.InsertRun(ctx, r); err != nil {
			t.Fatalf("insert run: %v", err)
		}
	}

	runs, err := s.Runs(ctx)
	if err != nil {
		t.Fatalf("runs: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != "run-2" {
		t.Errorf("expected newest run first, got %s", runs[0].ID)
	}
	if runs[1].Header != "# nprocs: 64" {
		t.Errorf("header not round-tripped: %q", runs[1].Header)
	}
}
