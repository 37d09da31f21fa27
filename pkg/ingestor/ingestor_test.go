package ingestor

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestIngest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dump.txt")
	content := "# darshan log version: 3.41\n# exe: /usr/bin/ior\n\n# description of columns:\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write dump file: %v", err)
	}

	ch, err := Ingest(context.Background(), path)
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}

	var lines []*Line
	for result := range ch {
		if result.Err != nil {
			t.Fatalf("unexpected read error: %v", result.Err)
		}
		lines = append(lines, result.Value)
	}

	want := []string{
		"# darshan log version: 3.41",
		"# exe: /usr/bin/ior",
		"",
		"# description of columns:",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d", len(lines), len(want))
	}
	for i, line := range lines {
		if line.Number != i+1 {
			t.Errorf("line %d: Number = %d, want %d", i, line.Number, i+1)
		}
		if line.Content != want[i] {
			t.Errorf("line %d: Content = %q, want %q", i, line.Content, want[i])
		}
	}
}

func TestIngestFileNotFound(t *testing.T) {
	_, err := Ingest(context.Background(), "/nonexistent/dump.txt")
	if err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
}

func TestIngestCancellation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dump.txt")
	data := make([]byte, 0, 64*1024)
	for i := 0; i < 5000; i++ {
		data = append(data, "POSIX\t-1\t12345\tPOSIX_OPENS\t16\t/data/out\t/data\tlustre\n"...)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write dump file: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := Ingest(ctx, path)
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}

	// Read a few lines, then cancel; the channel must close without
	// requiring the remaining lines to be drained.
	for i := 0; i < 3; i++ {
		<-ch
	}
	cancel()
	for range ch {
	}
}
