package dump

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestArgs(t *testing.T) {
	tests := []struct {
		name           string
		showIncomplete bool
		want           []string
	}{
		{"with show-incomplete", true, []string{"--show-incomplete", "app.darshan"}},
		{"without show-incomplete", false, []string{"app.darshan"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &Dumper{ShowIncomplete: tt.showIncomplete}
			got := d.Args("app.darshan")
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("arg %d: expected %q, got %q", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestDumpRejectsWrongExtension(t *testing.T) {
	d := NewDumper()
	_, err := d.Dump(context.Background(), "app.log")
	if err == nil {
		t.Fatal("expected error for non-.darshan file, got nil")
	}
	if !strings.Contains(err.Error(), ".darshan") {
		t.Errorf("error should mention the extension: %v", err)
	}
}

func TestDumpRejectsMissingFile(t *testing.T) {
	d := NewDumper()
	_, err := d.Dump(context.Background(), "/nonexistent/app.darshan")
	if err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
}

// fakeParser writes a stand-in darshan-parser script and returns its path.
func fakeParser(t *testing.T, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "darshan-parser")
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write fake parser: %v", err)
	}
	return path
}

func TestDumpRunsParser(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "app.darshan")
	if err := os.WriteFile(logPath, []byte{0x01}, 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}

	d := &Dumper{
		ParserPath:     fakeParser(t, "#!/bin/sh\necho \"# darshan log version: 3.41\"\necho \"arg: $1\"\n"),
		ShowIncomplete: true,
	}

	out, err := d.Dump(context.Background(), logPath)
	if err != nil {
		t.Fatalf("Dump: %v", err)
	}
	if !strings.Contains(out, "# darshan log version: 3.41") {
		t.Errorf("output missing dump content: %q", out)
	}
	if !strings.Contains(out, "arg: --show-incomplete") {
		t.Errorf("parser should receive --show-incomplete first: %q", out)
	}
}

func TestDumpParserFailure(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "app.darshan")
	if err := os.WriteFile(logPath, []byte{0x01}, 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}

	d := &Dumper{
		ParserPath: fakeParser(t, "#!/bin/sh\necho \"Error: failed to read log format version\" >&2\nexit 1\n"),
	}

	_, err := d.Dump(context.Background(), logPath)
	if err == nil {
		t.Fatal("expected error when parser exits non-zero, got nil")
	}
	if !strings.Contains(err.Error(), "failed to read log format version") {
		t.Errorf("error should carry parser stderr: %v", err)
	}
}

func TestParserPathEnvOverride(t *testing.T) {
	t.Setenv("DARSHAN_PARSER", "/opt/darshan/bin/darshan-parser")
	d := NewDumper()
	if got := d.parserPath(); got != "/opt/darshan/bin/darshan-parser" {
		t.Errorf("expected env override, got %q", got)
	}

	d.ParserPath = "/explicit/parser"
	if got := d.parserPath(); got != "/explicit/parser" {
		t.Errorf("explicit path should win over env, got %q", got)
	}
}
