// Package dump invokes the darshan-parser CLI to convert binary Darshan
// logs into their text dump form.
package dump

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/go-errors/errors"
)

const defaultParserPath = "darshan-parser"

// Dumper runs darshan-parser over a binary log file.
type Dumper struct {
	// ParserPath is the darshan-parser binary to invoke. Empty means the
	// DARSHAN_PARSER env var, falling back to "darshan-parser" on PATH.
	ParserPath string
	// ShowIncomplete passes --show-incomplete so modules that ran out of
	// instrumentation memory are still emitted.
	ShowIncomplete bool
}

// NewDumper returns a Dumper with --show-incomplete enabled, matching how
// the analysis pipeline wants partial data over no data.
func NewDumper() *Dumper {
	return &Dumper{ShowIncomplete: true}
}

func (d *Dumper) parserPath() string {
	if d.ParserPath != "" {
		return d.ParserPath
	}
	if env := os.Getenv("DARSHAN_PARSER"); env != "" {
		return env
	}
	return defaultParserPath
}

// Args returns the argument vector passed to the parser binary for logPath.
func (d *Dumper) Args(logPath string) []string {
	var args []string
	if d.ShowIncomplete {
		args = append(args, "--show-incomplete")
	}
	return append(args, logPath)
}

// Dump runs darshan-parser on logPath and returns its text output.
// Cancelling the context kills the child process.
func (d *Dumper) Dump(ctx context.Context, logPath string) (string, error) {
	if err := validateLogPath(logPath); err != nil {
		return "", err
	}

	cmd := exec.CommandContext(ctx, d.parserPath(), d.Args(logPath)...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", errors.Errorf("darshan-parser failed: %s: %w", msg, err)
		}
		return "", errors.Errorf("darshan-parser failed: %w", err)
	}

	return stdout.String(), nil
}

func validateLogPath(logPath string) error {
	if !strings.HasSuffix(logPath, ".darshan") {
		return errors.Errorf("log file must have .darshan extension: %s", logPath)
	}
	if _, err := os.Stat(logPath); err != nil {
		return errors.Errorf("darshan log file not found: %w", err)
	}
	return nil
}
