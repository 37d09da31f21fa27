// Package ingestor streams lines from darshan-parser text dumps that were
// saved to disk, so multi-hundred-megabyte dumps don't need a second copy
// in memory while being read.
package ingestor

import (
	"bufio"
	"context"
	"os"

	"github.com/go-errors/errors"
)

// Line represents a single raw line read from a text dump.
type Line struct {
	Number  int
	Content string
}

// Result wraps either a successfully read value or a read error,
// similar to Result<T, E> in Rust.
type Result[T any] struct {
	Value T
	Err   error
}

// Ingestor reads dump lines from a source and streams them as Results.
type Ingestor interface {
	Ingest(ctx context.Context) (<-chan Result[*Line], error)
}

var _ Ingestor = (*FileIngestor)(nil)

// FileIngestor reads dump lines from a file path or stdin.
type FileIngestor struct {
	Path string
}

// Ingest reads lines from the file (or stdin if Path is "-").
// Cancel the context to stop reading early; the goroutine will exit promptly.
func (f *FileIngestor) Ingest(ctx context.Context) (<-chan Result[*Line], error) {
	var file *os.File
	if f.Path == "-" {
		file = os.Stdin
	} else {
		var err error
		file, err = os.Open(f.Path)
		if err != nil {
			return nil, errors.Errorf("open dump file: %w", err)
		}
	}

	ownFile := f.Path != "-"
	ch := make(chan Result[*Line], 100)
	go func() {
		defer close(ch)

		var fileErr error
		defer func() {
			if ownFile {
				if cerr := file.Close(); cerr != nil {
					fileErr = errors.Join(fileErr, errors.Errorf("close dump file: %w", cerr))
				}
			}
			if fileErr != nil {
				select {
				case ch <- Result[*Line]{Err: fileErr}:
				case <-ctx.Done():
				}
			}
		}()

		scanner := bufio.NewScanner(file)
		// darshan-parser description lines can get long; give the scanner room.
		scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
		lineNum := 0
		for scanner.Scan() {
			lineNum++
			select {
			case ch <- Result[*Line]{Value: &Line{Number: lineNum, Content: scanner.Text()}}:
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			fileErr = errors.Errorf("read dump file: %w", err)
		}
	}()

	return ch, nil
}

// Ingest is a convenience function that creates a FileIngestor and reads from it.
// Pass "-" to read from stdin.
func Ingest(ctx context.Context, filePath string) (<-chan Result[*Line], error) {
	return (&FileIngestor{Path: filePath}).Ingest(ctx)
}
