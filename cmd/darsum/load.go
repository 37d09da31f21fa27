package main

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/go-errors/errors"

	"github.com/hpcio/darsum/pkg/darshan"
	"github.com/hpcio/darsum/pkg/dump"
	"github.com/hpcio/darsum/pkg/ingestor"
	"github.com/hpcio/darsum/pkg/pattern"
)

// loadDump returns the text dump for the given input. A .darshan file is run
// through darshan-parser; anything else is treated as an already-dumped text
// file and streamed from disk (or stdin with "-").
func loadDump(ctx context.Context, path string) (string, error) {
	if strings.HasSuffix(path, ".darshan") {
		return dump.NewDumper().Dump(ctx, path)
	}

	ch, err := ingestor.Ingest(ctx, path)
	if err != nil {
		return "", errors.Errorf("ingest dump: %w", err)
	}
	var b strings.Builder
	for rr := range ch {
		if rr.Err != nil {
			return "", errors.Errorf("read dump: %w", rr.Err)
		}
		b.WriteString(rr.Value.Content)
		b.WriteString("\n")
	}
	return b.String(), nil
}

// logBase strips the directory and .darshan extension from a log path.
func logBase(logPath string) string {
	return strings.TrimSuffix(filepath.Base(logPath), ".darshan")
}

// defaultOutputDir picks the output directory for a log when -o is not given.
func defaultOutputDir(outFlag, prefix, logPath string) string {
	if outFlag != "" {
		return outFlag
	}
	return prefix + logBase(logPath)
}

// splitDump extracts the header and module blocks and mines access-path
// clusters from the recorded file names.
func splitDump(dumpText string) (string, []darshan.Module, []pattern.PathCluster, error) {
	header := darshan.ExtractHeader(dumpText)
	modules, err := darshan.ExtractModules(dumpText)
	if err != nil {
		return "", nil, nil, errors.Errorf("extract modules: %w", err)
	}

	miner, err := pattern.NewPathMiner()
	if err != nil {
		return "", nil, nil, errors.Errorf("path miner: %w", err)
	}
	if err := miner.Feed(darshan.FilePaths(modules)); err != nil {
		return "", nil, nil, errors.Errorf("mine paths: %w", err)
	}
	clusters, err := miner.Templates()
	if err != nil {
		return "", nil, nil, errors.Errorf("path templates: %w", err)
	}

	return header, modules, clusters, nil
}
