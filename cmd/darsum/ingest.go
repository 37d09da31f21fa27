package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-errors/errors"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/hpcio/darsum/pkg/darshan"
	"github.com/hpcio/darsum/pkg/store"
)

const insertBatchSize = 500

func ingestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest <logfile>",
		Short: "Load a Darshan log's counter records into DuckDB",
		Long: `Convert the log and store every counter record in long form in DuckDB,
so runs can be explored with SQL or the 'darsum query' commands.`,
		Args: cobra.ExactArgs(1),
		RunE: runIngest,
	}
	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
	logFile := args[0]
	ctx := cmd.Context()

	dumpText, err := loadDump(ctx, logFile)
	if err != nil {
		return err
	}

	header := darshan.ExtractHeader(dumpText)
	modules, err := darshan.ExtractModules(dumpText)
	if err != nil {
		return errors.Errorf("extract modules: %w", err)
	}
	if len(modules) == 0 {
		return errors.Errorf("no module data found in %s", logFile)
	}

	s, err := store.NewDuckDBStore(dbPath)
	if err != nil {
		return errors.Errorf("store: %w", err)
	}
	defer func() { _ = s.Close() }()

	if err := s.Init(ctx); err != nil {
		return errors.Errorf("store init: %w", err)
	}

	run := store.Run{
		ID:         uuid.New().String(),
		LogName:    filepath.Base(logFile),
		Header:     header,
		IngestedAt: time.Now(),
	}
	if err := s.InsertRun(ctx, run); err != nil {
		return errors.Errorf("insert run: %w", err)
	}

	total, err := ingestModules(ctx, s, run.ID, modules)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Ingested %d records from %d modules (run %s)\n", total, len(modules), run.ID)
	fmt.Fprintf(os.Stderr, "Database: %s\n", dbPath)
	return nil
}

func ingestModules(ctx context.Context, s *store.DuckDBStore, runID string, modules []darshan.Module) (int, error) {
	var total int
	var batch []store.Record
	for _, m := range modules {
		records, err := store.RecordsFromModule(runID, m)
		if err != nil {
			return 0, errors.Errorf("convert module %s: %w", m.Name, err)
		}
		for _, r := range records {
			batch = append(batch, r)
			if len(batch) >= insertBatchSize {
				if err := s.InsertRecordBatch(ctx, batch); err != nil {
					return 0, errors.Errorf("insert batch: %w", err)
				}
				batch = batch[:0]
			}
			total++
		}
	}
	if len(batch) > 0 {
		if err := s.InsertRecordBatch(ctx, batch); err != nil {
			return 0, errors.Errorf("insert batch: %w", err)
		}
	}
	return total, nil
}
