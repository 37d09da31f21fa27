package main

import (
	"fmt"
	"os"

	"github.com/go-errors/errors"
	"github.com/spf13/cobra"

	"github.com/hpcio/darsum/pkg/querier"
	"github.com/hpcio/darsum/pkg/store"
)

func queryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Query ingested counter records",
	}

	cmd.AddCommand(queryRunsCmd())
	cmd.AddCommand(queryModulesCmd())
	cmd.AddCommand(queryCountersCmd())
	cmd.AddCommand(queryFilesCmd())
	cmd.AddCommand(queryRecordsCmd())
	return cmd
}

func openQuerier() (*querier.Querier, func(), error) {
	s, err := store.NewDuckDBStore(dbPath)
	if err != nil {
		return nil, nil, errors.Errorf("store: %w", err)
	}
	return querier.NewQuerier(s), func() { _ = s.Close() }, nil
}

func queryRunsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "runs",
		Short: "List ingested runs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			q, closeFn, err := openQuerier()
			if err != nil {
				return err
			}
			defer closeFn()

			runs, err := q.Runs(cmd.Context())
			if err != nil {
				return errors.Errorf("query runs: %w", err)
			}
			fmt.Printf("%-36s %-25s %s\n", "RUN", "INGESTED", "LOG")
			for _, r := range runs {
				fmt.Printf("%-36s %-25s %s\n", r.ID, r.IngestedAt.Format("2006-01-02 15:04:05"), r.LogName)
			}
			return nil
		},
	}
}

func queryModulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "modules",
		Short: "List modules seen across ingested runs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			q, closeFn, err := openQuerier()
			if err != nil {
				return err
			}
			defer closeFn()

			modules, err := q.Modules(cmd.Context())
			if err != nil {
				return errors.Errorf("query modules: %w", err)
			}
			for _, m := range modules {
				fmt.Println(m)
			}
			return nil
		},
	}
}

func queryCountersCmd() *cobra.Command {
	var module string
	cmd := &cobra.Command{
		Use:   "counters",
		Short: "Show per-counter totals for a module",
		RunE: func(cmd *cobra.Command, _ []string) error {
			q, closeFn, err := openQuerier()
			if err != nil {
				return err
			}
			defer closeFn()

			totals, err := q.Counters(cmd.Context(), module)
			if err != nil {
				return errors.Errorf("query counters: %w", err)
			}
			fmt.Printf("%-40s %-18s %s\n", "COUNTER", "TOTAL", "RECORDS")
			for _, t := range totals {
				fmt.Printf("%-40s %-18g %d\n", t.Counter, t.Total, t.Records)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&module, "module", "", "module name, e.g. POSIX (required)")
	_ = cmd.MarkFlagRequired("module")
	return cmd
}

func queryFilesCmd() *cobra.Command {
	var counter string
	var limit int
	cmd := &cobra.Command{
		Use:   "files",
		Short: "Show files with the largest totals for a counter",
		RunE: func(cmd *cobra.Command, _ []string) error {
			q, closeFn, err := openQuerier()
			if err != nil {
				return err
			}
			defer closeFn()

			files, err := q.TopFiles(cmd.Context(), counter, limit)
			if err != nil {
				return errors.Errorf("query files: %w", err)
			}
			fmt.Printf("%-18s %s\n", "TOTAL", "FILE")
			for _, f := range files {
				fmt.Printf("%-18g %s\n", f.Total, f.FileName)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&counter, "counter", "", "counter name, e.g. POSIX_BYTES_WRITTEN (required)")
	cmd.Flags().IntVar(&limit, "limit", 10, "number of files to show")
	_ = cmd.MarkFlagRequired("counter")
	return cmd
}

func queryRecordsCmd() *cobra.Command {
	var opts store.QueryOpts
	cmd := &cobra.Command{
		Use:   "records",
		Short: "List raw counter records",
		RunE: func(cmd *cobra.Command, _ []string) error {
			q, closeFn, err := openQuerier()
			if err != nil {
				return err
			}
			defer closeFn()

			records, err := q.Search(cmd.Context(), opts)
			if err != nil {
				return errors.Errorf("query records: %w", err)
			}
			for _, r := range records {
				fmt.Printf("%s\trank=%d\t%s=%g\t%s\n", r.Module, r.Rank, r.Counter, r.Value, r.FileName)
			}
			fmt.Fprintf(os.Stderr, "\n%d records\n", len(records))
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.Module, "module", "", "filter by module")
	cmd.Flags().StringVar(&opts.Counter, "counter", "", "filter by counter")
	cmd.Flags().StringVar(&opts.FileName, "file", "", "filter by file name")
	cmd.Flags().StringVar(&opts.RunID, "run", "", "filter by run ID")
	cmd.Flags().IntVar(&opts.Limit, "limit", 100, "maximum records to print")
	return cmd
}
