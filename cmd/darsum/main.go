package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/hpcio/darsum/pkg/tracing"
)

var dbPath string

func main() {
	// Load .env file if present (does not override existing env vars)
	_ = godotenv.Load()

	flush := tracing.InitLangfuse()
	shutdown := tracing.InitOTLP(context.Background())

	root := &cobra.Command{
		Use:   "darsum",
		Short: "Darshan I/O log summarizer",
		Long:  "darsum converts binary Darshan I/O profiling logs into per-module tables and drives an LLM agent to extract file system tuning insights from them.",
	}

	root.PersistentFlags().StringVar(&dbPath, "db", "darsum.duckdb", "path to DuckDB database")

	root.AddCommand(parseCmd())
	root.AddCommand(analyzeCmd())
	root.AddCommand(questionCmd())
	root.AddCommand(ingestCmd())
	root.AddCommand(queryCmd())
	root.AddCommand(debugCmd())

	err := root.Execute()
	flush()
	_ = shutdown(context.Background())

	if err != nil {
		os.Exit(1)
	}
}
