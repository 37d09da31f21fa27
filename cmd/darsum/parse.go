package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/go-errors/errors"
	"github.com/spf13/cobra"

	"github.com/hpcio/darsum/pkg/workspace"
)

var parseOutput string

func parseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <logfile>",
		Short: "Convert a Darshan log into per-module CSV tables",
		Long: `Run darshan-parser on a binary .darshan log (or read an already-dumped text
file) and split the result into a workspace directory: header.txt, one CSV
table plus one description file per module, and mined access-path patterns.

No LLM is involved.

Examples:
  darsum parse app.darshan
  darsum parse app.darshan -o ./parsed_data
  darsum parse app_parsed.txt -o ./parsed_data`,
		Args: cobra.ExactArgs(1),
		RunE: runParse,
	}
	cmd.Flags().StringVarP(&parseOutput, "output", "o", "", "output directory (default: darshan_parsed_<log> in current dir)")
	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	logFile := args[0]
	outDir := defaultOutputDir(parseOutput, "darshan_parsed_", logFile)

	if err := parseToWorkspace(cmd, logFile, outDir); err != nil {
		return err
	}

	fmt.Println(outDir)
	return nil
}

// parseToWorkspace runs the dump+split pipeline and writes workspace files.
// Shared between parse and analyze.
func parseToWorkspace(cmd *cobra.Command, logFile, outDir string) error {
	slog.Info("Parsing Darshan log", "log", logFile)
	dumpText, err := loadDump(cmd.Context(), logFile)
	if err != nil {
		return err
	}

	header, modules, clusters, err := splitDump(dumpText)
	if err != nil {
		return err
	}
	if len(modules) == 0 {
		return errors.Errorf("no module data found in %s", logFile)
	}
	slog.Info("Extracted modules", "modules", len(modules), "path_patterns", len(clusters))

	b := workspace.NewBuilder(outDir, header, modules, clusters)
	if err := b.BuildAll(); err != nil {
		return errors.Errorf("build workspace: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Parsed %d modules to %s\n", len(modules), outDir)
	return nil
}
