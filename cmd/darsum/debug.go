package main

import (
	"fmt"
	"os"

	"github.com/go-errors/errors"
	"github.com/spf13/cobra"

	"github.com/hpcio/darsum/pkg/analyzer"
)

func debugCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "debug",
		Short: "Debugging utilities for development",
	}

	cmd.AddCommand(debugDumpCmd())
	cmd.AddCommand(debugRunCmd())
	return cmd
}

func debugDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump <logfile>",
		Short: "Print the raw darshan-parser text dump",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dumpText, err := loadDump(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Print(dumpText)
			return nil
		},
	}
}

var debugRunModel string

func debugRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <workspace-dir> [question]",
		Short: "Run the AI agent on an existing workspace directory",
		Long: `Run the agent analysis on a previously created workspace directory
without re-parsing the log.

Requires OPENROUTER_API_KEY environment variable to be set.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runDebugRun,
	}
	cmd.Flags().StringVar(&debugRunModel, "model", "", "LLM model to use (default: $MODEL_NAME or anthropic/claude-sonnet-4.5)")
	return cmd
}

func runDebugRun(cmd *cobra.Command, args []string) error {
	apiKey := os.Getenv("OPENROUTER_API_KEY")
	if apiKey == "" {
		return errors.New("OPENROUTER_API_KEY environment variable is required")
	}

	workDir := args[0]
	var question string
	if len(args) > 1 {
		question = args[1]
	}

	if _, err := os.Stat(workDir); err != nil {
		return errors.Errorf("workspace directory does not exist: %w", err)
	}

	config := analyzer.Config{
		APIKey: apiKey,
		Model:  debugRunModel,
	}

	fmt.Fprintf(os.Stderr, "Running agent on workspace: %s\n", workDir)
	summary, err := analyzer.Run(cmd.Context(), config, workDir, question)
	if err != nil {
		return err
	}

	fmt.Println(summary)
	return nil
}
