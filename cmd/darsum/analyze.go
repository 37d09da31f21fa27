package main

import (
	"fmt"
	"os"

	"github.com/go-errors/errors"
	"github.com/spf13/cobra"

	"github.com/hpcio/darsum/pkg/analyzer"
)

var (
	analyzeOutput string
	analyzeModel  string
)

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <logfile> [question]",
		Short: "Parse a Darshan log and analyze it with an AI agent",
		Long: `Convert the log into per-module tables, then use an AI agent to explore the
data and extract information useful for file system parameter tuning.
Writes analysis.json (the agent transcript) and summary.txt into the
workspace directory and prints the summary.

Requires OPENROUTER_API_KEY environment variable to be set.

Examples:
  darsum analyze app.darshan
  darsum analyze app.darshan "why is write bandwidth so low?"
  darsum analyze app.darshan -o ./results --model anthropic/claude-sonnet-4.5`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runAnalyze,
	}
	cmd.Flags().StringVarP(&analyzeOutput, "output", "o", "", "output directory (default: darshan_analysis_<log> in current dir)")
	cmd.Flags().StringVar(&analyzeModel, "model", "", "LLM model to use (default: $MODEL_NAME or anthropic/claude-sonnet-4.5)")
	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	apiKey := os.Getenv("OPENROUTER_API_KEY")
	if apiKey == "" {
		return errors.New("OPENROUTER_API_KEY environment variable is required")
	}

	logFile := args[0]
	var question string
	if len(args) > 1 {
		question = args[1]
	}

	outDir := defaultOutputDir(analyzeOutput, "darshan_analysis_", logFile)

	if err := parseToWorkspace(cmd, logFile, outDir); err != nil {
		return err
	}

	config := analyzer.Config{
		APIKey: apiKey,
		Model:  analyzeModel,
	}

	fmt.Fprintf(os.Stderr, "Analyzing workspace %s...\n", outDir)
	summary, err := analyzer.Run(cmd.Context(), config, outDir, question)
	if err != nil {
		return err
	}

	fmt.Println(summary)
	fmt.Fprintf(os.Stderr, "\nResults saved to %s (analysis.json, summary.txt)\n", outDir)
	return nil
}
