package main

import (
	"fmt"
	"os"

	"github.com/go-errors/errors"
	"github.com/spf13/cobra"

	"github.com/hpcio/darsum/pkg/analyzer"
)

var questionModel string

func questionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "question <analysis-dir> <question>",
		Short: "Ask a question about a previously parsed Darshan log",
		Long: `Run the AI agent over an existing workspace directory (created by
'darsum parse' or 'darsum analyze') to answer a single question.

Requires OPENROUTER_API_KEY environment variable to be set.

Examples:
  darsum question ./darshan_analysis_app "Which files were accessed by all ranks?"`,
		Args: cobra.ExactArgs(2),
		RunE: runQuestion,
	}
	cmd.Flags().StringVar(&questionModel, "model", "", "LLM model to use (default: $MODEL_NAME or anthropic/claude-sonnet-4.5)")
	return cmd
}

func runQuestion(cmd *cobra.Command, args []string) error {
	apiKey := os.Getenv("OPENROUTER_API_KEY")
	if apiKey == "" {
		return errors.New("OPENROUTER_API_KEY environment variable is required")
	}

	workDir := args[0]
	question := args[1]

	if _, err := os.Stat(workDir); err != nil {
		return errors.Errorf("analysis directory not found: %w", err)
	}

	config := analyzer.Config{
		APIKey: apiKey,
		Model:  questionModel,
	}

	answer, err := analyzer.Question(cmd.Context(), config, workDir, question)
	if err != nil {
		return err
	}

	fmt.Println(answer)
	return nil
}
