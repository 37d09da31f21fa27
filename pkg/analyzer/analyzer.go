// Package analyzer drives an LLM code-execution agent over a parsed Darshan
// workspace. It configures and invokes the eino ADK runtime; all tool-calling,
// file access, and execution behavior belongs to that runtime.
package analyzer

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/cloudwego/eino-ext/adk/backend/local"
	"github.com/cloudwego/eino-ext/components/model/openrouter"
	"github.com/cloudwego/eino/adk"
	fsmw "github.com/cloudwego/eino/adk/middlewares/filesystem"
	"github.com/go-errors/errors"
	llmconfig "github.com/hpcio/darsum/pkg/config"
	"github.com/hpcio/darsum/pkg/tracing"
	"github.com/hpcio/darsum/pkg/workspace"
)

const maxIterations = 25

// Config holds configuration for the analyzer.
type Config struct {
	APIKey string
	Model  string
}

// Message is one entry of the agent conversation transcript.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Run executes the full analysis: agent exploration of the workspace,
// transcript persistence to analysis.json, then a summarization pass
// persisted to summary.txt. Returns the summary text.
func Run(ctx context.Context, config Config, workDir, question string) (string, error) {
	transcript, err := Analyze(ctx, config, workDir, question)
	if err != nil {
		return "", err
	}

	analysisPath := filepath.Join(workDir, "analysis.json")
	data, err := json.MarshalIndent(transcript, "", "  ")
	if err != nil {
		return "", errors.Errorf("marshal transcript: %w", err)
	}
	if err := os.WriteFile(analysisPath, data, 0o644); err != nil {
		return "", errors.Errorf("write analysis.json: %w", err)
	}

	summary, err := Summarize(ctx, config, transcript)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(workDir, "summary.txt"), []byte(summary), 0o644); err != nil {
		return "", errors.Errorf("write summary.txt: %w", err)
	}

	return summary, nil
}

// Analyze runs the analysis agent over a parsed workspace and returns the
// conversation transcript.
func Analyze(ctx context.Context, config Config, workDir, question string) ([]Message, error) {
	modules, err := workspace.ListModules(workDir)
	if err != nil {
		return nil, errors.Errorf("list modules: %w", err)
	}
	if len(modules) == 0 {
		return nil, errors.Errorf("no module CSV files in %s, run parse first", workDir)
	}

	userMessage := buildAnalysisPrompt(modules, question)
	return runAgent(ctx, config, workDir, modules, userMessage)
}

// Question runs the agent over an existing workspace to answer a single
// question, and returns the final assistant answer.
func Question(ctx context.Context, config Config, workDir, question string) (string, error) {
	modules, err := workspace.ListModules(workDir)
	if err != nil {
		return "", errors.Errorf("list modules: %w", err)
	}
	if len(modules) == 0 {
		return "", errors.Errorf("no module CSV files in %s, run parse first", workDir)
	}

	transcript, err := runAgent(ctx, config, workDir, modules, buildQAPrompt(question))
	if err != nil {
		return "", err
	}

	for i := len(transcript) - 1; i >= 0; i-- {
		if transcript[i].Role == "assistant" && transcript[i].Content != "" {
			return transcript[i].Content, nil
		}
	}
	return "", errors.Errorf("agent produced no answer")
}

func runAgent(ctx context.Context, config Config, workDir string, modules []string, userMessage string) ([]Message, error) {
	config.Model = llmconfig.ResolveModel(config.Model)

	absDir, err := filepath.Abs(workDir)
	if err != nil {
		return nil, errors.Errorf("resolve workspace dir: %w", err)
	}

	ctx, span := tracing.Tracer().Start(ctx, "darsum.agent")
	defer span.End()

	// Preflight check: verify API key works before burning agent iterations.
	if err := preflightCheck(config); err != nil {
		return nil, err
	}

	// Create OpenRouter chat model with fixup transport to patch eino tool message bug
	chatModel, err := openrouter.NewChatModel(ctx, &openrouter.Config{
		APIKey:     config.APIKey,
		Model:      config.Model,
		HTTPClient: tracing.HTTPClient(&fixupRoundTripper{base: http.DefaultTransport}),
	})
	if err != nil {
		return nil, errors.Errorf("create chat model: %w", err)
	}

	// Local filesystem backend scoped to the workspace; the agent reads the
	// CSVs and descriptions through it and can run code for aggregation.
	backend, err := local.NewBackend(ctx, &local.Config{})
	if err != nil {
		return nil, errors.Errorf("create local backend: %w", err)
	}

	fsMiddleware, err := fsmw.NewMiddleware(ctx, &fsmw.Config{
		Backend: backend,
	})
	if err != nil {
		return nil, errors.Errorf("create filesystem middleware: %w", err)
	}

	agent, err := adk.NewChatModelAgent(ctx, &adk.ChatModelAgentConfig{
		Name:          "darshan-analyzer",
		Description:   "Analyzes Darshan I/O profiles to extract file system tuning insights",
		Instruction:   buildSystemPrompt(absDir, modules),
		Model:         chatModel,
		Middlewares:   []adk.AgentMiddleware{fsMiddleware},
		MaxIterations: maxIterations,
	})
	if err != nil {
		return nil, errors.Errorf("create agent: %w", err)
	}

	runner := adk.NewRunner(ctx, adk.RunnerConfig{
		Agent: agent,
	})

	iter := runner.Query(ctx, userMessage)

	transcript := []Message{{Role: "user", Content: userMessage}}
	for {
		event, ok := iter.Next()
		if !ok {
			break
		}
		if event.Err != nil {
			return nil, errors.Errorf("agent error: %w", event.Err)
		}
		msg, _, err := adk.GetMessage(event)
		if err != nil {
			continue
		}
		if msg != nil && msg.Content != "" {
			transcript = append(transcript, Message{Role: string(msg.Role), Content: msg.Content})
		}
	}

	return transcript, nil
}

// preflightCheck does a quick API call to verify the key works.
func preflightCheck(config Config) error {
	apiURL := "https://openrouter.ai/api/v1/models"
	req, err := http.NewRequest("GET", apiURL, nil)
	if err != nil {
		return errors.Errorf("preflight: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+config.APIKey)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return errors.Errorf("preflight: cannot reach OpenRouter: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return errors.Errorf("API error (HTTP %d) from OpenRouter: %s", resp.StatusCode, string(body))
	}
	return nil
}
