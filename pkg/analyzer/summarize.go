package analyzer

import (
	"context"
	"encoding/json"

	"github.com/cloudwego/eino-ext/components/model/openrouter"
	"github.com/cloudwego/eino/schema"
	"github.com/go-errors/errors"
	llmconfig "github.com/hpcio/darsum/pkg/config"
	"github.com/hpcio/darsum/pkg/tracing"
)

// Summarize condenses an analysis transcript into a standalone summary of
// the application's I/O behavior. This is a plain chat completion, no tools.
func Summarize(ctx context.Context, config Config, transcript []Message) (string, error) {
	if len(transcript) == 0 {
		return "", errors.Errorf("empty transcript, nothing to summarize")
	}

	config.Model = llmconfig.ResolveModel(config.Model)

	ctx, span := tracing.Tracer().Start(ctx, "darsum.summarize")
	defer span.End()

	transcriptJSON, err := json.MarshalIndent(transcript, "", "  ")
	if err != nil {
		return "", errors.Errorf("marshal transcript: %w", err)
	}

	chatModel, err := openrouter.NewChatModel(ctx, &openrouter.Config{
		APIKey:     config.APIKey,
		Model:      config.Model,
		HTTPClient: tracing.HTTPClient(nil),
	})
	if err != nil {
		return "", errors.Errorf("create chat model: %w", err)
	}

	resp, err := chatModel.Generate(ctx, []*schema.Message{
		{Role: schema.User, Content: buildSummaryPrompt(string(transcriptJSON))},
	})
	if err != nil {
		return "", errors.Errorf("generate summary: %w", err)
	}
	return resp.Content, nil
}
