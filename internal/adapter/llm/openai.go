// Package llm adapts third-party completion APIs to a single
// Complete(system, prompt) call.
package llm

import (
	"context"
	"fmt"
	"log/slog"

	openai "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/openai/openai-go/v2/shared"

	"github.com/Redbeardred/Oberyn-v0.2/internal/config"
)

const defaultOpenAIModel = "gpt-3.5-turbo"

// OpenAI completes prompts with the chat completions API.
type OpenAI struct {
	client      openai.Client
	model       string
	temperature float64
	maxTokens   int64
	log         *slog.Logger
}

// NewOpenAI creates an OpenAI completer. A custom base URL allows
// OpenAI-compatible servers.
func NewOpenAI(cfg config.LLMConfig, logger *slog.Logger) *OpenAI {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	model := cfg.Model
	if model == "" {
		model = defaultOpenAIModel
	}

	return &OpenAI{
		client:      openai.NewClient(opts...),
		model:       model,
		temperature: cfg.Temperature,
		maxTokens:   int64(cfg.MaxTokens),
		log:         logger.With("adapter", "openai"),
	}
}

// Complete sends a system and a user message and returns the first choice.
func (o *OpenAI) Complete(ctx context.Context, system, prompt string) (string, error) {
	completion, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(prompt),
		},
		Model:       shared.ChatModel(o.model),
		Temperature: openai.Float(o.temperature),
		MaxTokens:   openai.Int(o.maxTokens),
	})
	if err != nil {
		return "", fmt.Errorf("openai: chat completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("openai: empty response")
	}

	o.log.DebugContext(ctx, "completion received",
		slog.String("model", completion.Model),
		slog.Int64("total_tokens", completion.Usage.TotalTokens),
	)
	return completion.Choices[0].Message.Content, nil
}
