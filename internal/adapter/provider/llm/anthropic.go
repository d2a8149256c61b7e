package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/heartmarshall/myvocab-backend/internal/config"
	"github.com/heartmarshall/myvocab-backend/internal/provider"
)

const anthropicMaxTokens = 2048

// AnthropicClient completes prompts with the Anthropic Messages API.
type AnthropicClient struct {
	client anthropic.Client
	model  string
	log    *slog.Logger
}

// NewAnthropicClient creates a client for the configured endpoint and model.
// SDK retries are disabled; a failed call is reported to the caller at once.
func NewAnthropicClient(cfg config.LLMConfig, logger *slog.Logger) *AnthropicClient {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(cfg.Timeout),
	}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithBaseURL(cfg.Endpoint))
	}

	return &AnthropicClient{
		client: anthropic.NewClient(opts...),
		model:  cfg.Model,
		log:    logger.With("adapter", "anthropic"),
	}
}

// Complete sends prompt as a single user message. Only temperature is sent:
// current models reject temperature and top_p together.
func (c *AnthropicClient) Complete(ctx context.Context, prompt string, params provider.CompletionParams) (string, error) {
	msgParams := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: anthropicMaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
		Temperature: anthropic.Float(params.Temperature),
	}
	if params.SystemPrompt != "" {
		msgParams.System = []anthropic.TextBlockParam{{Text: params.SystemPrompt}}
	}

	msg, err := c.client.Messages.New(ctx, msgParams)
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("%w: %v", provider.ErrUnexpectedResponse, err)
		}
		return "", fmt.Errorf("llm: anthropic messages: %w", err)
	}

	c.log.DebugContext(ctx, "anthropic message",
		slog.String("model", string(msg.Model)),
		slog.String("stop_reason", string(msg.StopReason)),
	)

	for _, block := range msg.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", nil
}
