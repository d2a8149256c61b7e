package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/heartmarshall/myvocab-backend/internal/config"
	"github.com/heartmarshall/myvocab-backend/internal/provider"
)

// OpenAIClient completes prompts against an OpenAI-compatible chat completions
// endpoint, e.g. Azure AI inference (POST {endpoint}/chat/completions).
type OpenAIClient struct {
	client *openai.Client
	model  string
	log    *slog.Logger
}

// NewOpenAIClient creates a client for the configured endpoint and model.
func NewOpenAIClient(cfg config.LLMConfig, logger *slog.Logger) *OpenAIClient {
	oc := openai.DefaultConfig(cfg.APIKey)
	oc.BaseURL = strings.TrimRight(cfg.Endpoint, "/")
	oc.HTTPClient = &http.Client{
		Timeout:   cfg.Timeout,
		Transport: &apiKeyTransport{key: cfg.APIKey, base: http.DefaultTransport},
	}

	return &OpenAIClient{
		client: openai.NewClientWithConfig(oc),
		model:  cfg.Model,
		log:    logger.With("adapter", "openai"),
	}
}

// Complete sends prompt as the user message. An empty reply (no choices)
// is returned as empty content, not as an error.
func (c *OpenAIClient) Complete(ctx context.Context, prompt string, params provider.CompletionParams) (string, error) {
	var messages []openai.ChatCompletionMessage
	if params.SystemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: params.SystemPrompt,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt,
	})

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: float32(params.Temperature),
		TopP:        float32(params.TopP),
	})
	if err != nil {
		var apiErr *openai.APIError
		var reqErr *openai.RequestError
		if errors.As(err, &apiErr) || errors.As(err, &reqErr) {
			return "", fmt.Errorf("%w: %v", provider.ErrUnexpectedResponse, err)
		}
		return "", fmt.Errorf("llm: chat completion: %w", err)
	}

	c.log.DebugContext(ctx, "chat completion",
		slog.String("model", resp.Model),
		slog.Int("choices", len(resp.Choices)),
		slog.Int("total_tokens", resp.Usage.TotalTokens),
	)

	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

// apiKeyTransport adds the Azure "api-key" header next to the bearer token
// set by the openai client; Azure endpoints accept either.
type apiKeyTransport struct {
	key  string
	base http.RoundTripper
}

func (t *apiKeyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.Header.Set("api-key", t.key)
	return t.base.RoundTrip(r)
}
