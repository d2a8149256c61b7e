// Package llm holds language model adapters. Each adapter turns a prompt into
// the text content of a single model reply.
package llm

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/myvocab-backend/internal/config"
	"github.com/heartmarshall/myvocab-backend/internal/provider"
)

// Completer sends one prompt and returns the reply content.
// Protocol-level provider failures wrap provider.ErrUnexpectedResponse.
type Completer interface {
	Complete(ctx context.Context, prompt string, params provider.CompletionParams) (string, error)
}

// New returns the adapter selected by cfg.Provider. Construction never fails
// on missing credentials; callers check cfg.IsConfigured before use.
func New(cfg config.LLMConfig, logger *slog.Logger) Completer {
	switch cfg.Provider {
	case config.ProviderAnthropic:
		return NewAnthropicClient(cfg, logger)
	default:
		return NewOpenAIClient(cfg, logger)
	}
}
