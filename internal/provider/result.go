package provider

import "errors"

// ErrUnexpectedResponse is wrapped by LLM adapters when the provider answers
// with a protocol-level error (non-2xx status or an API error body).
// Transport failures (network, timeout, cancellation) are not wrapped with it.
var ErrUnexpectedResponse = errors.New("unexpected response from llm provider")

// CompletionParams are the sampling parameters for a single completion.
type CompletionParams struct {
	SystemPrompt string
	Temperature  float64
	TopP         float64
}

// DictionaryResult is the pronunciation data extracted from a dictionary provider.
type DictionaryResult struct {
	Word     string
	Phonetic string
	AudioURL string
}
