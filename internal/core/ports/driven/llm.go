package driven

import "context"

// LLMService writes answer text from a rendered prompt. It is optional:
// with no reachable model the composer answers from skill evidence alone.
type LLMService interface {
	// Generate returns the completion for prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// ModelName is reported by status.
	ModelName() string

	// Ping makes the cheapest request that proves the model can answer.
	// Backend selection uses it to skip unreachable providers.
	Ping(ctx context.Context) error

	Close() error
}

// GenerateOptions tunes a single completion. A zero MaxTokens leaves the
// provider limit in place; Temperature is always sent.
type GenerateOptions struct {
	MaxTokens   int
	Temperature float64
	StopWords   []string
}
