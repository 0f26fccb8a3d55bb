package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/profilerag/internal/core/domain"
	"github.com/custodia-labs/profilerag/internal/core/ports/driven"
	"github.com/custodia-labs/profilerag/internal/logger"
)

// Ensure Generator accepts custom prompts.
var _ driven.PromptStoreAware = (*Generator)(nil)

// Generator renders the answer prompt and calls the language model.
// A Generator without an LLM is not capable and callers must use the
// fallback path instead of calling Generate.
type Generator struct {
	llm     driven.LLMService
	prompts driven.PromptStore
	opts    driven.GenerateOptions
}

// NewGenerator creates a generator. llm may be nil.
func NewGenerator(llm driven.LLMService) *Generator {
	return &Generator{
		llm:  llm,
		opts: driven.GenerateOptions{MaxTokens: 1024, Temperature: 0.1},
	}
}

// SetPromptStore sets the prompt store for loading the answer template.
func (g *Generator) SetPromptStore(store driven.PromptStore) {
	g.prompts = store
}

// Capable reports whether a language model is available.
func (g *Generator) Capable() bool {
	return g != nil && g.llm != nil
}

// ModelName returns the LLM model name, or "" when not capable.
func (g *Generator) ModelName() string {
	if !g.Capable() {
		return ""
	}
	return g.llm.ModelName()
}

// Generate answers the question grounded on the retrieved context.
func (g *Generator) Generate(ctx context.Context, question, contextText string) (string, error) {
	if !g.Capable() {
		return "", domain.ErrLLMUnavailable
	}

	prompt := RenderPrompt(g.template(), contextText, question)
	logger.Debug("Prompt: %d chars, model=%s", len(prompt), g.llm.ModelName())

	text, err := g.llm.Generate(ctx, prompt, g.opts)
	if err != nil {
		if errors.Is(err, domain.ErrBackendUnavailable) {
			return "", err
		}
		return "", fmt.Errorf("%w: %w", domain.ErrLLMUnavailable, err)
	}
	return strings.TrimSpace(text), nil
}

func (g *Generator) template() string {
	if g.prompts == nil {
		return domain.DefaultAnswerPrompt
	}
	tmpl, err := g.prompts.Load(driven.PromptAnswer)
	if err != nil || tmpl == "" {
		logger.Warn("Answer prompt unavailable, using built-in: %v", err)
		return domain.DefaultAnswerPrompt
	}
	return tmpl
}

// RenderPrompt binds {context} and {question} in a template.
func RenderPrompt(template, contextText, question string) string {
	return strings.NewReplacer("{context}", contextText, "{question}", question).Replace(template)
}
