package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/profilerag/internal/core/domain"
	"github.com/custodia-labs/profilerag/internal/logger"
)

// Retriever returns the chunks most similar to a text.
type Retriever interface {
	Query(ctx context.Context, text string, k int) ([]domain.Chunk, error)
}

// Composer turns a question into an answer:
// received, retrieving, generating, extracting (evidence-seeking
// questions only), composed.
type Composer struct {
	retriever Retriever
	generator *Generator
	extractor *EvidenceExtractor
	topK      int
}

// NewComposer creates a composer. generator may be nil, in which case
// every answer uses the fallback path.
func NewComposer(retriever Retriever, generator *Generator, extractor *EvidenceExtractor, topK int) *Composer {
	if extractor == nil {
		extractor = NewEvidenceExtractor()
	}
	if topK <= 0 {
		topK = domain.DefaultTopK
	}
	return &Composer{
		retriever: retriever,
		generator: generator,
		extractor: extractor,
		topK:      topK,
	}
}

// Compose answers the question. profiles is the raw collection used for
// evidence extraction; it is only read.
func (c *Composer) Compose(ctx context.Context, question string, profiles []domain.Profile) (*domain.Answer, error) {
	logger.Section("Answer")

	q := strings.TrimSpace(question)
	if q == "" {
		return nil, fmt.Errorf("%w: question is empty", domain.ErrValidation)
	}
	answer := &domain.Answer{Question: q, States: []domain.QueryState{domain.StateReceived}}

	answer.States = append(answer.States, domain.StateRetrieving)
	chunks, err := c.retriever.Query(ctx, q, c.topK)
	if err != nil {
		return nil, fmt.Errorf("retrieve: %w", err)
	}
	answer.Context = chunks
	logger.Debug("Retrieved %d chunks", len(chunks))

	answer.States = append(answer.States, domain.StateGenerating)
	answer.Generation = c.generate(ctx, q, joinChunks(chunks), profiles, answer)
	logger.Debug("Generation kind: %s", answer.Generation.Kind)

	if IsEvidenceSeeking(q) {
		answer.States = append(answer.States, domain.StateExtracting)
		answer.Evidence = c.extractor.AnalyzeQuestion(q, profiles)
		logger.Debug("Evidence terms: %d", len(answer.Evidence))
	}

	answer.States = append(answer.States, domain.StateComposed)
	if answer.Evidence.IsEmpty() {
		answer.Text = answer.Generation.Text
	} else {
		answer.Text = RenderEvidence(answer.Evidence) + "\n" + answer.Generation.Text
	}
	return answer, nil
}

// generate picks the generated or fallback variant by capability.
// A failing language model degrades to the fallback and records a warning.
func (c *Composer) generate(
	ctx context.Context,
	question, contextText string,
	profiles []domain.Profile,
	answer *domain.Answer,
) domain.Generation {
	if c.generator.Capable() {
		text, err := c.generator.Generate(ctx, question, contextText)
		if err == nil {
			return domain.Generated(text)
		}
		logger.Warn("Generation failed, using fallback: %v", err)
		answer.Warnings = append(answer.Warnings, fmt.Sprintf("generation failed: %v", err))
	}
	return domain.Fallback(FallbackText(c.extractor.AnalyzeQuestion(question, profiles)))
}

// IsEvidenceSeeking reports whether the question asks who has a skill.
func IsEvidenceSeeking(question string) bool {
	q := strings.ToLower(question)
	for _, trigger := range domain.EvidenceTriggers {
		if strings.Contains(q, trigger) {
			return true
		}
	}
	return false
}

func joinChunks(chunks []domain.Chunk) string {
	parts := make([]string, len(chunks))
	for i, c := range chunks {
		parts[i] = c.Content
	}
	return strings.Join(parts, "\n\n")
}
