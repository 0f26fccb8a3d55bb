// Package gemini provides an embedding service adapter for the Google Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/custodia-labs/profilerag/internal/core/domain"
	"github.com/custodia-labs/profilerag/internal/core/ports/driven"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// Default configuration values.
const (
	DefaultModel     = "gemini-embedding-001"
	DefaultBatchSize = 100
)

// ErrMissingAPIKey is returned when no API key is configured.
var ErrMissingAPIKey = errors.New("gemini: API key is required")

// Config holds configuration for the Gemini embedding service.
type Config struct {
	// APIKey is the Gemini API key (required).
	APIKey string

	// Model is the embedding model to use (default: gemini-embedding-001).
	Model string

	// BatchSize caps contents per batch request (default: 100).
	BatchSize int

	// Options are extra client options, such as a custom endpoint.
	Options []option.ClientOption
}

// EmbeddingService generates embeddings using the Gemini API.
type EmbeddingService struct {
	client     *genai.Client
	model      *genai.EmbeddingModel
	name       string
	dimensions int
	batchSize  int
}

// NewEmbeddingService creates a client for the configured model.
func NewEmbeddingService(ctx context.Context, cfg Config) (*EmbeddingService, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}

	opts := append([]option.ClientOption{option.WithAPIKey(cfg.APIKey)}, cfg.Options...)
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	model := client.EmbeddingModel(cfg.Model)
	model.TaskType = genai.TaskTypeRetrievalDocument

	return &EmbeddingService{
		client:     client,
		model:      model,
		name:       cfg.Model,
		dimensions: domain.EmbeddingDimensions()[cfg.Model],
		batchSize:  cfg.BatchSize,
	}, nil
}

// Embed generates a vector embedding for the given text.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	res, err := s.model.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("gemini: embed: %w", err)
	}
	if res.Embedding == nil || len(res.Embedding.Values) == 0 {
		return nil, errors.New("gemini: empty embedding received")
	}
	s.observe(res.Embedding.Values)
	return res.Embedding.Values, nil
}

// EmbedBatch embeds texts with batchEmbedContents, preserving input order.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	out := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += s.batchSize {
		end := min(start+s.batchSize, len(texts))

		batch := s.model.NewBatch()
		for _, text := range texts[start:end] {
			batch.AddContent(genai.Text(text))
		}

		res, err := s.model.BatchEmbedContents(ctx, batch)
		if err != nil {
			return nil, fmt.Errorf("gemini: embed batch %d-%d: %w", start, end, err)
		}
		if len(res.Embeddings) != end-start {
			return nil, fmt.Errorf("gemini: got %d embeddings for %d inputs", len(res.Embeddings), end-start)
		}
		for i, e := range res.Embeddings {
			if e == nil || len(e.Values) == 0 {
				return nil, fmt.Errorf("gemini: empty embedding for input %d", start+i)
			}
			out = append(out, e.Values)
		}
	}
	s.observe(out[0])
	return out, nil
}

// observe records the vector size for models missing from the known table.
func (s *EmbeddingService) observe(v []float32) {
	if s.dimensions == 0 {
		s.dimensions = len(v)
	}
}

// Dimensions returns the embedding vector size, or 0 for an unknown model
// that has not produced a vector yet.
func (s *EmbeddingService) Dimensions() int {
	return s.dimensions
}

// ModelName returns the name of the embedding model being used.
func (s *EmbeddingService) ModelName() string {
	return s.name
}

// Ping validates the key and model by fetching the model metadata.
func (s *EmbeddingService) Ping(ctx context.Context) error {
	if _, err := s.model.Info(ctx); err != nil {
		return fmt.Errorf("gemini: ping failed: %w", err)
	}
	return nil
}

// Close releases the underlying client.
func (s *EmbeddingService) Close() error {
	return s.client.Close()
}
