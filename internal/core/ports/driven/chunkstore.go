package driven

import (
	"context"

	"github.com/custodia-labs/profilerag/internal/core/domain"
)

// ChunkStore persists embedded chunks and answers nearest-neighbour queries.
type ChunkStore interface {
	// Name identifies the store in strategy reports (e.g. "sqlite").
	Name() string

	// Replace discards any stored chunks and stores the given ones.
	// Every chunk must carry an embedding.
	Replace(ctx context.Context, chunks []domain.Chunk) error

	// Search returns up to k chunks ordered by descending cosine similarity.
	Search(ctx context.Context, vector []float32, k int) ([]domain.ChunkHit, error)

	// Count returns the number of stored chunks.
	Count(ctx context.Context) (int, error)

	// Close releases resources.
	Close() error
}

// StoreStrategy is one named way of opening a ChunkStore.
// Strategies are attempted in configuration order during a build.
type StoreStrategy struct {
	Name string
	Open func(ctx context.Context) (ChunkStore, error)
}
