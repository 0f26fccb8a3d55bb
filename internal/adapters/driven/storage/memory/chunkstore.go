// Package memory provides in-process implementations of driven ports.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/custodia-labs/profilerag/internal/adapters/driven/storage/similarity"
	"github.com/custodia-labs/profilerag/internal/core/domain"
	"github.com/custodia-labs/profilerag/internal/core/ports/driven"
)

// Ensure ChunkStore implements the interface.
var _ driven.ChunkStore = (*ChunkStore)(nil)

// StoreName identifies the memory store in strategy reports.
const StoreName = "memory"

// ChunkStore is an in-memory implementation of driven.ChunkStore.
// Contents are lost when the process exits.
type ChunkStore struct {
	mu     sync.RWMutex
	chunks []domain.Chunk
}

// NewChunkStore creates a new in-memory chunk store.
func NewChunkStore() *ChunkStore {
	return &ChunkStore{}
}

// Strategy returns a store strategy that always opens a fresh memory store.
func Strategy() driven.StoreStrategy {
	return driven.StoreStrategy{
		Name: StoreName,
		Open: func(context.Context) (driven.ChunkStore, error) {
			return NewChunkStore(), nil
		},
	}
}

// Name returns the store name.
func (s *ChunkStore) Name() string {
	return StoreName
}

// Replace discards stored chunks and stores copies of the given ones.
func (s *ChunkStore) Replace(ctx context.Context, chunks []domain.Chunk) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := similarity.CheckEmbeddings(chunks); err != nil {
		return fmt.Errorf("memory: %w", err)
	}

	copied := make([]domain.Chunk, len(chunks))
	for i, c := range chunks {
		c.Embedding = slices.Clone(c.Embedding)
		copied[i] = c
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks = copied
	return nil
}

// Search returns up to k chunks ordered by descending cosine similarity.
func (s *ChunkStore) Search(ctx context.Context, vector []float32, k int) ([]domain.ChunkHit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return similarity.TopK(vector, s.chunks, k)
}

// Count returns the number of stored chunks.
func (s *ChunkStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chunks), nil
}

// Close drops the stored chunks.
func (s *ChunkStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks = nil
	return nil
}
