package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/profilerag/internal/core/domain"
)

func testChunks() []domain.Chunk {
	return []domain.Chunk{
		{ID: "c1", SourceName: "Neha M", Content: "Python", Embedding: []float32{1, 0, 0}},
		{ID: "c2", SourceName: "Amee Popat", Content: "React", Embedding: []float32{0, 1, 0}},
		{ID: "c3", SourceName: "Unknown", Content: "SQL", Embedding: []float32{0, 0, 1}},
	}
}

func TestNewChunkStore(t *testing.T) {
	store := NewChunkStore()
	require.NotNil(t, store)
	assert.Equal(t, "memory", store.Name())

	n, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestStrategy(t *testing.T) {
	s := Strategy()
	assert.Equal(t, "memory", s.Name)

	store, err := s.Open(context.Background())
	require.NoError(t, err)
	assert.IsType(t, &ChunkStore{}, store)
}

func TestChunkStore_ReplaceAndSearch(t *testing.T) {
	store := NewChunkStore()
	ctx := context.Background()

	require.NoError(t, store.Replace(ctx, testChunks()))

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	hits, err := store.Search(ctx, []float32{0.1, 0.9, 0}, 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "c2", hits[0].Chunk.ID)
	assert.Equal(t, "c1", hits[1].Chunk.ID)
}

func TestChunkStore_ReplaceDiscardsPrevious(t *testing.T) {
	store := NewChunkStore()
	ctx := context.Background()

	require.NoError(t, store.Replace(ctx, testChunks()))
	require.NoError(t, store.Replace(ctx, testChunks()[:1]))

	n, _ := store.Count(ctx)
	assert.Equal(t, 1, n)
}

func TestChunkStore_ReplaceCopiesInput(t *testing.T) {
	store := NewChunkStore()
	chunks := testChunks()
	require.NoError(t, store.Replace(context.Background(), chunks))

	chunks[0].Embedding[0] = -1
	hits, err := store.Search(context.Background(), []float32{1, 0, 0}, 1)
	require.NoError(t, err)
	assert.Equal(t, "c1", hits[0].Chunk.ID)
	assert.InDelta(t, 1.0, hits[0].Similarity, 1e-9)
}

func TestChunkStore_ReplaceRejectsMissingEmbedding(t *testing.T) {
	store := NewChunkStore()
	err := store.Replace(context.Background(), []domain.Chunk{{ID: "x"}})
	assert.ErrorContains(t, err, "has no embedding")
}

func TestChunkStore_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := NewChunkStore()
	assert.ErrorIs(t, store.Replace(ctx, testChunks()), context.Canceled)
	_, err := store.Search(ctx, []float32{1, 0, 0}, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestChunkStore_Close(t *testing.T) {
	store := NewChunkStore()
	require.NoError(t, store.Replace(context.Background(), testChunks()))
	require.NoError(t, store.Close())

	n, _ := store.Count(context.Background())
	assert.Zero(t, n)
}

func TestChunkStore_ConcurrentAccess(t *testing.T) {
	store := NewChunkStore()
	ctx := context.Background()
	require.NoError(t, store.Replace(ctx, testChunks()))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = store.Search(ctx, []float32{1, 0, 0}, 3)
		}()
		go func() {
			defer wg.Done()
			_ = store.Replace(ctx, testChunks())
		}()
	}
	wg.Wait()

	n, _ := store.Count(ctx)
	assert.Equal(t, 3, n)
}
