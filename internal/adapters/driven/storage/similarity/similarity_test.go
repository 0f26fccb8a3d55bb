package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/profilerag/internal/core/domain"
)

func TestCosine(t *testing.T) {
	assert.InDelta(t, 1.0, Cosine([]float32{1, 0}, []float32{2, 0}), 1e-9)
	assert.InDelta(t, 0.0, Cosine([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.InDelta(t, -1.0, Cosine([]float32{1, 1}, []float32{-1, -1}), 1e-9)
	assert.Zero(t, Cosine([]float32{0, 0}, []float32{1, 1}))
}

func TestTopK(t *testing.T) {
	chunks := []domain.Chunk{
		{ID: "a", Embedding: []float32{1, 0}},
		{ID: "b", Embedding: []float32{0, 1}},
		{ID: "c", Embedding: []float32{1, 1}},
		{ID: "d", Embedding: []float32{1, 0}},
	}

	hits, err := TopK([]float32{1, 0}, chunks, 3)
	require.NoError(t, err)
	require.Len(t, hits, 3)
	assert.Equal(t, "a", hits[0].Chunk.ID)
	assert.Equal(t, "d", hits[1].Chunk.ID, "ties keep input order")
	assert.Equal(t, "c", hits[2].Chunk.ID)
	assert.Greater(t, hits[1].Similarity, hits[2].Similarity)

	all, err := TopK([]float32{1, 0}, chunks, 10)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	none, err := TopK([]float32{1, 0}, chunks, 0)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestTopK_DimensionMismatch(t *testing.T) {
	_, err := TopK([]float32{1, 0, 0}, []domain.Chunk{{Embedding: []float32{1, 0}}}, 1)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestCheckEmbeddings(t *testing.T) {
	dims, err := CheckEmbeddings([]domain.Chunk{{Embedding: []float32{1, 2}}, {Embedding: []float32{3, 4}}})
	require.NoError(t, err)
	assert.Equal(t, 2, dims)

	_, err = CheckEmbeddings([]domain.Chunk{{ID: "x"}})
	assert.ErrorContains(t, err, "chunk x has no embedding")

	_, err = CheckEmbeddings([]domain.Chunk{{Embedding: []float32{1}}, {Embedding: []float32{1, 2}}})
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	dims, err = CheckEmbeddings(nil)
	require.NoError(t, err)
	assert.Zero(t, dims)
}
