package local

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cosine(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

func TestNewEmbeddingService(t *testing.T) {
	s := NewEmbeddingService(0)
	assert.Equal(t, DefaultDimensions, s.Dimensions())
	assert.Equal(t, "hashing-384", s.ModelName())
	assert.NoError(t, s.Ping(context.Background()))
	assert.NoError(t, s.Close())

	assert.Equal(t, "hashing-64", NewEmbeddingService(64).ModelName())
}

func TestEmbed_Deterministic(t *testing.T) {
	s := NewEmbeddingService(0)
	ctx := context.Background()

	a, err := s.Embed(ctx, "Python developer with Django experience")
	require.NoError(t, err)
	b, err := NewEmbeddingService(0).Embed(ctx, "Python developer with Django experience")
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Len(t, a, DefaultDimensions)
}

func TestEmbed_Normalised(t *testing.T) {
	v, err := NewEmbeddingService(0).Embed(context.Background(), "react frontend engineer")
	require.NoError(t, err)

	var norm float64
	for _, x := range v {
		norm += float64(x) * float64(x)
	}
	assert.InDelta(t, 1.0, norm, 1e-5)
}

func TestEmbed_EmptyAndStopwords(t *testing.T) {
	s := NewEmbeddingService(32)
	for _, text := range []string{"", "   ", "the and of", "!!!"} {
		v, err := s.Embed(context.Background(), text)
		require.NoError(t, err)
		assert.Equal(t, make([]float32, 32), v, "text %q", text)
	}
}

func TestEmbed_SimilarityOrdering(t *testing.T) {
	s := NewEmbeddingService(0)
	ctx := context.Background()

	query, _ := s.Embed(ctx, "Who has Python skills?")
	python, _ := s.Embed(ctx, "Name: Neha M\nAbout: Python developer building data pipelines in Python")
	react, _ := s.Embed(ctx, "Name: Amee Popat\nAbout: React and TypeScript frontend work")

	assert.Greater(t, cosine(query, python), cosine(query, react))
}

func TestEmbed_CaseInsensitive(t *testing.T) {
	s := NewEmbeddingService(0)
	a, _ := s.Embed(context.Background(), "Machine Learning")
	b, _ := s.Embed(context.Background(), "machine learning")
	assert.Equal(t, a, b)
}

func TestEmbedBatch(t *testing.T) {
	s := NewEmbeddingService(0)
	vectors, err := s.EmbedBatch(context.Background(), []string{"sql", "java"})
	require.NoError(t, err)
	require.Len(t, vectors, 2)

	single, _ := s.Embed(context.Background(), "java")
	assert.Equal(t, single, vectors[1])
}

func TestEmbed_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewEmbeddingService(0).Embed(ctx, "x")
	assert.ErrorIs(t, err, context.Canceled)

	_, err = NewEmbeddingService(0).EmbedBatch(ctx, []string{"x"})
	assert.ErrorIs(t, err, context.Canceled)
}
