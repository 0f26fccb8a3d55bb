package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

func newService(t *testing.T, handler http.HandlerFunc) *EmbeddingService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	s, err := NewEmbeddingService(context.Background(), Config{
		APIKey:  "test-key",
		Options: []option.ClientOption{option.WithEndpoint(srv.URL)},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestNewEmbeddingService_MissingKey(t *testing.T) {
	_, err := NewEmbeddingService(context.Background(), Config{})
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestEmbed(t *testing.T) {
	s := newService(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"embedding": map[string]any{"values": []float32{0.1, 0.2, 0.3}},
		})
	})

	assert.Equal(t, DefaultModel, s.ModelName())
	assert.Equal(t, 3072, s.Dimensions())

	vec, err := s.Embed(context.Background(), "python developer")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vec)
}

func TestEmbed_Empty(t *testing.T) {
	s := newService(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"embedding":{"values":[]}}`))
	})

	_, err := s.Embed(context.Background(), "x")
	assert.ErrorContains(t, err, "empty embedding")
}

func TestEmbedBatch(t *testing.T) {
	s := newService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, ":batchEmbedContents"), r.URL.Path)
		var req struct {
			Requests []json.RawMessage `json:"requests"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		embeddings := make([]map[string]any, len(req.Requests))
		for i := range req.Requests {
			embeddings[i] = map[string]any{"values": []float32{float32(i + 1)}}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"embeddings": embeddings})
	})

	vectors, err := s.EmbedBatch(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, [][]float32{{1}, {2}}, vectors)

	none, err := s.EmbedBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, none)
}
