package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmbeddingService(t *testing.T) {
	_, err := NewEmbeddingService(Config{})
	assert.ErrorIs(t, err, ErrMissingAPIKey)

	s, err := NewEmbeddingService(Config{APIKey: "sk"})
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, s.ModelName())
	assert.Equal(t, 1536, s.Dimensions())
	assert.False(t, s.shortened)

	s, err = NewEmbeddingService(Config{APIKey: "sk", Model: "text-embedding-3-large", Dimensions: 256})
	require.NoError(t, err)
	assert.Equal(t, 256, s.Dimensions())
	assert.True(t, s.shortened)

	s, err = NewEmbeddingService(Config{APIKey: "sk", Model: "custom-model"})
	require.NoError(t, err)
	assert.Equal(t, 1536, s.Dimensions())
}

// echoServer returns one-hot vectors whose index encodes the input position,
// listed in reverse order to exercise index-based ordering.
func echoServer(t *testing.T, calls *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/embeddings", r.URL.Path)
		assert.Equal(t, "Bearer sk", r.Header.Get("Authorization"))

		var req embeddingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		type item struct {
			Embedding []float32 `json:"embedding"`
			Index     int       `json:"index"`
		}
		data := make([]item, 0, len(req.Input))
		for i := len(req.Input) - 1; i >= 0; i-- {
			var v float32
			_, _ = fmt.Sscanf(req.Input[i], "t%f", &v)
			data = append(data, item{Embedding: []float32{v}, Index: i})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"data": data})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestEmbedBatch_OrdersAndBatches(t *testing.T) {
	var calls atomic.Int32
	srv := echoServer(t, &calls)

	s, err := NewEmbeddingService(Config{APIKey: "sk", BaseURL: srv.URL, BatchSize: 2})
	require.NoError(t, err)

	vectors, err := s.EmbedBatch(context.Background(), []string{"t0", "t1", "t2", "t3", "t4"})
	require.NoError(t, err)
	assert.Equal(t, [][]float32{{0}, {1}, {2}, {3}, {4}}, vectors)
	assert.Equal(t, int32(3), calls.Load())
}

func TestEmbed_Single(t *testing.T) {
	var calls atomic.Int32
	srv := echoServer(t, &calls)

	s, err := NewEmbeddingService(Config{APIKey: "sk", BaseURL: srv.URL})
	require.NoError(t, err)

	v, err := s.Embed(context.Background(), "t7")
	require.NoError(t, err)
	assert.Equal(t, []float32{7}, v)
}

func TestEmbedBatch_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Incorrect API key","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	s, err := NewEmbeddingService(Config{APIKey: "sk", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = s.Embed(context.Background(), "x")
	assert.ErrorContains(t, err, "Incorrect API key")
}

func TestEmbedBatch_NonJSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	s, err := NewEmbeddingService(Config{APIKey: "sk", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = s.Embed(context.Background(), "x")
	assert.ErrorContains(t, err, "status 502")
}

func TestEmbedBatch_MissingVector(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"embedding":[1],"index":0}]}`))
	}))
	defer srv.Close()

	s, err := NewEmbeddingService(Config{APIKey: "sk", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = s.EmbedBatch(context.Background(), []string{"a", "b"})
	assert.ErrorContains(t, err, "missing embedding for input 1")
}

func TestPing(t *testing.T) {
	status := http.StatusOK
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models", r.URL.Path)
		w.WriteHeader(status)
	}))
	defer srv.Close()

	s, err := NewEmbeddingService(Config{APIKey: "sk", BaseURL: srv.URL})
	require.NoError(t, err)
	assert.NoError(t, s.Ping(context.Background()))

	status = http.StatusUnauthorized
	assert.ErrorContains(t, s.Ping(context.Background()), "status 401")
	assert.NoError(t, s.Close())
}
