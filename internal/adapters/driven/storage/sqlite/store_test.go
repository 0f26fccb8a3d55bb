package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/profilerag/internal/core/domain"
)

// setupTestStore creates a SQLite store in a temporary directory.
func setupTestStore(t *testing.T) (*Store, string) {
	t.Helper()

	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return store, dir
}

func testChunks() []domain.Chunk {
	return []domain.Chunk{
		{
			ID: "c1", DocumentID: "d1", SourceName: "Neha M", SourceURL: "https://linkedin.com/in/neha",
			Content: "Python developer", Position: 0, Embedding: []float32{1, 0, 0},
		},
		{
			ID: "c2", DocumentID: "d2", SourceName: "Amee Popat", SourceURL: "https://linkedin.com/in/amee",
			Content: "React engineer", Position: 0, Embedding: []float32{0, 1, 0},
		},
		{
			ID: "c3", DocumentID: "d2", SourceName: "Amee Popat", SourceURL: "https://linkedin.com/in/amee",
			Content: "SQL coursework", Position: 1, Embedding: []float32{0, 0.6, 0.8},
		},
	}
}

func TestNewStore(t *testing.T) {
	store, dir := setupTestStore(t)

	assert.Equal(t, "sqlite", store.Name())
	assert.Equal(t, filepath.Join(dir, "index.db"), store.Path())
	assert.FileExists(t, store.Path())

	n, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestNewStore_MigrationsRecorded(t *testing.T) {
	store, dir := setupTestStore(t)

	var version int
	require.NoError(t, store.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version))
	assert.Equal(t, 1, version)
	require.NoError(t, store.Close())

	// Reopening does not re-run applied migrations.
	again, err := NewStore(dir)
	require.NoError(t, err)
	defer again.Close()

	var rows int
	require.NoError(t, again.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&rows))
	assert.Equal(t, 1, rows)
}

func TestStore_ReplaceAndSearch(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Replace(ctx, testChunks()))

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	dims, err := store.Dimensions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, dims)

	hits, err := store.Search(ctx, []float32{0, 0, 1}, 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)

	top := hits[0].Chunk
	assert.Equal(t, "c3", top.ID)
	assert.Equal(t, "d2", top.DocumentID)
	assert.Equal(t, "Amee Popat", top.SourceName)
	assert.Equal(t, "https://linkedin.com/in/amee", top.SourceURL)
	assert.Equal(t, "SQL coursework", top.Content)
	assert.Equal(t, 1, top.Position)
	assert.Equal(t, []float32{0, 0.6, 0.8}, top.Embedding)
	assert.InDelta(t, 0.8, hits[0].Similarity, 1e-6)
}

func TestStore_ReplaceDiscardsPrevious(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Replace(ctx, testChunks()))
	require.NoError(t, store.Replace(ctx, testChunks()[:1]))

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestStore_ReplaceRejectsBadEmbeddings(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Replace(ctx, testChunks()))

	err := store.Replace(ctx, []domain.Chunk{{ID: "x", Content: "no vector"}})
	require.Error(t, err)

	// The failed replace leaves the previous contents untouched.
	n, _ := store.Count(ctx)
	assert.Equal(t, 3, n)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	store, dir := setupTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Replace(ctx, testChunks()))
	require.NoError(t, store.Close())

	reopened, err := NewStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	hits, err := reopened.Search(ctx, []float32{1, 0, 0}, 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "c1", hits[0].Chunk.ID)
}

func TestStore_SearchDimensionMismatch(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Replace(ctx, testChunks()))

	_, err := store.Search(ctx, []float32{1, 0}, 1)
	assert.ErrorContains(t, err, "dimension mismatch")
}

func TestStore_DimensionsEmpty(t *testing.T) {
	store, _ := setupTestStore(t)
	dims, err := store.Dimensions(context.Background())
	require.NoError(t, err)
	assert.Zero(t, dims)
}

func TestStrategy(t *testing.T) {
	dir := t.TempDir()
	s := Strategy(dir)
	assert.Equal(t, "sqlite", s.Name)

	store, err := s.Open(context.Background())
	require.NoError(t, err)
	defer store.Close()
	assert.FileExists(t, filepath.Join(dir, "index.db"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Open(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFloat32Conversion(t *testing.T) {
	original := []float32{1.5, -2.25, 0, 3.14159}
	assert.Equal(t, original, bytesToFloat32Slice(float32SliceToBytes(original)))
	assert.Nil(t, float32SliceToBytes(nil))
	assert.Nil(t, bytesToFloat32Slice(nil))
}
