// Package weaviate provides a ChunkStore backed by a Weaviate class.
package weaviate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/weaviate/weaviate-go-client/v5/weaviate"
	"github.com/weaviate/weaviate-go-client/v5/weaviate/graphql"
	"github.com/weaviate/weaviate/entities/models"

	"github.com/custodia-labs/profilerag/internal/adapters/driven/storage/similarity"
	"github.com/custodia-labs/profilerag/internal/core/domain"
	"github.com/custodia-labs/profilerag/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.ChunkStore = (*Store)(nil)

// StoreName identifies the Weaviate store in strategy reports.
const StoreName = "weaviate"

// DefaultClass is used when no class name is configured.
const DefaultClass = "ProfileChunk"

const batchSize = 100

// Property names on the chunk class.
const (
	propChunkID    = "chunkId"
	propDocumentID = "documentId"
	propSourceName = "sourceName"
	propSourceURL  = "sourceUrl"
	propContent    = "content"
	propPosition   = "position"
)

// Config holds connection settings.
type Config struct {
	Host   string
	Scheme string
	Class  string
}

// Store keeps chunks in a Weaviate class.
type Store struct {
	client *weaviate.Client
	schema SchemaClient
	class  string
}

// NewStore connects to Weaviate, checks liveness and makes sure the class exists.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Host == "" {
		return nil, errors.New("weaviate: host is required")
	}
	if cfg.Scheme == "" {
		cfg.Scheme = "http"
	}
	if cfg.Class == "" {
		cfg.Class = DefaultClass
	}

	client, err := weaviate.NewClient(weaviate.Config{Host: cfg.Host, Scheme: cfg.Scheme})
	if err != nil {
		return nil, fmt.Errorf("weaviate: create client: %w", err)
	}

	live, err := client.Misc().LiveChecker().Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("weaviate: liveness check: %w", err)
	}
	if !live {
		return nil, errors.New("weaviate: server is not live")
	}

	s := &Store{client: client, schema: clientSchema{client: client}, class: cfg.Class}
	if err := ensureClass(ctx, s.schema, s.class); err != nil {
		return nil, fmt.Errorf("weaviate: ensure class %s: %w", s.class, err)
	}
	return s, nil
}

// Strategy returns a store strategy that connects with cfg.
func Strategy(cfg Config) driven.StoreStrategy {
	return driven.StoreStrategy{
		Name: StoreName,
		Open: func(ctx context.Context) (driven.ChunkStore, error) {
			return NewStore(ctx, cfg)
		},
	}
}

// Name returns the store name.
func (s *Store) Name() string {
	return StoreName
}

// Replace recreates the class and batch-inserts the chunks.
func (s *Store) Replace(ctx context.Context, chunks []domain.Chunk) error {
	if _, err := similarity.CheckEmbeddings(chunks); err != nil {
		return fmt.Errorf("weaviate: %w", err)
	}
	if err := resetClass(ctx, s.schema, s.class); err != nil {
		return fmt.Errorf("weaviate: reset class %s: %w", s.class, err)
	}

	for start := 0; start < len(chunks); start += batchSize {
		end := min(start+batchSize, len(chunks))

		objects := make([]*models.Object, 0, end-start)
		for _, c := range chunks[start:end] {
			objects = append(objects, toObject(s.class, c))
		}

		resp, err := s.client.Batch().ObjectsBatcher().WithObjects(objects...).Do(ctx)
		if err != nil {
			return fmt.Errorf("weaviate: batch %d-%d: %w", start, end, err)
		}
		if err := batchErrors(resp); err != nil {
			return fmt.Errorf("weaviate: batch %d-%d: %w", start, end, err)
		}
	}
	return nil
}

// Search runs a nearVector query and converts distances to cosine similarity.
func (s *Store) Search(ctx context.Context, vector []float32, k int) ([]domain.ChunkHit, error) {
	if k <= 0 {
		return nil, nil
	}

	nearVector := s.client.GraphQL().NearVectorArgBuilder().WithVector(vector)
	fields := []graphql.Field{
		{Name: propChunkID},
		{Name: propDocumentID},
		{Name: propSourceName},
		{Name: propSourceURL},
		{Name: propContent},
		{Name: propPosition},
		{Name: "_additional", Fields: []graphql.Field{{Name: "distance"}}},
	}

	res, err := s.client.GraphQL().Get().
		WithClassName(s.class).
		WithNearVector(nearVector).
		WithLimit(k).
		WithFields(fields...).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("weaviate: search: %w", err)
	}
	if len(res.Errors) > 0 {
		return nil, fmt.Errorf("weaviate: graphql error: %s", graphQLMessages(res.Errors))
	}
	return parseHits(res.Data, s.class), nil
}

// Count aggregates the number of objects in the class.
func (s *Store) Count(ctx context.Context) (int, error) {
	res, err := s.client.GraphQL().Aggregate().
		WithClassName(s.class).
		WithFields(graphql.Field{Name: "meta", Fields: []graphql.Field{{Name: "count"}}}).
		Do(ctx)
	if err != nil {
		return 0, fmt.Errorf("weaviate: count: %w", err)
	}
	if len(res.Errors) > 0 {
		return 0, fmt.Errorf("weaviate: graphql error: %s", graphQLMessages(res.Errors))
	}
	return parseCount(res.Data, s.class), nil
}

// Close releases resources. The client holds no closable state.
func (s *Store) Close() error {
	return nil
}

func toObject(class string, c domain.Chunk) *models.Object {
	return &models.Object{
		Class: class,
		Properties: map[string]any{
			propChunkID:    c.ID,
			propDocumentID: c.DocumentID,
			propSourceName: c.SourceName,
			propSourceURL:  c.SourceURL,
			propContent:    c.Content,
			propPosition:   c.Position,
		},
		Vector: models.C11yVector(c.Embedding),
	}
}

func batchErrors(resp []models.ObjectsGetResponse) error {
	var msgs []string
	for _, r := range resp {
		if r.Result == nil || r.Result.Errors == nil {
			continue
		}
		for _, e := range r.Result.Errors.Error {
			if e != nil {
				msgs = append(msgs, e.Message)
			}
		}
	}
	if len(msgs) == 0 {
		return nil
	}
	return errors.New(strings.Join(msgs, "; "))
}

func graphQLMessages(errs []*models.GraphQLError) string {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		if e != nil {
			msgs = append(msgs, e.Message)
		}
	}
	return strings.Join(msgs, "; ")
}

// parseHits reads Get.<class>[] from a GraphQL response.
func parseHits(data map[string]models.JSONObject, class string) []domain.ChunkHit {
	get, ok := data["Get"].(map[string]any)
	if !ok {
		return nil
	}
	items, ok := get[class].([]any)
	if !ok {
		return nil
	}

	hits := make([]domain.ChunkHit, 0, len(items))
	for _, item := range items {
		props, ok := item.(map[string]any)
		if !ok {
			continue
		}
		var hit domain.ChunkHit
		hit.Chunk.ID, _ = props[propChunkID].(string)
		hit.Chunk.DocumentID, _ = props[propDocumentID].(string)
		hit.Chunk.SourceName, _ = props[propSourceName].(string)
		hit.Chunk.SourceURL, _ = props[propSourceURL].(string)
		hit.Chunk.Content, _ = props[propContent].(string)
		if pos, ok := props[propPosition].(float64); ok {
			hit.Chunk.Position = int(pos)
		}
		if extra, ok := props["_additional"].(map[string]any); ok {
			if d, ok := extra["distance"].(float64); ok {
				hit.Similarity = 1 - d
			}
		}
		hits = append(hits, hit)
	}
	return hits
}

// parseCount reads Aggregate.<class>[0].meta.count from a GraphQL response.
func parseCount(data map[string]models.JSONObject, class string) int {
	agg, ok := data["Aggregate"].(map[string]any)
	if !ok {
		return 0
	}
	items, ok := agg[class].([]any)
	if !ok || len(items) == 0 {
		return 0
	}
	first, ok := items[0].(map[string]any)
	if !ok {
		return 0
	}
	meta, ok := first["meta"].(map[string]any)
	if !ok {
		return 0
	}
	count, _ := meta["count"].(float64)
	return int(count)
}
