package services

import (
	"context"
	"errors"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/custodia-labs/profilerag/internal/core/domain"
	"github.com/custodia-labs/profilerag/internal/core/ports/driven"
)

// --- Mock implementations ---

// keywordEmbedder implements driven.EmbeddingService with one dimension
// per keyword, so similarity follows shared keywords.
type keywordEmbedder struct {
	keywords []string
	embedErr error

	mu    sync.Mutex
	calls int
}

func newKeywordEmbedder() *keywordEmbedder {
	return &keywordEmbedder{keywords: []string{"python", "react", "sql", "java", "cloud"}}
}

func (m *keywordEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	lower := strings.ToLower(text)
	vec := make([]float32, len(m.keywords)+1)
	vec[len(m.keywords)] = 0.1
	for i, kw := range m.keywords {
		vec[i] = float32(strings.Count(lower, kw))
	}
	return vec, nil
}

func (m *keywordEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, err := m.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (m *keywordEmbedder) Dimensions() int              { return len(m.keywords) + 1 }
func (m *keywordEmbedder) ModelName() string            { return "keyword-test" }
func (m *keywordEmbedder) Ping(_ context.Context) error { return nil }
func (m *keywordEmbedder) Close() error                 { return nil }

func (m *keywordEmbedder) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// fakeChunkStore implements driven.ChunkStore with brute-force cosine search.
type fakeChunkStore struct {
	name       string
	replaceErr error
	chunks     []domain.Chunk
	closed     bool
}

func (s *fakeChunkStore) Name() string { return s.name }

func (s *fakeChunkStore) Replace(_ context.Context, chunks []domain.Chunk) error {
	if s.replaceErr != nil {
		return s.replaceErr
	}
	s.chunks = append([]domain.Chunk(nil), chunks...)
	return nil
}

func (s *fakeChunkStore) Search(_ context.Context, vec []float32, k int) ([]domain.ChunkHit, error) {
	hits := make([]domain.ChunkHit, 0, len(s.chunks))
	for _, c := range s.chunks {
		hits = append(hits, domain.ChunkHit{Chunk: c, Similarity: cosine(vec, c.Embedding)})
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Similarity > hits[j].Similarity })
	if k < len(hits) {
		hits = hits[:k]
	}
	return hits, nil
}

func (s *fakeChunkStore) Count(_ context.Context) (int, error) { return len(s.chunks), nil }

func (s *fakeChunkStore) Close() error {
	s.closed = true
	return nil
}

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

// storeStrategy wraps a fake store as a strategy.
func storeStrategy(store *fakeChunkStore) driven.StoreStrategy {
	return driven.StoreStrategy{
		Name: store.name,
		Open: func(_ context.Context) (driven.ChunkStore, error) { return store, nil },
	}
}

// failingStrategy never opens.
func failingStrategy(name string, err error) driven.StoreStrategy {
	return driven.StoreStrategy{
		Name: name,
		Open: func(_ context.Context) (driven.ChunkStore, error) { return nil, err },
	}
}

// mockLLM implements driven.LLMService with testify/mock.
type mockLLM struct {
	mock.Mock
}

func (m *mockLLM) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	args := m.Called(ctx, prompt, opts)
	return args.String(0), args.Error(1)
}

func (m *mockLLM) ModelName() string            { return "mock-llm" }
func (m *mockLLM) Ping(_ context.Context) error { return nil }
func (m *mockLLM) Close() error                 { return nil }

// mockPromptStore implements driven.PromptStore.
type mockPromptStore struct {
	prompts map[string]string
}

func (m *mockPromptStore) Load(name string) (string, error) {
	p, ok := m.prompts[name]
	if !ok {
		return "", errors.New("not found")
	}
	return p, nil
}

func (m *mockPromptStore) Reload() {}

// memProfileStore implements driven.ProfileStore in memory.
type memProfileStore struct {
	mu       sync.Mutex
	profiles []domain.Profile
	loadErr  error
	saveErr  error
	saves    int
}

func (m *memProfileStore) Load(_ context.Context) ([]domain.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return append([]domain.Profile(nil), m.profiles...), nil
}

func (m *memProfileStore) Save(_ context.Context, profiles []domain.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.profiles = append([]domain.Profile(nil), profiles...)
	return nil
}

func (m *memProfileStore) Path() string { return "memory://profiles" }

// textNormaliser implements driven.Normaliser with a minimal rendering.
type textNormaliser struct{}

func (textNormaliser) Normalise(_ context.Context, p *domain.Profile, _ int) (*driven.NormaliseResult, error) {
	var b strings.Builder
	b.WriteString("Name: " + p.Name)
	if p.About != "" {
		b.WriteString("\nAbout: " + p.About)
	}
	for _, e := range p.Experiences {
		b.WriteString("\n  - Position: " + e.PositionTitle + " | Company: " + e.InstitutionName +
			" | Description: " + e.Description)
	}
	for _, e := range p.Education {
		b.WriteString("\n  - Degree: " + e.Degree + " | Institution: " + e.InstitutionName +
			" | Description: " + e.Description)
	}
	return &driven.NormaliseResult{Document: domain.Document{
		ID:      p.DisplayName(),
		Name:    p.DisplayName(),
		URL:     p.LinkedInURL,
		Content: b.String(),
	}}, nil
}

// wholeDocPipeline implements driven.PostProcessorPipeline with one chunk per document.
type wholeDocPipeline struct{}

func (wholeDocPipeline) Process(_ context.Context, doc *domain.Document) ([]domain.Chunk, error) {
	return []domain.Chunk{{
		ID:         doc.ID + "#0",
		DocumentID: doc.ID,
		SourceName: doc.Name,
		SourceURL:  doc.URL,
		Content:    doc.Content,
	}}, nil
}

// sampleProfiles is a small collection shared by tests.
func sampleProfiles() []domain.Profile {
	return []domain.Profile{
		{
			Name:        "Neha M",
			About:       "Backend engineer. Python developer who loves data.",
			LinkedInURL: "https://linkedin.com/in/neha",
			Experiences: []domain.Experience{
				{PositionTitle: "Developer", InstitutionName: "Acme", Description: "Python backend", Duration: "2 yrs"},
			},
		},
		{
			Name:        "Amee Popat",
			About:       "Frontend work with React",
			LinkedInURL: "https://linkedin.com/in/amee",
			Education: []domain.Education{
				{Degree: "BSc Computer Science", InstitutionName: "Uni", Description: "SQL and databases"},
			},
		},
		{
			Name:  "",
			About: "Cloud and SQL consultant",
		},
	}
}
