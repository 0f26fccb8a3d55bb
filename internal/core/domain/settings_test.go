package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAIProvider_IsValid tests all valid and invalid providers
func TestAIProvider_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		provider AIProvider
		expected bool
	}{
		{"ollama is valid", AIProviderOllama, true},
		{"openai is valid", AIProviderOpenAI, true},
		{"gemini is valid", AIProviderGemini, true},
		{"local is valid", AIProviderLocal, true},
		{"empty string is invalid", AIProvider(""), false},
		{"unknown provider is invalid", AIProvider("anthropic"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.provider.IsValid())
		})
	}
}

// TestAIProvider_Properties tests API key and locality flags
func TestAIProvider_Properties(t *testing.T) {
	assert.True(t, AIProviderOpenAI.RequiresAPIKey())
	assert.True(t, AIProviderGemini.RequiresAPIKey())
	assert.False(t, AIProviderOllama.RequiresAPIKey())
	assert.False(t, AIProviderLocal.RequiresAPIKey())

	assert.True(t, AIProviderOllama.IsLocal())
	assert.True(t, AIProviderLocal.IsLocal())
	assert.False(t, AIProviderOpenAI.IsLocal())

	assert.Equal(t, "Gemini (cloud)", AIProviderGemini.Description())
	assert.Equal(t, "Unknown", AIProvider("x").Description())
	assert.Equal(t, "openai", AIProviderOpenAI.String())
}

// TestStoreKind_IsValid tests store kinds
func TestStoreKind_IsValid(t *testing.T) {
	assert.True(t, StoreSQLite.IsValid())
	assert.True(t, StoreWeaviate.IsValid())
	assert.True(t, StoreMemory.IsValid())
	assert.False(t, StoreKind("chroma").IsValid())
	assert.Equal(t, "memory", StoreMemory.String())
}

// TestProviderSettings_IsConfigured tests provider configuration checks
func TestProviderSettings_IsConfigured(t *testing.T) {
	tests := []struct {
		name     string
		settings ProviderSettings
		expected bool
	}{
		{"ollama without key", ProviderSettings{Provider: AIProviderOllama}, true},
		{"local without key", ProviderSettings{Provider: AIProviderLocal}, true},
		{"openai without key", ProviderSettings{Provider: AIProviderOpenAI}, false},
		{"openai with key", ProviderSettings{Provider: AIProviderOpenAI, APIKey: "sk"}, true},
		{"gemini without key", ProviderSettings{Provider: AIProviderGemini}, false},
		{"invalid provider", ProviderSettings{Provider: "nope"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.settings.IsConfigured())
		})
	}
}

// TestDefaultAppSettings tests default values
func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	assert.Equal(t, "profiles.json", s.ProfilesPath)
	assert.Equal(t, 1000, s.Index.ChunkSize)
	assert.Equal(t, 200, s.Index.Overlap)
	assert.Equal(t, 3, s.Index.TopK)
	assert.Equal(t, []StoreKind{StoreSQLite, StoreMemory}, s.Index.Stores)

	require.Len(t, s.Embedding, 2)
	assert.Equal(t, AIProviderOllama, s.Embedding[0].Provider)
	assert.Equal(t, AIProviderLocal, s.Embedding[1].Provider)
	require.Len(t, s.LLM, 1)
	assert.Equal(t, AIProviderOllama, s.LLM[0].Provider)
	assert.Equal(t, "ProfileChunk", s.Weaviate.Class)
}

// TestDefaultModels tests that every provider has a default model
func TestDefaultModels(t *testing.T) {
	embed := DefaultEmbeddingModels()
	for _, p := range AllEmbeddingProviders() {
		model, ok := embed[p]
		assert.True(t, ok, "missing embedding model for %s", p)
		assert.NotZero(t, EmbeddingDimensions()[model], "missing dimensions for %s", model)
	}

	llm := DefaultLLMModels()
	for _, p := range AllLLMProviders() {
		assert.NotEmpty(t, llm[p], "missing llm model for %s", p)
	}
	assert.NotContains(t, AllLLMProviders(), AIProviderLocal)
}

// TestIndexSettings_PipelineConfig tests the chunker pipeline derived from index settings
func TestIndexSettings_PipelineConfig(t *testing.T) {
	cfg := IndexSettings{ChunkSize: 500, Overlap: 50}.PipelineConfig()

	assert.Equal(t, []string{"chunker"}, cfg.Processors)
	chunker := cfg.GetProcessorConfig("chunker")
	require.NotNil(t, chunker)
	assert.Equal(t, 500, chunker["chunk_size"])
	assert.Equal(t, 50, chunker["overlap"])
	assert.Nil(t, cfg.GetProcessorConfig("stemmer"))

	var empty PipelineConfig
	assert.Nil(t, empty.GetProcessorConfig("chunker"))
}
