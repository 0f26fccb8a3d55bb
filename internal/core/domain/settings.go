package domain

const unknownDescription = "Unknown"

// AIProvider identifies an AI service provider for embeddings or LLM.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderGemini is the Google Gemini API.
	AIProviderGemini AIProvider = "gemini"

	// AIProviderLocal is the built-in deterministic hashing embedder.
	// It supports embeddings only.
	AIProviderLocal AIProvider = "local"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderGemini, AIProviderLocal:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderGemini
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama || p == AIProviderLocal
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderGemini:
		return "Gemini (cloud)"
	case AIProviderLocal:
		return "Hashing embedder (built-in)"
	default:
		return unknownDescription
	}
}

// StoreKind identifies a chunk store backend for the semantic index.
type StoreKind string

// Available store kinds.
const (
	// StoreSQLite persists chunks and vectors in a SQLite file.
	StoreSQLite StoreKind = "sqlite"

	// StoreWeaviate keeps chunks and vectors in a Weaviate class.
	StoreWeaviate StoreKind = "weaviate"

	// StoreMemory keeps everything in process memory.
	StoreMemory StoreKind = "memory"
)

// IsValid returns true if the store kind is recognised.
func (k StoreKind) IsValid() bool {
	switch k {
	case StoreSQLite, StoreWeaviate, StoreMemory:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (k StoreKind) String() string {
	return string(k)
}

// ProviderSettings configures one embedding or generation strategy.
type ProviderSettings struct {
	// Provider is the service provider.
	Provider AIProvider

	// Model is the model name. Empty selects the provider default.
	Model string

	// BaseURL is the API endpoint (for Ollama and OpenAI-compatible servers).
	BaseURL string

	// APIKey is the API key (for OpenAI and Gemini).
	APIKey string
}

// IsConfigured returns true if the provider is set up.
func (s ProviderSettings) IsConfigured() bool {
	if !s.Provider.IsValid() {
		return false
	}
	if s.Provider.RequiresAPIKey() && s.APIKey == "" {
		return false
	}
	return true
}

// IndexSettings holds chunking and retrieval configuration.
type IndexSettings struct {
	// ChunkSize is the maximum chunk length in characters.
	ChunkSize int

	// Overlap is the number of characters shared by consecutive chunks.
	Overlap int

	// TopK is the number of chunks retrieved per question.
	TopK int

	// Workers is the number of concurrent embedding workers.
	Workers int

	// EmbedRate limits embedding calls per second (0 = unlimited).
	EmbedRate float64

	// Stores is the ordered list of store strategies tried on build.
	Stores []StoreKind
}

// WeaviateSettings holds connection details for the Weaviate store.
type WeaviateSettings struct {
	Host   string
	Scheme string
	Class  string
}

// AppSettings holds all application settings.
type AppSettings struct {
	// ProfilesPath is the raw profile collection file (.json, .yaml or .yml).
	ProfilesPath string

	// DataDir holds the persisted index.
	DataDir string

	// Embedding is the ordered list of embedding strategies.
	Embedding []ProviderSettings

	// LLM is the ordered list of generation strategies.
	LLM []ProviderSettings

	// Index holds chunking and retrieval settings.
	Index IndexSettings

	// Weaviate holds Weaviate connection settings.
	Weaviate WeaviateSettings
}

// Default index values.
const (
	DefaultChunkSize = 1000
	DefaultOverlap   = 200
	DefaultTopK      = 3
	DefaultWorkers   = 4
)

// DefaultAppSettings returns settings with sensible defaults.
// Embedding tries Ollama first and falls back to the built-in embedder.
// Generation tries Ollama only; without it answers use the fallback path.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		ProfilesPath: "profiles.json",
		Embedding: []ProviderSettings{
			{Provider: AIProviderOllama},
			{Provider: AIProviderLocal},
		},
		LLM: []ProviderSettings{
			{Provider: AIProviderOllama},
		},
		Index: IndexSettings{
			ChunkSize: DefaultChunkSize,
			Overlap:   DefaultOverlap,
			TopK:      DefaultTopK,
			Workers:   DefaultWorkers,
			Stores:    []StoreKind{StoreSQLite, StoreMemory},
		},
		Weaviate: WeaviateSettings{
			Scheme: "http",
			Class:  "ProfileChunk",
		},
	}
}

// AllEmbeddingProviders returns providers that support embeddings.
func AllEmbeddingProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
		AIProviderGemini,
		AIProviderLocal,
	}
}

// AllLLMProviders returns providers that support generation.
func AllLLMProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
		AIProviderGemini,
	}
}

// DefaultEmbeddingModels returns default models for each embedding provider.
func DefaultEmbeddingModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama: "all-minilm",
		AIProviderOpenAI: "text-embedding-3-small",
		AIProviderGemini: "gemini-embedding-001",
		AIProviderLocal:  "hashing-384",
	}
}

// DefaultLLMModels returns default models for each LLM provider.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama: "llama3.2:1b",
		AIProviderOpenAI: "gpt-4o-mini",
		AIProviderGemini: "gemini-2.5-flash",
	}
}

// EmbeddingDimensions returns the vector dimensions for known models.
func EmbeddingDimensions() map[string]int {
	return map[string]int{
		// Ollama models
		"nomic-embed-text":  768,
		"mxbai-embed-large": 1024,
		"all-minilm":        384,
		// OpenAI models
		"text-embedding-3-small": 1536,
		"text-embedding-3-large": 3072,
		"text-embedding-ada-002": 1536,
		// Gemini models
		"gemini-embedding-001": 3072,
		"text-embedding-004":   768,
		// Built-in
		"hashing-384": 384,
	}
}

// PipelineConfig holds post-processor pipeline configuration.
// Uses generic map-based config for extensibility - new processors can be added
// without modifying this struct.
type PipelineConfig struct {
	// Processors is the ordered list of processor names to run.
	Processors []string

	// ProcessorConfigs holds per-processor configuration as generic maps.
	// Key is processor name, value is processor-specific config.
	ProcessorConfigs map[string]map[string]any
}

// GetProcessorConfig returns config for a specific processor, or nil if not set.
func (c *PipelineConfig) GetProcessorConfig(name string) map[string]any {
	if c.ProcessorConfigs == nil {
		return nil
	}
	return c.ProcessorConfigs[name]
}

// PipelineConfig returns the post-processor pipeline implied by the index settings.
func (s IndexSettings) PipelineConfig() PipelineConfig {
	return PipelineConfig{
		Processors: []string{"chunker"},
		ProcessorConfigs: map[string]map[string]any{
			"chunker": {
				"chunk_size": s.ChunkSize,
				"overlap":    s.Overlap,
			},
		},
	}
}
