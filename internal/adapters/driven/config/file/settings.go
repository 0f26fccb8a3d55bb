package file

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/custodia-labs/profilerag/internal/core/domain"
	"github.com/custodia-labs/profilerag/internal/core/ports/driven"
)

// EnvPrefix is the prefix for environment overrides.
const EnvPrefix = "PROFILERAG"

// ErrMissingRequired indicates a required setting is empty.
var ErrMissingRequired = errors.New("missing required configuration")

// Configuration keys.
const (
	KeyProfilesPath       = "profiles.path"
	KeyDataDir            = "data.dir"
	KeyChunkSize          = "index.chunk_size"
	KeyOverlap            = "index.overlap"
	KeyTopK               = "index.top_k"
	KeyWorkers            = "index.workers"
	KeyEmbedRate          = "index.embed_rate"
	KeyStores             = "index.stores"
	KeyEmbeddingProviders = "embedding.providers"
	KeyLLMProviders       = "llm.providers"
	KeyWeaviateHost       = "weaviate.host"
	KeyWeaviateScheme     = "weaviate.scheme"
	KeyWeaviateClass      = "weaviate.class"
)

// envOverrides are read from PROFILERAG_* variables and win over the file.
type envOverrides struct {
	ProfilesPath       string   `envconfig:"PROFILES_PATH"`
	DataDir            string   `envconfig:"DATA_DIR"`
	TopK               int      `envconfig:"TOP_K"`
	Stores             []string `envconfig:"STORES"`
	EmbeddingProviders []string `envconfig:"EMBEDDING_PROVIDERS"`
	LLMProviders       []string `envconfig:"LLM_PROVIDERS"`
	OllamaBaseURL      string   `envconfig:"OLLAMA_BASE_URL"`
	OpenAIAPIKey       string   `envconfig:"OPENAI_API_KEY"`
	OpenAIBaseURL      string   `envconfig:"OPENAI_BASE_URL"`
	GeminiAPIKey       string   `envconfig:"GEMINI_API_KEY"`
	WeaviateHost       string   `envconfig:"WEAVIATE_HOST"`
	WeaviateScheme     string   `envconfig:"WEAVIATE_SCHEME"`
}

// LoadDotEnv loads .env files into the process environment.
// Missing files are skipped; variables already set are kept.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// LoadSettings builds application settings from defaults, the config
// store and PROFILERAG_* environment variables, in that order.
func LoadSettings(store driven.ConfigStore) (domain.AppSettings, error) {
	var env envOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return domain.AppSettings{}, fmt.Errorf("read environment: %w", err)
	}

	s := domain.DefaultAppSettings()
	s.DataDir = filepath.Join(filepath.Dir(store.Path()), "data")

	if v := store.GetString(KeyProfilesPath); v != "" {
		s.ProfilesPath = v
	}
	if v := store.GetString(KeyDataDir); v != "" {
		s.DataDir = v
	}
	if _, ok := store.Get(KeyChunkSize); ok {
		s.Index.ChunkSize = store.GetInt(KeyChunkSize)
	}
	if _, ok := store.Get(KeyOverlap); ok {
		s.Index.Overlap = store.GetInt(KeyOverlap)
	}
	if _, ok := store.Get(KeyTopK); ok {
		s.Index.TopK = store.GetInt(KeyTopK)
	}
	if _, ok := store.Get(KeyWorkers); ok {
		s.Index.Workers = store.GetInt(KeyWorkers)
	}
	if _, ok := store.Get(KeyEmbedRate); ok {
		s.Index.EmbedRate = store.GetFloat(KeyEmbedRate)
	}
	if names := store.GetStringSlice(KeyStores); len(names) > 0 {
		s.Index.Stores = storeKinds(names)
	}
	if names := store.GetStringSlice(KeyEmbeddingProviders); len(names) > 0 {
		s.Embedding = providerList(names)
	}
	if names := store.GetStringSlice(KeyLLMProviders); len(names) > 0 {
		s.LLM = providerList(names)
	}
	if len(env.EmbeddingProviders) > 0 {
		s.Embedding = providerList(env.EmbeddingProviders)
	}
	if len(env.LLMProviders) > 0 {
		s.LLM = providerList(env.LLMProviders)
	}
	applyProviderKeys(store, "embedding", s.Embedding)
	applyProviderKeys(store, "llm", s.LLM)

	if v := store.GetString(KeyWeaviateHost); v != "" {
		s.Weaviate.Host = v
	}
	if v := store.GetString(KeyWeaviateScheme); v != "" {
		s.Weaviate.Scheme = v
	}
	if v := store.GetString(KeyWeaviateClass); v != "" {
		s.Weaviate.Class = v
	}

	applyEnv(&s, env)
	return s, nil
}

// ProviderKey returns the config key for a provider field,
// e.g. ProviderKey("llm", "openai", "api_key").
func ProviderKey(section string, provider domain.AIProvider, field string) string {
	return section + "." + string(provider) + "." + field
}

func applyProviderKeys(store driven.ConfigStore, section string, list []domain.ProviderSettings) {
	for i := range list {
		p := &list[i]
		if v := store.GetString(ProviderKey(section, p.Provider, "model")); v != "" {
			p.Model = v
		}
		if v := store.GetString(ProviderKey(section, p.Provider, "base_url")); v != "" {
			p.BaseURL = v
		}
		if v := store.GetString(ProviderKey(section, p.Provider, "api_key")); v != "" {
			p.APIKey = v
		}
	}
}

func applyEnv(s *domain.AppSettings, env envOverrides) {
	if env.ProfilesPath != "" {
		s.ProfilesPath = env.ProfilesPath
	}
	if env.DataDir != "" {
		s.DataDir = env.DataDir
	}
	if env.TopK != 0 {
		s.Index.TopK = env.TopK
	}
	if len(env.Stores) > 0 {
		s.Index.Stores = storeKinds(env.Stores)
	}
	if env.WeaviateHost != "" {
		s.Weaviate.Host = env.WeaviateHost
	}
	if env.WeaviateScheme != "" {
		s.Weaviate.Scheme = env.WeaviateScheme
	}

	for _, list := range [][]domain.ProviderSettings{s.Embedding, s.LLM} {
		for i := range list {
			p := &list[i]
			switch p.Provider {
			case domain.AIProviderOllama:
				setIfEmpty(&p.BaseURL, env.OllamaBaseURL)
			case domain.AIProviderOpenAI:
				setIfEmpty(&p.BaseURL, env.OpenAIBaseURL)
				if env.OpenAIAPIKey != "" {
					p.APIKey = env.OpenAIAPIKey
				}
			case domain.AIProviderGemini:
				if env.GeminiAPIKey != "" {
					p.APIKey = env.GeminiAPIKey
				}
			}
		}
	}
}

// Validate checks settings before any service is built.
func Validate(s domain.AppSettings) error {
	if s.ProfilesPath == "" {
		return fmt.Errorf("%w: %s", ErrMissingRequired, KeyProfilesPath)
	}
	if s.DataDir == "" {
		return fmt.Errorf("%w: %s", ErrMissingRequired, KeyDataDir)
	}
	if len(s.Embedding) == 0 {
		return fmt.Errorf("%w: %s", ErrMissingRequired, KeyEmbeddingProviders)
	}
	if len(s.Index.Stores) == 0 {
		return fmt.Errorf("%w: %s", ErrMissingRequired, KeyStores)
	}

	if s.Index.ChunkSize <= 0 {
		return fmt.Errorf("%w: %s must be positive", domain.ErrValidation, KeyChunkSize)
	}
	if s.Index.Overlap < 0 || s.Index.Overlap >= s.Index.ChunkSize {
		return fmt.Errorf("%w: %s must be in [0, %s)", domain.ErrValidation, KeyOverlap, KeyChunkSize)
	}
	if s.Index.TopK <= 0 {
		return fmt.Errorf("%w: %s must be positive", domain.ErrValidation, KeyTopK)
	}
	if s.Index.Workers < 0 || s.Index.EmbedRate < 0 {
		return fmt.Errorf("%w: index workers and embed_rate must not be negative", domain.ErrValidation)
	}

	for _, k := range s.Index.Stores {
		if !k.IsValid() {
			return fmt.Errorf("%w: store %q", domain.ErrUnsupportedType, k)
		}
		if k == domain.StoreWeaviate && s.Weaviate.Host == "" {
			return fmt.Errorf("%w: %s (weaviate store enabled)", ErrMissingRequired, KeyWeaviateHost)
		}
	}
	for _, p := range s.Embedding {
		if !p.Provider.IsValid() {
			return fmt.Errorf("%w: embedding provider %q", domain.ErrUnsupportedType, p.Provider)
		}
	}
	for _, p := range s.LLM {
		if !p.Provider.IsValid() || p.Provider == domain.AIProviderLocal {
			return fmt.Errorf("%w: llm provider %q", domain.ErrUnsupportedType, p.Provider)
		}
	}
	return nil
}

func storeKinds(names []string) []domain.StoreKind {
	kinds := make([]domain.StoreKind, 0, len(names))
	for _, n := range names {
		kinds = append(kinds, domain.StoreKind(n))
	}
	return kinds
}

func providerList(names []string) []domain.ProviderSettings {
	list := make([]domain.ProviderSettings, 0, len(names))
	for _, n := range names {
		list = append(list, domain.ProviderSettings{Provider: domain.AIProvider(n)})
	}
	return list
}

func setIfEmpty(dst *string, v string) {
	if *dst == "" && v != "" {
		*dst = v
	}
}
