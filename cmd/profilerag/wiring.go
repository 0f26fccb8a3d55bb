package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/custodia-labs/profilerag/internal/adapters/driven/ai"
	"github.com/custodia-labs/profilerag/internal/adapters/driven/config/file"
	"github.com/custodia-labs/profilerag/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/profilerag/internal/adapters/driven/storage/profilefile"
	"github.com/custodia-labs/profilerag/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/profilerag/internal/adapters/driven/storage/weaviate"
	"github.com/custodia-labs/profilerag/internal/adapters/driving/cli"
	"github.com/custodia-labs/profilerag/internal/core/domain"
	"github.com/custodia-labs/profilerag/internal/core/ports/driven"
	"github.com/custodia-labs/profilerag/internal/core/services"
	"github.com/custodia-labs/profilerag/internal/logger"
	"github.com/custodia-labs/profilerag/internal/normalisers/profile"
	"github.com/custodia-labs/profilerag/internal/postprocessors"
)

// wiring builds the concrete adapters behind the CLI.
type wiring struct {
	configDir string
}

var _ cli.Factory = (*wiring)(nil)

func (w *wiring) Config(dir string) (driven.ConfigStore, error) {
	if dir == "" {
		d, err := file.DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	w.configDir = dir
	return file.NewConfigStore(dir)
}

func (w *wiring) Settings(store driven.ConfigStore) (domain.AppSettings, error) {
	settings, err := file.LoadSettings(store)
	if err != nil {
		return domain.AppSettings{}, err
	}
	if err := file.Validate(settings); err != nil {
		return domain.AppSettings{}, err
	}
	return settings, nil
}

func (w *wiring) Services(ctx context.Context, settings domain.AppSettings) (*cli.Services, error) {
	backends := ai.Init(ctx, settings)

	index := services.NewSemanticIndex(
		backends.EmbeddingService,
		storeStrategies(settings),
		services.IndexConfig{
			TopK:      settings.Index.TopK,
			Workers:   settings.Index.Workers,
			EmbedRate: settings.Index.EmbedRate,
		},
	)

	generator := services.NewGenerator(backends.LLMService)
	if w.configDir != "" {
		prompts, err := file.NewPromptStore(filepath.Join(w.configDir, "prompts"))
		if err != nil {
			logger.Warn("prompt templates unavailable, using built-in prompt: %v", err)
		} else {
			generator.SetPromptStore(prompts)
		}
	}

	pipeline, err := postprocessors.FromConfig(postprocessors.DefaultRegistry(), settings.Index.PipelineConfig())
	if err != nil {
		backends.Close()
		return nil, fmt.Errorf("build chunker pipeline: %w", err)
	}

	store, err := profilefile.NewStore(settings.ProfilesPath)
	if err != nil {
		backends.Close()
		return nil, err
	}

	normaliser := profile.New()
	svc, err := services.NewProfileService(services.ProfileServiceConfig{
		Store:      store,
		Normaliser: normaliser,
		Pipeline:   pipeline,
		Index:      index,
		Composer: services.NewComposer(index, generator,
			services.NewEvidenceExtractor(), settings.Index.TopK),
		Reporter:  services.NewSummaryReporter(normaliser),
		Generator: generator,
	})
	if err != nil {
		backends.Close()
		return nil, err
	}

	return &cli.Services{
		Profiles:     svc,
		ProfilesPath: store.Path(),
		Warnings:     backends.Warnings,
		Close: func() {
			if err := svc.Close(); err != nil {
				logger.Warn("close index: %v", err)
			}
			backends.Close()
		},
	}, nil
}

func (w *wiring) ReadProfiles(path string) ([]domain.Profile, error) {
	return profilefile.ReadFile(path)
}

func (w *wiring) Validator() driven.AIConfigValidator {
	return ai.NewConfigValidator()
}

// storeStrategies maps the configured store order to strategies.
func storeStrategies(settings domain.AppSettings) []driven.StoreStrategy {
	strategies := make([]driven.StoreStrategy, 0, len(settings.Index.Stores))
	for _, kind := range settings.Index.Stores {
		switch kind {
		case domain.StoreSQLite:
			strategies = append(strategies, sqlite.Strategy(settings.DataDir))
		case domain.StoreWeaviate:
			strategies = append(strategies, weaviate.Strategy(weaviate.Config{
				Host:   settings.Weaviate.Host,
				Scheme: settings.Weaviate.Scheme,
				Class:  settings.Weaviate.Class,
			}))
		case domain.StoreMemory:
			strategies = append(strategies, memory.Strategy())
		}
	}
	return strategies
}
