// Package ai creates embedding and generation backends from ordered
// provider strategies.
package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	geminiembed "github.com/custodia-labs/profilerag/internal/adapters/driven/embedding/gemini"
	localembed "github.com/custodia-labs/profilerag/internal/adapters/driven/embedding/local"
	ollamaembed "github.com/custodia-labs/profilerag/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/custodia-labs/profilerag/internal/adapters/driven/embedding/openai"
	geminillm "github.com/custodia-labs/profilerag/internal/adapters/driven/llm/gemini"
	ollamallm "github.com/custodia-labs/profilerag/internal/adapters/driven/llm/ollama"
	openaillm "github.com/custodia-labs/profilerag/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/profilerag/internal/core/domain"
	"github.com/custodia-labs/profilerag/internal/core/ports/driven"
	"github.com/custodia-labs/profilerag/internal/logger"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
var pingTimeout = 5 * time.Second

// errNoProviders is returned when a strategy list is empty.
var errNoProviders = errors.New("no providers configured")

// InitResult contains the backends chosen at startup.
type InitResult struct {
	EmbeddingService driven.EmbeddingService
	LLMService       driven.LLMService
	EmbeddingReport  domain.StrategyReport
	LLMReport        domain.StrategyReport
	Warnings         []string // Non-fatal issues that caused fallback.
}

// Close releases all resources held by InitResult.
func (r *InitResult) Close() {
	if r.EmbeddingService != nil {
		_ = r.EmbeddingService.Close()
	}
	if r.LLMService != nil {
		_ = r.LLMService.Close()
	}
}

// Init selects an embedding and a generation backend. Neither failure is
// fatal here: a missing embedder fails setup later, and a missing LLM
// switches answers to the fallback path.
func Init(ctx context.Context, settings domain.AppSettings) *InitResult {
	result := &InitResult{}

	embed, report, err := SelectEmbedding(ctx, settings.Embedding)
	result.EmbeddingService = embed
	result.EmbeddingReport = report
	if err != nil {
		result.Warnings = append(result.Warnings, err.Error())
	} else if report.FellBack() {
		result.Warnings = append(result.Warnings, fallbackWarning("embedding", report))
	}

	llm, report, err := SelectLLM(ctx, settings.LLM)
	result.LLMService = llm
	result.LLMReport = report
	if err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%v; answers will use fallback mode", err))
	} else if report.FellBack() {
		result.Warnings = append(result.Warnings, fallbackWarning("llm", report))
	}

	for _, w := range result.Warnings {
		logger.Warn("%s", w)
	}
	return result
}

// SelectEmbedding tries each strategy in order and returns the first one that
// can be created and pinged.
func SelectEmbedding(
	ctx context.Context,
	strategies []domain.ProviderSettings,
) (driven.EmbeddingService, domain.StrategyReport, error) {
	var report domain.StrategyReport
	lastErr := errNoProviders

	for i := range strategies {
		s := &strategies[i]
		svc, err := CreateAndValidateEmbeddingService(ctx, s)
		if err != nil {
			report.Fail(s.Provider.String(), err)
			lastErr = err
			logger.Debug("Embedding strategy %s failed: %v", s.Provider, err)
			continue
		}
		report.Chosen = s.Provider.String()
		logger.Debug("Embedding strategy %s chosen (model %s)", s.Provider, svc.ModelName())
		return svc, report, nil
	}

	return nil, report, fmt.Errorf("%w: %w", domain.ErrEmbeddingUnavailable, lastErr)
}

// SelectLLM tries each strategy in order and returns the first one that
// can be created and pinged.
func SelectLLM(
	ctx context.Context,
	strategies []domain.ProviderSettings,
) (driven.LLMService, domain.StrategyReport, error) {
	var report domain.StrategyReport
	lastErr := errNoProviders

	for i := range strategies {
		s := &strategies[i]
		svc, err := CreateAndValidateLLMService(ctx, s)
		if err != nil {
			report.Fail(s.Provider.String(), err)
			lastErr = err
			logger.Debug("LLM strategy %s failed: %v", s.Provider, err)
			continue
		}
		report.Chosen = s.Provider.String()
		logger.Debug("LLM strategy %s chosen (model %s)", s.Provider, svc.ModelName())
		return svc, report, nil
	}

	return nil, report, fmt.Errorf("%w: %w", domain.ErrLLMUnavailable, lastErr)
}

// CreateAndValidateEmbeddingService creates an embedding service and validates connectivity.
func CreateAndValidateEmbeddingService(
	ctx context.Context,
	settings *domain.ProviderSettings,
) (driven.EmbeddingService, error) {
	svc, err := CreateEmbeddingService(ctx, settings)
	if err != nil {
		return nil, err
	}

	if err := ping(ctx, svc.Ping); err != nil {
		_ = svc.Close()
		return nil, fmt.Errorf("service unreachable (%w)", err)
	}
	return svc, nil
}

// CreateAndValidateLLMService creates an LLM service and validates connectivity.
func CreateAndValidateLLMService(ctx context.Context, settings *domain.ProviderSettings) (driven.LLMService, error) {
	svc, err := CreateLLMService(ctx, settings)
	if err != nil {
		return nil, err
	}

	if err := ping(ctx, svc.Ping); err != nil {
		_ = svc.Close()
		return nil, fmt.Errorf("service unreachable (%w)", err)
	}
	return svc, nil
}

// CreateEmbeddingService creates the embedding service named by the settings.
func CreateEmbeddingService(ctx context.Context, settings *domain.ProviderSettings) (driven.EmbeddingService, error) {
	if err := checkConfigured(settings); err != nil {
		return nil, err
	}

	switch settings.Provider {
	case domain.AIProviderOllama:
		return ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL:    settings.BaseURL,
			Model:      embeddingModel(settings),
			Dimensions: domain.EmbeddingDimensions()[embeddingModel(settings)],
		}), nil

	case domain.AIProviderOpenAI:
		return openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   embeddingModel(settings),
		})

	case domain.AIProviderGemini:
		return geminiembed.NewEmbeddingService(ctx, geminiembed.Config{
			APIKey: settings.APIKey,
			Model:  embeddingModel(settings),
		})

	case domain.AIProviderLocal:
		return localembed.NewEmbeddingService(localembed.DefaultDimensions), nil

	default:
		return nil, fmt.Errorf("%w: embedding provider %q", domain.ErrUnsupportedType, settings.Provider)
	}
}

// CreateLLMService creates the generation service named by the settings.
func CreateLLMService(ctx context.Context, settings *domain.ProviderSettings) (driven.LLMService, error) {
	if err := checkConfigured(settings); err != nil {
		return nil, err
	}

	model := settings.Model
	if model == "" {
		model = domain.DefaultLLMModels()[settings.Provider]
	}

	switch settings.Provider {
	case domain.AIProviderOllama:
		return ollamallm.NewLLMService(ollamallm.LLMConfig{
			BaseURL: settings.BaseURL,
			Model:   model,
		}), nil

	case domain.AIProviderOpenAI:
		return openaillm.NewLLMService(openaillm.LLMConfig{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   model,
		})

	case domain.AIProviderGemini:
		return geminillm.NewLLMService(ctx, geminillm.LLMConfig{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   model,
		})

	case domain.AIProviderLocal:
		return nil, fmt.Errorf("%w: local provider does not support generation", domain.ErrUnsupportedType)

	default:
		return nil, fmt.Errorf("%w: LLM provider %q", domain.ErrUnsupportedType, settings.Provider)
	}
}

func checkConfigured(settings *domain.ProviderSettings) error {
	switch {
	case settings == nil:
		return errNoProviders
	case !settings.Provider.IsValid():
		return fmt.Errorf("%w: provider %q", domain.ErrUnsupportedType, settings.Provider)
	case !settings.IsConfigured():
		return fmt.Errorf("%s requires an API key", settings.Provider)
	}
	return nil
}

func embeddingModel(settings *domain.ProviderSettings) string {
	if settings.Model != "" {
		return settings.Model
	}
	return domain.DefaultEmbeddingModels()[settings.Provider]
}

func ping(ctx context.Context, fn func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return fn(ctx)
}

func fallbackWarning(kind string, report domain.StrategyReport) string {
	msg := fmt.Sprintf("%s: using %s", kind, report.Chosen)
	for _, a := range report.Attempts {
		msg += fmt.Sprintf("; %s failed: %s", a.Name, a.Error)
	}
	return msg
}
