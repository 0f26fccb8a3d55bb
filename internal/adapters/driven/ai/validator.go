package ai

import (
	"context"

	"github.com/custodia-labs/profilerag/internal/core/domain"
	"github.com/custodia-labs/profilerag/internal/core/ports/driven"
)

var _ driven.AIConfigValidator = (*ConfigValidator)(nil)

// ConfigValidator checks provider settings from the config wizards by
// building the service, pinging it and closing it again.
type ConfigValidator struct {
	ctx context.Context
}

// NewConfigValidator returns a validator bound to the background context.
func NewConfigValidator() *ConfigValidator {
	return &ConfigValidator{ctx: context.Background()}
}

// WithContext returns a validator whose checks stop when ctx is done.
func (v *ConfigValidator) WithContext(ctx context.Context) *ConfigValidator {
	return &ConfigValidator{ctx: ctx}
}

// ValidateEmbedding reports whether the embedding provider answers.
func (v *ConfigValidator) ValidateEmbedding(settings *domain.ProviderSettings) error {
	svc, err := CreateAndValidateEmbeddingService(v.ctx, settings)
	if err != nil {
		return err
	}
	return svc.Close()
}

// ValidateLLM reports whether the generation provider answers.
func (v *ConfigValidator) ValidateLLM(settings *domain.ProviderSettings) error {
	svc, err := CreateAndValidateLLMService(v.ctx, settings)
	if err != nil {
		return err
	}
	return svc.Close()
}
