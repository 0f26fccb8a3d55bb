package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/profilerag/internal/core/domain"
)

func TestConfigValidator_ValidateEmbedding(t *testing.T) {
	v := NewConfigValidator()
	require.NotNil(t, v)

	tests := []struct {
		name     string
		settings *domain.ProviderSettings
		wantErr  error
		ok       bool
	}{
		{"nil settings", nil, nil, false},
		{"local always answers", &domain.ProviderSettings{Provider: domain.AIProviderLocal}, nil, true},
		{"unknown provider", &domain.ProviderSettings{Provider: "nope"}, domain.ErrUnsupportedType, false},
		{"unreachable ollama", &domain.ProviderSettings{Provider: domain.AIProviderOllama, BaseURL: deadURL(t)}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateEmbedding(tt.settings)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestConfigValidator_ValidateLLM(t *testing.T) {
	v := NewConfigValidator()

	assert.Error(t, v.ValidateLLM(nil))
	assert.ErrorIs(t, v.ValidateLLM(&domain.ProviderSettings{Provider: domain.AIProviderLocal}), domain.ErrUnsupportedType)
	assert.ErrorContains(t, v.ValidateLLM(&domain.ProviderSettings{Provider: domain.AIProviderGemini}), "requires an API key")
	assert.ErrorContains(t, v.ValidateLLM(&domain.ProviderSettings{Provider: domain.AIProviderOpenAI}), "requires an API key")
}

func TestConfigValidator_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewConfigValidator().WithContext(ctx).ValidateEmbedding(
		&domain.ProviderSettings{Provider: domain.AIProviderOllama, BaseURL: deadURL(t)})
	assert.Error(t, err)
}
