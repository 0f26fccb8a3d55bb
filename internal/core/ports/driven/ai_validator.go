package driven

import "github.com/custodia-labs/profilerag/internal/core/domain"

// AIConfigValidator checks a provider configuration before it is saved by
// building the service and pinging it.
type AIConfigValidator interface {
	ValidateEmbedding(settings *domain.ProviderSettings) error
	ValidateLLM(settings *domain.ProviderSettings) error
}
