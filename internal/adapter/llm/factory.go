package llm

import (
	"fmt"

	"github.com/xiaot623/adgenie/internal/config"
)

// NewLLMClient creates an LLM client from the configuration.
// ADGENIE_MODE=MOCK returns a MockClient; otherwise LLM_PROVIDER picks the transport.
func NewLLMClient(cfg *config.Config) (LLMClient, error) {
	if cfg.Mode == config.ModeMock {
		return NewMockClient(), nil
	}

	switch cfg.LLMProvider {
	case config.ProviderAzure, "":
		return NewAzureClient(cfg.AzureEndpoint, cfg.AzureAPIKey, cfg.AzureAPIVersion, cfg.LLMTimeout), nil
	case config.ProviderOpenAI:
		return NewClient(cfg.AzureEndpoint, cfg.AzureAPIKey, cfg.LLMTimeout), nil
	case config.ProviderLangChain:
		return NewLangChainOpenAI(StyleAzure, cfg.AzureEndpoint, cfg.AzureAPIKey, cfg.AzureDeployment, cfg.AzureAPIVersion)
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.LLMProvider)
	}
}
