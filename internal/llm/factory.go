package llm

import (
	"fmt"
	"strings"
)

// Providers.
const (
	ProviderCopilot  = "copilot"
	ProviderOllama   = "ollama"
	ProviderLMStudio = "lmstudio"
)

// Providers lists the accepted provider names.
var Providers = []string{ProviderCopilot, ProviderOllama, ProviderLMStudio}

// NewClient creates an LLM client for the configured provider. An empty
// provider means Copilot.
func NewClient(provider, model, baseURL string) (Client, error) {
	switch normalizeProvider(provider) {
	case ProviderCopilot:
		return NewCopilotClient(model)
	case ProviderOllama:
		return NewOllamaClient(model, baseURL)
	case ProviderLMStudio:
		return NewLMStudioClient(model, baseURL)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", provider)
	}
}

func normalizeProvider(p string) string {
	switch p = strings.ToLower(strings.TrimSpace(p)); p {
	case "":
		return ProviderCopilot
	case "lm-studio", "llmstudio":
		return ProviderLMStudio
	}
	return p
}
