package llm

import (
	"errors"
	"os"
	"strings"

	"github.com/openai/openai-go/option"
)

const defaultLMStudioBaseURL = "http://localhost:1234/v1"

// NewLMStudioClient creates a client for a local LM Studio server. LM Studio
// ignores the key but the SDK wants one.
func NewLMStudioClient(model, baseURL string) (*OpenAIClient, error) {
	if strings.TrimSpace(model) == "" {
		return nil, errors.New("lm studio model is required")
	}
	if baseURL == "" {
		baseURL = defaultLMStudioBaseURL
	}
	return newOpenAIClient(ProviderLMStudio, model, baseURL, option.WithAPIKey(lmStudioKey())), nil
}

func lmStudioKey() string {
	for _, name := range []string{"LMSTUDIO_API_KEY", "OPENAI_API_KEY"} {
		if key := os.Getenv(name); key != "" {
			return key
		}
	}
	return "lm-studio"
}
