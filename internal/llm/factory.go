package llm

import (
	"fmt"
	"strings"

	"github.com/ppiankov/aspecta/internal/model"
)

// NewProvider creates a new LLM provider based on configuration
func NewProvider(config Config) (Provider, error) {
	provider := strings.ToLower(config.Provider)

	switch provider {
	case "openai":
		return NewOpenAIProvider(config)

	case "anthropic", "claude":
		return NewAnthropicProvider(config)

	case "ollama":
		return NewOllamaProvider(config)

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai, anthropic, ollama)", config.Provider)
	}
}

// IsProvider reports whether name selects an LLM provider
func IsProvider(name string) bool {
	switch strings.ToLower(name) {
	case "openai", "anthropic", "claude", "ollama":
		return true
	}
	return false
}

// ConfigFromModel converts the predictor and HTTP sections of the
// configuration into an llm.Config
func ConfigFromModel(predictor model.PredictorConfig, http model.HTTPConfig) Config {
	return Config{
		Provider:     predictor.Provider,
		Model:        predictor.Model,
		APIKey:       predictor.APIKey,
		BaseURL:      predictor.BaseURL,
		Timeout:      predictor.Timeout,
		StrictLabels: predictor.StrictLabels,
		MaxTokens:    predictor.MaxTokens,
		HTTPProxy:    http.HTTPProxy,
		HTTPSProxy:   http.HTTPSProxy,
	}
}
