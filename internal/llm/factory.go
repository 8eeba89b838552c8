package llm

import (
	"fmt"
	"strings"
)

// NewProvider creates a new generation provider based on configuration.
// A configured rate limit wraps the provider in a throttle.
func NewProvider(config Config) (Provider, error) {
	provider := strings.ToLower(config.Provider)

	var (
		p   Provider
		err error
	)

	switch provider {
	case "openai":
		p, err = NewOpenAIProvider(config)

	case "anthropic", "claude":
		p, err = NewAnthropicProvider(config)

	case "ollama":
		p, err = NewOllamaProvider(config)

	case "":
		// No provider configured - return nil (generation disabled)
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai, anthropic, ollama)", config.Provider)
	}

	if err != nil {
		return nil, err
	}

	if config.RateLimit > 0 {
		p = Throttle(p, config.RateLimit, 1)
	}

	return p, nil
}
