// Package llm sends text prompts to a hosted completion API.
package llm

import (
	"context"
	"fmt"
	"strings"

	"autoblog/config"
)

// Completer turns a prompt into a completion. Transport and auth failures
// come back as *GenerationError.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// GenerationError wraps a failed completion call.
type GenerationError struct {
	Provider string
	Cause    error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s completion failed: %v", e.Provider, e.Cause)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// New builds the completer for the configured provider.
func New(cfg config.LLMConfig) (Completer, error) {
	switch strings.ToLower(cfg.Provider) {
	case config.ProviderGemini, config.ProviderOpenAI:
		return NewOpenAICompleter(cfg), nil
	case config.ProviderCohere:
		return NewCohereCompleter(cfg), nil
	default:
		return nil, &config.ConfigurationError{Key: "LLM_PROVIDER", Purpose: "unknown provider " + cfg.Provider}
	}
}
