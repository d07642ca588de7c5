package llm

import (
	"context"
	"fmt"

	"mentora/internal/config"
)

// LLM is the common interface of all generation model clients. The prompt
// is sent as a single system message; the response is the model's plain
// text output.
type LLM interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// NewClient creates the generation client selected by the configuration.
func NewClient(cfg *config.LLMConfig) (LLM, error) {
	switch cfg.Provider {
	case "openai":
		return NewOpenAI(cfg.Model, cfg.APIKey, cfg.MaxTokens)
	case "ollama":
		return NewOllama(cfg.Model, cfg.BaseURL, cfg.MaxTokens)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
