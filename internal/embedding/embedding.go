package embedding

import (
	"fmt"

	"mentora/internal/config"
)

// NewEmdModel creates the embedding provider selected by the configuration.
func NewEmdModel(cfg *config.EmbeddingConfig) (Embedding, error) {
	switch ModelType(cfg.Provider) {
	case OpenAI:
		return NewOpenAIModel(cfg.APIKey, cfg.Model)
	case Google:
		return NewGoogleModel(cfg.APIKey, cfg.Model)
	case Ollama:
		return NewOllamaModel(cfg.Model, cfg.BaseURL)
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", cfg.Provider)
	}
}
