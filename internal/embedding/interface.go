package embedding

import "context"

// Embedding is the interface every embedding provider implements. The
// output dimensionality of a provider is constant process-wide; mixing
// dimensionalities in one collection makes vector scoring undefined.
type Embedding interface {
	// Embed generates the embedding vector for a single text.
	Embed(ctx context.Context, text string) ([]float32, error)
}

// ModelType enumerates the supported providers.
type ModelType string

const (
	OpenAI ModelType = "openai"
	Google ModelType = "gemini"
	Ollama ModelType = "ollama"
)
