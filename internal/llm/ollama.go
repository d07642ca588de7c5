package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	ollama "github.com/ollama/ollama/api"
)

// Ollama is a chat client for a local Ollama server.
type Ollama struct {
	client    *ollama.Client
	model     string
	maxTokens int
}

// NewOllama creates an Ollama chat client. An empty baseURL defaults to the
// local server.
func NewOllama(model, baseURL string, maxTokens int) (*Ollama, error) {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}

	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	hc := &http.Client{Timeout: 300 * time.Second}
	return &Ollama{client: ollama.NewClient(parsedURL, hc), model: model, maxTokens: maxTokens}, nil
}

// Generate sends the prompt as a system message and collects the response.
func (o *Ollama) Generate(ctx context.Context, prompt string) (string, error) {
	stream := false
	req := &ollama.ChatRequest{
		Model: o.model,
		Messages: []ollama.Message{
			{Role: "system", Content: prompt},
		},
		Stream: &stream,
		Options: map[string]interface{}{
			"num_predict": o.maxTokens,
		},
	}

	var sb strings.Builder
	err := o.client.Chat(ctx, req, func(resp ollama.ChatResponse) error {
		sb.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama chat failed: %w", err)
	}
	return sb.String(), nil
}

var _ LLM = (*Ollama)(nil)
