package vision

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Gemini is a vision client backed by a multimodal GenAI model.
type Gemini struct {
	model *genai.GenerativeModel
}

// NewGemini creates a vision client with a fixed multimodal model.
func NewGemini(ctx context.Context, model, apiKey string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &Gemini{model: client.GenerativeModel(model)}, nil
}

// DescribeImage sends the instruction prompt together with the raw image
// bytes and returns the model's free-text response.
func (g *Gemini) DescribeImage(ctx context.Context, prompt string, data []byte, mimeType string) (string, error) {
	// genai wants the bare image format, not the full MIME type.
	format := strings.TrimPrefix(mimeType, "image/")

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt), genai.ImageData(format, data))
	if err != nil {
		return "", fmt.Errorf("vision model call failed: %w", err)
	}

	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("vision model returned no text")
	}
	return sb.String(), nil
}
