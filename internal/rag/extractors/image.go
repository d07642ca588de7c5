package extractors

import (
	"context"
	"fmt"

	"mentora/internal/rag/interfaces"
)

// VisionPrompt is the fixed instruction sent with every image. The model
// answers with extracted text and a description in one free-text block.
const VisionPrompt = "Extract all visible text in this image and also provide a detailed description of its visual content."

// ImageExtractor handles image media through a vision-capable model.
type ImageExtractor struct {
	vision interfaces.VisionModel
}

// NewImageExtractor creates an ImageExtractor backed by the given model.
func NewImageExtractor(vision interfaces.VisionModel) *ImageExtractor {
	return &ImageExtractor{vision: vision}
}

// Extract sends the raw image with the fixed instruction prompt and
// returns the model's response.
func (e *ImageExtractor) Extract(ctx context.Context, data []byte, mediaType string) (string, error) {
	text, err := e.vision.DescribeImage(ctx, VisionPrompt, data, mediaType)
	if err != nil {
		return "", fmt.Errorf("image extraction failed: %w", err)
	}
	return text, nil
}

var _ interfaces.Extractor = (*ImageExtractor)(nil)
