package extractors

import (
	"context"
	"fmt"
	"unicode/utf8"

	"mentora/internal/rag/interfaces"
)

// TextExtractor handles plain text media: the bytes are the content.
type TextExtractor struct{}

// NewTextExtractor creates a TextExtractor.
func NewTextExtractor() *TextExtractor {
	return &TextExtractor{}
}

// Extract decodes the blob as UTF-8 text verbatim.
func (e *TextExtractor) Extract(ctx context.Context, data []byte, mediaType string) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("text blob is not valid UTF-8")
	}
	return string(data), nil
}

var _ interfaces.Extractor = (*TextExtractor)(nil)
