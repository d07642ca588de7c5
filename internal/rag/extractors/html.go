package extractors

import (
	"context"
	"fmt"

	"mentora/internal/rag/interfaces"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// HTMLExtractor handles HTML pages, converting them to Markdown. This
// backs the URL-ingestion path: headings and lists survive into the
// indexed text while markup noise is dropped.
type HTMLExtractor struct{}

// NewHTMLExtractor creates an HTMLExtractor.
func NewHTMLExtractor() *HTMLExtractor {
	return &HTMLExtractor{}
}

// Extract converts the HTML blob to Markdown text.
func (e *HTMLExtractor) Extract(ctx context.Context, data []byte, mediaType string) (string, error) {
	markdown, err := htmltomarkdown.ConvertString(string(data))
	if err != nil {
		return "", fmt.Errorf("cannot convert HTML: %w", err)
	}
	return markdown, nil
}

var _ interfaces.Extractor = (*HTMLExtractor)(nil)
