package extractors

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"mentora/internal/rag/interfaces"

	"github.com/unidoc/unioffice/v2/document"
)

// DocxExtractor handles Word documents by concatenating the text of every
// paragraph run.
type DocxExtractor struct{}

// NewDocxExtractor creates a DocxExtractor.
func NewDocxExtractor() *DocxExtractor {
	return &DocxExtractor{}
}

// Extract reads the .docx blob and returns its paragraph text.
func (e *DocxExtractor) Extract(ctx context.Context, data []byte, mediaType string) (string, error) {
	doc, err := document.Read(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("cannot open docx: %w", err)
	}
	defer doc.Close()

	var sb strings.Builder
	for _, p := range doc.Paragraphs() {
		for _, r := range p.Runs() {
			sb.WriteString(r.Text())
		}
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

var _ interfaces.Extractor = (*DocxExtractor)(nil)
