package extractors

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"mentora/internal/rag/interfaces"
)

// JSONExtractor handles JSON uploads. The document is re-serialized
// pretty-printed rather than semantically parsed, so the indexed text
// keeps every key and value readable.
type JSONExtractor struct{}

// NewJSONExtractor creates a JSONExtractor.
func NewJSONExtractor() *JSONExtractor {
	return &JSONExtractor{}
}

// Extract validates and pretty-prints the JSON blob.
func (e *JSONExtractor) Extract(ctx context.Context, data []byte, mediaType string) (string, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return "", fmt.Errorf("blob is not valid JSON: %w", err)
	}
	return buf.String(), nil
}

var _ interfaces.Extractor = (*JSONExtractor)(nil)
