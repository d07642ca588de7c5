package extractors

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"mentora/internal/rag/interfaces"

	"github.com/ledongthuc/pdf"
)

// PdfExtractor handles PDF media by concatenating the extracted text of
// every page in page order.
type PdfExtractor struct{}

// NewPdfExtractor creates a PdfExtractor.
func NewPdfExtractor() *PdfExtractor {
	return &PdfExtractor{}
}

// Extract opens the blob as a paged document and joins the page texts.
// Pages whose text cannot be decoded are skipped; a malformed document is
// an extraction failure.
func (e *PdfExtractor) Extract(ctx context.Context, data []byte, mediaType string) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("cannot open PDF: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

var _ interfaces.Extractor = (*PdfExtractor)(nil)
