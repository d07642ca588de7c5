package extractors

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"mentora/internal/rag/interfaces"

	"github.com/xuri/excelize/v2"
)

// XlsxExtractor handles Excel workbooks, rendering each sheet as a
// Markdown table so row and column relations survive into plain text.
type XlsxExtractor struct{}

// NewXlsxExtractor creates an XlsxExtractor.
func NewXlsxExtractor() *XlsxExtractor {
	return &XlsxExtractor{}
}

// Extract reads the .xlsx blob and returns every sheet as a titled
// Markdown table.
func (e *XlsxExtractor) Extract(ctx context.Context, data []byte, mediaType string) (string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("cannot open xlsx: %w", err)
	}
	defer f.Close()

	var sb strings.Builder
	for _, sheetName := range f.GetSheetList() {
		rows, err := f.GetRows(sheetName)
		if err != nil || len(rows) == 0 {
			continue
		}

		sb.WriteString("## " + sheetName + "\n\n")
		sb.WriteString("| " + strings.Join(rows[0], " | ") + " |\n")
		sb.WriteString("|" + strings.Repeat(" --- |", len(rows[0])) + "\n")
		for _, row := range rows[1:] {
			sb.WriteString("| " + strings.Join(row, " | ") + " |\n")
		}
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

var _ interfaces.Extractor = (*XlsxExtractor)(nil)
