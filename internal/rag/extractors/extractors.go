// Package extractors turns raw uploaded blobs into plain text, one
// extractor per media family. Extractors are pure: the same bytes and
// media type always produce the same text, and no extractor keeps state
// between calls.
package extractors

import (
	"errors"
	"strings"

	"mentora/internal/rag/interfaces"

	"github.com/gabriel-vasile/mimetype"
)

// MIME types with dedicated extractors. Families (image/*, audio/*,
// video/*) are matched on their prefix.
const (
	MediaTypeText = "text/plain"
	MediaTypeJSON = "application/json"
	MediaTypePDF  = "application/pdf"
	MediaTypeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MediaTypeXlsx = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	MediaTypeHTML = "text/html"
)

// ErrUnsupportedMedia is returned when no extractor handles a media type.
var ErrUnsupportedMedia = errors.New("unsupported media type")

// Dispatcher routes a blob to the extractor for its media type.
type Dispatcher struct {
	text  *TextExtractor
	json  *JSONExtractor
	pdf   *PdfExtractor
	docx  *DocxExtractor
	xlsx  *XlsxExtractor
	html  *HTMLExtractor
	image *ImageExtractor
	audio *AudioExtractor
}

// NewDispatcher wires every extractor. The vision model and transcriber
// back the image and audio/video families.
func NewDispatcher(visionModel interfaces.VisionModel, transcriber interfaces.Transcriber) *Dispatcher {
	return &Dispatcher{
		text:  NewTextExtractor(),
		json:  NewJSONExtractor(),
		pdf:   NewPdfExtractor(),
		docx:  NewDocxExtractor(),
		xlsx:  NewXlsxExtractor(),
		html:  NewHTMLExtractor(),
		image: NewImageExtractor(visionModel),
		audio: NewAudioExtractor(transcriber),
	}
}

// ForMediaType returns the extractor responsible for the given MIME type.
func (d *Dispatcher) ForMediaType(mediaType string) (interfaces.Extractor, error) {
	// Strip parameters such as "; charset=utf-8".
	if i := strings.Index(mediaType, ";"); i >= 0 {
		mediaType = strings.TrimSpace(mediaType[:i])
	}

	switch {
	case mediaType == MediaTypeJSON:
		return d.json, nil
	case mediaType == MediaTypePDF:
		return d.pdf, nil
	case mediaType == MediaTypeDocx:
		return d.docx, nil
	case mediaType == MediaTypeXlsx:
		return d.xlsx, nil
	case mediaType == MediaTypeHTML:
		return d.html, nil
	case strings.HasPrefix(mediaType, "image/"):
		return d.image, nil
	case strings.HasPrefix(mediaType, "audio/"), strings.HasPrefix(mediaType, "video/"):
		return d.audio, nil
	case strings.HasPrefix(mediaType, "text/"):
		return d.text, nil
	}
	return nil, ErrUnsupportedMedia
}

// DetectMediaType sniffs the MIME type from content. Used when an upload
// declares no usable type.
func DetectMediaType(data []byte) string {
	return mimetype.Detect(data).String()
}
