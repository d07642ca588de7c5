package interfaces

import (
	"context"

	"mentora/internal/rag/schema"
)

// Extractor is the interface for turning a raw uploaded blob of a given
// media type into plain text.
type Extractor interface {
	Extract(ctx context.Context, data []byte, mediaType string) (string, error)
}

// EmbeddingModel is the interface for a text embedding model.
type EmbeddingModel interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// SearchRequest describes one hybrid query against the document store.
type SearchRequest struct {
	// Vector is the embedded query. An empty vector degrades the vector
	// term to its constant baseline, leaving lexical ranking in charge.
	Vector []float32

	// Text is the raw query string used for the lexical boost clause.
	Text string

	// TypeFilter, when non-empty, restricts results to documents whose
	// metadata type equals it exactly.
	TypeFilter string
}

// DocStore is the interface for the document collection: single-document
// writes and hybrid ranked search.
type DocStore interface {
	Put(ctx context.Context, doc *schema.Document) error
	Search(ctx context.Context, req SearchRequest) ([]*schema.Document, error)
	List(ctx context.Context) ([]*schema.Document, error)
}

// Retriever is the interface for ranked retrieval of indexed documents.
type Retriever interface {
	Retrieve(ctx context.Context, query, typeFilter string) ([]*schema.Document, error)
}

// LLM is the interface for a model that can generate text from a prompt.
type LLM interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// VisionModel is the interface for a model that can read an image.
type VisionModel interface {
	DescribeImage(ctx context.Context, prompt string, data []byte, mimeType string) (string, error)
}

// Transcriber is the interface for a speech-to-text model. It takes a file
// path because transcription backends require a file handle.
type Transcriber interface {
	Transcribe(ctx context.Context, path string) (string, error)
}
