// Package indexer turns an extracted document into a persisted, searchable
// entry: it derives the embedding and writes content and embedding to the
// store together, so a stored document is never half-updated.
package indexer

import (
	"context"
	"errors"
	"fmt"

	"mentora/internal/rag/interfaces"
	"mentora/internal/rag/schema"
	"mentora/pkg/logger"
)

// ErrEmptyContent is returned when a document with no extracted text is
// handed to Ingest. Content is required before anything is written.
var ErrEmptyContent = errors.New("document has no content")

// Indexer orchestrates the embedding provider and the document store.
type Indexer struct {
	embedder interfaces.EmbeddingModel
	store    interfaces.DocStore
	log      *logger.Logger
}

// NewIndexer creates an Indexer.
func NewIndexer(embedder interfaces.EmbeddingModel, store interfaces.DocStore, log *logger.Logger) *Indexer {
	return &Indexer{embedder: embedder, store: store, log: log}
}

// Ingest embeds the document content, attaches the vector and writes the
// document. An embedding failure does not block indexing: the document is
// stored with empty embeddings and stays reachable by lexical match only.
// A store failure is returned to the caller.
func (i *Indexer) Ingest(ctx context.Context, doc *schema.Document) error {
	if doc.Content == "" {
		return ErrEmptyContent
	}

	embeddings, err := i.embedder.Embed(ctx, doc.Content)
	if err != nil {
		i.log.WithPayload(map[string]interface{}{"id": doc.ID}).
			Warn(fmt.Sprintf("embedding failed, indexing without vector: %v", err))
		embeddings = nil
	}
	doc.Embeddings = embeddings

	if err := i.store.Put(ctx, doc); err != nil {
		return fmt.Errorf("cannot store document '%s': %w", doc.ID, err)
	}

	i.log.WithPayload(map[string]interface{}{
		"id":       doc.ID,
		"type":     doc.MediaType(),
		"embedded": len(doc.Embeddings) > 0,
		"chars":    len(doc.Content),
	}).Info("document indexed")
	return nil
}
