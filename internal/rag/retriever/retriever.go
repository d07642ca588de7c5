// Package retriever answers topic queries with the top ranked indexed
// documents, combining vector similarity with a lexical boost.
package retriever

import (
	"context"
	"fmt"

	"mentora/internal/rag/interfaces"
	"mentora/internal/rag/schema"
	"mentora/pkg/logger"
)

// Retriever builds and executes the hybrid query against the document
// store.
type Retriever struct {
	embedder interfaces.EmbeddingModel
	store    interfaces.DocStore
	log      *logger.Logger
}

// NewRetriever creates a Retriever.
func NewRetriever(embedder interfaces.EmbeddingModel, store interfaces.DocStore, log *logger.Logger) *Retriever {
	return &Retriever{embedder: embedder, store: store, log: log}
}

// Retrieve embeds the query and returns the ranked hits in backend order.
// When the query embedding fails, retrieval degrades to lexical-only
// ranking instead of failing the request. Embeddings are stripped from the
// returned documents; callers only see content and metadata.
func (r *Retriever) Retrieve(ctx context.Context, query, typeFilter string) ([]*schema.Document, error) {
	vector, err := r.embedder.Embed(ctx, query)
	if err != nil {
		r.log.Warn(fmt.Sprintf("query embedding failed, falling back to lexical ranking: %v", err))
		vector = nil
	}

	docs, err := r.store.Search(ctx, interfaces.SearchRequest{
		Vector:     vector,
		Text:       query,
		TypeFilter: typeFilter,
	})
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	for _, doc := range docs {
		doc.Embeddings = nil
	}

	r.log.WithPayload(map[string]interface{}{
		"query":   query,
		"filter":  typeFilter,
		"results": len(docs),
	}).Debug("retrieval finished")
	return docs, nil
}

var _ interfaces.Retriever = (*Retriever)(nil)
