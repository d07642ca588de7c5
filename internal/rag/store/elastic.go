// Package store implements the document collection client on top of
// Elasticsearch: single-document writes and the hybrid lexical+vector
// ranked search.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"mentora/internal/database/elastic"
	"mentora/internal/rag/interfaces"
	"mentora/internal/rag/schema"
	"mentora/pkg/logger"
)

const (
	// resultSize bounds every search to the top ranked documents.
	resultSize = 5

	// lexicalBoost is the weight of the optional match clause on content.
	lexicalBoost = 0.5

	// minScore excludes documents that score no better than the
	// embedding-similarity baseline of a totally dissimilar vector
	// (cosine 0 plus the +1.0 shift).
	minScore = 1.0

	// listSize bounds the material listing.
	listSize = 100
)

// ErrDimensionMismatch is returned by Put when a document's embedding
// length differs from the index dimensionality.
var ErrDimensionMismatch = errors.New("embedding dimensionality mismatch")

// Store is the Elasticsearch-backed document store.
type Store struct {
	client *elastic.Client
	log    *logger.Logger
}

// NewStore creates a Store over an established Elasticsearch connection.
func NewStore(client *elastic.Client, log *logger.Logger) *Store {
	return &Store{client: client, log: log}
}

// Put serializes the document and writes it under its ID. Re-indexing an
// existing ID replaces the previous entry; both outcomes count as success.
// Empty embeddings are accepted (the document stays reachable lexically),
// but a non-empty embedding of the wrong dimensionality is rejected so one
// bad write cannot make vector scoring undefined for the whole collection.
func (s *Store) Put(ctx context.Context, doc *schema.Document) error {
	if dims := s.client.Config.Dimensions; len(doc.Embeddings) != 0 && len(doc.Embeddings) != dims {
		return fmt.Errorf("%w: got %d, index expects %d", ErrDimensionMismatch, len(doc.Embeddings), dims)
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("cannot serialize document '%s': %w", doc.ID, err)
	}

	res, err := s.client.ES.Index(
		s.client.Config.Index,
		bytes.NewReader(body),
		s.client.ES.Index.WithDocumentID(doc.ID),
		s.client.ES.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("cannot index document '%s': %w", doc.ID, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		raw, _ := io.ReadAll(res.Body)
		return fmt.Errorf("indexing document '%s' failed: %s", doc.ID, string(raw))
	}

	var indexed struct {
		Result string `json:"result"`
	}
	if err := json.NewDecoder(res.Body).Decode(&indexed); err != nil {
		return fmt.Errorf("cannot decode index response for '%s': %w", doc.ID, err)
	}
	if indexed.Result != "created" && indexed.Result != "updated" {
		return fmt.Errorf("unexpected index result '%s' for document '%s'", indexed.Result, doc.ID)
	}

	s.log.WithPayload(map[string]interface{}{"id": doc.ID, "result": indexed.Result}).
		Debug("document written to store")
	return nil
}

// buildSearchBody constructs the hybrid query.
//
// The vector similarity term is a required scoring clause evaluated for
// every document: cosineSimilarity shifted by +1.0 into the 0..2 range.
// Documents indexed without a vector (embedding failure at ingest) have no
// value for the dense_vector field and cosineSimilarity throws on them, so
// the script checks doc['embeddings'] first and scores vectorless documents
// at the constant baseline; they stay reachable through the lexical boost.
// The lexical match on content is an optional boost, never a gate
// (minimum_should_match 0). When no query vector is available the script
// degrades to the constant baseline so lexical ranking still functions.
// An exact-match type filter contributes no score, like a WHERE clause.
func buildSearchBody(req interfaces.SearchRequest) map[string]interface{} {
	scoring := map[string]interface{}{
		"script_score": map[string]interface{}{
			"query": map[string]interface{}{"match_all": map[string]interface{}{}},
			"script": map[string]interface{}{
				"source": "doc['embeddings'].size() == 0 ? 1.0 : cosineSimilarity(params.query_vector, 'embeddings') + 1.0",
				"params": map[string]interface{}{"query_vector": req.Vector},
			},
		},
	}
	if len(req.Vector) == 0 {
		scoring["script_score"].(map[string]interface{})["script"] = map[string]interface{}{
			"source": "1.0",
		}
	}

	boolQuery := map[string]interface{}{
		"must": []interface{}{scoring},
		"should": []interface{}{
			map[string]interface{}{
				"match": map[string]interface{}{
					"content": map[string]interface{}{
						"query": req.Text,
						"boost": lexicalBoost,
					},
				},
			},
		},
		"minimum_should_match": 0,
	}

	if req.TypeFilter != "" {
		boolQuery["filter"] = []interface{}{
			map[string]interface{}{
				"term": map[string]interface{}{
					"metadata.type": req.TypeFilter,
				},
			},
		}
	}

	return map[string]interface{}{
		"query":     map[string]interface{}{"bool": boolQuery},
		"size":      resultSize,
		"min_score": minScore,
	}
}

// Search runs the hybrid query and returns the hits most relevant first,
// in backend-assigned rank order.
func (s *Store) Search(ctx context.Context, req interfaces.SearchRequest) ([]*schema.Document, error) {
	body, err := json.Marshal(buildSearchBody(req))
	if err != nil {
		return nil, fmt.Errorf("cannot serialize search body: %w", err)
	}

	res, err := s.client.ES.Search(
		s.client.ES.Search.WithContext(ctx),
		s.client.ES.Search.WithIndex(s.client.Config.Index),
		s.client.ES.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		raw, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("search returned %s: %s", res.Status(), string(raw))
	}

	return decodeHits(res.Body)
}

// List returns the indexed documents, newest first, without embeddings.
func (s *Store) List(ctx context.Context) ([]*schema.Document, error) {
	body := map[string]interface{}{
		"query":   map[string]interface{}{"match_all": map[string]interface{}{}},
		"size":    listSize,
		"sort":    []interface{}{map[string]interface{}{"timestamp": "desc"}},
		"_source": map[string]interface{}{"excludes": []string{"embeddings"}},
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("cannot serialize list body: %w", err)
	}

	res, err := s.client.ES.Search(
		s.client.ES.Search.WithContext(ctx),
		s.client.ES.Search.WithIndex(s.client.Config.Index),
		s.client.ES.Search.WithBody(bytes.NewReader(raw)),
	)
	if err != nil {
		return nil, fmt.Errorf("list failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		raw, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("list returned %s: %s", res.Status(), string(raw))
	}

	return decodeHits(res.Body)
}

// decodeHits extracts the stored documents from a search response.
func decodeHits(body io.Reader) ([]*schema.Document, error) {
	var response struct {
		Hits struct {
			Hits []struct {
				ID     string          `json:"_id"`
				Source schema.Document `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(body).Decode(&response); err != nil {
		return nil, fmt.Errorf("cannot decode search response: %w", err)
	}

	docs := make([]*schema.Document, 0, len(response.Hits.Hits))
	for _, hit := range response.Hits.Hits {
		doc := hit.Source
		if doc.ID == "" {
			doc.ID = hit.ID
		}
		docs = append(docs, &doc)
	}
	return docs, nil
}

var _ interfaces.DocStore = (*Store)(nil)
