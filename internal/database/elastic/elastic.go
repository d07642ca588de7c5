package elastic

import (
	"context"
	"fmt"
	"io"
	"strings"

	"mentora/internal/config"

	"github.com/elastic/go-elasticsearch/v8"
)

// Client wraps the Elasticsearch client together with its configuration.
type Client struct {
	ES     *elasticsearch.Client
	Config *config.ElasticsearchConfig
}

// NewClient connects to the Elasticsearch cluster described by cfg.
func NewClient(cfg *config.ElasticsearchConfig) (*Client, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.Addresses,
		APIKey:    cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("cannot connect to Elasticsearch: %w", err)
	}
	return &Client{ES: es, Config: cfg}, nil
}

// HealthCheck verifies the cluster is reachable.
func (c *Client) HealthCheck(ctx context.Context) error {
	res, err := c.ES.Ping(c.ES.Ping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("elasticsearch ping failed: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("elasticsearch ping returned %s", res.Status())
	}
	return nil
}

// mappingTemplate is the index mapping for study materials. The embeddings
// field dimensionality comes from config and must match the embedding
// provider's output; metadata.type is a keyword so exact-match filtering
// works.
const mappingTemplate = `{
  "mappings": {
    "properties": {
      "id":        {"type": "keyword"},
      "content":   {"type": "text"},
      "embeddings": {"type": "dense_vector", "dims": %d},
      "metadata": {
        "properties": {
          "filename":   {"type": "keyword"},
          "type":       {"type": "keyword"},
          "size":       {"type": "long"},
          "source_url": {"type": "keyword"}
        }
      },
      "timestamp": {"type": "date"}
    }
  }
}`

// EnsureIndex creates the configured index with the expected mapping when
// it does not exist yet.
func (c *Client) EnsureIndex(ctx context.Context) error {
	index := c.Config.Index

	res, err := c.ES.Indices.Exists(
		[]string{index},
		c.ES.Indices.Exists.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("cannot check index '%s': %w", index, err)
	}
	io.Copy(io.Discard, res.Body)
	res.Body.Close()
	if res.StatusCode == 200 {
		return nil
	}

	mapping := fmt.Sprintf(mappingTemplate, c.Config.Dimensions)
	createRes, err := c.ES.Indices.Create(
		index,
		c.ES.Indices.Create.WithBody(strings.NewReader(mapping)),
		c.ES.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("cannot create index '%s': %w", index, err)
	}
	defer createRes.Body.Close()
	if createRes.IsError() {
		body, _ := io.ReadAll(createRes.Body)
		return fmt.Errorf("index creation for '%s' failed: %s", index, string(body))
	}
	return nil
}
