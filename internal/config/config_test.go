package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	content := `
server:
  port: ":8080"
elasticsearch:
  addresses:
    - "http://localhost:9200"
  index: "study_materials"
  dimensions: 1536
redis:
  address: "localhost:6379"
  sessionTTL: 3600
embedding:
  provider: "openai"
  model: "text-embedding-ada-002"
  apiKey: "test-key"
llm:
  provider: "openai"
  model: "gpt-3.5-turbo"
  maxTokens: 1000
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("cannot write test config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Server.Port != ":8080" {
		t.Errorf("Server.Port = %q", cfg.Server.Port)
	}
	if len(cfg.Elasticsearch.Addresses) != 1 || cfg.Elasticsearch.Addresses[0] != "http://localhost:9200" {
		t.Errorf("Elasticsearch.Addresses = %v", cfg.Elasticsearch.Addresses)
	}
	if cfg.Elasticsearch.Dimensions != 1536 {
		t.Errorf("Elasticsearch.Dimensions = %d", cfg.Elasticsearch.Dimensions)
	}
	if cfg.Redis.SessionTTL != 3600 {
		t.Errorf("Redis.SessionTTL = %d", cfg.Redis.SessionTTL)
	}
	if cfg.Embedding.Provider != "openai" || cfg.Embedding.Model != "text-embedding-ada-002" {
		t.Errorf("Embedding = %+v", cfg.Embedding)
	}
	if cfg.LLM.MaxTokens != 1000 {
		t.Errorf("LLM.MaxTokens = %d", cfg.LLM.MaxTokens)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Expected an error for a missing config file")
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server: [broken"), 0o644); err != nil {
		t.Fatalf("cannot write test config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("Expected an error for malformed YAML")
	}
}
