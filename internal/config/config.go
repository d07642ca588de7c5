package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Port string `yaml:"port"` // listen address, e.g. ":8080"
}

// ElasticsearchConfig holds the connection and index settings for the
// document store.
type ElasticsearchConfig struct {
	Addresses  []string `yaml:"addresses"`  // cluster node URLs
	APIKey     string   `yaml:"apiKey"`     // API key auth, empty disables it
	Index      string   `yaml:"index"`      // index holding study materials
	Dimensions int      `yaml:"dimensions"` // dense_vector dims, must match the embedding provider
}

// RedisConfig holds the connection settings for the session store.
type RedisConfig struct {
	Address    string `yaml:"address"`
	Password   string `yaml:"password"`
	DB         int    `yaml:"db"`
	SessionTTL int    `yaml:"sessionTTL"` // seconds a learner profile survives without activity
}

// MinIOConfig holds the object storage settings for raw upload archiving.
type MinIOConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	Secure    bool   `yaml:"secure"`
}

// EmbeddingConfig selects and configures the embedding provider.
type EmbeddingConfig struct {
	Provider string `yaml:"provider"` // "openai", "gemini" or "ollama"
	Model    string `yaml:"model"`    // e.g. "text-embedding-ada-002"
	APIKey   string `yaml:"apiKey"`
	BaseURL  string `yaml:"baseURL,omitempty"` // only used by ollama
}

// LLMConfig selects and configures the generation model.
type LLMConfig struct {
	Provider  string `yaml:"provider"` // "openai" or "ollama"
	Model     string `yaml:"model"`    // e.g. "gpt-3.5-turbo"
	APIKey    string `yaml:"apiKey"`
	BaseURL   string `yaml:"baseURL,omitempty"`
	MaxTokens int    `yaml:"maxTokens"` // cap on generated tokens per answer
}

// VisionConfig configures the image understanding model.
type VisionConfig struct {
	Model  string `yaml:"model"` // e.g. "gemini-1.5-flash"
	APIKey string `yaml:"apiKey"`
}

// TranscriptionConfig configures the speech-to-text model.
type TranscriptionConfig struct {
	Model  string `yaml:"model"` // e.g. "whisper-1"
	APIKey string `yaml:"apiKey"`
}

// AppConfig is the root configuration of the learning service.
type AppConfig struct {
	Server        ServerConfig        `yaml:"server"`
	Elasticsearch ElasticsearchConfig `yaml:"elasticsearch"`
	Redis         RedisConfig         `yaml:"redis"`
	MinIO         MinIOConfig         `yaml:"minio"`
	Embedding     EmbeddingConfig     `yaml:"embedding"`
	LLM           LLMConfig           `yaml:"llm"`
	Vision        VisionConfig        `yaml:"vision"`
	Transcription TranscriptionConfig `yaml:"transcription"`
}

// LoadConfig reads and parses the YAML configuration file at path.
func LoadConfig(path string) (*AppConfig, error) {
	yamlFile, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read config file '%s': %w", path, err)
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(yamlFile, &cfg); err != nil {
		return nil, fmt.Errorf("cannot parse config file: %w", err)
	}
	return &cfg, nil
}
