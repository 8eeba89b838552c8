package model

import (
	"os"
	"path/filepath"
	"time"
)

// Config is the complete Veritas configuration
type Config struct {
	LLM         LLMConfig         `yaml:"llm"`
	Embedding   EmbeddingConfig   `yaml:"embedding"`
	Store       StoreConfig       `yaml:"store"`
	Ingest      IngestConfig      `yaml:"ingest"`
	Retrieval   RetrievalConfig   `yaml:"retrieval"`
	Cache       CacheConfig       `yaml:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Output      OutputConfig      `yaml:"output"`
}

// LLMConfig configures the text-generation provider
type LLMConfig struct {
	Provider  string `yaml:"provider"` // openai, anthropic, ollama
	Model     string `yaml:"model"`
	APIKey    string `yaml:"-"` // never written to config files
	BaseURL   string `yaml:"base_url,omitempty"`
	Timeout   int    `yaml:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens"`

	// Requests per second against the provider API (0 = unlimited)
	RateLimit float64 `yaml:"rate_limit"`

	// Proxy settings
	HTTPProxy  string `yaml:"http_proxy,omitempty"`
	HTTPSProxy string `yaml:"https_proxy,omitempty"`
	NoProxy    string `yaml:"no_proxy,omitempty"`
}

// EmbeddingConfig configures the embedding model
type EmbeddingConfig struct {
	Model   string `yaml:"model"`
	APIKey  string `yaml:"-"`
	BaseURL string `yaml:"base_url,omitempty"`
	Timeout int    `yaml:"timeout"` // seconds
}

// StoreConfig configures the vector store
type StoreConfig struct {
	Path string `yaml:"path"` // bbolt database file
}

// IngestConfig configures document loading and chunking
type IngestConfig struct {
	// Glob patterns (doublestar syntax) matched against file paths under the root
	Include []string `yaml:"include"`

	ChunkSize    int `yaml:"chunk_size"`    // characters per chunk
	ChunkOverlap int `yaml:"chunk_overlap"` // overlapping characters between chunks
}

// RetrievalConfig configures passage retrieval
type RetrievalConfig struct {
	TopK int `yaml:"top_k"` // passages per query
}

// CacheConfig configures the layered embedding/answer cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// ConcurrencyConfig configures worker pools
type ConcurrencyConfig struct {
	BatchWorkers int `yaml:"batch_workers"` // concurrent questions in batch mode
}

// OutputConfig configures report output
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	return &Config{
		LLM: LLMConfig{
			Provider:  "openai",
			Model:     "",
			Timeout:   60,
			MaxTokens: 1500,
			RateLimit: 2,
		},
		Embedding: EmbeddingConfig{
			Model:   "text-embedding-3-small",
			Timeout: 30,
		},
		Store: StoreConfig{
			Path: filepath.Join(home, ".veritas", "vectors.db"),
		},
		Ingest: IngestConfig{
			Include:      []string{"**/*.txt", "**/*.md", "**/*.html"},
			ChunkSize:    1000,
			ChunkOverlap: 200,
		},
		Retrieval: RetrievalConfig{
			TopK: 3,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       filepath.Join(home, ".veritas", "cache"),
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			BatchWorkers: 4,
		},
		Output: OutputConfig{
			Verbose: false,
		},
	}
}
