package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the context engine.
type Config struct {
	Documents DocumentsConfig `yaml:"documents"`
	Chunking  ChunkingConfig  `yaml:"chunking"`
	Retrieve  RetrieveConfig  `yaml:"retrieve"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Gate      GateConfig      `yaml:"gate"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// DocumentsConfig selects the document store and the sources to index.
type DocumentsConfig struct {
	Store    string   `yaml:"store"`    // "fs" or "bolt"
	Dir      string   `yaml:"dir"`      // fs store: directory holding .txt documents
	DBPath   string   `yaml:"db_path"`  // bolt store: database file
	Sources  []string `yaml:"sources"`  // explicit source list; empty = discover
	Patterns []string `yaml:"patterns"` // discovery globs for the fs store
}

// ChunkingConfig holds document chunking configuration.
type ChunkingConfig struct {
	ChunkSize    int     `yaml:"chunk_size"`    // target chunk size in characters
	OverlapRatio float64 `yaml:"overlap_ratio"` // fraction of chunk size carried between chunks
}

// RetrieveConfig holds retrieval configuration.
type RetrieveConfig struct {
	TopK int `yaml:"top_k"`
}

// EmbeddingConfig holds embedding provider configuration.
type EmbeddingConfig struct {
	Provider          string  `yaml:"provider"`    // "openai", "ollama", "mock"
	Model             string  `yaml:"model"`       // e.g. "text-embedding-3-small"
	APIKeyEnv         string  `yaml:"api_key_env"` // environment variable holding the API key
	BaseURL           string  `yaml:"base_url"`
	Dimension         int     `yaml:"dimension"`
	BatchSize         int     `yaml:"batch_size"`
	RequestsPerSecond float64 `yaml:"requests_per_second"` // 0 = unthrottled
}

// GateConfig holds topic-gate configuration. An empty keyword list
// falls back to the built-in lending-domain set.
type GateConfig struct {
	Keywords []string `yaml:"keywords"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Documents: DocumentsConfig{
			Store:    "fs",
			Dir:      "data",
			DBPath:   "bankrag.db",
			Sources:  []string{"mutual_fund_sip.txt", "preventative_wellness.txt"},
			Patterns: []string{"**/*.txt"},
		},
		Chunking: ChunkingConfig{
			ChunkSize:    800,
			OverlapRatio: 0.2,
		},
		Retrieve: RetrieveConfig{
			TopK: 2,
		},
		Embedding: EmbeddingConfig{
			Provider:  "openai",
			Model:     "text-embedding-3-small",
			APIKeyEnv: "OPENAI_API_KEY",
			Dimension: 1536,
			BatchSize: 100,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load loads configuration from a YAML file, applying defaults for
// anything unset. A missing file returns the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for
// bankrag.yaml, then .bankrag/config.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "bankrag.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".bankrag", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
