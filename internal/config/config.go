// Package config loads and saves the TOML configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config is the top-level configuration, stored at ~/.askdoc/config.toml.
type Config struct {
	// DataDir overrides where the corpus database lives
	// (default ~/.askdoc/data).
	DataDir string `toml:"data_dir"`

	Chunker   ChunkerConfig   `toml:"chunker"`
	Embedding EmbeddingConfig `toml:"embedding"`
	Generator GeneratorConfig `toml:"generator"`
	Retrieval RetrievalConfig `toml:"retrieval"`
}

// ChunkerConfig controls document chunking.
type ChunkerConfig struct {
	// Size is the chunk budget in words.
	Size int `toml:"size"`

	// Overlap is the number of words shared between adjacent chunks.
	Overlap int `toml:"overlap"`
}

// EmbeddingConfig selects and tunes the embedding backend.
type EmbeddingConfig struct {
	// Backend is "auto", "ollama", "openai" or "tfidf". With "auto" the
	// Ollama server is probed at startup and TF-IDF is used when it is
	// not reachable.
	Backend string `toml:"backend"`

	// BaseURL of the embedding server, when applicable.
	BaseURL string `toml:"base_url"`

	// Model name for dense backends.
	Model string `toml:"model"`

	// APIKeyEnv names the environment variable holding the API key.
	APIKeyEnv string `toml:"api_key_env"`

	// RequestsPerSecond throttles embedding calls.
	RequestsPerSecond float64 `toml:"requests_per_second"`
}

// GeneratorConfig selects and tunes the answer generator.
type GeneratorConfig struct {
	// Provider is "ollama", "openai" or "none".
	Provider string `toml:"provider"`

	// BaseURL of the generation server, when applicable.
	BaseURL string `toml:"base_url"`

	// Model name for generation.
	Model string `toml:"model"`

	// APIKeyEnv names the environment variable holding the API key.
	APIKeyEnv string `toml:"api_key_env"`

	// TimeoutSeconds bounds a single generation call (30 to 300).
	TimeoutSeconds int `toml:"timeout_seconds"`

	// MaxTokens limits generated answer length.
	MaxTokens int `toml:"max_tokens"`

	// Temperature for generation.
	Temperature float64 `toml:"temperature"`
}

// RetrievalConfig tunes retrieval.
type RetrievalConfig struct {
	// MaxResults caps how many chunks a query retrieves.
	MaxResults int `toml:"max_results"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Chunker: ChunkerConfig{
			Size:    500,
			Overlap: 50,
		},
		Embedding: EmbeddingConfig{
			Backend:           "auto",
			Model:             "nomic-embed-text",
			RequestsPerSecond: 10,
		},
		Generator: GeneratorConfig{
			Provider:       "ollama",
			Model:          "llama3.2",
			TimeoutSeconds: 120,
			MaxTokens:      500,
			Temperature:    0.1,
		},
		Retrieval: RetrievalConfig{
			MaxResults: 5,
		},
	}
}

// DefaultPath returns the standard config file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".askdoc", "config.toml"), nil
}

// Load reads the config file at path, falling back to defaults when the file
// does not exist. Fields missing from the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.clamp()
	return cfg, nil
}

// Save writes the config to path, creating parent directories as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// clamp keeps tunables inside their valid ranges.
func (c *Config) clamp() {
	if c.Chunker.Size <= 0 {
		c.Chunker.Size = 500
	}
	if c.Chunker.Overlap < 0 || c.Chunker.Overlap >= c.Chunker.Size {
		c.Chunker.Overlap = c.Chunker.Size / 10
	}
	if c.Generator.TimeoutSeconds < 30 {
		c.Generator.TimeoutSeconds = 30
	}
	if c.Generator.TimeoutSeconds > 300 {
		c.Generator.TimeoutSeconds = 300
	}
	if c.Retrieval.MaxResults <= 0 {
		c.Retrieval.MaxResults = 5
	}
}
