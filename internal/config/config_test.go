package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFile_ReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)

	assert.Equal(t, 500, cfg.Chunker.Size)
	assert.Equal(t, 50, cfg.Chunker.Overlap)
	assert.Equal(t, "auto", cfg.Embedding.Backend)
	assert.Equal(t, "ollama", cfg.Generator.Provider)
	assert.Equal(t, 120, cfg.Generator.TimeoutSeconds)
	assert.Equal(t, 5, cfg.Retrieval.MaxResults)
}

func TestLoad_PartialFile_KeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[embedding]
backend = "tfidf"

[chunker]
size = 200
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "tfidf", cfg.Embedding.Backend)
	assert.Equal(t, 200, cfg.Chunker.Size)
	// Untouched sections keep their defaults.
	assert.Equal(t, "ollama", cfg.Generator.Provider)
	assert.Equal(t, 5, cfg.Retrieval.MaxResults)
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("not [valid toml"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_ClampsOutOfRangeValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[chunker]
size = 100
overlap = 100

[generator]
timeout_seconds = 5

[retrieval]
max_results = -1
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Chunker.Overlap, "overlap must stay below size")
	assert.Equal(t, 30, cfg.Generator.TimeoutSeconds, "timeout clamped to minimum")
	assert.Equal(t, 5, cfg.Retrieval.MaxResults)
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := Default()
	cfg.Embedding.Backend = "openai"
	cfg.Embedding.APIKeyEnv = "OPENAI_API_KEY"
	cfg.Generator.Provider = "none"

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "openai", loaded.Embedding.Backend)
	assert.Equal(t, "OPENAI_API_KEY", loaded.Embedding.APIKeyEnv)
	assert.Equal(t, "none", loaded.Generator.Provider)
}
