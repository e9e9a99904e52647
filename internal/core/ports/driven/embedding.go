package driven

import "context"

// EmbeddingService generates vector embeddings for text.
//
// Two kinds of backend implement it. Dense backends (Ollama, OpenAI) embed
// each text independently; their vectors stay valid as the corpus changes and
// Incremental reports true. Sparse backends (TF-IDF) derive their vector
// space from the corpus itself; every corpus mutation requires a Fit over the
// full corpus followed by re-embedding, and Incremental reports false.
type EmbeddingService interface {
	// Name identifies the backend, e.g. "ollama" or "tfidf". Vectors from
	// different backends are never comparable.
	Name() string

	// Fit prepares the backend for the given corpus of texts.
	// A no-op for dense backends.
	Fit(ctx context.Context, corpus []string) error

	// Embed generates an embedding for a single text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size. Sparse backends report
	// zero until fitted.
	Dimensions() int

	// Incremental reports whether previously generated vectors remain valid
	// when the corpus changes.
	Incremental() bool

	// Ping checks if the backend is available.
	Ping(ctx context.Context) error

	// Close releases resources held by the backend.
	Close() error
}
