// Package driving defines the inbound interfaces exposed by the core services.
package driving

import (
	"context"

	"github.com/askdoc-labs/askdoc-cli/internal/core/domain"
)

// CorpusService manages the document corpus.
type CorpusService interface {
	// Ingest adds a document to the corpus: chunks the extracted text,
	// embeds the chunks, persists everything and rebuilds the index.
	// Returns domain.ErrDuplicateDocument when the content hash is already
	// present and domain.ErrEmptyDocument when the text yields no chunks.
	Ingest(ctx context.Context, text string, filename string, byteSize int64, contentHash string) (*domain.Document, error)

	// Remove deletes a document and its chunks and rebuilds the index.
	// Returns false without error when no document has the given ID.
	Remove(ctx context.Context, documentID string) (bool, error)

	// Documents lists all documents in the corpus.
	Documents(ctx context.Context) ([]domain.Document, error)

	// Chunks returns a document's chunks ordered by position.
	// Returns domain.ErrNotFound when the document does not exist.
	Chunks(ctx context.Context, documentID string) ([]domain.Chunk, error)

	// Reload rebuilds the in-memory index from the persisted corpus.
	Reload(ctx context.Context) error
}
