// Package driven defines the outbound interfaces the core services depend on.
package driven

import (
	"context"

	"github.com/askdoc-labs/askdoc-cli/internal/core/domain"
)

// DocumentStore persists documents and their chunks.
type DocumentStore interface {
	// Save atomically persists a document together with all of its chunks.
	// Either everything is stored or nothing is.
	Save(ctx context.Context, doc *domain.Document, chunks []domain.Chunk) error

	// FindByHash returns the document with the given content hash.
	// Returns domain.ErrNotFound when no document matches.
	FindByHash(ctx context.Context, contentHash string) (*domain.Document, error)

	// GetDocument returns a document by ID.
	// Returns domain.ErrNotFound when it does not exist.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// ListDocuments returns all documents ordered by upload time.
	ListDocuments(ctx context.Context) ([]domain.Document, error)

	// GetChunks returns a document's chunks ordered by position.
	GetChunks(ctx context.Context, documentID string) ([]domain.Chunk, error)

	// LoadAllChunks returns every chunk in the corpus, grouped by document
	// and ordered by position within each document.
	LoadAllChunks(ctx context.Context) ([]domain.Chunk, error)

	// DeleteDocument removes a document and all of its chunks.
	DeleteDocument(ctx context.Context, id string) error

	// Close releases the underlying resources.
	Close() error
}
