// Package domain contains the core entities of the corpus.
package domain

import "time"

// Document represents an ingested file in the corpus.
type Document struct {
	// ID is the unique identifier (UUID).
	ID string `json:"id"`

	// Filename is the original name of the uploaded file.
	Filename string `json:"filename"`

	// ByteSize is the size of the raw file in bytes.
	ByteSize int64 `json:"byte_size"`

	// ContentHash is the SHA-256 hex digest of the raw file bytes,
	// used to detect duplicate uploads.
	ContentHash string `json:"content_hash"`

	// UploadedAt is when the document entered the corpus (UTC).
	UploadedAt time.Time `json:"uploaded_at"`

	// ChunkCount is the number of chunks the document was split into.
	ChunkCount int `json:"chunk_count"`
}

// Chunk is a contiguous piece of a document's extracted text.
type Chunk struct {
	// ID is the unique identifier (UUID).
	ID string `json:"id"`

	// DocumentID references the owning document.
	DocumentID string `json:"document_id"`

	// Position is the zero-based index of the chunk within its document.
	Position int `json:"position"`

	// Content is the chunk text.
	Content string `json:"content"`

	// Embedding is the chunk vector, or nil when embedding failed.
	// Chunks without an embedding are stored but excluded from search.
	Embedding []float32 `json:"embedding,omitempty"`
}
