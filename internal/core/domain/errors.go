package domain

import "errors"

// Sentinel errors for the corpus and retrieval pipeline.
// Adapters and services wrap these with context via fmt.Errorf("...: %w", err);
// callers match them with errors.Is.
var (
	// ErrDuplicateDocument indicates a document with the same content hash
	// already exists in the corpus.
	ErrDuplicateDocument = errors.New("duplicate document")

	// ErrEmptyDocument indicates the extracted text produced zero chunks.
	ErrEmptyDocument = errors.New("document has no extractable text")

	// ErrUnsupportedFormat indicates no extractor handles the file extension.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrEmbeddingUnavailable indicates the embedding backend could not
	// produce a vector.
	ErrEmbeddingUnavailable = errors.New("embedding unavailable")

	// ErrGeneratorFailure indicates the answer generator failed or timed out.
	ErrGeneratorFailure = errors.New("generator failure")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed input data.
	ErrInvalidInput = errors.New("invalid input")
)
