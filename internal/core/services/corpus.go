// Package services implements the core corpus, retrieval and answer services.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/askdoc-labs/askdoc-cli/internal/chunker"
	"github.com/askdoc-labs/askdoc-cli/internal/core/domain"
	"github.com/askdoc-labs/askdoc-cli/internal/core/ports/driven"
	"github.com/askdoc-labs/askdoc-cli/internal/core/ports/driving"
	"github.com/askdoc-labs/askdoc-cli/internal/index"
	"github.com/askdoc-labs/askdoc-cli/internal/logger"
)

// Ensure CorpusService implements the interface.
var _ driving.CorpusService = (*CorpusService)(nil)

// CorpusService manages documents and keeps the similarity index in sync
// with the store. All mutations run under an exclusive lock; readers never
// take it because they only touch the index's atomic snapshot.
type CorpusService struct {
	mu       sync.Mutex
	store    driven.DocumentStore
	embedder driven.EmbeddingService
	splitter *chunker.Splitter
	idx      *index.Index
}

// NewCorpusService creates a corpus service.
func NewCorpusService(
	store driven.DocumentStore,
	embedder driven.EmbeddingService,
	splitter *chunker.Splitter,
	idx *index.Index,
) *CorpusService {
	return &CorpusService{
		store:    store,
		embedder: embedder,
		splitter: splitter,
		idx:      idx,
	}
}

// Ingest adds a document to the corpus.
func (s *CorpusService) Ingest(ctx context.Context, text string, filename string, byteSize int64, contentHash string) (*domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	logger.Section("Ingest")
	logger.Debug("ingesting %q (%d bytes)", filename, byteSize)

	if _, err := s.store.FindByHash(ctx, contentHash); err == nil {
		return nil, fmt.Errorf("%q: %w", filename, domain.ErrDuplicateDocument)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("checking content hash: %w", err)
	}

	parts := s.splitter.Split(text)
	if len(parts) == 0 {
		return nil, fmt.Errorf("%q: %w", filename, domain.ErrEmptyDocument)
	}
	logger.Debug("split %q into %d chunks", filename, len(parts))

	doc := &domain.Document{
		ID:          uuid.New().String(),
		Filename:    filename,
		ByteSize:    byteSize,
		ContentHash: contentHash,
		UploadedAt:  time.Now().UTC(),
		ChunkCount:  len(parts),
	}

	// Sparse backends derive their vector space from the corpus, so the
	// fit must cover the existing chunks plus the incoming ones.
	fitted := true
	if !s.embedder.Incremental() {
		existing, err := s.store.LoadAllChunks(ctx)
		if err != nil {
			return nil, fmt.Errorf("loading corpus for fit: %w", err)
		}
		corpus := make([]string, 0, len(existing)+len(parts))
		for _, c := range existing {
			corpus = append(corpus, c.Content)
		}
		corpus = append(corpus, parts...)
		if err := s.embedder.Fit(ctx, corpus); err != nil {
			logger.Warn("fit failed, storing %q without embeddings: %v", filename, err)
			fitted = false
		}
	}

	chunks := make([]domain.Chunk, len(parts))
	for i, part := range parts {
		chunk := domain.Chunk{
			ID:         uuid.New().String(),
			DocumentID: doc.ID,
			Position:   i,
			Content:    part,
		}
		if fitted {
			vec, err := s.embedder.Embed(ctx, part)
			if err != nil {
				// The chunk is still stored; it just cannot be searched.
				logger.Warn("embedding chunk %d of %q failed: %v", i, filename, err)
			} else {
				chunk.Embedding = vec
			}
		}
		chunks[i] = chunk
	}

	if err := s.store.Save(ctx, doc, chunks); err != nil {
		return nil, fmt.Errorf("saving document: %w", err)
	}

	if err := s.rebuildLocked(ctx); err != nil {
		return nil, fmt.Errorf("rebuilding index: %w", err)
	}

	logger.Info("ingested %q as %s (%d chunks indexed)", filename, doc.ID, s.idx.Len())
	return doc, nil
}

// Remove deletes a document from the corpus. Returns false without error
// when no document has the given ID.
func (s *CorpusService) Remove(ctx context.Context, documentID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.store.GetDocument(ctx, documentID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("looking up document: %w", err)
	}

	if err := s.store.DeleteDocument(ctx, documentID); err != nil {
		return false, fmt.Errorf("deleting document: %w", err)
	}

	if err := s.rebuildLocked(ctx); err != nil {
		return false, fmt.Errorf("rebuilding index: %w", err)
	}

	logger.Info("removed document %s", documentID)
	return true, nil
}

// Documents lists all documents in the corpus.
func (s *CorpusService) Documents(ctx context.Context) ([]domain.Document, error) {
	return s.store.ListDocuments(ctx)
}

// Chunks returns a document's chunks ordered by position.
func (s *CorpusService) Chunks(ctx context.Context, documentID string) ([]domain.Chunk, error) {
	if _, err := s.store.GetDocument(ctx, documentID); err != nil {
		return nil, err
	}
	return s.store.GetChunks(ctx, documentID)
}

// Reload rebuilds the index from the persisted corpus, typically at startup.
func (s *CorpusService) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rebuildLocked(ctx)
}

// rebuildLocked replaces the index contents from the store. Callers must
// hold the mutation lock.
func (s *CorpusService) rebuildLocked(ctx context.Context) error {
	docs, err := s.store.ListDocuments(ctx)
	if err != nil {
		return fmt.Errorf("listing documents: %w", err)
	}
	filenames := make(map[string]string, len(docs))
	for _, doc := range docs {
		filenames[doc.ID] = doc.Filename
	}

	chunks, err := s.store.LoadAllChunks(ctx)
	if err != nil {
		return fmt.Errorf("loading chunks: %w", err)
	}

	if len(chunks) == 0 {
		s.idx.Rebuild(nil, nil, s.embedder.Name(), s.embedder.Dimensions())
		return nil
	}

	entries := make([]index.Entry, len(chunks))
	for i, chunk := range chunks {
		entries[i] = index.Entry{
			Chunk:    chunk,
			Filename: filenames[chunk.DocumentID],
		}
	}

	var vectors [][]float32
	if s.embedder.Incremental() {
		// Dense vectors persist unchanged; reuse what the store has.
		vectors = make([][]float32, len(chunks))
		for i, chunk := range chunks {
			vectors[i] = chunk.Embedding
		}
	} else {
		// Sparse vectors are only valid for the corpus they were fitted
		// on, so refit and re-embed everything.
		texts := make([]string, len(chunks))
		for i, chunk := range chunks {
			texts[i] = chunk.Content
		}
		vectors = make([][]float32, len(chunks))
		if err := s.embedder.Fit(ctx, texts); err != nil {
			logger.Warn("fit failed, index will be empty: %v", err)
		} else {
			for i, text := range texts {
				vec, err := s.embedder.Embed(ctx, text)
				if err != nil {
					logger.Warn("embedding chunk %d failed: %v", i, err)
					continue
				}
				vectors[i] = vec
			}
		}
	}

	s.idx.Rebuild(entries, vectors, s.embedder.Name(), s.embedder.Dimensions())
	logger.Debug("index rebuilt: %d of %d chunks searchable (%s)",
		s.idx.Len(), len(chunks), s.embedder.Name())
	return nil
}
