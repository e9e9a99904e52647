package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/askdoc-labs/askdoc-cli/internal/core/domain"
	"github.com/askdoc-labs/askdoc-cli/internal/core/ports/driven"
	"github.com/askdoc-labs/askdoc-cli/internal/core/ports/driving"
	"github.com/askdoc-labs/askdoc-cli/internal/index"
	"github.com/askdoc-labs/askdoc-cli/internal/logger"
)

// Ensure RetrievalService implements the interface.
var _ driving.RetrievalService = (*RetrievalService)(nil)

const (
	// MinSimilarity is the relevance gate: candidates scoring below it are
	// dropped rather than padding the results with noise.
	MinSimilarity = 0.1

	// DefaultMaxResults caps retrieval when the caller passes no limit.
	DefaultMaxResults = 5
)

// RetrievalService ranks indexed chunks against a query. The query is
// embedded with the same backend the index snapshot was built with, so
// similarities are always computed within one vector space.
type RetrievalService struct {
	embedder driven.EmbeddingService
	idx      *index.Index
}

// NewRetrievalService creates a retrieval service.
func NewRetrievalService(embedder driven.EmbeddingService, idx *index.Index) *RetrievalService {
	return &RetrievalService{
		embedder: embedder,
		idx:      idx,
	}
}

// Retrieve returns up to maxResults chunks ranked by descending similarity.
// A blank query, an empty index or no candidate above the threshold all
// yield an empty result, not an error.
func (s *RetrievalService) Retrieve(ctx context.Context, query string, maxResults int) ([]domain.RetrievalResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	if s.idx.Len() == 0 {
		logger.Debug("retrieve: index is empty")
		return nil, nil
	}

	vec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	hits := s.idx.Search(vec, maxResults)

	results := make([]domain.RetrievalResult, 0, len(hits))
	for _, hit := range hits {
		if hit.Similarity < MinSimilarity {
			continue
		}
		results = append(results, domain.RetrievalResult{
			Chunk:      hit.Entry.Chunk,
			Filename:   hit.Entry.Filename,
			Similarity: hit.Similarity,
		})
	}
	logger.Debug("retrieve: %d hits, %d above threshold", len(hits), len(results))
	return results, nil
}
