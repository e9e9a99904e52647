package driving

import (
	"context"

	"github.com/askdoc-labs/askdoc-cli/internal/core/domain"
)

// RetrievalService finds the chunks most similar to a query.
type RetrievalService interface {
	// Retrieve returns up to maxResults chunks ranked by similarity.
	// Results below the minimum similarity threshold are dropped, so the
	// slice may be empty; an empty corpus also yields an empty slice.
	Retrieve(ctx context.Context, query string, maxResults int) ([]domain.RetrievalResult, error)
}

// AskService answers questions against the corpus.
type AskService interface {
	// Answer retrieves relevant chunks and synthesises an answer.
	// When nothing relevant is found the answer states that the corpus has
	// insufficient information; that is not an error.
	Answer(ctx context.Context, query string, maxResults int) (*domain.AnswerResult, error)
}
