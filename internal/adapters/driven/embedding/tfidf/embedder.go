// Package tfidf implements a corpus-fitted sparse embedding backend.
//
// It needs no external service: the vector space is the corpus vocabulary,
// weighted by smoothed inverse document frequency. The vectors are only
// meaningful for the corpus they were fitted on, so the backend reports
// Incremental() == false and gets refitted on every corpus mutation.
package tfidf

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/askdoc-labs/askdoc-cli/internal/core/domain"
	"github.com/askdoc-labs/askdoc-cli/internal/core/ports/driven"
)

// Ensure Embedder implements the interface.
var _ driven.EmbeddingService = (*Embedder)(nil)

var tokenRe = regexp.MustCompile(`\p{L}+`)

var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"by": {}, "for": {}, "from": {}, "has": {}, "he": {}, "in": {}, "is": {},
	"it": {}, "its": {}, "of": {}, "on": {}, "or": {}, "that": {}, "the": {},
	"to": {}, "was": {}, "were": {}, "will": {}, "with": {},
}

// Embedder is a TF-IDF vectoriser over a fixed corpus vocabulary.
type Embedder struct {
	mu    sync.RWMutex
	vocab map[string]int
	idf   []float64
}

// New creates an unfitted embedder. Fit must be called before Embed.
func New() *Embedder {
	return &Embedder{}
}

// Name identifies the backend.
func (e *Embedder) Name() string { return "tfidf" }

// Incremental reports false: vectors are invalidated by corpus changes.
func (e *Embedder) Incremental() bool { return false }

// Fit builds the vocabulary and IDF weights from the corpus texts.
func (e *Embedder) Fit(_ context.Context, corpus []string) error {
	if len(corpus) == 0 {
		return fmt.Errorf("tfidf: empty corpus: %w", domain.ErrEmbeddingUnavailable)
	}

	// Document frequency per term.
	df := make(map[string]int)
	for _, text := range corpus {
		seen := make(map[string]struct{})
		for _, tok := range tokenize(text) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}
	if len(df) == 0 {
		return fmt.Errorf("tfidf: corpus has no indexable terms: %w", domain.ErrEmbeddingUnavailable)
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	vocab := make(map[string]int, len(terms))
	idf := make([]float64, len(terms))
	n := float64(len(corpus))
	for i, term := range terms {
		vocab[term] = i
		// Smoothed IDF keeps every weight positive.
		idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	e.mu.Lock()
	e.vocab = vocab
	e.idf = idf
	e.mu.Unlock()
	return nil
}

// Embed vectorises a single text against the fitted vocabulary. Terms outside
// the vocabulary are ignored; a text with no known terms yields a zero vector,
// which scores zero against everything.
func (e *Embedder) Embed(_ context.Context, text string) ([]float32, error) {
	e.mu.RLock()
	vocab, idf := e.vocab, e.idf
	e.mu.RUnlock()

	if vocab == nil {
		return nil, fmt.Errorf("tfidf: not fitted: %w", domain.ErrEmbeddingUnavailable)
	}

	tf := make(map[int]int)
	for _, tok := range tokenize(text) {
		if i, ok := vocab[tok]; ok {
			tf[i]++
		}
	}

	vec := make([]float64, len(idf))
	var norm float64
	for i, count := range tf {
		w := float64(count) * idf[i]
		vec[i] = w
		norm += w * w
	}

	out := make([]float32, len(vec))
	if norm == 0 {
		return out, nil
	}
	norm = math.Sqrt(norm)
	for i, w := range vec {
		out[i] = float32(w / norm)
	}
	return out, nil
}

// EmbedBatch vectorises multiple texts.
func (e *Embedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := e.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		vectors[i] = vec
	}
	return vectors, nil
}

// Dimensions returns the vocabulary size, or zero before fitting.
func (e *Embedder) Dimensions() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.idf)
}

// Ping always succeeds: the backend is local.
func (e *Embedder) Ping(_ context.Context) error { return nil }

// Close is a no-op.
func (e *Embedder) Close() error { return nil }

func tokenize(text string) []string {
	raw := tokenRe.FindAllString(strings.ToLower(text), -1)
	tokens := raw[:0]
	for _, tok := range raw {
		if _, ok := stopwords[tok]; ok {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}
