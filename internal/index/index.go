// Package index implements the in-memory cosine similarity index.
//
// The index holds an immutable snapshot of the corpus. Mutations replace the
// snapshot wholesale under a write lock; searches grab the current snapshot
// reference under a read lock and then work without locking, so a concurrent
// rebuild never affects a search in flight.
package index

import (
	"math"
	"sort"
	"sync"

	"github.com/askdoc-labs/askdoc-cli/internal/core/domain"
)

// Entry is an indexed chunk together with the filename of its document.
type Entry struct {
	Chunk    domain.Chunk
	Filename string
}

// Hit is a search match.
type Hit struct {
	Entry      Entry
	Similarity float64
}

type snapshot struct {
	backend    string
	dimensions int
	entries    []Entry
	vectors    [][]float32
}

// Index is a brute-force cosine similarity index.
type Index struct {
	mu   sync.RWMutex
	snap *snapshot
}

// New creates an empty index.
func New() *Index {
	return &Index{snap: &snapshot{}}
}

// Rebuild replaces the index contents atomically. Entries whose vector is nil
// are dropped; they exist in the store but cannot be searched. The backend
// name records which embedding space the vectors live in.
func (idx *Index) Rebuild(entries []Entry, vectors [][]float32, backend string, dimensions int) {
	snap := &snapshot{
		backend:    backend,
		dimensions: dimensions,
	}
	for i, entry := range entries {
		if i >= len(vectors) || vectors[i] == nil {
			continue
		}
		snap.entries = append(snap.entries, entry)
		snap.vectors = append(snap.vectors, vectors[i])
	}

	idx.mu.Lock()
	idx.snap = snap
	idx.mu.Unlock()
}

// Search returns the k entries most similar to the query vector, ordered by
// descending similarity. Ties are broken by ascending chunk position, then by
// document ID, so results are deterministic.
func (idx *Index) Search(query []float32, k int) []Hit {
	idx.mu.RLock()
	snap := idx.snap
	idx.mu.RUnlock()

	if k <= 0 || len(snap.entries) == 0 || len(query) == 0 {
		return nil
	}

	hits := make([]Hit, 0, len(snap.entries))
	for i, vec := range snap.vectors {
		hits = append(hits, Hit{
			Entry:      snap.entries[i],
			Similarity: cosine(query, vec),
		})
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Similarity != hits[j].Similarity {
			return hits[i].Similarity > hits[j].Similarity
		}
		a, b := hits[i].Entry.Chunk, hits[j].Entry.Chunk
		if a.Position != b.Position {
			return a.Position < b.Position
		}
		return a.DocumentID < b.DocumentID
	})

	if len(hits) > k {
		hits = hits[:k]
	}
	return hits
}

// Backend returns the embedding backend the current snapshot was built with.
func (idx *Index) Backend() string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.snap.backend
}

// Len returns the number of searchable entries.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.snap.entries)
}

// cosine computes cosine similarity in float64 for stability.
// Either vector having zero norm yields 0 rather than NaN.
func cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
