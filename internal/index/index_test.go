package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askdoc-labs/askdoc-cli/internal/core/domain"
)

func entry(docID string, pos int, content string) Entry {
	return Entry{
		Chunk: domain.Chunk{
			ID:         docID + "-" + content,
			DocumentID: docID,
			Position:   pos,
			Content:    content,
		},
		Filename: docID + ".txt",
	}
}

func TestIndex_Empty(t *testing.T) {
	idx := New()

	assert.Equal(t, 0, idx.Len())
	assert.Empty(t, idx.Search([]float32{1, 0}, 5))
}

func TestIndex_Rebuild_SkipsNilVectors(t *testing.T) {
	idx := New()
	entries := []Entry{
		entry("a", 0, "first"),
		entry("a", 1, "second"),
		entry("a", 2, "third"),
	}
	vectors := [][]float32{
		{1, 0},
		nil, // embedding failed for this chunk
		{0, 1},
	}

	idx.Rebuild(entries, vectors, "tfidf", 2)

	assert.Equal(t, 2, idx.Len())
	hits := idx.Search([]float32{1, 0}, 10)
	require.Len(t, hits, 2)
	for _, h := range hits {
		assert.NotEqual(t, "second", h.Entry.Chunk.Content)
	}
}

func TestIndex_Search_Ranking(t *testing.T) {
	idx := New()
	entries := []Entry{
		entry("a", 0, "orthogonal"),
		entry("a", 1, "exact"),
		entry("a", 2, "close"),
	}
	vectors := [][]float32{
		{0, 1},
		{1, 0},
		{1, 0.2},
	}
	idx.Rebuild(entries, vectors, "tfidf", 2)

	hits := idx.Search([]float32{1, 0}, 3)
	require.Len(t, hits, 3)

	assert.Equal(t, "exact", hits[0].Entry.Chunk.Content)
	assert.Equal(t, "close", hits[1].Entry.Chunk.Content)
	assert.Equal(t, "orthogonal", hits[2].Entry.Chunk.Content)

	assert.InDelta(t, 1.0, hits[0].Similarity, 1e-9)
	for _, h := range hits {
		assert.LessOrEqual(t, h.Similarity, 1.0)
		assert.GreaterOrEqual(t, h.Similarity, -1.0)
	}
}

func TestIndex_Search_TopKLimit(t *testing.T) {
	idx := New()
	var entries []Entry
	var vectors [][]float32
	for i := 0; i < 10; i++ {
		entries = append(entries, entry("a", i, "chunk"))
		vectors = append(vectors, []float32{1, float32(i)})
	}
	idx.Rebuild(entries, vectors, "tfidf", 2)

	assert.Len(t, idx.Search([]float32{1, 0}, 3), 3)
	assert.Len(t, idx.Search([]float32{1, 0}, 100), 10)
	assert.Empty(t, idx.Search([]float32{1, 0}, 0))
}

func TestIndex_Search_ZeroNormVector(t *testing.T) {
	idx := New()
	idx.Rebuild(
		[]Entry{entry("a", 0, "zero"), entry("a", 1, "unit")},
		[][]float32{{0, 0}, {1, 0}},
		"tfidf", 2,
	)

	// A zero query vector scores 0 against everything instead of NaN.
	hits := idx.Search([]float32{0, 0}, 2)
	require.Len(t, hits, 2)
	for _, h := range hits {
		assert.Equal(t, 0.0, h.Similarity)
	}
}

func TestIndex_Search_TiesByPosition(t *testing.T) {
	idx := New()
	// Identical vectors, so similarity ties; order must follow position.
	idx.Rebuild(
		[]Entry{entry("a", 2, "late"), entry("a", 0, "early"), entry("a", 1, "middle")},
		[][]float32{{1, 1}, {1, 1}, {1, 1}},
		"tfidf", 2,
	)

	hits := idx.Search([]float32{1, 1}, 3)
	require.Len(t, hits, 3)
	assert.Equal(t, "early", hits[0].Entry.Chunk.Content)
	assert.Equal(t, "middle", hits[1].Entry.Chunk.Content)
	assert.Equal(t, "late", hits[2].Entry.Chunk.Content)
}

func TestIndex_Rebuild_ReplacesWholesale(t *testing.T) {
	idx := New()
	idx.Rebuild(
		[]Entry{entry("a", 0, "old")},
		[][]float32{{1, 0}},
		"tfidf", 2,
	)
	require.Equal(t, 1, idx.Len())

	idx.Rebuild(
		[]Entry{entry("b", 0, "new-one"), entry("b", 1, "new-two")},
		[][]float32{{1, 0}, {0, 1}},
		"ollama", 2,
	)

	assert.Equal(t, 2, idx.Len())
	assert.Equal(t, "ollama", idx.Backend())
	for _, h := range idx.Search([]float32{1, 0}, 10) {
		assert.Equal(t, "b", h.Entry.Chunk.DocumentID)
	}
}
