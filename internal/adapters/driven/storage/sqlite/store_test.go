package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askdoc-labs/askdoc-cli/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func saveTestDoc(t *testing.T, store *Store, id, hash string) {
	t.Helper()
	doc := &domain.Document{
		ID:          id,
		Filename:    id + ".txt",
		ByteSize:    42,
		ContentHash: hash,
		UploadedAt:  time.Now().UTC(),
		ChunkCount:  2,
	}
	chunks := []domain.Chunk{
		{ID: id + "-c0", DocumentID: id, Position: 0, Content: "first chunk", Embedding: []float32{0.1, -0.5, 2}},
		{ID: id + "-c1", DocumentID: id, Position: 1, Content: "second chunk"},
	}
	require.NoError(t, store.Save(context.Background(), doc, chunks))
}

func TestStore_SaveAndRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	saveTestDoc(t, store, "d1", "hash1")

	doc, err := store.GetDocument(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, "d1.txt", doc.Filename)
	assert.Equal(t, int64(42), doc.ByteSize)
	assert.Equal(t, 2, doc.ChunkCount)
	assert.False(t, doc.UploadedAt.IsZero())

	chunks, err := store.GetChunks(ctx, "d1")
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, []float32{0.1, -0.5, 2}, chunks[0].Embedding)
	assert.Nil(t, chunks[1].Embedding, "absent embedding should round-trip as nil")
}

func TestStore_FindByHash(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	saveTestDoc(t, store, "d1", "hash1")

	doc, err := store.FindByHash(ctx, "hash1")
	require.NoError(t, err)
	assert.Equal(t, "d1", doc.ID)

	_, err = store.FindByHash(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_DuplicateHashRejected(t *testing.T) {
	store := newTestStore(t)
	saveTestDoc(t, store, "d1", "hash1")

	doc := &domain.Document{
		ID:          "d2",
		Filename:    "d2.txt",
		ContentHash: "hash1",
		UploadedAt:  time.Now().UTC(),
	}
	err := store.Save(context.Background(), doc, nil)
	assert.Error(t, err, "content_hash unique constraint should reject the save")
}

func TestStore_ListDocuments(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	docs, err := store.ListDocuments(ctx)
	require.NoError(t, err)
	assert.Empty(t, docs)

	saveTestDoc(t, store, "d1", "hash1")
	saveTestDoc(t, store, "d2", "hash2")

	docs, err = store.ListDocuments(ctx)
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestStore_LoadAllChunks(t *testing.T) {
	store := newTestStore(t)
	saveTestDoc(t, store, "d1", "hash1")
	saveTestDoc(t, store, "d2", "hash2")

	chunks, err := store.LoadAllChunks(context.Background())
	require.NoError(t, err)
	require.Len(t, chunks, 4)
	assert.Equal(t, "d1", chunks[0].DocumentID)
	assert.Equal(t, 0, chunks[0].Position)
	assert.Equal(t, 1, chunks[1].Position)
}

func TestStore_DeleteDocument_Cascades(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	saveTestDoc(t, store, "d1", "hash1")

	require.NoError(t, store.DeleteDocument(ctx, "d1"))

	_, err := store.GetDocument(ctx, "d1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	chunks, err := store.LoadAllChunks(ctx)
	require.NoError(t, err)
	assert.Empty(t, chunks, "chunks should be removed by the cascade")
}

func TestStore_MigrationsIdempotent(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	saveTestDoc(t, store, "d1", "hash1")
	require.NoError(t, store.Close())

	// Reopening must not reapply migrations or lose data.
	store, err = NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	doc, err := store.GetDocument(context.Background(), "d1")
	require.NoError(t, err)
	assert.Equal(t, "hash1", doc.ContentHash)
}

func TestFloat32Bytes_RoundTrip(t *testing.T) {
	t.Run("values", func(t *testing.T) {
		in := []float32{0, 1, -1, 0.5, 3.1415927}
		assert.Equal(t, in, bytesToFloat32Slice(float32SliceToBytes(in)))
	})

	t.Run("nil", func(t *testing.T) {
		assert.Nil(t, float32SliceToBytes(nil))
		assert.Nil(t, bytesToFloat32Slice(nil))
	})

	t.Run("truncated blob", func(t *testing.T) {
		assert.Nil(t, bytesToFloat32Slice([]byte{1, 2, 3}))
	})
}
