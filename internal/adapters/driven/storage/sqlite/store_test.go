package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/margin/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)

	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})
	return store
}

func testSnapshot(docID string, savedAt time.Time, texts ...string) domain.Snapshot {
	doc := domain.NewDocument(docID, domain.RawDocument{
		Name:  "Title " + docID,
		Pages: []domain.RawPage{{Number: 0, ImageURL: "p0.png"}, {Number: 1, ImageURL: "p1.png"}},
	})
	annotations := make([]domain.Annotation, len(texts))
	for i, text := range texts {
		annotations[i] = domain.Annotation{
			ID:        "a" + text,
			Text:      text,
			CreatedAt: savedAt.Add(-time.Minute),
			Position:  domain.Position{X: 10, Y: 20, PageIndex: i % 2},
			Style:     domain.DefaultStyle(),
		}
	}
	return domain.Snapshot{
		DocumentID:       docID,
		Document:         doc,
		Annotations:      annotations,
		SavedAt:          savedAt,
		TotalAnnotations: len(annotations),
	}
}

func TestNewStore(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, DatabaseName), store.Path())
	v, err := store.version()
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestNewStore_ReopenSkipsApplied(t *testing.T) {
	dir := t.TempDir()

	first, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.SnapshotStore().Save(context.Background(), testSnapshot("doc1", time.Now())))
	require.NoError(t, first.Close())

	second, err := NewStore(dir)
	require.NoError(t, err)
	defer second.Close()

	list, err := second.SnapshotStore().List(context.Background(), "doc1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestSnapshotStore_SaveAndLatest(t *testing.T) {
	store := setupTestStore(t).SnapshotStore()
	ctx := context.Background()
	saved := testSnapshot("doc1", time.Date(2024, 3, 1, 9, 30, 0, 123, time.UTC), "one", "two")

	require.NoError(t, store.Save(ctx, saved))

	got, err := store.Latest(ctx, "doc1")
	require.NoError(t, err)
	assert.Equal(t, saved.DocumentID, got.DocumentID)
	assert.Equal(t, saved.TotalAnnotations, got.TotalAnnotations)
	assert.True(t, saved.SavedAt.Equal(got.SavedAt))
	assert.Equal(t, saved.Document, got.Document)
	require.Len(t, got.Annotations, 2)
	assert.Equal(t, saved.Annotations[1].Position, got.Annotations[1].Position)
	assert.True(t, saved.Annotations[0].CreatedAt.Equal(got.Annotations[0].CreatedAt))
}

func TestSnapshotStore_ListNewestFirst(t *testing.T) {
	store := setupTestStore(t).SnapshotStore()
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	// Sub-second timestamps must still order correctly.
	require.NoError(t, store.Save(ctx, testSnapshot("doc1", base, "a")))
	require.NoError(t, store.Save(ctx, testSnapshot("doc1", base.Add(500*time.Millisecond), "a", "b")))
	require.NoError(t, store.Save(ctx, testSnapshot("doc1", base.Add(-time.Hour))))
	require.NoError(t, store.Save(ctx, testSnapshot("doc2", base.Add(time.Hour), "z")))

	list, err := store.List(ctx, "doc1")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, 2, list[0].TotalAnnotations)
	assert.Equal(t, 1, list[1].TotalAnnotations)
	assert.Equal(t, 0, list[2].TotalAnnotations)
	assert.Empty(t, list[2].Annotations)
}

func TestSnapshotStore_NotFound(t *testing.T) {
	store := setupTestStore(t).SnapshotStore()

	_, err := store.Latest(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := store.List(context.Background(), "missing")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSnapshotStore_NilDocument(t *testing.T) {
	store := setupTestStore(t).SnapshotStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.Snapshot{DocumentID: "doc1", SavedAt: time.Now()}))

	got, err := store.Latest(ctx, "doc1")
	require.NoError(t, err)
	assert.Nil(t, got.Document)
	assert.Empty(t, got.Annotations)
}

func TestSnapshotStore_RejectsMissingDocumentID(t *testing.T) {
	store := setupTestStore(t).SnapshotStore()
	assert.ErrorIs(t, store.Save(context.Background(), domain.Snapshot{}), domain.ErrInvalidInput)
}
