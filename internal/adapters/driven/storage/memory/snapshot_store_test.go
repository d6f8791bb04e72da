package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/margin/internal/core/domain"
)

func TestSnapshotStore_SaveListLatest(t *testing.T) {
	store := NewSnapshotStore()
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		require.NoError(t, store.Save(ctx, domain.Snapshot{
			DocumentID:       "doc1",
			SavedAt:          base.Add(time.Duration(i) * time.Minute),
			TotalAnnotations: i,
		}))
	}

	list, err := store.List(ctx, "doc1")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, 2, list[0].TotalAnnotations)
	assert.Equal(t, 0, list[2].TotalAnnotations)

	latest, err := store.Latest(ctx, "doc1")
	require.NoError(t, err)
	assert.Equal(t, 2, latest.TotalAnnotations)
}

func TestSnapshotStore_Empty(t *testing.T) {
	store := NewSnapshotStore()

	list, err := store.List(context.Background(), "doc1")
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = store.Latest(context.Background(), "doc1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSnapshotStore_RejectsMissingDocumentID(t *testing.T) {
	store := NewSnapshotStore()
	assert.ErrorIs(t, store.Save(context.Background(), domain.Snapshot{}), domain.ErrInvalidInput)
}

func TestSnapshotStore_CopiesAnnotations(t *testing.T) {
	store := NewSnapshotStore()
	annotations := []domain.Annotation{{ID: "a1", Text: "x"}}
	require.NoError(t, store.Save(context.Background(), domain.Snapshot{DocumentID: "d", Annotations: annotations}))

	annotations[0].Text = "changed"

	latest, err := store.Latest(context.Background(), "d")
	require.NoError(t, err)
	assert.Equal(t, "x", latest.Annotations[0].Text)
}
