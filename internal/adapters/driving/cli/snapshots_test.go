package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotsCmd_NoStore(t *testing.T) {
	for _, sub := range []string{"list", "show"} {
		t.Run(sub, func(t *testing.T) {
			_, err := run(t, "snapshots", sub, "doc-1")

			require.Error(t, err)
			assert.Contains(t, err.Error(), "snapshot store not configured")
		})
	}
}

func TestSnapshotsList(t *testing.T) {
	env, cleanup := setupTestServices()
	defer cleanup()

	out, err := run(t, "snapshots", "list", "doc-1")
	require.NoError(t, err)
	assert.Contains(t, out, "No snapshots found.")

	first := savedSnapshot("doc-1", "a-1", "one")
	first.SavedAt = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	second := savedSnapshot("doc-1", "a-1", "one")
	second.SavedAt = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	second.TotalAnnotations = 3
	require.NoError(t, env.snapshots.Save(ctx, first))
	require.NoError(t, env.snapshots.Save(ctx, second))

	out, err = run(t, "snapshots", "list", "doc-1")

	require.NoError(t, err)
	assert.Equal(t,
		"  2026-03-02 10:00:00  3 annotations\n  2026-03-01 09:30:00  1 annotations\n",
		out)
}

func TestSnapshotsShow(t *testing.T) {
	env, cleanup := setupTestServices()
	defer cleanup()

	_, err := run(t, "snapshots", "show", "doc-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no snapshot saved for "doc-1"`)

	require.NoError(t, env.snapshots.Save(ctx, savedSnapshot("doc-1", "a-1", "shown")))

	out, err := run(t, "snapshots", "show", "doc-1")

	require.NoError(t, err)
	assert.Contains(t, out, `"documentId": "doc-1"`)
	assert.Contains(t, out, `"text": "shown"`)
}
