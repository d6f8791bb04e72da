package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/margin/internal/core/domain"
)

const tomlManifest = `
[documents.report]
name = "Quarterly report"

[[documents.report.pages]]
number = 0
image_url = "report-0.png"

[[documents.report.pages]]
number = 1
image_url = "report-1.png"

[documents.memo]
name = "Memo"
`

const jsonManifest = `{
  "documents": {
    "report": {
      "name": "Quarterly report",
      "pages": [{"number": 0, "imageUrl": "report-0.png"}]
    }
  }
}`

func writeManifest(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestNewProvider_EmptyPath(t *testing.T) {
	_, err := NewProvider("")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProvider_FetchDocumentTOML(t *testing.T) {
	p, err := NewProvider(writeManifest(t, "documents.toml", tomlManifest))
	require.NoError(t, err)

	doc, err := p.FetchDocument(context.Background(), "report")

	require.NoError(t, err)
	assert.Equal(t, "Quarterly report", doc.Name)
	require.Len(t, doc.Pages, 2)
	assert.Equal(t, domain.RawPage{Number: 1, ImageURL: "report-1.png"}, doc.Pages[1])
}

func TestProvider_FetchDocumentJSON(t *testing.T) {
	p, err := NewProvider(writeManifest(t, "documents.json", jsonManifest))
	require.NoError(t, err)

	doc, err := p.FetchDocument(context.Background(), "report")

	require.NoError(t, err)
	assert.Equal(t, "Quarterly report", doc.Name)
	assert.Equal(t, []domain.RawPage{{Number: 0, ImageURL: "report-0.png"}}, doc.Pages)
}

func TestProvider_Errors(t *testing.T) {
	t.Run("unknown document", func(t *testing.T) {
		p, err := NewProvider(writeManifest(t, "documents.toml", tomlManifest))
		require.NoError(t, err)
		_, err = p.FetchDocument(context.Background(), "nope")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("missing file", func(t *testing.T) {
		p, err := NewProvider(filepath.Join(t.TempDir(), "absent.toml"))
		require.NoError(t, err)
		_, err = p.FetchDocument(context.Background(), "report")
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("malformed file", func(t *testing.T) {
		p, err := NewProvider(writeManifest(t, "documents.json", "{"))
		require.NoError(t, err)
		_, err = p.FetchDocument(context.Background(), "report")
		assert.Error(t, err)
	})

	t.Run("cancelled", func(t *testing.T) {
		p, err := NewProvider(writeManifest(t, "documents.toml", tomlManifest))
		require.NoError(t, err)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err = p.FetchDocument(ctx, "report")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestProvider_Documents(t *testing.T) {
	p, err := NewProvider(writeManifest(t, "documents.toml", tomlManifest))
	require.NoError(t, err)

	ids, err := p.Documents(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"memo", "report"}, ids)
}

func TestProvider_WatchReportsChanges(t *testing.T) {
	path := writeManifest(t, "documents.toml", tomlManifest)
	p, err := NewProvider(path)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 10)
	done := make(chan error, 1)
	go func() {
		done <- p.Watch(ctx, func() { changed <- struct{}{} })
	}()

	// Give the watcher time to register.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte(tomlManifest+"\n"), 0600))

	select {
	case <-changed:
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported")
	}

	// Drain any trailing callback from the same save.
	time.Sleep(3 * DebounceInterval)
	for len(changed) > 0 {
		<-changed
	}

	// Unrelated files in the same directory are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(path), "other.txt"), []byte("x"), 0600))
	select {
	case <-changed:
		t.Fatal("unrelated file reported")
	case <-time.After(3 * DebounceInterval):
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}
