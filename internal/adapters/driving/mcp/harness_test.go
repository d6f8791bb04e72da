package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/margin/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/margin/internal/core/domain"
	"github.com/custodia-labs/margin/internal/core/ports/driven"
	"github.com/custodia-labs/margin/internal/core/ports/driving"
	"github.com/custodia-labs/margin/internal/core/services"
)

// harness wires the server to real in-memory services.
type harness struct {
	server    *Server
	store     *services.AnnotationStore
	provider  *memory.DocumentProvider
	snapshots *memory.SnapshotStore
}

func testDocuments() map[string]domain.RawDocument {
	return map[string]domain.RawDocument{
		"doc-1": {Name: "Report", Pages: []domain.RawPage{
			{Number: 0, ImageURL: "report-0.png"},
			{Number: 1, ImageURL: "report-1.png"},
		}},
		"doc-2": {Name: "Memo", Pages: []domain.RawPage{
			{Number: 0, ImageURL: "memo-0.png"},
		}},
	}
}

func newTestPorts() (*Ports, *services.AnnotationStore, *memory.DocumentProvider, *memory.SnapshotStore) {
	store := services.NewAnnotationStore(domain.DefaultStyle())
	provider := memory.NewDocumentProvider(testDocuments(), 0)
	snapshots := memory.NewSnapshotStore()

	ports := &Ports{
		Annotations: store,
		NewSession: func(p driven.Prompter) driving.DocumentSession {
			return services.NewDocumentSession(store, provider, p, snapshots, nil, 0)
		},
		Snapshots: snapshots,
		Documents: provider,
	}
	return ports, store, provider, snapshots
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	ports, store, provider, snapshots := newTestPorts()
	server, err := NewServer(ports)
	require.NoError(t, err)

	return &harness{
		server:    server,
		store:     store,
		provider:  provider,
		snapshots: snapshots,
	}
}

// add places an annotation directly in the store.
func (h *harness) add(t *testing.T, documentID, text string, page int, x, y float64) domain.Annotation {
	t.Helper()

	a, err := h.store.Add(documentID, text, domain.Position{X: x, Y: y, PageIndex: page}, nil)
	require.NoError(t, err)
	return a
}

var ctx = context.Background()
