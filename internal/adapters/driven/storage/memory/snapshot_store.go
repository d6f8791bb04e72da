package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/custodia-labs/margin/internal/core/domain"
	"github.com/custodia-labs/margin/internal/core/ports/driven"
)

// Ensure SnapshotStore implements the interface.
var _ driven.SnapshotStore = (*SnapshotStore)(nil)

// SnapshotStore is an in-memory implementation of driven.SnapshotStore.
type SnapshotStore struct {
	mu        sync.RWMutex
	snapshots map[string][]domain.Snapshot
}

// NewSnapshotStore creates a new in-memory snapshot store.
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{
		snapshots: make(map[string][]domain.Snapshot),
	}
}

// Save records a snapshot.
func (s *SnapshotStore) Save(_ context.Context, snapshot domain.Snapshot) error {
	if snapshot.DocumentID == "" {
		return domain.ErrInvalidInput
	}
	snapshot.Annotations = slices.Clone(snapshot.Annotations)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[snapshot.DocumentID] = append(s.snapshots[snapshot.DocumentID], snapshot)
	return nil
}

// List returns all snapshots for a document, newest first.
func (s *SnapshotStore) List(_ context.Context, documentID string) ([]domain.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	saved := s.snapshots[documentID]
	result := make([]domain.Snapshot, len(saved))
	for i, snap := range saved {
		result[len(saved)-1-i] = snap
	}
	return result, nil
}

// Latest returns the most recently saved snapshot for a document.
func (s *SnapshotStore) Latest(_ context.Context, documentID string) (*domain.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	saved := s.snapshots[documentID]
	if len(saved) == 0 {
		return nil, domain.ErrNotFound
	}
	snap := saved[len(saved)-1]
	return &snap, nil
}
