package driven

import (
	"context"

	"github.com/custodia-labs/margin/internal/core/domain"
)

// SnapshotSink receives saved annotation snapshots.
type SnapshotSink interface {
	// Save persists or displays a snapshot.
	Save(ctx context.Context, snapshot domain.Snapshot) error
}

// SnapshotStore is a SnapshotSink that can be queried afterwards.
type SnapshotStore interface {
	SnapshotSink

	// List returns all snapshots for a document, newest first.
	List(ctx context.Context, documentID string) ([]domain.Snapshot, error)

	// Latest returns the newest snapshot for a document.
	// Returns domain.ErrNotFound if none exists.
	Latest(ctx context.Context, documentID string) (*domain.Snapshot, error)
}
