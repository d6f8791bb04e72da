package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/margin/internal/core/domain"
	"github.com/custodia-labs/margin/internal/core/ports/driven"
)

// savedAtLayout is fixed width so saved_at sorts chronologically as text.
const savedAtLayout = "2006-01-02T15:04:05.000000000Z"

// snapshotStore implements driven.SnapshotStore.
type snapshotStore struct {
	store *Store
}

var _ driven.SnapshotStore = (*snapshotStore)(nil)

// Save appends a snapshot to the archive.
func (s *snapshotStore) Save(ctx context.Context, snapshot domain.Snapshot) error {
	if snapshot.DocumentID == "" {
		return domain.ErrInvalidInput
	}

	documentJSON, err := json.Marshal(snapshot.Document)
	if err != nil {
		return fmt.Errorf("marshalling document: %w", err)
	}
	annotations := snapshot.Annotations
	if annotations == nil {
		annotations = []domain.Annotation{}
	}
	annotationsJSON, err := json.Marshal(annotations)
	if err != nil {
		return fmt.Errorf("marshalling annotations: %w", err)
	}

	var title string
	if snapshot.Document != nil {
		title = snapshot.Document.Title
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO snapshots (document_id, title, document_json, annotations_json, total_annotations, saved_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		snapshot.DocumentID,
		title,
		string(documentJSON),
		string(annotationsJSON),
		snapshot.TotalAnnotations,
		snapshot.SavedAt.UTC().Format(savedAtLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting snapshot: %w", err)
	}
	return nil
}

// List returns all snapshots for a document, newest first.
func (s *snapshotStore) List(ctx context.Context, documentID string) ([]domain.Snapshot, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT document_id, document_json, annotations_json, total_annotations, saved_at
		FROM snapshots WHERE document_id = ?
		ORDER BY saved_at DESC, id DESC
	`, documentID)
	if err != nil {
		return nil, fmt.Errorf("querying snapshots: %w", err)
	}
	defer rows.Close()

	snapshots := []domain.Snapshot{}
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, *snap)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating snapshots: %w", err)
	}
	return snapshots, nil
}

// Latest returns the newest snapshot for a document.
func (s *snapshotStore) Latest(ctx context.Context, documentID string) (*domain.Snapshot, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT document_id, document_json, annotations_json, total_annotations, saved_at
		FROM snapshots WHERE document_id = ?
		ORDER BY saved_at DESC, id DESC
		LIMIT 1
	`, documentID)

	snap, err := scanSnapshot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return snap, err
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row scanner) (*domain.Snapshot, error) {
	var (
		snap            domain.Snapshot
		documentJSON    string
		annotationsJSON string
		savedAt         string
	)
	err := row.Scan(&snap.DocumentID, &documentJSON, &annotationsJSON, &snap.TotalAnnotations, &savedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning snapshot: %w", err)
	}

	if err := json.Unmarshal([]byte(documentJSON), &snap.Document); err != nil {
		return nil, fmt.Errorf("unmarshalling document: %w", err)
	}
	if err := json.Unmarshal([]byte(annotationsJSON), &snap.Annotations); err != nil {
		return nil, fmt.Errorf("unmarshalling annotations: %w", err)
	}
	snap.SavedAt, err = time.Parse(savedAtLayout, savedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing saved_at: %w", err)
	}
	return &snap, nil
}
