package driving

import (
	"context"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"github.com/custodia-labs/margin/internal/core/domain"
)

// LoadResult is the outcome of a document load.
type LoadResult struct {
	DocumentID string
	Epoch      uint64
	Document   *domain.Document
	Err        error
}

// LoadTask is a one-shot document load bound to a navigation epoch.
type LoadTask interface {
	// DocumentID returns the document being loaded.
	DocumentID() string

	// Run performs the load. It may block; it never mutates session state.
	Run() LoadResult
}

// DocumentSession binds the active document to its annotations and viewport.
type DocumentSession interface {
	// Navigate switches to documentID and returns the load to run.
	// Returns nil when documentID is empty or already active.
	Navigate(ctx context.Context, documentID string) LoadTask

	// Reload starts a new load of the active document.
	// Returns nil when no document is active.
	Reload(ctx context.Context) LoadTask

	// Complete applies a load result. It returns false if the result is
	// stale and was discarded.
	Complete(res LoadResult) bool

	// Open navigates and loads synchronously.
	Open(ctx context.Context, documentID string) error

	// State returns a read-only view of the session.
	State() domain.SessionState

	// Viewport returns the session's viewport.
	Viewport() Viewport

	// Subscription returns the active annotation subscription, if any.
	Subscription() AnnotationSubscription

	// AnnotationsByPage returns annotations grouped by page index.
	AnnotationsByPage() [][]domain.Annotation

	// HandleDoubleClick prompts for text and creates an annotation at a
	// screen point when add mode is on and a document is loaded. A point
	// outside every page is logged and reported as domain.ErrPageNotFound
	// without any state change.
	HandleDoubleClick(point vec.Vec2, pageBoxes []rect.Rect) error

	// AddAnnotation adds an annotation to the active document after
	// checking the page index against the loaded document.
	AddAnnotation(text string, pos domain.Position) (domain.Annotation, error)

	// HandleKey forwards a keyboard event to the viewport.
	HandleKey(ev domain.KeyEvent) bool

	// MoveAnnotation stores a new position for an annotation.
	MoveAnnotation(annotationID string, pageIndex int, x, y float64)

	// DeleteAnnotation removes an annotation from the active document.
	DeleteAnnotation(annotationID string)

	// Save sends a snapshot of the active document to the sink.
	Save(ctx context.Context) (*domain.Snapshot, error)

	// Close cancels pending loads and subscriptions.
	Close()
}
