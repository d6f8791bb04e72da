package driving

import (
	"context"

	"github.com/custodia-labs/margin/internal/core/domain"
)

// AnnotationSubscription is a live view of one document's annotations.
type AnnotationSubscription interface {
	// DocumentID returns the document this subscription follows.
	DocumentID() string

	// Current returns the most recent list received by this subscription.
	Current() []domain.Annotation

	// Next blocks until the next published list and returns it.
	// Every subscriber sees every published list exactly once, in order.
	// Returns domain.ErrSubscriptionClosed after Cancel, or ctx.Err().
	Next(ctx context.Context) ([]domain.Annotation, error)

	// Cancel stops the subscription. It is safe to call more than once.
	Cancel()
}

// AnnotationService is the per-document registry of annotation lists.
type AnnotationService interface {
	// Subscribe returns a subscription whose Current value is the list at
	// the time of the call.
	Subscribe(documentID string) AnnotationSubscription

	// Add appends a new annotation. A nil style means the default style.
	Add(documentID, text string, pos domain.Position, style *domain.Style) (domain.Annotation, error)

	// Update replaces the matching annotation with a merged copy.
	// A missing annotationID leaves the list unchanged but still publishes it.
	Update(documentID, annotationID string, patch domain.AnnotationPatch)

	// Move updates only the position of an annotation.
	Move(documentID, annotationID string, pos domain.Position)

	// Delete removes an annotation if present.
	Delete(documentID, annotationID string)

	// Restore replaces a document's list, typically with a saved snapshot,
	// and publishes it. Entries with an empty ID or text or a negative page
	// index are dropped; positions are clamped. Returns the number kept.
	Restore(documentID string, annotations []domain.Annotation) int

	// Prune drops annotations whose page index is outside [0, pageCount).
	// Returns the number dropped; publishes only when something was dropped.
	Prune(documentID string, pageCount int) int

	// Annotations returns a copy of the current list.
	Annotations(documentID string) []domain.Annotation

	// Snapshot builds a serialisable copy of the document's state.
	Snapshot(documentID string, doc *domain.Document) domain.Snapshot

	// Release disposes of a document's entry.
	// Returns domain.ErrEntryInUse while subscriptions are open.
	Release(documentID string) error

	// Documents returns the identifiers of all entries, sorted.
	Documents() []string
}
