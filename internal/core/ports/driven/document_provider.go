package driven

import (
	"context"

	"github.com/custodia-labs/margin/internal/core/domain"
)

// DocumentProvider supplies document metadata.
// Calls may be slow or fail; implementations must honour ctx cancellation.
type DocumentProvider interface {
	// FetchDocument returns the raw document for an identifier.
	// Returns domain.ErrNotFound if the provider has no such document.
	FetchDocument(ctx context.Context, documentID string) (*domain.RawDocument, error)
}

// DocumentWatcher is implemented by providers that can report changes to
// their underlying data.
type DocumentWatcher interface {
	// Watch calls onChange whenever the provider's data changes.
	// It blocks until ctx is cancelled.
	Watch(ctx context.Context, onChange func()) error
}

// DocumentLister is implemented by providers that can enumerate the
// documents they serve.
type DocumentLister interface {
	// Documents returns the known document identifiers, sorted.
	Documents(ctx context.Context) ([]string, error)
}
