package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Annotation Errors.

	// ErrPageNotFound indicates a pointer position lies outside every page box,
	// for example in the gutter between two pages.
	ErrPageNotFound = errors.New("page not found")

	// ErrAnnotationNotFound indicates an update or delete target is missing.
	// The store absorbs it; it is only surfaced by explicit lookups.
	ErrAnnotationNotFound = errors.New("annotation not found")

	// ErrInvalidPosition indicates a page index outside the document's pages.
	ErrInvalidPosition = errors.New("invalid position")

	// ErrEmptyText indicates an annotation without display text.
	ErrEmptyText = errors.New("annotation text is empty")

	// ErrEntryInUse indicates a registry entry cannot be released while
	// subscriptions to it are still open.
	ErrEntryInUse = errors.New("annotation entry is in use")

	// ErrSubscriptionClosed indicates the subscription was cancelled.
	ErrSubscriptionClosed = errors.New("subscription closed")

	// Document Errors.

	// ErrLoadFailure indicates the document provider rejected a load.
	ErrLoadFailure = errors.New("document load failed")

	// ErrDocumentNotLoaded indicates an operation needs a loaded document.
	ErrDocumentNotLoaded = errors.New("document not loaded")
)
