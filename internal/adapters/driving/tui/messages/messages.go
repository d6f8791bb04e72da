// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/margin/internal/core/domain"
	"github.com/custodia-labs/margin/internal/core/ports/driving"
)

// DocumentLoaded carries the outcome of a load task back to the model.
type DocumentLoaded struct {
	Result driving.LoadResult
}

// AnnotationsChanged carries a list published to a subscription.
// Err is set when the subscription ended.
type AnnotationsChanged struct {
	Subscription driving.AnnotationSubscription
	Annotations  []domain.Annotation
	Err          error
}

// AutosaveTick asks the model to save a snapshot of the active document.
type AutosaveTick struct{}

// ManifestChanged signals that the document provider's data changed.
type ManifestChanged struct{}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
