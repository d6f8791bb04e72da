// Package tui provides an interactive terminal viewer for annotated documents.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"seehuhn.de/go/geom/vec"

	"github.com/custodia-labs/margin/internal/core/ports/driven"
	"github.com/custodia-labs/margin/internal/core/ports/driving"
)

// DragFactory builds a drag controller bound to the TUI's pointer surface.
// moved receives document-space positions while the gesture runs.
type DragFactory func(surface driven.PointerSurface, moved func(pos vec.Vec2)) driving.Dragger

// Ports aggregates everything the TUI needs from the core.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Session owns the active document, its annotations and viewport.
	Session driving.DocumentSession

	// NewDrag creates a drag controller for each gesture.
	NewDrag DragFactory

	// Prompter is the event-loop prompter the session was built with.
	Prompter *Prompter

	// Documents lists the identifiers that can be cycled through.
	// Optional; without it only the initial document is shown.
	Documents []string
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(session driving.DocumentSession, newDrag DragFactory, prompter *Prompter) *Ports {
	return &Ports{
		Session:  session,
		NewDrag:  newDrag,
		Prompter: prompter,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Session == nil {
		return ErrMissingSession
	}
	if p.NewDrag == nil {
		return ErrMissingDragFactory
	}
	if p.Prompter == nil {
		return ErrMissingPrompter
	}
	return nil
}
