package driving

import "seehuhn.de/go/geom/vec"

// Dragger turns one pointer gesture into position updates for an
// annotation. Points and positions share the page's top-left origin;
// points are in screen units, positions in document units.
type Dragger interface {
	// Start begins a gesture at p for an annotation at pos. It returns
	// false when the start is ignored (delete affordance, gesture running).
	Start(p, pos vec.Vec2, scale float64, onDeleteAffordance bool) bool

	// Cancel ends the gesture and releases its listeners.
	Cancel()

	// Dragging reports whether a gesture is in progress.
	Dragging() bool
}
