package driven

import "seehuhn.de/go/geom/vec"

// PointerHandlers receive pointer events from the top-level input surface.
type PointerHandlers struct {
	// Move is called with the pointer's screen position.
	Move func(p vec.Vec2)

	// End is called when the pointer button is released.
	End func()
}

// PointerSurface is the top-level input surface that drag gestures
// listen on for the duration of the gesture.
type PointerSurface interface {
	// Listen registers handlers and returns a function that removes them.
	// The returned function is safe to call more than once.
	Listen(h PointerHandlers) (release func())
}
