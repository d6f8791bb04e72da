package domain

// KeyEvent is a keyboard event delivered by the view layer.
type KeyEvent struct {
	// Key is the produced character or a named key such as "Escape".
	Key string

	// Ctrl and Meta report the modifier state. Either one counts as the
	// platform shortcut modifier.
	Ctrl bool
	Meta bool
}

// KeyEscape is the name of the escape key.
const KeyEscape = "Escape"

// Shortcut reports whether the platform shortcut modifier is held.
func (e KeyEvent) Shortcut() bool {
	return e.Ctrl || e.Meta
}
