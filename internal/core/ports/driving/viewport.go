package driving

import "github.com/custodia-labs/margin/internal/core/domain"

// Viewport owns zoom and add-mode state.
type Viewport interface {
	Scale() float64
	ZoomIn()
	ZoomOut()
	AddMode() bool
	ToggleAddMode()
	SetAddMode(on bool)
	Reset()

	// HandleKey applies keyboard shortcuts and reports whether default
	// handling of the event should be suppressed.
	HandleKey(ev domain.KeyEvent) bool
}
