package services

import (
	"github.com/custodia-labs/margin/internal/core/domain"
	"github.com/custodia-labs/margin/internal/core/ports/driving"
)

// Ensure ViewportController implements the interface.
var _ driving.Viewport = (*ViewportController)(nil)

// Zoom bounds and step.
const (
	MinScale     = 0.5
	MaxScale     = 3.0
	ScaleStep    = 0.25
	DefaultScale = 1.0
)

// ViewportController owns the zoom scale and the add-mode flag.
type ViewportController struct {
	scale   float64
	addMode bool
}

// NewViewportController returns a viewport at the default scale with add
// mode off.
func NewViewportController() *ViewportController {
	return &ViewportController{scale: DefaultScale}
}

// Scale returns the current zoom multiplier.
func (v *ViewportController) Scale() float64 {
	return v.scale
}

// ZoomIn increases the scale by one step, up to MaxScale.
func (v *ViewportController) ZoomIn() {
	v.scale = clampScale(v.scale + ScaleStep)
}

// ZoomOut decreases the scale by one step, down to MinScale.
func (v *ViewportController) ZoomOut() {
	v.scale = clampScale(v.scale - ScaleStep)
}

// AddMode reports whether a double-click creates an annotation.
func (v *ViewportController) AddMode() bool {
	return v.addMode
}

// ToggleAddMode flips add mode.
func (v *ViewportController) ToggleAddMode() {
	v.addMode = !v.addMode
}

// SetAddMode sets add mode.
func (v *ViewportController) SetAddMode(on bool) {
	v.addMode = on
}

// Reset restores the default scale and turns add mode off.
func (v *ViewportController) Reset() {
	v.scale = DefaultScale
	v.addMode = false
}

// HandleKey applies the viewer shortcuts:
//
//	Escape          leave add mode (suppressed only if add mode was on)
//	Ctrl/Cmd + or = zoom in
//	Ctrl/Cmd - or _ zoom out
func (v *ViewportController) HandleKey(ev domain.KeyEvent) bool {
	if ev.Key == domain.KeyEscape {
		if !v.addMode {
			return false
		}
		v.addMode = false
		return true
	}

	if !ev.Shortcut() {
		return false
	}
	switch ev.Key {
	case "+", "=":
		v.ZoomIn()
		return true
	case "-", "_":
		v.ZoomOut()
		return true
	default:
		return false
	}
}

func clampScale(s float64) float64 {
	return min(max(s, MinScale), MaxScale)
}
