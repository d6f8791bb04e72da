package services

import (
	"seehuhn.de/go/geom/vec"

	"github.com/custodia-labs/margin/internal/core/ports/driven"
	"github.com/custodia-labs/margin/internal/core/ports/driving"
)

// Ensure DragController implements the interface.
var _ driving.Dragger = (*DragController)(nil)

// DragState is the state of a DragController.
type DragState int

const (
	// DragIdle means no gesture is in progress.
	DragIdle DragState = iota
	// DragDragging means pointer moves are being translated into positions.
	DragDragging
)

// String returns the string representation of the state.
func (s DragState) String() string {
	switch s {
	case DragIdle:
		return "idle"
	case DragDragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// DragController turns pointer moves into document-space positions for one
// annotation. Listeners on the pointer surface are held only while
// dragging and are released exactly once per gesture.
type DragController struct {
	surface driven.PointerSurface
	moved   func(pos vec.Vec2)

	state   DragState
	offset  vec.Vec2
	scale   float64
	release func()
}

// NewDragController creates an idle controller. moved receives every new
// document-space position while dragging.
func NewDragController(surface driven.PointerSurface, moved func(pos vec.Vec2)) *DragController {
	return &DragController{
		surface: surface,
		moved:   moved,
	}
}

// State returns the current state.
func (d *DragController) State() DragState {
	return d.state
}

// Dragging reports whether a gesture is in progress.
func (d *DragController) Dragging() bool {
	return d.state == DragDragging
}

// Start begins a gesture at screen point p for an annotation currently at
// document position pos. A start on the delete affordance, or while a
// gesture is already running, is ignored and Start returns false.
func (d *DragController) Start(p, pos vec.Vec2, scale float64, onDeleteAffordance bool) bool {
	if onDeleteAffordance || d.state == DragDragging || scale <= 0 {
		return false
	}

	d.offset = p.Sub(pos.Mul(scale))
	d.scale = scale
	d.state = DragDragging
	d.release = d.surface.Listen(driven.PointerHandlers{
		Move: d.move,
		End:  d.end,
	})
	return true
}

// Cancel ends the gesture without a final move. It is safe to call when idle.
func (d *DragController) Cancel() {
	d.end()
}

func (d *DragController) move(p vec.Vec2) {
	if d.state != DragDragging {
		return
	}
	pos := p.Sub(d.offset)
	pos = vec.Vec2{
		X: max(0, pos.X/d.scale),
		Y: max(0, pos.Y/d.scale),
	}
	d.moved(pos)
}

func (d *DragController) end() {
	if d.state != DragDragging {
		return
	}
	d.state = DragIdle
	release := d.release
	d.release = nil
	if release != nil {
		release()
	}
}
