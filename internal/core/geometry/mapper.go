package geometry

import (
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"github.com/custodia-labs/margin/internal/core/domain"
)

// NotFound is returned by LocatePage when no page contains the point.
const NotFound = -1

// ScreenToDocument converts a screen point to document space for a page
// whose top-left corner is at origin on screen. scale must be non-zero.
func ScreenToDocument(screen, origin vec.Vec2, scale float64) vec.Vec2 {
	d := screen.Sub(origin)
	return vec.Vec2{X: d.X / scale, Y: d.Y / scale}
}

// DocumentToScreen is the inverse of ScreenToDocument.
func DocumentToScreen(doc, origin vec.Vec2, scale float64) vec.Vec2 {
	return doc.Mul(scale).Add(origin)
}

// Contains reports whether p lies inside r, edges included.
func Contains(r rect.Rect, p vec.Vec2) bool {
	return p.X >= r.LLx && p.X <= r.URx && p.Y >= r.LLy && p.Y <= r.URy
}

// Origin returns the top-left corner of r.
func Origin(r rect.Rect) vec.Vec2 {
	return vec.Vec2{X: r.LLx, Y: r.LLy}
}

// LocatePage returns the index of the first box in page order that
// contains p. It returns NotFound and false when p is outside every box,
// which is the normal outcome for a click in the gutter between pages.
func LocatePage(p vec.Vec2, boxes []rect.Rect) (int, bool) {
	for i, box := range boxes {
		if Contains(box, p) {
			return i, true
		}
	}
	return NotFound, false
}

// PageBox returns the on-screen box of a page with the given display size
// whose top-left corner is at origin.
func PageBox(origin vec.Vec2, width, height, scale float64) rect.Rect {
	return rect.Rect{
		LLx: origin.X,
		LLy: origin.Y,
		URx: origin.X + width*scale,
		URy: origin.Y + height*scale,
	}
}

// StackPages lays pages out top to bottom, starting at origin, with gap
// screen units between consecutive pages. The gap does not scale.
func StackPages(pages []domain.Page, scale float64, origin vec.Vec2, gap float64) []rect.Rect {
	boxes := make([]rect.Rect, len(pages))
	cursor := origin
	for i, p := range pages {
		boxes[i] = PageBox(cursor, p.Width, p.Height, scale)
		cursor.Y = boxes[i].URy + gap
	}
	return boxes
}

// ToPosition converts a document-space point on page pageIndex into a
// clamped annotation position.
func ToPosition(p vec.Vec2, pageIndex int) domain.Position {
	return domain.Position{X: p.X, Y: p.Y, PageIndex: pageIndex}.Clamped()
}

// FromPosition returns the document-space point of a position.
func FromPosition(p domain.Position) vec.Vec2 {
	return vec.Vec2{X: p.X, Y: p.Y}
}
