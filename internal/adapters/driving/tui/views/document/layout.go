// Package document renders a paginated document and its annotations onto a
// grid of terminal cells, and maps cells back to screen points.
//
// Screen points are measured in pixels with the origin at the top-left
// corner of the canvas. Every cell covers CellWidth by CellHeight pixels.
package document

import (
	"math"
	"strings"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"github.com/custodia-labs/margin/internal/core/domain"
	"github.com/custodia-labs/margin/internal/core/geometry"
)

// Cell geometry and page spacing, in pixels.
const (
	CellWidth  = 8
	CellHeight = 16
	PageGap    = CellHeight
	Margin     = CellHeight
)

// MaxLabelRunes is the longest annotation text shown before truncation.
const MaxLabelRunes = 24

// Layout places the pages of a document on the canvas.
type Layout struct {
	Scale   float64
	Cols    int
	Rows    int
	ScrollY float64

	// Boxes are the on-screen page boxes in page order.
	Boxes []rect.Rect
}

// NewLayout stacks the document's pages top to bottom, centred
// horizontally, and shifted up by scrollY pixels.
func NewLayout(doc *domain.Document, scale float64, cols, rows int, scrollY float64) Layout {
	l := Layout{Scale: scale, Cols: cols, Rows: rows, ScrollY: scrollY}
	if doc == nil || len(doc.Pages) == 0 || scale <= 0 {
		return l
	}

	var width float64
	for _, p := range doc.Pages {
		width = math.Max(width, p.Width*scale)
	}
	x := (float64(cols*CellWidth) - width) / 2
	x = math.Max(0, math.Floor(x/CellWidth)*CellWidth)

	l.Boxes = geometry.StackPages(doc.Pages, scale, vec.Vec2{X: x, Y: Margin - scrollY}, PageGap)
	return l
}

// ContentHeight returns the unscrolled height of all pages plus margins.
func (l Layout) ContentHeight() float64 {
	if len(l.Boxes) == 0 {
		return 0
	}
	return l.Boxes[len(l.Boxes)-1].URy + l.ScrollY + Margin
}

// MaxScroll returns the largest useful scroll offset.
func (l Layout) MaxScroll() float64 {
	return math.Max(0, l.ContentHeight()-float64(l.Rows*CellHeight))
}

// PageOrigin returns the top-left corner of page index on screen.
func (l Layout) PageOrigin(index int) (vec.Vec2, bool) {
	if index < 0 || index >= len(l.Boxes) {
		return vec.Vec2{}, false
	}
	return geometry.Origin(l.Boxes[index]), true
}

// CellPoint returns the screen point at the centre of a cell.
func CellPoint(col, row int) vec.Vec2 {
	return vec.Vec2{
		X: (float64(col) + 0.5) * CellWidth,
		Y: (float64(row) + 0.5) * CellHeight,
	}
}

// PointCell returns the cell containing a screen point.
func PointCell(p vec.Vec2) (col, row int) {
	return int(math.Floor(p.X / CellWidth)), int(math.Floor(p.Y / CellHeight))
}

// Label is an annotation placed on the cell grid. It occupies its text,
// one blank cell and the delete affordance.
type Label struct {
	Annotation domain.Annotation
	Col        int
	Row        int
	Text       []rune
}

// DeleteCol returns the column of the delete affordance.
func (lb Label) DeleteCol() int {
	return lb.Col + len(lb.Text) + 1
}

// Labels places every annotation relative to its page, in page order and
// then list order. Later labels are drawn over earlier ones.
func (l Layout) Labels(byPage [][]domain.Annotation) []Label {
	var labels []Label
	for i, annotations := range byPage {
		origin, ok := l.PageOrigin(i)
		if !ok {
			break
		}
		for _, a := range annotations {
			p := geometry.DocumentToScreen(geometry.FromPosition(a.Position), origin, l.Scale)
			col, row := PointCell(p)
			labels = append(labels, Label{
				Annotation: a,
				Col:        col,
				Row:        row,
				Text:       labelText(a.Text),
			})
		}
	}
	return labels
}

// Hit returns the topmost label under a cell and whether the cell is its
// delete affordance.
func Hit(labels []Label, col, row int) (lb Label, onDelete, ok bool) {
	for i := len(labels) - 1; i >= 0; i-- {
		lb = labels[i]
		if lb.Row != row || col < lb.Col || col > lb.DeleteCol() {
			continue
		}
		return lb, col == lb.DeleteCol(), true
	}
	return Label{}, false, false
}

// labelText returns the first line of text, truncated to MaxLabelRunes.
func labelText(text string) []rune {
	if i := strings.IndexAny(text, "\r\n"); i >= 0 {
		text = text[:i]
	}
	r := []rune(text)
	if len(r) > MaxLabelRunes {
		r = append(r[:MaxLabelRunes-1:MaxLabelRunes-1], '…')
	}
	return r
}
