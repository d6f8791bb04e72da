package document

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/margin/internal/adapters/driving/tui/styles"
)

// DeleteGlyph marks the delete affordance after each label.
const DeleteGlyph = 'x'

// palette indices for the fixed cell styles.
const (
	styleGutter = iota
	stylePage
	stylePageNumber
	styleDelete
	styleLabels
)

// View renders a Layout and its labels.
type View struct {
	styles *styles.Styles
	width  int
	height int
}

// NewView creates a new document view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{styles: s}
}

// SetDimensions sets the canvas size in cells.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// Dimensions returns the canvas size in cells.
func (v *View) Dimensions() (width, height int) {
	return v.width, v.height
}

// Message renders text centred on an empty canvas.
func (v *View) Message(text string) string {
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, v.styles.Muted.Render(text))
}

// Render draws the pages and labels of l. The result has exactly as many
// lines as the canvas has rows.
func (v *View) Render(l Layout, labels []Label) string {
	g := newGrid(v.width, v.height)
	palette := []lipgloss.Style{
		styleGutter:     v.styles.Gutter,
		stylePage:       v.styles.Page,
		stylePageNumber: v.styles.PageNumber,
		styleDelete:     v.styles.Delete,
	}

	for i, box := range l.Boxes {
		top := int(math.Ceil(box.LLy/CellHeight - 0.5))
		bottom := int(math.Floor(box.URy/CellHeight - 0.5))
		left := int(math.Ceil(box.LLx/CellWidth - 0.5))
		right := int(math.Floor(box.URx/CellWidth - 0.5))
		g.fill(left, top, right, bottom, ' ', stylePage)
		g.text(left+1, top, []rune(fmt.Sprintf("p.%d", i+1)), stylePageNumber)
	}

	for _, lb := range labels {
		palette = append(palette, v.styles.Annotation(lb.Annotation.Style))
		g.text(lb.Col, lb.Row, lb.Text, len(palette)-1)
		g.text(lb.DeleteCol(), lb.Row, []rune{DeleteGlyph}, styleDelete)
	}

	return g.render(palette)
}

// grid is a rectangle of cells, each a rune and a palette index.
type grid struct {
	cols, rows int
	runes      [][]rune
	styles     [][]int
}

func newGrid(cols, rows int) *grid {
	cols = max(cols, 0)
	rows = max(rows, 0)
	g := &grid{cols: cols, rows: rows, runes: make([][]rune, rows), styles: make([][]int, rows)}
	for r := range rows {
		g.runes[r] = []rune(strings.Repeat(" ", cols))
		g.styles[r] = make([]int, cols)
	}
	return g
}

func (g *grid) set(col, row int, r rune, style int) {
	if col < 0 || row < 0 || col >= g.cols || row >= g.rows {
		return
	}
	g.runes[row][col] = r
	g.styles[row][col] = style
}

func (g *grid) fill(left, top, right, bottom int, r rune, style int) {
	for row := max(top, 0); row <= min(bottom, g.rows-1); row++ {
		for col := max(left, 0); col <= min(right, g.cols-1); col++ {
			g.set(col, row, r, style)
		}
	}
}

func (g *grid) text(col, row int, text []rune, style int) {
	for i, r := range text {
		g.set(col+i, row, r, style)
	}
}

// render joins runs of equally styled cells.
func (g *grid) render(palette []lipgloss.Style) string {
	lines := make([]string, g.rows)
	for row := range g.rows {
		var b strings.Builder
		start := 0
		for col := 1; col <= g.cols; col++ {
			if col < g.cols && g.styles[row][col] == g.styles[row][start] {
				continue
			}
			b.WriteString(palette[g.styles[row][start]].Render(string(g.runes[row][start:col])))
			start = col
		}
		lines[row] = b.String()
	}
	return strings.Join(lines, "\n")
}
