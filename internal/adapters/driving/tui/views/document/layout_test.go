package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"github.com/custodia-labs/margin/internal/core/domain"
)

func testDocument() *domain.Document {
	return domain.NewDocument("doc-1", domain.RawDocument{
		Name:  "Report",
		Pages: []domain.RawPage{{Number: 0}, {Number: 1}},
	})
}

func annotationAt(id, text string, x, y float64, page int) domain.Annotation {
	return domain.Annotation{
		ID:       id,
		Text:     text,
		Position: domain.Position{X: x, Y: y, PageIndex: page},
		Style:    domain.DefaultStyle(),
	}
}

func TestNewLayout(t *testing.T) {
	l := NewLayout(testDocument(), 1, 120, 40, 0)

	require.Len(t, l.Boxes, 2)
	assert.Equal(t, rect.Rect{LLx: 80, LLy: 16, URx: 880, URy: 1147}, l.Boxes[0])
	assert.Equal(t, rect.Rect{LLx: 80, LLy: 1163, URx: 880, URy: 2294}, l.Boxes[1])
	assert.InDelta(t, 2310, l.ContentHeight(), 1e-9)
	assert.InDelta(t, 1670, l.MaxScroll(), 1e-9)
}

func TestNewLayout_Scaled(t *testing.T) {
	l := NewLayout(testDocument(), 0.5, 120, 40, 0)

	require.Len(t, l.Boxes, 2)
	assert.InDelta(t, 280, l.Boxes[0].LLx, 1e-9)
	assert.InDelta(t, 400, l.Boxes[0].URx-l.Boxes[0].LLx, 1e-9)
	assert.InDelta(t, 565.5, l.Boxes[0].URy-l.Boxes[0].LLy, 1e-9)
}

func TestNewLayout_NarrowCanvasPinsLeft(t *testing.T) {
	l := NewLayout(testDocument(), 1, 50, 40, 0)

	require.Len(t, l.Boxes, 2)
	assert.InDelta(t, 0, l.Boxes[0].LLx, 1e-9)
}

func TestNewLayout_Scroll(t *testing.T) {
	l := NewLayout(testDocument(), 1, 120, 40, 100)

	require.Len(t, l.Boxes, 2)
	assert.InDelta(t, -84, l.Boxes[0].LLy, 1e-9)
	assert.InDelta(t, 2310, l.ContentHeight(), 1e-9)
}

func TestNewLayout_NoDocument(t *testing.T) {
	l := NewLayout(nil, 1, 120, 40, 0)

	assert.Empty(t, l.Boxes)
	assert.Zero(t, l.ContentHeight())
	assert.Zero(t, l.MaxScroll())
}

func TestLayout_PageOrigin(t *testing.T) {
	l := NewLayout(testDocument(), 1, 120, 40, 0)

	origin, ok := l.PageOrigin(1)
	assert.True(t, ok)
	assert.Equal(t, vec.Vec2{X: 80, Y: 1163}, origin)

	_, ok = l.PageOrigin(2)
	assert.False(t, ok)
	_, ok = l.PageOrigin(-1)
	assert.False(t, ok)
}

func TestCellPointRoundTrip(t *testing.T) {
	p := CellPoint(20, 5)
	assert.Equal(t, vec.Vec2{X: 164, Y: 88}, p)

	col, row := PointCell(p)
	assert.Equal(t, 20, col)
	assert.Equal(t, 5, row)

	col, row = PointCell(vec.Vec2{X: -1, Y: -1})
	assert.Equal(t, -1, col)
	assert.Equal(t, -1, row)
}

func TestLayout_Labels(t *testing.T) {
	l := NewLayout(testDocument(), 1, 120, 40, 0)
	byPage := [][]domain.Annotation{
		{annotationAt("a1", "hello", 84, 72, 0)},
		{annotationAt("a2", "second page", 0, 0, 1)},
	}

	labels := l.Labels(byPage)

	require.Len(t, labels, 2)
	assert.Equal(t, 20, labels[0].Col)
	assert.Equal(t, 5, labels[0].Row)
	assert.Equal(t, "hello", string(labels[0].Text))
	assert.Equal(t, 26, labels[0].DeleteCol())
	assert.Equal(t, 10, labels[1].Col)
	assert.Equal(t, 72, labels[1].Row)
}

func TestLayout_LabelsIgnoreMissingPages(t *testing.T) {
	l := NewLayout(testDocument(), 1, 120, 40, 0)
	byPage := [][]domain.Annotation{{}, {}, {annotationAt("a1", "x", 0, 0, 2)}}

	assert.Empty(t, l.Labels(byPage))
}

func TestHit(t *testing.T) {
	l := NewLayout(testDocument(), 1, 120, 40, 0)
	labels := l.Labels([][]domain.Annotation{{
		annotationAt("a1", "hello", 84, 72, 0),
		annotationAt("a2", "top", 100, 72, 0),
	}})

	tests := []struct {
		name     string
		col, row int
		wantID   string
		onDelete bool
		ok       bool
	}{
		{"label start", 20, 5, "a1", false, true},
		{"overlap picks topmost", 22, 5, "a2", false, true},
		{"topmost delete", 26, 5, "a2", true, true},
		{"first delete uncovered", 21, 5, "a1", false, true},
		{"past the end", 27, 5, "", false, false},
		{"other row", 20, 6, "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lb, onDelete, ok := Hit(labels, tt.col, tt.row)

			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.onDelete, onDelete)
			assert.Equal(t, tt.wantID, lb.Annotation.ID)
		})
	}
}

func TestLabelText(t *testing.T) {
	assert.Equal(t, "short", string(labelText("short")))
	assert.Equal(t, "first", string(labelText("first\nsecond")))

	long := labelText("abcdefghijklmnopqrstuvwxyz0123")
	assert.Len(t, long, MaxLabelRunes)
	assert.Equal(t, '…', long[len(long)-1])
}
