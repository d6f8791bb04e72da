package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPosition_Clamped(t *testing.T) {
	tests := []struct {
		name string
		in   Position
		want Position
	}{
		{"positive unchanged", Position{X: 10, Y: 20, PageIndex: 1}, Position{X: 10, Y: 20, PageIndex: 1}},
		{"negative x", Position{X: -5, Y: 20}, Position{X: 0, Y: 20}},
		{"negative y", Position{X: 5, Y: -0.5}, Position{X: 5, Y: 0}},
		{"both negative", Position{X: -1, Y: -1, PageIndex: 2}, Position{X: 0, Y: 0, PageIndex: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Clamped())
		})
	}
}

func TestDefaultStyle(t *testing.T) {
	s := DefaultStyle()

	assert.Equal(t, "#000000", s.Color)
	assert.Equal(t, "#FFFF00", s.BackgroundColor)
	assert.Equal(t, 14.0, s.FontSize)
	assert.True(t, s.IsValid())
}

func TestStyle_IsValid(t *testing.T) {
	assert.False(t, Style{Color: "#fff", BackgroundColor: "#000", FontSize: 0}.IsValid())
	assert.False(t, Style{Color: "", BackgroundColor: "#000", FontSize: 12}.IsValid())
	assert.True(t, Style{Color: "white", BackgroundColor: "white", FontSize: 12}.IsValid())
}

func TestNewAnnotation(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("valid", func(t *testing.T) {
		a, err := NewAnnotation("a-1", "  hello ", now, Position{X: 100, Y: 100}, DefaultStyle())
		require.NoError(t, err)
		assert.Equal(t, "a-1", a.ID)
		assert.Equal(t, "hello", a.Text)
		assert.Equal(t, now, a.CreatedAt)
		assert.Equal(t, Position{X: 100, Y: 100, PageIndex: 0}, a.Position)
	})

	t.Run("clamps negative coordinates", func(t *testing.T) {
		a, err := NewAnnotation("a-1", "x", now, Position{X: -3, Y: -4, PageIndex: 1}, DefaultStyle())
		require.NoError(t, err)
		assert.Equal(t, Position{X: 0, Y: 0, PageIndex: 1}, a.Position)
	})

	t.Run("empty text", func(t *testing.T) {
		_, err := NewAnnotation("a-1", "   ", now, Position{}, DefaultStyle())
		assert.ErrorIs(t, err, ErrEmptyText)
	})

	t.Run("negative page index", func(t *testing.T) {
		_, err := NewAnnotation("a-1", "x", now, Position{PageIndex: -1}, DefaultStyle())
		assert.ErrorIs(t, err, ErrInvalidPosition)
	})

	t.Run("invalid style", func(t *testing.T) {
		_, err := NewAnnotation("a-1", "x", now, Position{}, Style{})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestAnnotationPatch_Apply(t *testing.T) {
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	orig := Annotation{
		ID:        "a-1",
		Text:      "before",
		CreatedAt: created,
		Position:  Position{X: 1, Y: 2},
		Style:     DefaultStyle(),
	}

	t.Run("text only", func(t *testing.T) {
		text := "after"
		got := AnnotationPatch{Text: &text}.Apply(orig)
		assert.Equal(t, "after", got.Text)
		assert.Equal(t, orig.Position, got.Position)
		assert.Equal(t, "before", orig.Text)
	})

	t.Run("position is clamped", func(t *testing.T) {
		pos := Position{X: -10, Y: 50, PageIndex: 3}
		got := AnnotationPatch{Position: &pos}.Apply(orig)
		assert.Equal(t, Position{X: 0, Y: 50, PageIndex: 3}, got.Position)
	})

	t.Run("identity preserved", func(t *testing.T) {
		style := Style{Color: "red", BackgroundColor: "blue", FontSize: 20}
		got := AnnotationPatch{Style: &style}.Apply(orig)
		assert.Equal(t, "a-1", got.ID)
		assert.Equal(t, created, got.CreatedAt)
		assert.Equal(t, style, got.Style)
	})

	t.Run("invalid fields ignored", func(t *testing.T) {
		blank := " "
		pos := Position{PageIndex: -2}
		style := Style{}
		got := AnnotationPatch{Text: &blank, Position: &pos, Style: &style}.Apply(orig)
		assert.Equal(t, orig, got)
	})
}

func TestGroupByPage(t *testing.T) {
	annotations := []Annotation{
		{ID: "a", Position: Position{PageIndex: 0}},
		{ID: "b", Position: Position{PageIndex: 1}},
		{ID: "c", Position: Position{PageIndex: 0}},
		{ID: "d", Position: Position{PageIndex: 7}},
	}

	pages := GroupByPage(annotations, 3)

	require.Len(t, pages, 3)
	require.Len(t, pages[0], 2)
	assert.Equal(t, "a", pages[0][0].ID)
	assert.Equal(t, "c", pages[0][1].ID)
	require.Len(t, pages[1], 1)
	assert.Equal(t, "b", pages[1][0].ID)
	assert.Empty(t, pages[2])
	assert.Nil(t, GroupByPage(annotations, 0))
}
