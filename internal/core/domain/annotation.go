package domain

import (
	"strings"
	"time"
)

// Position locates an annotation in document space.
// X and Y are relative to the unscaled top-left corner of the page.
type Position struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	PageIndex int     `json:"pageIndex"`
}

// Clamped returns the position with both axes clamped to be non-negative.
func (p Position) Clamped() Position {
	if p.X < 0 {
		p.X = 0
	}
	if p.Y < 0 {
		p.Y = 0
	}
	return p
}

// Style controls how an annotation is drawn.
type Style struct {
	Color           string  `json:"color"`
	BackgroundColor string  `json:"backgroundColor"`
	FontSize        float64 `json:"fontSize"`
}

// DefaultStyle returns the style applied to new annotations unless overridden:
// black text on a yellow background.
func DefaultStyle() Style {
	return Style{
		Color:           "#000000",
		BackgroundColor: "#FFFF00",
		FontSize:        14,
	}
}

// IsValid reports whether the style can be rendered.
func (s Style) IsValid() bool {
	return s.FontSize > 0 && s.Color != "" && s.BackgroundColor != ""
}

// Annotation is a free-form text note placed on a document page.
// ID and CreatedAt are fixed at creation and never change afterwards.
type Annotation struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
	Position  Position  `json:"position"`
	Style     Style     `json:"style"`
}

// NewAnnotation builds an annotation with the given identity.
// The position is clamped; text is trimmed and must not be empty.
func NewAnnotation(id, text string, createdAt time.Time, pos Position, style Style) (Annotation, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Annotation{}, ErrEmptyText
	}
	if pos.PageIndex < 0 {
		return Annotation{}, ErrInvalidPosition
	}
	if !style.IsValid() {
		return Annotation{}, ErrInvalidInput
	}
	return Annotation{
		ID:        id,
		Text:      text,
		CreatedAt: createdAt,
		Position:  pos.Clamped(),
		Style:     style,
	}, nil
}

// AnnotationPatch carries the fields of a partial update.
// Nil fields are left untouched. ID and CreatedAt cannot be patched.
type AnnotationPatch struct {
	Text     *string
	Position *Position
	Style    *Style
}

// Apply returns a merged copy of a, always keeping a's ID and CreatedAt.
// Invalid patch values (blank text, negative page index, unusable style)
// are ignored field by field.
func (p AnnotationPatch) Apply(a Annotation) Annotation {
	merged := a
	if p.Text != nil {
		if text := strings.TrimSpace(*p.Text); text != "" {
			merged.Text = text
		}
	}
	if p.Position != nil && p.Position.PageIndex >= 0 {
		merged.Position = p.Position.Clamped()
	}
	if p.Style != nil && p.Style.IsValid() {
		merged.Style = *p.Style
	}
	merged.ID = a.ID
	merged.CreatedAt = a.CreatedAt
	return merged
}

// GroupByPage splits annotations into one ordered list per page index.
// Annotations whose page index is outside [0, pageCount) are dropped.
func GroupByPage(annotations []Annotation, pageCount int) [][]Annotation {
	if pageCount <= 0 {
		return nil
	}
	pages := make([][]Annotation, pageCount)
	for i := range pages {
		pages[i] = []Annotation{}
	}
	for _, a := range annotations {
		idx := a.Position.PageIndex
		if idx < 0 || idx >= pageCount {
			continue
		}
		pages[idx] = append(pages[idx], a)
	}
	return pages
}
