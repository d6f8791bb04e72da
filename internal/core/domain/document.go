package domain

// Fixed display dimensions of every page, in document-space units.
const (
	PageWidth  = 800
	PageHeight = 1131
)

// Page is one rendered page of a document.
type Page struct {
	// PageNumber is the 1-based page number.
	PageNumber int `json:"pageNumber"`

	// ImageURL locates the rendered page image.
	ImageURL string `json:"imageUrl"`

	// Width and Height are the display dimensions in document space.
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Document is a paginated document as shown by the viewer.
// Documents are never mutated in place; a reload replaces the value.
type Document struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Pages []Page `json:"pages"`
}

// RawPage is a page as supplied by a document provider.
// Number is 0-based.
type RawPage struct {
	Number   int    `json:"number" toml:"number"`
	ImageURL string `json:"imageUrl" toml:"image_url"`
}

// RawDocument is the provider payload a Document is built from.
type RawDocument struct {
	Name  string    `json:"name" toml:"name"`
	Pages []RawPage `json:"pages" toml:"pages"`
}

// NewDocument builds a Document from provider data, normalising page
// numbers to be 1-based and assigning the fixed display dimensions.
func NewDocument(id string, raw RawDocument) *Document {
	pages := make([]Page, len(raw.Pages))
	for i, p := range raw.Pages {
		pages[i] = Page{
			PageNumber: p.Number + 1,
			ImageURL:   p.ImageURL,
			Width:      PageWidth,
			Height:     PageHeight,
		}
	}
	return &Document{
		ID:    id,
		Title: raw.Name,
		Pages: pages,
	}
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int {
	if d == nil {
		return 0
	}
	return len(d.Pages)
}

// HasPage reports whether index is a valid page index.
func (d *Document) HasPage(index int) bool {
	return index >= 0 && index < d.PageCount()
}
