package domain

import "time"

// Snapshot is an immutable copy of a document's annotations plus the
// document metadata. It is what persistence sinks consume.
type Snapshot struct {
	DocumentID       string       `json:"documentId"`
	Document         *Document    `json:"document"`
	Annotations      []Annotation `json:"annotations"`
	SavedAt          time.Time    `json:"savedAt"`
	TotalAnnotations int          `json:"totalAnnotations"`
}
