package domain

// LoadStatus describes where the active document is in its load lifecycle.
type LoadStatus int

const (
	// LoadIdle means no document has been requested yet.
	LoadIdle LoadStatus = iota
	// LoadLoading means a load is in flight.
	LoadLoading
	// LoadReady means the document is loaded.
	LoadReady
	// LoadFailed means the last load for the active document failed.
	LoadFailed
)

// String returns the string representation of the status.
func (s LoadStatus) String() string {
	switch s {
	case LoadIdle:
		return "idle"
	case LoadLoading:
		return "loading"
	case LoadReady:
		return "ready"
	case LoadFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// SessionState is a read-only view of a document session.
type SessionState struct {
	DocumentID string
	Document   *Document
	Status     LoadStatus
	Err        error
	Scale      float64
	AddMode    bool
}
