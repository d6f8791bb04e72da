package tui

import (
	"sort"
	"sync"

	"seehuhn.de/go/geom/vec"

	"github.com/custodia-labs/margin/internal/core/ports/driven"
)

// Ensure Surface implements the interface.
var _ driven.PointerSurface = (*Surface)(nil)

// Surface fans terminal mouse motion and release events out to the
// listeners registered by drag controllers.
type Surface struct {
	mu       sync.Mutex
	next     int
	handlers map[int]driven.PointerHandlers
}

// NewSurface creates a surface with no listeners.
func NewSurface() *Surface {
	return &Surface{handlers: make(map[int]driven.PointerHandlers)}
}

// Listen registers h until the returned function is called.
func (s *Surface) Listen(h driven.PointerHandlers) func() {
	s.mu.Lock()
	id := s.next
	s.next++
	s.handlers[id] = h
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.handlers, id)
			s.mu.Unlock()
		})
	}
}

// Move delivers a pointer position to every listener.
func (s *Surface) Move(p vec.Vec2) {
	for _, h := range s.snapshot() {
		if h.Move != nil {
			h.Move(p)
		}
	}
}

// End delivers a button release to every listener.
func (s *Surface) End() {
	for _, h := range s.snapshot() {
		if h.End != nil {
			h.End()
		}
	}
}

// Listeners returns the number of registered listeners.
func (s *Surface) Listeners() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.handlers)
}

// snapshot copies the handlers in registration order so they can be
// called without holding the lock.
func (s *Surface) snapshot() []driven.PointerHandlers {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]int, 0, len(s.handlers))
	for id := range s.handlers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]driven.PointerHandlers, len(ids))
	for i, id := range ids {
		out[i] = s.handlers[id]
	}
	return out
}
