package services

import (
	"context"
	"slices"
	"sync"

	"github.com/custodia-labs/margin/internal/core/domain"
	"github.com/custodia-labs/margin/internal/core/ports/driving"
)

// Ensure subscription implements the interface.
var _ driving.AnnotationSubscription = (*subscription)(nil)

// topic is the broadcast channel for one document's annotation list.
// Fields are guarded by the owning AnnotationStore's mutex.
type topic struct {
	current []domain.Annotation
	subs    map[*subscription]struct{}
}

func newTopic() *topic {
	return &topic{
		current: []domain.Annotation{},
		subs:    make(map[*subscription]struct{}),
	}
}

// publish makes list the topic's current value and queues it for every
// subscriber. The caller must hold the store lock, which keeps the
// delivery order identical across subscribers.
func (t *topic) publish(list []domain.Annotation) {
	t.current = list
	for sub := range t.subs {
		sub.push(list)
	}
}

// subscription queues every list published to its topic.
// The queue is unbounded so a slow reader never misses an update.
type subscription struct {
	documentID string
	release    func(*subscription)
	notify     chan struct{}

	mu     sync.Mutex
	latest []domain.Annotation
	queue  [][]domain.Annotation
	closed bool
	once   sync.Once
}

func newSubscription(documentID string, current []domain.Annotation, release func(*subscription)) *subscription {
	return &subscription{
		documentID: documentID,
		release:    release,
		notify:     make(chan struct{}, 1),
		latest:     slices.Clone(current),
	}
}

// DocumentID returns the document this subscription follows.
func (s *subscription) DocumentID() string {
	return s.documentID
}

// Current returns the most recently published list.
func (s *subscription) Current() []domain.Annotation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.latest)
}

// Next blocks until the next queued list is available.
func (s *subscription) Next(ctx context.Context) ([]domain.Annotation, error) {
	for {
		s.mu.Lock()
		if len(s.queue) > 0 {
			list := s.queue[0]
			s.queue[0] = nil
			s.queue = s.queue[1:]
			s.mu.Unlock()
			return slices.Clone(list), nil
		}
		if s.closed {
			s.mu.Unlock()
			return nil, domain.ErrSubscriptionClosed
		}
		s.mu.Unlock()

		select {
		case <-s.notify:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// Cancel detaches the subscription from its topic and wakes any reader.
func (s *subscription) Cancel() {
	s.once.Do(func() {
		s.release(s)
		s.mu.Lock()
		s.closed = true
		s.queue = nil
		s.mu.Unlock()
		s.wake()
	})
}

func (s *subscription) push(list []domain.Annotation) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.latest = list
	s.queue = append(s.queue, list)
	s.mu.Unlock()
	s.wake()
}

func (s *subscription) wake() {
	select {
	case s.notify <- struct{}{}:
	default:
	}
}

// pending returns the number of queued lists (for tests).
func (s *subscription) pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}
