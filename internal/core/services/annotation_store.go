package services

import (
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/margin/internal/core/domain"
	"github.com/custodia-labs/margin/internal/core/ports/driving"
	"github.com/custodia-labs/margin/internal/logger"
)

// Ensure AnnotationStore implements the interface.
var _ driving.AnnotationService = (*AnnotationStore)(nil)

// AnnotationStore keeps, per document identifier, the canonical ordered
// list of that document's annotations and broadcasts every change.
//
// Each mutation reads the current list, derives a new list and publishes
// it while holding one lock, so subscribers never see a partial change and
// mutations apply in submission order.
type AnnotationStore struct {
	mu     sync.Mutex
	topics map[string]*topic
	style  domain.Style

	// newID and now are replaced in tests.
	newID func() string
	now   func() time.Time
}

// NewAnnotationStore creates an empty store. New annotations get
// defaultStyle unless Add is given a style; an unusable defaultStyle falls
// back to domain.DefaultStyle.
func NewAnnotationStore(defaultStyle domain.Style) *AnnotationStore {
	if !defaultStyle.IsValid() {
		defaultStyle = domain.DefaultStyle()
	}
	return &AnnotationStore{
		topics: make(map[string]*topic),
		style:  defaultStyle,
		newID:  uuid.NewString,
		now:    time.Now,
	}
}

// topicFor returns the topic for documentID, creating it if needed.
// The caller must hold s.mu.
func (s *AnnotationStore) topicFor(documentID string) *topic {
	t, ok := s.topics[documentID]
	if !ok {
		t = newTopic()
		s.topics[documentID] = t
	}
	return t
}

// Subscribe returns a live subscription to a document's annotation list.
func (s *AnnotationStore) Subscribe(documentID string) driving.AnnotationSubscription {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.topicFor(documentID)
	sub := newSubscription(documentID, t.current, s.unsubscribe)
	t.subs[sub] = struct{}{}
	return sub
}

func (s *AnnotationStore) unsubscribe(sub *subscription) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.topics[sub.documentID]; ok {
		delete(t.subs, sub)
	}
}

// Add appends a new annotation and publishes the new list.
func (s *AnnotationStore) Add(
	documentID, text string, pos domain.Position, style *domain.Style,
) (domain.Annotation, error) {
	st := s.style
	if style != nil {
		st = *style
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := domain.NewAnnotation(s.newID(), text, s.now().UTC(), pos, st)
	if err != nil {
		return domain.Annotation{}, err
	}

	t := s.topicFor(documentID)
	next := make([]domain.Annotation, 0, len(t.current)+1)
	next = append(next, t.current...)
	next = append(next, a)
	t.publish(next)

	logger.Debug("annotation %s added to %s on page %d", a.ID, documentID, a.Position.PageIndex)
	return a, nil
}

// Update replaces the matching annotation with a merged copy. The list is
// republished even when annotationID is absent.
func (s *AnnotationStore) Update(documentID, annotationID string, patch domain.AnnotationPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.topicFor(documentID)
	next := make([]domain.Annotation, len(t.current))
	for i, a := range t.current {
		if a.ID == annotationID {
			next[i] = patch.Apply(a)
		} else {
			next[i] = a
		}
	}
	t.publish(next)
}

// Move updates only the position of an annotation.
func (s *AnnotationStore) Move(documentID, annotationID string, pos domain.Position) {
	s.Update(documentID, annotationID, domain.AnnotationPatch{Position: &pos})
}

// Delete removes an annotation if present and publishes the new list.
func (s *AnnotationStore) Delete(documentID, annotationID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.topicFor(documentID)
	next := make([]domain.Annotation, 0, len(t.current))
	for _, a := range t.current {
		if a.ID != annotationID {
			next = append(next, a)
		}
	}
	t.publish(next)
}

// Restore replaces a document's list with valid entries from annotations.
func (s *AnnotationStore) Restore(documentID string, annotations []domain.Annotation) int {
	next := make([]domain.Annotation, 0, len(annotations))
	seen := make(map[string]bool, len(annotations))
	for _, a := range annotations {
		if a.ID == "" || seen[a.ID] || strings.TrimSpace(a.Text) == "" || a.Position.PageIndex < 0 {
			continue
		}
		if !a.Style.IsValid() {
			a.Style = s.style
		}
		a.Position = a.Position.Clamped()
		seen[a.ID] = true
		next = append(next, a)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.topicFor(documentID).publish(next)

	logger.Debug("restored %d of %d annotations for %s", len(next), len(annotations), documentID)
	return len(next)
}

// Prune drops annotations whose page index is outside [0, pageCount) and
// publishes the result. Nothing is published when every entry fits.
func (s *AnnotationStore) Prune(documentID string, pageCount int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.topics[documentID]
	if !ok {
		return 0
	}
	next := make([]domain.Annotation, 0, len(t.current))
	for _, a := range t.current {
		if a.Position.PageIndex >= 0 && a.Position.PageIndex < pageCount {
			next = append(next, a)
		}
	}
	dropped := len(t.current) - len(next)
	if dropped == 0 {
		return 0
	}
	t.publish(next)

	logger.Warn("dropped %d annotations outside the %d pages of %s", dropped, pageCount, documentID)
	return dropped
}

// Annotations returns a copy of the current list.
func (s *AnnotationStore) Annotations(documentID string) []domain.Annotation {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.topics[documentID]
	if !ok {
		return []domain.Annotation{}
	}
	return slices.Clone(t.current)
}

// Snapshot builds a serialisable copy of a document's state.
// It does not create or modify any entry.
func (s *AnnotationStore) Snapshot(documentID string, doc *domain.Document) domain.Snapshot {
	annotations := s.Annotations(documentID)
	return domain.Snapshot{
		DocumentID:       documentID,
		Document:         doc,
		Annotations:      annotations,
		SavedAt:          s.now().UTC(),
		TotalAnnotations: len(annotations),
	}
}

// Release disposes of a document's entry. Releasing an unknown document
// is a no-op.
func (s *AnnotationStore) Release(documentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.topics[documentID]
	if !ok {
		return nil
	}
	if len(t.subs) > 0 {
		return domain.ErrEntryInUse
	}
	delete(s.topics, documentID)
	logger.Debug("annotation entry for %s released", documentID)
	return nil
}

// Documents returns the identifiers of all entries, sorted.
func (s *AnnotationStore) Documents() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.topics))
	for id := range s.topics {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
