package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"github.com/custodia-labs/margin/internal/core/domain"
	"github.com/custodia-labs/margin/internal/core/geometry"
	"github.com/custodia-labs/margin/internal/core/ports/driven"
	"github.com/custodia-labs/margin/internal/core/ports/driving"
	"github.com/custodia-labs/margin/internal/logger"
)

// Ensure DocumentSession implements the interface.
var _ driving.DocumentSession = (*DocumentSession)(nil)

// Prompt texts.
const (
	PromptAnnotationText  = "Enter annotation text:"
	DefaultAnnotationText = "New annotation"
	MsgDocumentNotLoaded  = "Document not loaded"
)

// DocumentSession binds the active document to its annotation subscription
// and viewport. Loads are tagged with a navigation epoch; a result whose
// epoch is no longer current is discarded.
type DocumentSession struct {
	annotations driving.AnnotationService
	provider    driven.DocumentProvider
	prompter    driven.Prompter
	sink        driven.SnapshotSink
	viewport    driving.Viewport
	loadDelay   time.Duration

	mu         sync.Mutex
	documentID string
	document   *domain.Document
	status     domain.LoadStatus
	err        error
	sub        driving.AnnotationSubscription
	epoch      uint64
	cancelLoad context.CancelFunc
}

// NewDocumentSession creates an idle session. sink may be nil, in which case
// Save only builds the snapshot. loadDelay is added before every fetch.
func NewDocumentSession(
	annotations driving.AnnotationService,
	provider driven.DocumentProvider,
	prompter driven.Prompter,
	sink driven.SnapshotSink,
	viewport driving.Viewport,
	loadDelay time.Duration,
) *DocumentSession {
	if viewport == nil {
		viewport = NewViewportController()
	}
	return &DocumentSession{
		annotations: annotations,
		provider:    provider,
		prompter:    prompter,
		sink:        sink,
		viewport:    viewport,
		loadDelay:   loadDelay,
	}
}

// loadTask fetches one document for one navigation epoch.
type loadTask struct {
	ctx        context.Context
	documentID string
	epoch      uint64
	provider   driven.DocumentProvider
	delay      time.Duration
}

func (t *loadTask) DocumentID() string {
	return t.documentID
}

// Run fetches and builds the document. It touches no session state.
func (t *loadTask) Run() driving.LoadResult {
	res := driving.LoadResult{DocumentID: t.documentID, Epoch: t.epoch}

	if t.delay > 0 {
		timer := time.NewTimer(t.delay)
		select {
		case <-timer.C:
		case <-t.ctx.Done():
			timer.Stop()
			res.Err = t.ctx.Err()
			return res
		}
	}

	raw, err := t.provider.FetchDocument(t.ctx, t.documentID)
	if err != nil {
		res.Err = fmt.Errorf("%w: %s: %w", domain.ErrLoadFailure, t.documentID, err)
		return res
	}
	if raw == nil {
		res.Err = fmt.Errorf("%w: %s: empty response", domain.ErrLoadFailure, t.documentID)
		return res
	}
	res.Document = domain.NewDocument(t.documentID, *raw)
	return res
}

// startLoad invalidates any in-flight load and returns a task for the
// current document. The caller must hold s.mu.
func (s *DocumentSession) startLoad(ctx context.Context) *loadTask {
	if s.cancelLoad != nil {
		s.cancelLoad()
	}
	s.epoch++
	loadCtx, cancel := context.WithCancel(ctx)
	s.cancelLoad = cancel
	s.status = domain.LoadLoading
	s.err = nil

	return &loadTask{
		ctx:        loadCtx,
		documentID: s.documentID,
		epoch:      s.epoch,
		provider:   s.provider,
		delay:      s.loadDelay,
	}
}

// Navigate switches to documentID. The previous load is cancelled, the
// viewport is reset and the old subscription is dropped, so nothing from
// the previous document stays visible.
func (s *DocumentSession) Navigate(ctx context.Context, documentID string) driving.LoadTask {
	s.mu.Lock()
	defer s.mu.Unlock()

	if documentID == "" || documentID == s.documentID {
		return nil
	}

	logger.Debug("navigating from %q to %q", s.documentID, documentID)

	if s.sub != nil {
		s.sub.Cancel()
		s.sub = nil
	}
	s.documentID = documentID
	s.document = nil
	s.viewport.Reset()

	return s.startLoad(ctx)
}

// Reload starts a new load of the active document. The current document
// stays displayed until the result replaces it.
func (s *DocumentSession) Reload(ctx context.Context) driving.LoadTask {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.documentID == "" {
		return nil
	}
	return s.startLoad(ctx)
}

// Complete applies a load result if it belongs to the current epoch.
func (s *DocumentSession) Complete(res driving.LoadResult) bool {
	s.mu.Lock()

	if res.Epoch != s.epoch || res.DocumentID != s.documentID {
		s.mu.Unlock()
		logger.Debug("discarding stale load of %q (epoch %d, current %d)", res.DocumentID, res.Epoch, s.epoch)
		return false
	}
	if s.cancelLoad != nil {
		s.cancelLoad()
		s.cancelLoad = nil
	}

	if res.Err != nil {
		s.status = domain.LoadFailed
		s.err = res.Err
		s.document = nil
		if s.sub != nil {
			s.sub.Cancel()
			s.sub = nil
		}
		s.mu.Unlock()

		logger.Error("load document %q: %v", res.DocumentID, res.Err)
		if s.prompter != nil {
			s.prompter.Alert(fmt.Sprintf("Failed to load document %q: %v", res.DocumentID, res.Err))
		}
		return true
	}

	s.document = res.Document
	s.status = domain.LoadReady
	s.err = nil
	if s.sub == nil || s.sub.DocumentID() != res.DocumentID {
		if s.sub != nil {
			s.sub.Cancel()
		}
		s.sub = s.annotations.Subscribe(res.DocumentID)
	}
	s.mu.Unlock()

	// Restored snapshots and reloads that lose pages can leave orphans.
	s.annotations.Prune(res.DocumentID, res.Document.PageCount())

	logger.Debug("loaded document %q with %d pages", res.DocumentID, res.Document.PageCount())
	return true
}

// Open navigates to documentID and loads it synchronously. Opening the
// active document retries a failed or pending load and is otherwise a no-op.
func (s *DocumentSession) Open(ctx context.Context, documentID string) error {
	task := s.Navigate(ctx, documentID)
	if task == nil {
		if documentID == "" {
			return fmt.Errorf("%w: empty document id", domain.ErrInvalidInput)
		}
		if s.State().Status == domain.LoadReady {
			return nil
		}
		task = s.Reload(ctx)
	}

	res := task.Run()
	if !s.Complete(res) {
		return fmt.Errorf("%w: superseded load of %s", domain.ErrLoadFailure, documentID)
	}
	return res.Err
}

// State returns a read-only view of the session.
func (s *DocumentSession) State() domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return domain.SessionState{
		DocumentID: s.documentID,
		Document:   s.document,
		Status:     s.status,
		Err:        s.err,
		Scale:      s.viewport.Scale(),
		AddMode:    s.viewport.AddMode(),
	}
}

// Viewport returns the session's viewport.
func (s *DocumentSession) Viewport() driving.Viewport {
	return s.viewport
}

// Subscription returns the active annotation subscription, or nil.
func (s *DocumentSession) Subscription() driving.AnnotationSubscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sub
}

// AnnotationsByPage groups the latest annotation list by page index. It
// returns nil while no document is ready.
func (s *DocumentSession) AnnotationsByPage() [][]domain.Annotation {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.document == nil || s.sub == nil || s.sub.DocumentID() != s.documentID {
		return nil
	}
	return domain.GroupByPage(s.sub.Current(), s.document.PageCount())
}

// HandleDoubleClick prompts for text and adds an annotation at point. It
// does nothing unless add mode is on and a document is ready. Add mode is
// switched off once the prompt opens. A point outside every page box is
// logged and reported as domain.ErrPageNotFound.
func (s *DocumentSession) HandleDoubleClick(point vec.Vec2, pageBoxes []rect.Rect) error {
	s.mu.Lock()
	if !s.viewport.AddMode() || s.document == nil || s.status != domain.LoadReady {
		s.mu.Unlock()
		return nil
	}

	idx, ok := geometry.LocatePage(point, pageBoxes)
	if !ok || !s.document.HasPage(idx) {
		s.mu.Unlock()
		logger.Warn("double-click at (%.1f, %.1f) is not on a page", point.X, point.Y)
		return domain.ErrPageNotFound
	}

	docPoint := geometry.ScreenToDocument(point, geometry.Origin(pageBoxes[idx]), s.viewport.Scale())
	pos := geometry.ToPosition(docPoint, idx)
	documentID := s.documentID
	s.viewport.SetAddMode(false)
	s.mu.Unlock()

	if s.prompter == nil {
		return nil
	}
	s.prompter.Prompt(PromptAnnotationText, DefaultAnnotationText, func(text string, ok bool) {
		if !ok {
			return
		}
		s.addTo(documentID, text, pos)
	})
	return nil
}

// addTo adds an annotation if documentID is still the active document.
func (s *DocumentSession) addTo(documentID, text string, pos domain.Position) {
	s.mu.Lock()
	active := s.documentID == documentID && s.document.HasPage(pos.PageIndex)
	s.mu.Unlock()

	if !active {
		logger.Debug("dropping annotation for inactive document %q", documentID)
		return
	}
	if _, err := s.annotations.Add(documentID, text, pos, nil); err != nil {
		logger.Warn("add annotation: %v", err)
	}
}

// AddAnnotation adds an annotation to the active document. The page index
// must be valid for the loaded document.
func (s *DocumentSession) AddAnnotation(text string, pos domain.Position) (domain.Annotation, error) {
	s.mu.Lock()
	if s.document == nil {
		s.mu.Unlock()
		return domain.Annotation{}, domain.ErrDocumentNotLoaded
	}
	if !s.document.HasPage(pos.PageIndex) {
		s.mu.Unlock()
		return domain.Annotation{}, fmt.Errorf("%w: page index %d", domain.ErrInvalidPosition, pos.PageIndex)
	}
	documentID := s.documentID
	s.mu.Unlock()

	return s.annotations.Add(documentID, text, pos, nil)
}

// HandleKey forwards a keyboard event to the viewport.
func (s *DocumentSession) HandleKey(ev domain.KeyEvent) bool {
	return s.viewport.HandleKey(ev)
}

// MoveAnnotation stores a new position. Moves to a page the document does
// not have are ignored.
func (s *DocumentSession) MoveAnnotation(annotationID string, pageIndex int, x, y float64) {
	s.mu.Lock()
	documentID := s.documentID
	valid := s.document.HasPage(pageIndex)
	s.mu.Unlock()

	if !valid {
		return
	}
	s.annotations.Move(documentID, annotationID, domain.Position{X: x, Y: y, PageIndex: pageIndex})
}

// DeleteAnnotation removes an annotation from the active document.
func (s *DocumentSession) DeleteAnnotation(annotationID string) {
	s.mu.Lock()
	documentID := s.documentID
	s.mu.Unlock()

	if documentID == "" {
		return
	}
	s.annotations.Delete(documentID, annotationID)
}

// Save hands a snapshot of the active document to the sink and tells the
// user how many annotations were saved.
func (s *DocumentSession) Save(ctx context.Context) (*domain.Snapshot, error) {
	s.mu.Lock()
	if s.document == nil {
		s.mu.Unlock()
		s.alert(MsgDocumentNotLoaded)
		return nil, domain.ErrDocumentNotLoaded
	}
	documentID := s.documentID
	snapshot := s.annotations.Snapshot(documentID, s.document)
	s.mu.Unlock()

	if s.sink != nil {
		if err := s.sink.Save(ctx, snapshot); err != nil {
			logger.Error("save snapshot of %q: %v", documentID, err)
			s.alert(fmt.Sprintf("Failed to save document %q: %v", documentID, err))
			return nil, fmt.Errorf("save snapshot: %w", err)
		}
	}

	s.alert(fmt.Sprintf("Saved %d annotations for document %q.", snapshot.TotalAnnotations, documentID))
	return &snapshot, nil
}

func (s *DocumentSession) alert(msg string) {
	if s.prompter != nil {
		s.prompter.Alert(msg)
	}
}

// Close invalidates any pending load and cancels the subscription.
func (s *DocumentSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.epoch++
	if s.cancelLoad != nil {
		s.cancelLoad()
		s.cancelLoad = nil
	}
	if s.sub != nil {
		s.sub.Cancel()
		s.sub = nil
	}
}

