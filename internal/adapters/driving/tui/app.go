package tui

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"seehuhn.de/go/geom/vec"

	"github.com/custodia-labs/margin/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/margin/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/margin/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/margin/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/margin/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/margin/internal/adapters/driving/tui/views/document"
	"github.com/custodia-labs/margin/internal/core/domain"
	"github.com/custodia-labs/margin/internal/core/geometry"
	"github.com/custodia-labs/margin/internal/core/ports/driving"
)

// DoubleClickInterval is the longest gap between two clicks on the same
// cell that still counts as a double click.
const DoubleClickInterval = 400 * time.Millisecond

// wheelRows is how far one wheel notch scrolls.
const wheelRows = 3

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles    *styles.Styles
	keymap    *keymap.KeyMap
	document  *document.View
	statusBar *status.Bar
	prompt    *input.Prompt

	// request is the prompt request being answered, if any.
	request *PromptRequest

	// surface receives mouse motion while a drag is running.
	surface  *Surface
	drag     driving.Dragger
	dragPage int

	// watching is the subscription the annotation pump follows.
	watching driving.AnnotationSubscription

	// initialDocument is opened by Init.
	initialDocument string

	scrollY float64

	// lastClick and lastCell detect double clicks.
	lastClick time.Time
	lastCell  [2]int
	now       func() time.Time

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a viewer that opens documentID on start.
func NewApp(ports *Ports, documentID string) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:           ports,
		ctx:             context.Background(),
		styles:          s,
		keymap:          km,
		document:        document.NewView(s),
		statusBar:       status.NewBar(s, km),
		prompt:          input.NewPrompt(s),
		surface:         NewSurface(),
		initialDocument: documentID,
		now:             time.Now,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
// It opens the initial document.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("margin"),
		a.navigate(a.initialDocument),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocyclo // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)

	case tea.KeyMsg:
		if a.request != nil {
			cmd = a.handlePromptKey(msg)
		} else {
			cmd = a.handleKey(msg)
		}

	case tea.MouseMsg:
		cmd = a.handleMouse(msg)

	case messages.DocumentLoaded:
		if a.ports.Session.Complete(msg.Result) {
			a.flushAlerts(msg.Result.Err)
			a.clampScroll()
			cmd = a.watchAnnotations()
		}

	case messages.AnnotationsChanged:
		cmd = a.handleAnnotations(msg)

	case messages.AutosaveTick:
		if a.ports.Session.State().Status == domain.LoadReady {
			a.save()
		}

	case messages.ManifestChanged:
		cmd = a.reload()

	case messages.ErrorOccurred:
		a.err = msg.Err
		a.statusBar.SetError(msg.Err.Error())

	case messages.Quit:
		a.cancelDrag()
		return a, tea.Quit
	}

	a.refreshStatus()
	return a, cmd
}

// handleKey applies viewer shortcuts.
//
//nolint:gocyclo // one case per binding
func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	km := a.keymap
	key := msg.String()
	session := a.ports.Session

	switch {
	case keymap.Matches(key, km.Quit):
		a.cancelDrag()
		return tea.Quit
	case keymap.Matches(key, km.Help):
		a.statusBar.ToggleHelp()
	case keymap.Matches(key, km.AddMode):
		session.Viewport().ToggleAddMode()
	case keymap.Matches(key, km.Escape):
		a.cancelDrag()
		session.HandleKey(domain.KeyEvent{Key: domain.KeyEscape})
	case keymap.Matches(key, km.ZoomIn):
		a.zoom(domain.KeyEvent{Key: "+", Ctrl: true})
	case keymap.Matches(key, km.ZoomOut):
		a.zoom(domain.KeyEvent{Key: "-", Ctrl: true})
	case keymap.Matches(key, km.Save):
		a.save()
	case keymap.Matches(key, km.Reload):
		return a.reload()
	case keymap.Matches(key, km.Up):
		a.scroll(-document.CellHeight)
	case keymap.Matches(key, km.Down):
		a.scroll(document.CellHeight)
	case keymap.Matches(key, km.PageUp):
		a.scroll(-float64(a.canvasRows() * document.CellHeight))
	case keymap.Matches(key, km.PageDown):
		a.scroll(float64(a.canvasRows() * document.CellHeight))
	case keymap.Matches(key, km.NextDocument):
		return a.cycleDocument(1)
	case keymap.Matches(key, km.PrevDocument):
		return a.cycleDocument(-1)
	}
	return nil
}

// handlePromptKey routes keys to the open prompt.
func (a *App) handlePromptKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	switch {
	case keymap.Matches(key, a.keymap.Confirm):
		req := a.request
		text := a.prompt.Value()
		a.closePrompt()
		req.Answer(text)
		a.flushAlerts(nil)
		return nil
	case keymap.Matches(key, a.keymap.Cancel):
		req := a.request
		a.closePrompt()
		req.Cancel()
		return nil
	case msg.String() == "ctrl+c":
		return tea.Quit
	}

	var cmd tea.Cmd
	a.prompt, cmd = a.prompt.Update(msg)
	return cmd
}

// handleMouse turns terminal mouse events into drags, deletes and
// double clicks.
func (a *App) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if a.request != nil {
		return nil
	}

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		a.scroll(-wheelRows * document.CellHeight)
	case msg.Button == tea.MouseButtonWheelDown:
		a.scroll(wheelRows * document.CellHeight)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		return a.press(msg.X, msg.Y)
	case msg.Action == tea.MouseActionMotion:
		if a.drag != nil && a.drag.Dragging() {
			if p, ok := a.pagePoint(a.dragPage, msg.X, msg.Y); ok {
				a.surface.Move(p)
			}
		}
	case msg.Action == tea.MouseActionRelease:
		a.surface.End()
		a.drag = nil
	}
	return nil
}

// press handles a left button press on a cell.
func (a *App) press(col, row int) tea.Cmd {
	if row >= a.canvasRows() {
		return nil
	}
	layout := a.layout()
	labels := layout.Labels(a.ports.Session.AnnotationsByPage())

	if lb, onDelete, ok := document.Hit(labels, col, row); ok {
		if !a.startDrag(layout, lb, col, row, onDelete) && onDelete {
			a.ports.Session.DeleteAnnotation(lb.Annotation.ID)
		}
		a.lastClick = time.Time{}
		return nil
	}

	now := a.now()
	cell := [2]int{col, row}
	double := !a.lastClick.IsZero() && cell == a.lastCell && now.Sub(a.lastClick) <= DoubleClickInterval
	if !double {
		a.lastClick = now
		a.lastCell = cell
		return nil
	}
	a.lastClick = time.Time{}

	err := a.ports.Session.HandleDoubleClick(document.CellPoint(col, row), layout.Boxes)
	if errors.Is(err, domain.ErrPageNotFound) {
		a.statusBar.SetError("Double-click on a page to add an annotation")
		return nil
	}
	return a.openPrompt()
}

// startDrag begins moving lb. Points handed to the drag controller are
// relative to the top-left corner of the annotation's page.
func (a *App) startDrag(layout document.Layout, lb document.Label, col, row int, onDelete bool) bool {
	a.cancelDrag()
	page := lb.Annotation.Position.PageIndex
	origin, ok := layout.PageOrigin(page)
	if !ok {
		return false
	}

	id := lb.Annotation.ID
	drag := a.ports.NewDrag(a.surface, func(pos vec.Vec2) {
		a.ports.Session.MoveAnnotation(id, page, pos.X, pos.Y)
	})
	p := document.CellPoint(col, row).Sub(origin)
	if !drag.Start(p, geometry.FromPosition(lb.Annotation.Position), layout.Scale, onDelete) {
		return false
	}
	a.drag = drag
	a.dragPage = page
	return true
}

func (a *App) cancelDrag() {
	if a.drag != nil {
		a.drag.Cancel()
		a.drag = nil
	}
}

// pagePoint converts a cell to a point relative to page index.
func (a *App) pagePoint(page, col, row int) (vec.Vec2, bool) {
	origin, ok := a.layout().PageOrigin(page)
	if !ok {
		return vec.Vec2{}, false
	}
	return document.CellPoint(col, row).Sub(origin), true
}

// openPrompt shows a prompt the session has asked for.
func (a *App) openPrompt() tea.Cmd {
	req := a.ports.Prompter.TakePrompt()
	if req == nil {
		return nil
	}
	a.request = req
	a.statusBar.SetPrompting(true)
	a.prompt.SetWidth(a.width)
	return a.prompt.Open(req.Message, req.Default)
}

func (a *App) closePrompt() {
	a.request = nil
	a.prompt.Close()
	a.statusBar.SetPrompting(false)
}

// navigate switches to documentID and returns the load command.
func (a *App) navigate(documentID string) tea.Cmd {
	a.cancelDrag()
	task := a.ports.Session.Navigate(a.ctx, documentID)
	if task == nil {
		return nil
	}
	a.scrollY = 0
	return loadCmd(task)
}

func (a *App) reload() tea.Cmd {
	task := a.ports.Session.Reload(a.ctx)
	if task == nil {
		return nil
	}
	return loadCmd(task)
}

// cycleDocument moves through Ports.Documents by delta.
func (a *App) cycleDocument(delta int) tea.Cmd {
	docs := a.ports.Documents
	if len(docs) == 0 {
		return nil
	}
	current := a.ports.Session.State().DocumentID
	idx := -1
	for i, id := range docs {
		if id == current {
			idx = i
			break
		}
	}
	next := (idx + delta + len(docs)) % len(docs)
	if idx < 0 && delta > 0 {
		next = 0
	}
	return a.navigate(docs[next])
}

// loadCmd runs a load task off the event loop.
func loadCmd(task driving.LoadTask) tea.Cmd {
	return func() tea.Msg {
		return messages.DocumentLoaded{Result: task.Run()}
	}
}

// watchAnnotations starts following the session's subscription if it
// is not followed yet.
func (a *App) watchAnnotations() tea.Cmd {
	sub := a.ports.Session.Subscription()
	if sub == nil || sub == a.watching {
		return nil
	}
	a.watching = sub
	return nextAnnotations(a.ctx, sub)
}

// nextAnnotations waits for the next list published to sub.
func nextAnnotations(ctx context.Context, sub driving.AnnotationSubscription) tea.Cmd {
	return func() tea.Msg {
		list, err := sub.Next(ctx)
		return messages.AnnotationsChanged{Subscription: sub, Annotations: list, Err: err}
	}
}

func (a *App) handleAnnotations(msg messages.AnnotationsChanged) tea.Cmd {
	if msg.Subscription != a.watching {
		return nil
	}
	if msg.Err != nil {
		a.watching = nil
		return a.watchAnnotations()
	}
	return nextAnnotations(a.ctx, msg.Subscription)
}

func (a *App) save() {
	_, err := a.ports.Session.Save(a.ctx)
	a.flushAlerts(err)
}

// zoom applies a zoom shortcut and keeps the same part of the document
// at the top of the canvas.
func (a *App) zoom(ev domain.KeyEvent) {
	before := a.ports.Session.Viewport().Scale()
	a.ports.Session.HandleKey(ev)
	after := a.ports.Session.Viewport().Scale()
	if before > 0 && after != before {
		a.cancelDrag()
		a.scrollY *= after / before
		a.clampScroll()
	}
}

func (a *App) scroll(delta float64) {
	a.scrollY += delta
	a.clampScroll()
}

func (a *App) clampScroll() {
	a.scrollY = math.Max(0, math.Min(a.scrollY, a.layout().MaxScroll()))
}

// layout places the active document on the canvas.
func (a *App) layout() document.Layout {
	state := a.ports.Session.State()
	return document.NewLayout(state.Document, state.Scale, a.width, a.canvasRows(), a.scrollY)
}

// canvasRows is the terminal height minus the prompt and status lines.
func (a *App) canvasRows() int {
	return max(a.height-2, 1)
}

// flushAlerts shows the latest message raised by the core.
func (a *App) flushAlerts(err error) {
	alerts := a.ports.Prompter.TakeAlerts()
	msg := ""
	if len(alerts) > 0 {
		msg = alerts[len(alerts)-1]
	} else if err != nil {
		msg = err.Error()
	}
	if msg == "" {
		return
	}
	if err != nil {
		a.err = err
		a.statusBar.SetError(msg)
		return
	}
	a.statusBar.SetMessage(msg)
}

// refreshStatus copies session state into the status bar.
func (a *App) refreshStatus() {
	state := a.ports.Session.State()
	title := state.DocumentID
	if state.Document != nil && state.Document.Title != "" {
		title = state.Document.Title
	}
	a.statusBar.SetDocument(title, state.Status)
	a.statusBar.SetViewport(state.Scale, state.AddMode)

	count := 0
	for _, page := range a.ports.Session.AnnotationsByPage() {
		count += len(page)
	}
	a.statusBar.SetCount(count)
}

// View implements tea.Model.
// It renders the document, the prompt line and the status bar.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	state := a.ports.Session.State()
	var body string
	switch {
	case state.Document != nil:
		layout := a.layout()
		body = a.document.Render(layout, layout.Labels(a.ports.Session.AnnotationsByPage()))
	case state.Status == domain.LoadLoading:
		body = a.document.Message("Loading " + state.DocumentID + "...")
	case state.Status == domain.LoadFailed:
		body = a.document.Message("Could not load " + state.DocumentID + " (press r to retry)")
	default:
		body = a.document.Message("No document")
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, a.prompt.View(), a.statusBar.View())
}

// Program builds the Bubbletea program with mouse support.
func (a *App) Program(opts ...tea.ProgramOption) *tea.Program {
	opts = append([]tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(a.ctx),
	}, opts...)
	return tea.NewProgram(a, opts...)
}

// Run starts the TUI application.
func (a *App) Run() error {
	_, err := a.Program().Run()
	return err
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// Prompting reports whether a prompt is open.
func (a *App) Prompting() bool {
	return a.request != nil
}

// ScrollY returns the scroll offset in pixels.
func (a *App) ScrollY() float64 {
	return a.scrollY
}

// StatusBar returns the status bar component.
func (a *App) StatusBar() *status.Bar {
	return a.statusBar
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.document.SetDimensions(width, a.canvasRows())
	a.statusBar.SetWidth(width)
	a.prompt.SetWidth(width)
	a.clampScroll()
}
