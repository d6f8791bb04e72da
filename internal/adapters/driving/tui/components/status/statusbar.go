// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/margin/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/margin/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/margin/internal/core/domain"
)

// Bar displays the document, load status, zoom and keybinding hints.
type Bar struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	title     string
	status    domain.LoadStatus
	scale     float64
	addMode   bool
	count     int
	message   string
	isError   bool
	prompting bool
	fullHelp  bool
	width     int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		status: domain.LoadIdle,
		scale:  1,
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	// Bar is passive, updated via Set methods
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

// renderLeft renders the document state and the latest message.
func (s *Bar) renderLeft() string {
	parts := make([]string, 0, 5)
	if s.title != "" {
		parts = append(parts, s.styles.Title.Render(s.title))
	}

	switch s.status {
	case domain.LoadLoading:
		parts = append(parts, s.styles.Muted.Render("Loading..."))
	case domain.LoadFailed:
		parts = append(parts, s.styles.Error.Render("Load failed"))
	case domain.LoadReady:
		parts = append(parts, s.styles.Normal.Render(fmt.Sprintf("%d annotations", s.count)))
	case domain.LoadIdle:
		parts = append(parts, s.styles.Muted.Render("No document"))
	}

	parts = append(parts, s.styles.Normal.Render(fmt.Sprintf("%.0f%%", s.scale*100)))
	if s.addMode {
		parts = append(parts, s.styles.AddMode.Render("ADD"))
	}
	if s.message != "" {
		if s.isError {
			parts = append(parts, s.styles.Error.Render(s.message))
		} else {
			parts = append(parts, s.styles.Success.Render(s.message))
		}
	}
	return strings.Join(parts, " ")
}

// renderRight renders keybinding hints.
func (s *Bar) renderRight() string {
	var bindings []key.Binding
	switch {
	case s.prompting:
		bindings = s.keymap.PromptHelp()
	case s.fullHelp:
		for _, group := range s.keymap.FullHelp() {
			bindings = append(bindings, group...)
		}
	default:
		bindings = s.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Help.Render(strings.Join(hints, " | "))
}

// SetDocument sets the title and load status shown on the left.
func (s *Bar) SetDocument(title string, status domain.LoadStatus) {
	s.title = title
	s.status = status
}

// Title returns the document title.
func (s *Bar) Title() string {
	return s.title
}

// Status returns the load status.
func (s *Bar) Status() domain.LoadStatus {
	return s.status
}

// SetViewport sets the zoom level and add mode indicator.
func (s *Bar) SetViewport(scale float64, addMode bool) {
	s.scale = scale
	s.addMode = addMode
}

// SetCount sets the number of annotations on the document.
func (s *Bar) SetCount(count int) {
	s.count = count
}

// Count returns the annotation count.
func (s *Bar) Count() int {
	return s.count
}

// SetMessage sets an informational message.
func (s *Bar) SetMessage(message string) {
	s.message = message
	s.isError = false
}

// SetError sets an error message.
func (s *Bar) SetError(message string) {
	s.message = message
	s.isError = true
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// IsError reports whether the current message is an error.
func (s *Bar) IsError() bool {
	return s.isError
}

// SetPrompting switches the hints to the prompt keys.
func (s *Bar) SetPrompting(on bool) {
	s.prompting = on
}

// ToggleHelp switches between short and full hints.
func (s *Bar) ToggleHelp() {
	s.fullHelp = !s.fullHelp
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear removes the message.
func (s *Bar) Clear() {
	s.message = ""
	s.isError = false
}
