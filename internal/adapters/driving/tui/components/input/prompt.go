// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/margin/internal/adapters/driving/tui/styles"
)

// Prompt is a one-line question with an editable answer.
type Prompt struct {
	textinput textinput.Model
	styles    *styles.Styles
	label     string
	active    bool
	width     int
}

// NewPrompt creates a closed prompt.
func NewPrompt(s *styles.Styles) *Prompt {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 50

	return &Prompt{
		textinput: ti,
		styles:    s,
		width:     50,
	}
}

// Open shows the prompt with a label and a pre-filled answer.
func (p *Prompt) Open(label, value string) tea.Cmd {
	p.label = label
	p.active = true
	p.textinput.SetValue(value)
	p.textinput.CursorEnd()
	return p.textinput.Focus()
}

// Close hides the prompt and clears the answer.
func (p *Prompt) Close() {
	p.active = false
	p.label = ""
	p.textinput.Blur()
	p.textinput.Reset()
}

// Active reports whether the prompt is shown.
func (p *Prompt) Active() bool {
	return p.active
}

// Label returns the question being asked.
func (p *Prompt) Label() string {
	return p.label
}

// Update handles input messages.
func (p *Prompt) Update(msg tea.Msg) (*Prompt, tea.Cmd) {
	if !p.active {
		return p, nil
	}
	var cmd tea.Cmd
	p.textinput, cmd = p.textinput.Update(msg)
	return p, cmd
}

// View renders the prompt, or nothing when closed.
func (p *Prompt) View() string {
	if !p.active {
		return ""
	}
	label := p.styles.Title.Render(p.label)
	input := p.styles.InputField.Render(p.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, input)
}

// Value returns the current answer.
func (p *Prompt) Value() string {
	return p.textinput.Value()
}

// SetWidth sets the width of the prompt line.
func (p *Prompt) SetWidth(width int) {
	p.width = width
	// Account for label and padding
	inputWidth := width - lipgloss.Width(p.label) - 4
	if inputWidth < 20 {
		inputWidth = 20
	}
	p.textinput.Width = inputWidth
}

// Width returns the current width.
func (p *Prompt) Width() int {
	return p.width
}
