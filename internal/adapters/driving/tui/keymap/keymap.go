// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help toggles the full key list in the status bar.
	Help key.Binding

	// AddMode toggles annotation add mode.
	AddMode key.Binding

	// Escape leaves add mode.
	Escape key.Binding

	// ZoomIn and ZoomOut change the scale by one step.
	ZoomIn  key.Binding
	ZoomOut key.Binding

	// Save writes a snapshot of the active document.
	Save key.Binding

	// Reload fetches the active document again.
	Reload key.Binding

	// Up and Down scroll by one row.
	Up   key.Binding
	Down key.Binding

	// PageUp and PageDown scroll by one screen.
	PageUp   key.Binding
	PageDown key.Binding

	// NextDocument and PrevDocument cycle through the known documents.
	NextDocument key.Binding
	PrevDocument key.Binding

	// Confirm accepts the prompt.
	Confirm key.Binding

	// Cancel dismisses the prompt.
	Cancel key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		AddMode: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add mode"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "exit add mode"),
		),
		ZoomIn: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "zoom in"),
		),
		ZoomOut: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "zoom out"),
		),
		Save: key.NewBinding(
			key.WithKeys("s", "ctrl+s"),
			key.WithHelp("s", "save"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "b"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", " "),
			key.WithHelp("pgdn", "page down"),
		),
		NextDocument: key.NewBinding(
			key.WithKeys("tab", "n"),
			key.WithHelp("tab", "next document"),
		),
		PrevDocument: key.NewBinding(
			key.WithKeys("shift+tab", "p"),
			key.WithHelp("shift+tab", "previous document"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.AddMode, k.Save, k.Help, k.Quit}
}

// PromptHelp returns keybindings shown while a prompt is open.
func (k *KeyMap) PromptHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Cancel}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.AddMode, k.Escape, k.ZoomIn, k.ZoomOut},
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.NextDocument, k.PrevDocument, k.Reload, k.Save},
		{k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
