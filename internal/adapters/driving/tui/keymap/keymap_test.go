package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	require.NotNil(t, km)
}

func TestDefaultKeyMap_QuitBinding(t *testing.T) {
	km := DefaultKeyMap()

	keys := km.Quit.Keys()
	assert.Contains(t, keys, "q")
	assert.Contains(t, keys, "ctrl+c")
}

func TestDefaultKeyMap_ZoomBindings(t *testing.T) {
	km := DefaultKeyMap()

	assert.ElementsMatch(t, []string{"+", "="}, km.ZoomIn.Keys())
	assert.ElementsMatch(t, []string{"-", "_"}, km.ZoomOut.Keys())
}

func TestDefaultKeyMap_EscapeBindings(t *testing.T) {
	km := DefaultKeyMap()

	assert.Contains(t, km.Escape.Keys(), "esc")
	assert.Contains(t, km.Cancel.Keys(), "esc")
	assert.Contains(t, km.Confirm.Keys(), "enter")
}

func TestDefaultKeyMap_ScrollBindings(t *testing.T) {
	km := DefaultKeyMap()

	assert.Contains(t, km.Up.Keys(), "k")
	assert.Contains(t, km.Down.Keys(), "j")
	assert.Contains(t, km.PageUp.Keys(), "pgup")
	assert.Contains(t, km.PageDown.Keys(), "pgdown")
}

func TestShortHelp(t *testing.T) {
	km := DefaultKeyMap()

	bindings := km.ShortHelp()

	assert.Len(t, bindings, 4)
	assert.Equal(t, km.AddMode, bindings[0])
	assert.Equal(t, km.Quit, bindings[3])
}

func TestFullHelp(t *testing.T) {
	km := DefaultKeyMap()

	bindings := km.FullHelp()

	assert.Len(t, bindings, 4)
	assert.Len(t, bindings[0], 4) // AddMode, Escape, ZoomIn, ZoomOut
	assert.Len(t, bindings[3], 2) // Help, Quit
}

func TestMatches_True(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("q", km.Quit))
	assert.True(t, Matches("ctrl+c", km.Quit))
	assert.True(t, Matches("a", km.AddMode))
	assert.True(t, Matches("=", km.ZoomIn))
	assert.True(t, Matches("tab", km.NextDocument))
}

func TestMatches_False(t *testing.T) {
	km := DefaultKeyMap()

	assert.False(t, Matches("x", km.Quit))
	assert.False(t, Matches("a", km.Help))
	assert.False(t, Matches("+", km.ZoomOut))
}

func TestBindings_HaveHelp(t *testing.T) {
	km := DefaultKeyMap()

	testCases := []struct {
		name    string
		binding key.Binding
	}{
		{"Quit", km.Quit},
		{"Help", km.Help},
		{"AddMode", km.AddMode},
		{"Escape", km.Escape},
		{"ZoomIn", km.ZoomIn},
		{"ZoomOut", km.ZoomOut},
		{"Save", km.Save},
		{"Reload", km.Reload},
		{"Up", km.Up},
		{"Down", km.Down},
		{"NextDocument", km.NextDocument},
		{"PrevDocument", km.PrevDocument},
		{"Confirm", km.Confirm},
		{"Cancel", km.Cancel},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			help := tc.binding.Help()
			assert.NotEmpty(t, help.Key, "binding should have help key")
		})
	}
}
