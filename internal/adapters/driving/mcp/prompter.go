package mcp

import (
	"sync"

	"github.com/custodia-labs/margin/internal/core/ports/driven"
)

// Ensure alertLog implements the interface.
var _ driven.Prompter = (*alertLog)(nil)

// alertLog collects alerts raised during a tool call. Prompts are
// cancelled since a tool call cannot ask for input.
type alertLog struct {
	mu       sync.Mutex
	messages []string
}

func (l *alertLog) Prompt(_, _ string, done func(text string, ok bool)) {
	done("", false)
}

func (l *alertLog) Alert(message string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, message)
}

func (l *alertLog) Messages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.messages...)
}
