package tui

import (
	"sync"

	"github.com/custodia-labs/margin/internal/core/ports/driven"
)

// Ensure Prompter implements the interface.
var _ driven.Prompter = (*Prompter)(nil)

// PromptRequest is a question waiting for the user's answer.
type PromptRequest struct {
	Message string
	Default string

	done func(text string, ok bool)
	once sync.Once
}

// Answer resolves the request with text. Only the first resolution counts.
func (r *PromptRequest) Answer(text string) {
	r.once.Do(func() { r.done(text, true) })
}

// Cancel resolves the request as cancelled.
func (r *PromptRequest) Cancel() {
	r.once.Do(func() { r.done("", false) })
}

// Prompter queues prompts and alerts raised by the core so the event loop
// can show them. Prompt never blocks.
type Prompter struct {
	mu      sync.Mutex
	pending *PromptRequest
	alerts  []string
}

// NewPrompter creates an empty prompter.
func NewPrompter() *Prompter {
	return &Prompter{}
}

// Prompt records a request. A request still pending is cancelled first.
func (p *Prompter) Prompt(message, defaultValue string, done func(text string, ok bool)) {
	req := &PromptRequest{Message: message, Default: defaultValue, done: done}

	p.mu.Lock()
	prev := p.pending
	p.pending = req
	p.mu.Unlock()

	if prev != nil {
		prev.Cancel()
	}
}

// Alert queues a message.
func (p *Prompter) Alert(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.alerts = append(p.alerts, message)
}

// TakePrompt removes and returns the pending request, or nil.
func (p *Prompter) TakePrompt() *PromptRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	req := p.pending
	p.pending = nil
	return req
}

// TakeAlerts removes and returns all queued messages, oldest first.
func (p *Prompter) TakeAlerts() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	alerts := p.alerts
	p.alerts = nil
	return alerts
}
