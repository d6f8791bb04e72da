// Package prompt provides a line-oriented driven.Prompter for use outside
// the terminal UI.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"

	"github.com/custodia-labs/margin/internal/core/ports/driven"
)

// Ensure Prompter implements the interface.
var _ driven.Prompter = (*Prompter)(nil)

// Prompter reads answers line by line and writes prompts and alerts to out.
// It answers synchronously: done is called before Prompt returns.
type Prompter struct {
	mu          sync.Mutex
	in          *bufio.Reader
	out         io.Writer
	interactive bool
}

// NewPrompter creates a prompter over in and out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:          bufio.NewReader(in),
		out:         out,
		interactive: isTerminal(in),
	}
}

// NewStdioPrompter creates a prompter on stdin and stderr.
func NewStdioPrompter() *Prompter {
	return NewPrompter(os.Stdin, os.Stderr)
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Prompt shows message and reads one line. An empty line selects
// defaultValue; end of input cancels.
func (p *Prompter) Prompt(message, defaultValue string, done func(text string, ok bool)) {
	p.mu.Lock()
	text, ok := p.readLine(message, defaultValue)
	p.mu.Unlock()

	done(text, ok)
}

func (p *Prompter) readLine(message, defaultValue string) (string, bool) {
	if defaultValue != "" {
		fmt.Fprintf(p.out, "%s [%s] ", message, defaultValue)
	} else {
		fmt.Fprintf(p.out, "%s ", message)
	}

	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		if !p.interactive {
			fmt.Fprintln(p.out)
		}
		return "", false
	}

	line = strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(line) == "" {
		return defaultValue, true
	}
	return line, true
}

// Alert writes message on its own line.
func (p *Prompter) Alert(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.out, message)
}
