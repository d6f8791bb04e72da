// Package console provides a snapshot sink that prints snapshots as JSON.
package console

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/custodia-labs/margin/internal/core/domain"
	"github.com/custodia-labs/margin/internal/core/ports/driven"
)

// Ensure Sink implements the interface.
var _ driven.SnapshotSink = (*Sink)(nil)

// Sink writes each snapshot as indented JSON.
type Sink struct {
	mu  sync.Mutex
	out io.Writer
}

// NewSink creates a sink writing to out, or stderr if out is nil.
func NewSink(out io.Writer) *Sink {
	if out == nil {
		out = os.Stderr
	}
	return &Sink{out: out}
}

// Save prints the snapshot.
func (s *Sink) Save(ctx context.Context, snapshot domain.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := fmt.Fprintf(s.out, "Saving annotations:\n%s\n", data); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}
