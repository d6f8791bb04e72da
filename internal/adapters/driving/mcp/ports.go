package mcp

import (
	"github.com/custodia-labs/margin/internal/core/ports/driven"
	"github.com/custodia-labs/margin/internal/core/ports/driving"
)

// SessionFactory builds a document session that reports through p.
type SessionFactory func(p driven.Prompter) driving.DocumentSession

// Ports aggregates all port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Annotations is the shared annotation registry.
	Annotations driving.AnnotationService

	// NewSession loads documents and applies edits against them.
	NewSession SessionFactory

	// Snapshots restores and serves saved snapshots. Optional.
	Snapshots driven.SnapshotStore

	// Documents enumerates the provider's documents. Optional.
	Documents driven.DocumentLister
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Annotations == nil {
		return ErrMissingAnnotationService
	}
	if p.NewSession == nil {
		return ErrMissingSessionFactory
	}
	// Snapshots and Documents are optional
	return nil
}
