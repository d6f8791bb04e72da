package memory

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/custodia-labs/margin/internal/core/domain"
	"github.com/custodia-labs/margin/internal/core/ports/driven"
)

// Ensure DocumentProvider implements the interfaces.
var (
	_ driven.DocumentProvider = (*DocumentProvider)(nil)
	_ driven.DocumentLister   = (*DocumentProvider)(nil)
)

// DocumentProvider serves documents from a map, optionally after a fixed
// latency.
type DocumentProvider struct {
	mu        sync.RWMutex
	documents map[string]domain.RawDocument
	latency   time.Duration
}

// NewDocumentProvider creates a provider holding a copy of documents.
func NewDocumentProvider(documents map[string]domain.RawDocument, latency time.Duration) *DocumentProvider {
	docs := make(map[string]domain.RawDocument, len(documents))
	maps.Copy(docs, documents)
	return &DocumentProvider{
		documents: docs,
		latency:   latency,
	}
}

// FetchDocument returns a copy of the document after the configured latency.
func (p *DocumentProvider) FetchDocument(ctx context.Context, documentID string) (*domain.RawDocument, error) {
	if p.latency > 0 {
		timer := time.NewTimer(p.latency)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	doc, ok := p.documents[documentID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	doc.Pages = slices.Clone(doc.Pages)
	return &doc, nil
}

// Put adds or replaces a document.
func (p *DocumentProvider) Put(documentID string, doc domain.RawDocument) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.documents[documentID] = doc
}

// IDs returns the known document identifiers, sorted.
func (p *DocumentProvider) IDs() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Sorted(maps.Keys(p.documents))
}

// Documents returns the known document identifiers, sorted.
func (p *DocumentProvider) Documents(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return p.IDs(), nil
}
