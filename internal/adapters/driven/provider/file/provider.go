// Package file provides a document provider backed by a manifest file.
//
// The manifest maps document identifiers to their title and pages. TOML is
// the default format; files ending in .json are read as JSON:
//
//	[documents.report]
//	name = "Quarterly report"
//
//	[[documents.report.pages]]
//	number = 0
//	image_url = "pages/report-0.png"
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/margin/internal/core/domain"
	"github.com/custodia-labs/margin/internal/core/ports/driven"
	"github.com/custodia-labs/margin/internal/logger"
)

// Ensure Provider implements the interfaces.
var (
	_ driven.DocumentProvider = (*Provider)(nil)
	_ driven.DocumentWatcher  = (*Provider)(nil)
	_ driven.DocumentLister   = (*Provider)(nil)
)

// DebounceInterval coalesces the burst of events an editor save produces.
const DebounceInterval = 100 * time.Millisecond

// manifest is the on-disk layout.
type manifest struct {
	Documents map[string]domain.RawDocument `json:"documents" toml:"documents"`
}

// Provider reads documents from a manifest file. The file is read on every
// fetch, so edits are visible without restarting.
type Provider struct {
	path string
}

// NewProvider creates a provider for the manifest at path.
func NewProvider(path string) (*Provider, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: manifest path is empty", domain.ErrInvalidInput)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve manifest path: %w", err)
	}
	return &Provider{path: abs}, nil
}

// Path returns the absolute manifest path.
func (p *Provider) Path() string {
	return p.path
}

func (p *Provider) load() (*manifest, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m manifest
	if strings.EqualFold(filepath.Ext(p.path), ".json") {
		err = json.Unmarshal(data, &m)
	} else {
		err = toml.Unmarshal(data, &m)
	}
	if err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", p.path, err)
	}
	return &m, nil
}

// FetchDocument returns the document with the given identifier.
func (p *Provider) FetchDocument(ctx context.Context, documentID string) (*domain.RawDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m, err := p.load()
	if err != nil {
		return nil, err
	}
	doc, ok := m.Documents[documentID]
	if !ok {
		return nil, fmt.Errorf("document %q: %w", documentID, domain.ErrNotFound)
	}
	return &doc, nil
}

// Documents returns the identifiers in the manifest, sorted.
func (p *Provider) Documents(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m, err := p.load()
	if err != nil {
		return nil, err
	}
	return slices.Sorted(maps.Keys(m.Documents)), nil
}

// Watch calls onChange after the manifest is written, created or replaced.
// The parent directory is watched so editors that save by rename still
// trigger a change. Watch blocks until ctx is done.
func (p *Provider) Watch(ctx context.Context, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(p.path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(p.path), err)
	}

	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != p.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			logger.Debug("manifest %s changed (%s)", p.path, event.Op)
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(DebounceInterval, onChange)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("manifest watcher: %v", err)
		}
	}
}
