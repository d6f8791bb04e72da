package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"seehuhn.de/go/geom/vec"

	"github.com/custodia-labs/margin/internal/adapters/driven/config/file"
	fileprovider "github.com/custodia-labs/margin/internal/adapters/driven/provider/file"
	"github.com/custodia-labs/margin/internal/adapters/driven/provider/remote"
	"github.com/custodia-labs/margin/internal/adapters/driven/prompt"
	"github.com/custodia-labs/margin/internal/adapters/driven/sink/console"
	"github.com/custodia-labs/margin/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/margin/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/margin/internal/adapters/driving/cli"
	"github.com/custodia-labs/margin/internal/core/domain"
	"github.com/custodia-labs/margin/internal/core/ports/driven"
	"github.com/custodia-labs/margin/internal/core/ports/driving"
	"github.com/custodia-labs/margin/internal/core/services"
	"github.com/custodia-labs/margin/internal/logger"
)

// bootstrap wires the adapters selected by the stored settings.
func bootstrap(opts cli.Options) (*cli.Services, error) {
	configStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	configDir := filepath.Dir(configStore.Path())

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}
	if opts.Verbose {
		settings.Verbose = true
	}
	logger.Debug("config %s, provider %s, sink %s", configStore.Path(), settings.Provider.Type, settings.Sink.Type)

	provider, err := newProvider(settings.Provider, configDir)
	if err != nil {
		return nil, err
	}

	s := &cli.Services{
		Settings:    settingsService,
		AppSettings: settings,
		Annotations: services.NewAnnotationStore(settings.Style),
		Provider:    provider,
		Prompter:    prompt.NewStdioPrompter(),
		NewDrag: func(surface driven.PointerSurface, moved func(pos vec.Vec2)) driving.Dragger {
			return services.NewDragController(surface, moved)
		},
		NewScheduler: func(trigger func()) (driving.Scheduler, error) {
			if settings.Autosave.Schedule == "" {
				return nil, nil
			}
			autosave, err := services.NewAutosave(settings.Autosave.Schedule, trigger)
			if err != nil {
				return nil, err
			}
			return autosave, nil
		},
	}

	switch settings.Sink.Type {
	case domain.SinkSQLite:
		dataDir := settings.Sink.DataDir
		if dataDir == "" {
			dataDir = filepath.Join(configDir, "data")
		}
		db, err := sqlite.NewStore(dataDir)
		if err != nil {
			return nil, fmt.Errorf("opening snapshot database: %w", err)
		}
		s.Snapshots = db.SnapshotStore()
		s.Sink = s.Snapshots
		s.Close = db.Close
	default:
		s.Sink = console.NewSink(os.Stderr)
	}

	s.NewSession = func(p driven.Prompter) driving.DocumentSession {
		return services.NewDocumentSession(s.Annotations, provider, p, s.Sink, nil, settings.Session.LoadDelay)
	}

	return s, nil
}

// newProvider builds the configured document provider. A relative manifest
// path is resolved against the config directory.
func newProvider(settings domain.ProviderSettings, configDir string) (driven.DocumentProvider, error) {
	switch settings.Type {
	case domain.ProviderHTTP:
		if settings.BaseURL == "" {
			return nil, errors.New("http provider needs a base URL (margin settings provider http --url ...)")
		}
		p, err := remote.NewProvider(settings.BaseURL, settings.Token, settings.RatePerSecond)
		if err != nil {
			return nil, fmt.Errorf("http provider: %w", err)
		}
		return p, nil
	case domain.ProviderMemory:
		return memory.NewDocumentProvider(sampleDocuments(), 0), nil
	default:
		path := settings.Path
		if path != "" && !filepath.IsAbs(path) {
			path = filepath.Join(configDir, path)
		}
		p, err := fileprovider.NewProvider(path)
		if err != nil {
			return nil, fmt.Errorf("file provider: %w", err)
		}
		return p, nil
	}
}

// sampleDocuments are served by the memory provider.
func sampleDocuments() map[string]domain.RawDocument {
	pages := func(prefix string, n int) []domain.RawPage {
		out := make([]domain.RawPage, n)
		for i := range out {
			out[i] = domain.RawPage{Number: i, ImageURL: fmt.Sprintf("%s/%d.png", prefix, i+1)}
		}
		return out
	}
	return map[string]domain.RawDocument{
		"sample":  {Name: "Sample document", Pages: pages("assets/sample", 5)},
		"handout": {Name: "Handout", Pages: pages("assets/handout", 2)},
	}
}
