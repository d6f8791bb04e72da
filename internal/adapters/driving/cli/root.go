// Package cli provides the command-line interface for margin.
// It implements a driving adapter following hexagonal architecture principles.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/margin/internal/adapters/driving/tui"
	"github.com/custodia-labs/margin/internal/core/domain"
	"github.com/custodia-labs/margin/internal/core/ports/driven"
	"github.com/custodia-labs/margin/internal/core/ports/driving"
	"github.com/custodia-labs/margin/internal/logger"
)

// version is set at build time with -ldflags.
var version = "dev"

// skipBootstrap marks commands that run without services.
const skipBootstrap = "skip-bootstrap"

// Options are the global flags passed to the bootstrap function.
type Options struct {
	ConfigDir string
	Verbose   bool
}

// Services holds everything the commands need from the core.
type Services struct {
	Settings    driving.SettingsService
	AppSettings *domain.AppSettings
	Annotations driving.AnnotationService
	Provider    driven.DocumentProvider

	// Sink receives saved snapshots. Snapshots is set as well when the
	// sink can be queried.
	Sink      driven.SnapshotSink
	Snapshots driven.SnapshotStore

	// Prompter answers prompts outside the terminal UI.
	Prompter driven.Prompter

	// NewSession builds a document session that reports through p.
	NewSession func(p driven.Prompter) driving.DocumentSession

	// NewDrag builds drag controllers for the terminal UI.
	NewDrag tui.DragFactory

	// NewScheduler builds the autosave scheduler. It returns nil when
	// autosave is disabled.
	NewScheduler func(trigger func()) (driving.Scheduler, error)

	// Close releases resources held by the services.
	Close func() error
}

// Bootstrap builds the services from the global options.
type Bootstrap func(opts Options) (*Services, error)

var (
	options   Options
	bootstrap Bootstrap
	loaded    bool

	settingsService   driving.SettingsService
	appSettings       *domain.AppSettings
	annotationService driving.AnnotationService
	documentProvider  driven.DocumentProvider
	snapshotSink      driven.SnapshotSink
	snapshotStore     driven.SnapshotStore
	stdioPrompter     driven.Prompter
	newSession        func(p driven.Prompter) driving.DocumentSession
	newDrag           tui.DragFactory
	newScheduler      func(trigger func()) (driving.Scheduler, error)
	closeServices     func() error
)

var rootCmd = &cobra.Command{
	Use:   "margin",
	Short: "Annotate paginated documents from the terminal",
	Long: `margin shows paginated documents in the terminal and lets you place,
drag, edit and delete free-text annotations on their pages.

Documents come from a TOML manifest, an HTTP service or memory. Saved
annotation snapshots go to the console or a local SQLite database.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadServices,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&options.Verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&options.ConfigDir, "config-dir", "", "configuration directory (default ~/.margin)")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetBootstrap sets the function that builds services before a command runs.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
	loaded = false
}

// SetServices injects services directly, bypassing the bootstrap function.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	settingsService = s.Settings
	appSettings = s.AppSettings
	annotationService = s.Annotations
	documentProvider = s.Provider
	snapshotSink = s.Sink
	snapshotStore = s.Snapshots
	stdioPrompter = s.Prompter
	newSession = s.NewSession
	newDrag = s.NewDrag
	newScheduler = s.NewScheduler
	closeServices = s.Close
	loaded = true
}

// Execute runs the root command and releases services afterwards.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if closeServices != nil {
		if cerr := closeServices(); cerr != nil {
			logger.Warn("closing services: %v", cerr)
		}
	}
	return err
}

func loadServices(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(options.Verbose)

	if _, ok := cmd.Annotations[skipBootstrap]; ok {
		return nil
	}
	if loaded || bootstrap == nil {
		return nil
	}

	s, err := bootstrap(options)
	if err != nil {
		return fmt.Errorf("failed to initialise: %w", err)
	}
	SetServices(s)
	if appSettings != nil && appSettings.Verbose {
		logger.SetVerbose(true)
	}
	return nil
}

// listDocuments returns the provider's document identifiers, or nil when
// the provider cannot enumerate them.
func listDocuments(ctx context.Context) ([]string, error) {
	lister, ok := documentProvider.(driven.DocumentLister)
	if !ok {
		return nil, nil
	}
	return lister.Documents(ctx)
}

// restoreLatest loads the newest saved snapshot of a document into the
// annotation service. It returns the number of annotations restored.
func restoreLatest(ctx context.Context, documentID string) (int, error) {
	if snapshotStore == nil || annotationService == nil {
		return 0, nil
	}
	if len(annotationService.Annotations(documentID)) > 0 {
		return 0, nil
	}

	snap, err := snapshotStore.Latest(ctx, documentID)
	if errors.Is(err, domain.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read snapshot for %q: %w", documentID, err)
	}

	n := annotationService.Restore(documentID, snap.Annotations)
	logger.Debug("restored %d annotations for %q", n, documentID)
	return n, nil
}
