package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/margin/internal/adapters/driving/tui"
	"github.com/custodia-labs/margin/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/margin/internal/core/ports/driven"
	"github.com/custodia-labs/margin/internal/logger"
)

// viewCmd represents the view command.
var viewCmd = &cobra.Command{
	Use:   "view [doc-id]",
	Short: "Open a document in the terminal viewer",
	Long: `Open a document in the interactive terminal viewer.

Without a document ID the first document the provider lists is opened.

Controls:
  a             - Toggle add mode
  double-click  - Add an annotation (in add mode)
  drag          - Move an annotation
  click x       - Delete an annotation
  +/-           - Zoom in / out
  ↑/k, ↓/j      - Scroll
  tab, shift+tab - Next / previous document
  s             - Save a snapshot
  r             - Reload the document
  ?             - Toggle help
  q             - Quit`,
	Args: cobra.MaximumNArgs(1),
	RunE: runView,
}

// isTerminal reports whether stdout is an interactive terminal.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in viewer: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if newSession == nil || newDrag == nil {
		return errors.New("viewer services not configured")
	}
	if !isTerminal() {
		return errors.New("view requires an interactive terminal")
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	ids, err := listDocuments(ctx)
	if err != nil {
		logger.Warn("listing documents: %v", err)
	}

	documentID := ""
	if len(args) > 0 {
		documentID = args[0]
	} else if len(ids) > 0 {
		documentID = ids[0]
	}
	if documentID == "" {
		return errors.New("no document given and the provider lists none")
	}

	for _, id := range append([]string{documentID}, ids...) {
		if _, err := restoreLatest(ctx, id); err != nil {
			logger.Warn("%v", err)
		}
	}

	prompter := tui.NewPrompter()
	session := newSession(prompter)
	defer session.Close()

	ports := tui.NewPorts(session, newDrag, prompter)
	ports.Documents = ids

	app, err := tui.NewApp(ports, documentID)
	if err != nil {
		return fmt.Errorf("failed to create viewer: %w", err)
	}
	app.WithContext(ctx)

	program := app.Program()

	// Autosave and manifest changes are posted into the event loop.
	if newScheduler != nil {
		scheduler, err := newScheduler(func() { program.Send(messages.AutosaveTick{}) })
		if err != nil {
			return fmt.Errorf("failed to create autosave: %w", err)
		}
		if scheduler != nil {
			if err := scheduler.Start(); err != nil {
				return fmt.Errorf("failed to start autosave: %w", err)
			}
			defer scheduler.Stop()
		}
	}

	if watcher, ok := documentProvider.(driven.DocumentWatcher); ok {
		go func() {
			onChange := func() { program.Send(messages.ManifestChanged{}) }
			if err := watcher.Watch(ctx, onChange); err != nil {
				logger.Debug("watch stopped: %v", err)
			}
		}()
	}

	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("viewer error: %w", err)
	}

	return nil
}
