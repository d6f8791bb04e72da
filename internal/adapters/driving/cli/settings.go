package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/margin/internal/core/domain"
	"github.com/custodia-labs/margin/internal/core/services"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the document provider, snapshot sink, autosave
schedule and the default annotation style.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsProviderCmd = &cobra.Command{
	Use:   "provider [type]",
	Short: "Set the document provider",
	Long: `Set where documents are fetched from.

Available providers:
  file   - TOML manifest on disk (--path)
  http   - JSON documents served over HTTP (--url, --token, --rate)
  memory - built-in sample documents`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsProvider,
}

var settingsSinkCmd = &cobra.Command{
	Use:   "sink [type]",
	Short: "Set where saved snapshots go",
	Long: `Set the snapshot sink.

Available sinks:
  console - print snapshots as JSON
  sqlite  - keep snapshots in a local database (--data-dir)`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsSink,
}

var settingsAutosaveCmd = &cobra.Command{
	Use:   "autosave [schedule|off]",
	Short: "Set the autosave schedule",
	Long: `Set a five-field cron expression for saving snapshots while the viewer
is open, for example "*/5 * * * *". Use "off" to disable autosave.`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsAutosave,
}

var settingsStyleCmd = &cobra.Command{
	Use:   "style",
	Short: "Set the default annotation style",
	RunE:  runSettingsStyle,
}

var (
	providerPath  string
	providerURL   string
	providerToken string
	providerRate  float64
	loadDelay     time.Duration
	sinkDataDir   string
	styleColor    string
	styleBgColor  string
	styleFontSize float64
)

func init() {
	settingsProviderCmd.Flags().StringVar(&providerPath, "path", "", "manifest path for the file provider")
	settingsProviderCmd.Flags().StringVar(&providerURL, "url", "", "base URL for the http provider")
	settingsProviderCmd.Flags().StringVar(&providerToken, "token", "", "bearer token for the http provider")
	settingsProviderCmd.Flags().Float64Var(&providerRate, "rate", 0, "requests per second for the http provider")
	settingsProviderCmd.Flags().DurationVar(&loadDelay, "load-delay", 0, "artificial delay before each load")
	settingsSinkCmd.Flags().StringVar(&sinkDataDir, "data-dir", "", "database directory for the sqlite sink")
	settingsStyleCmd.Flags().StringVar(&styleColor, "color", "", "text colour")
	settingsStyleCmd.Flags().StringVar(&styleBgColor, "background", "", "background colour")
	settingsStyleCmd.Flags().Float64Var(&styleFontSize, "font-size", 0, "font size")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsProviderCmd)
	settingsCmd.AddCommand(settingsSinkCmd)
	settingsCmd.AddCommand(settingsAutosaveCmd)
	settingsCmd.AddCommand(settingsStyleCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Provider]")
	cmd.Printf("  Type: %s\n", settings.Provider.Type)
	switch settings.Provider.Type {
	case domain.ProviderFile:
		cmd.Printf("  Path: %s\n", settings.Provider.Path)
	case domain.ProviderHTTP:
		cmd.Printf("  Base URL: %s\n", settings.Provider.BaseURL)
		if settings.Provider.Token != "" {
			cmd.Printf("  Token: %s\n", maskToken(settings.Provider.Token))
		} else {
			cmd.Printf("  Token: (not set)\n")
		}
		if settings.Provider.RatePerSecond > 0 {
			cmd.Printf("  Rate: %.1f/s\n", settings.Provider.RatePerSecond)
		}
	}
	if settings.Session.LoadDelay > 0 {
		cmd.Printf("  Load delay: %s\n", settings.Session.LoadDelay)
	}
	cmd.Println()

	cmd.Println("[Sink]")
	cmd.Printf("  Type: %s\n", settings.Sink.Type)
	if settings.Sink.Type == domain.SinkSQLite && settings.Sink.DataDir != "" {
		cmd.Printf("  Data dir: %s\n", settings.Sink.DataDir)
	}
	cmd.Println()

	cmd.Println("[Autosave]")
	if settings.Autosave.Schedule != "" {
		cmd.Printf("  Schedule: %s\n", settings.Autosave.Schedule)
	} else {
		cmd.Printf("  Schedule: off\n")
	}
	cmd.Println()

	cmd.Println("[Style]")
	cmd.Printf("  Color: %s\n", settings.Style.Color)
	cmd.Printf("  Background: %s\n", settings.Style.BackgroundColor)
	cmd.Printf("  Font size: %g\n", settings.Style.FontSize)

	return nil
}

func runSettingsProvider(cmd *cobra.Command, args []string) error {
	providerType := domain.ProviderType(strings.ToLower(args[0]))
	if !providerType.IsValid() {
		return fmt.Errorf("unknown provider %q (use file, http or memory)", args[0])
	}
	if providerType == domain.ProviderHTTP && providerURL == "" {
		return errors.New("--url is required for the http provider")
	}

	return updateSettings(func(s *domain.AppSettings) {
		s.Provider.Type = providerType
		if providerPath != "" {
			s.Provider.Path = providerPath
		}
		if providerURL != "" {
			s.Provider.BaseURL = providerURL
		}
		if providerToken != "" {
			s.Provider.Token = providerToken
		}
		if providerRate > 0 {
			s.Provider.RatePerSecond = providerRate
		}
		if cmd.Flags().Changed("load-delay") {
			s.Session.LoadDelay = max(0, loadDelay)
		}
		cmd.Printf("Provider set to %s.\n", providerType)
	})
}

func runSettingsSink(cmd *cobra.Command, args []string) error {
	sinkType := domain.SinkType(strings.ToLower(args[0]))
	if !sinkType.IsValid() {
		return fmt.Errorf("unknown sink %q (use console or sqlite)", args[0])
	}

	return updateSettings(func(s *domain.AppSettings) {
		s.Sink.Type = sinkType
		if sinkDataDir != "" {
			s.Sink.DataDir = sinkDataDir
		}
		cmd.Printf("Sink set to %s.\n", sinkType)
	})
}

func runSettingsAutosave(cmd *cobra.Command, args []string) error {
	schedule := strings.TrimSpace(args[0])
	if strings.EqualFold(schedule, "off") {
		schedule = ""
	}
	if schedule != "" {
		if err := services.ValidateSchedule(schedule); err != nil {
			return err
		}
	}

	return updateSettings(func(s *domain.AppSettings) {
		s.Autosave.Schedule = schedule
		if schedule == "" {
			cmd.Println("Autosave disabled.")
			return
		}
		cmd.Printf("Autosave schedule set to %q.\n", schedule)
	})
}

func runSettingsStyle(cmd *cobra.Command, _ []string) error {
	if styleFontSize < 0 {
		return errors.New("--font-size must be positive")
	}

	return updateSettings(func(s *domain.AppSettings) {
		if styleColor != "" {
			s.Style.Color = styleColor
		}
		if styleBgColor != "" {
			s.Style.BackgroundColor = styleBgColor
		}
		if styleFontSize > 0 {
			s.Style.FontSize = styleFontSize
		}
		cmd.Printf("Style set to %s on %s, size %g.\n",
			s.Style.Color, s.Style.BackgroundColor, s.Style.FontSize)
	})
}

// updateSettings loads the settings, applies apply and saves the result.
func updateSettings(apply func(s *domain.AppSettings)) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	apply(settings)

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// maskToken hides all but the ends of a secret.
func maskToken(token string) string {
	if len(token) <= 8 {
		return "****"
	}
	return token[:4] + "..." + token[len(token)-4:]
}
