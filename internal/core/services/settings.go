package services

import (
	"fmt"
	"time"

	"github.com/custodia-labs/margin/internal/core/domain"
	"github.com/custodia-labs/margin/internal/core/ports/driven"
	"github.com/custodia-labs/margin/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyProviderType    = "provider.type"
	keyProviderPath    = "provider.path"
	keyProviderBaseURL = "provider.base_url"
	keyProviderToken   = "provider.token"
	keyProviderRate    = "provider.rate_per_second"
	keyLoadDelayMS     = "session.load_delay_ms"
	keySinkType        = "sink.type"
	keySinkDataDir     = "sink.data_dir"
	keyAutosave        = "autosave.schedule"
	keyVerbose         = "log.verbose"
	keyStyleColor      = "style.color"
	keyStyleBackground = "style.background_color"
	keyStyleFontSize   = "style.font_size"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings. Missing or invalid values
// fall back to the defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Provider: domain.ProviderSettings{
			Type:          s.getProviderType(defaults.Provider.Type),
			Path:          s.getString(keyProviderPath, defaults.Provider.Path),
			BaseURL:       s.configStore.GetString(keyProviderBaseURL),
			Token:         s.configStore.GetString(keyProviderToken),
			RatePerSecond: max(0, s.configStore.GetFloat(keyProviderRate)),
		},
		Session: domain.SessionSettings{
			LoadDelay: time.Duration(max(0, s.configStore.GetInt(keyLoadDelayMS))) * time.Millisecond,
		},
		Sink: domain.SinkSettings{
			Type:    s.getSinkType(defaults.Sink.Type),
			DataDir: s.configStore.GetString(keySinkDataDir),
		},
		Autosave: domain.AutosaveSettings{
			Schedule: s.configStore.GetString(keyAutosave),
		},
		Style:   s.getStyle(defaults.Style),
		Verbose: s.configStore.GetBool(keyVerbose),
	}

	if settings.Autosave.Schedule != "" {
		if err := ValidateSchedule(settings.Autosave.Schedule); err != nil {
			return nil, err
		}
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if settings == nil {
		return domain.ErrInvalidInput
	}

	values := []struct {
		key   string
		value any
	}{
		{keyProviderType, string(settings.Provider.Type)},
		{keyProviderPath, settings.Provider.Path},
		{keyProviderBaseURL, settings.Provider.BaseURL},
		{keyProviderRate, settings.Provider.RatePerSecond},
		{keyLoadDelayMS, int(settings.Session.LoadDelay / time.Millisecond)},
		{keySinkType, string(settings.Sink.Type)},
		{keySinkDataDir, settings.Sink.DataDir},
		{keyAutosave, settings.Autosave.Schedule},
		{keyVerbose, settings.Verbose},
		{keyStyleColor, settings.Style.Color},
		{keyStyleBackground, settings.Style.BackgroundColor},
		{keyStyleFontSize, settings.Style.FontSize},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	// Only persist the token if one is set.
	if settings.Provider.Token != "" {
		if err := s.configStore.Set(keyProviderToken, settings.Provider.Token); err != nil {
			return fmt.Errorf("save %s: %w", keyProviderToken, err)
		}
	}

	return s.configStore.Save()
}

func (s *SettingsService) getString(key, defaultVal string) string {
	if v := s.configStore.GetString(key); v != "" {
		return v
	}
	return defaultVal
}

func (s *SettingsService) getProviderType(defaultVal domain.ProviderType) domain.ProviderType {
	if p := domain.ProviderType(s.configStore.GetString(keyProviderType)); p.IsValid() {
		return p
	}
	return defaultVal
}

func (s *SettingsService) getSinkType(defaultVal domain.SinkType) domain.SinkType {
	if t := domain.SinkType(s.configStore.GetString(keySinkType)); t.IsValid() {
		return t
	}
	return defaultVal
}

func (s *SettingsService) getStyle(defaultVal domain.Style) domain.Style {
	style := domain.Style{
		Color:           s.getString(keyStyleColor, defaultVal.Color),
		BackgroundColor: s.getString(keyStyleBackground, defaultVal.BackgroundColor),
		FontSize:        s.configStore.GetFloat(keyStyleFontSize),
	}
	if style.FontSize <= 0 {
		style.FontSize = defaultVal.FontSize
	}
	return style
}
