package domain

import "time"

// ProviderType selects the document provider adapter.
type ProviderType string

// Available provider types.
const (
	ProviderFile   ProviderType = "file"
	ProviderHTTP   ProviderType = "http"
	ProviderMemory ProviderType = "memory"
)

// IsValid returns true if the provider type is recognised.
func (p ProviderType) IsValid() bool {
	switch p {
	case ProviderFile, ProviderHTTP, ProviderMemory:
		return true
	default:
		return false
	}
}

// SinkType selects where saved snapshots go.
type SinkType string

// Available sink types.
const (
	SinkConsole SinkType = "console"
	SinkSQLite  SinkType = "sqlite"
)

// IsValid returns true if the sink type is recognised.
func (s SinkType) IsValid() bool {
	return s == SinkConsole || s == SinkSQLite
}

// ProviderSettings configures where documents are fetched from.
type ProviderSettings struct {
	Type ProviderType

	// Path is the manifest file for the file provider.
	Path string

	// BaseURL and Token configure the HTTP provider.
	BaseURL string
	Token   string

	// RatePerSecond limits HTTP requests. Zero means the adapter default.
	RatePerSecond float64
}

// SessionSettings configures document loading.
type SessionSettings struct {
	// LoadDelay is an artificial delay before each load resolves.
	LoadDelay time.Duration
}

// SinkSettings configures snapshot persistence.
type SinkSettings struct {
	Type    SinkType
	DataDir string
}

// AutosaveSettings configures periodic snapshot saving.
type AutosaveSettings struct {
	// Schedule is a five-field cron expression. Empty disables autosave.
	Schedule string
}

// AppSettings holds all viewer configuration.
type AppSettings struct {
	Provider ProviderSettings
	Session  SessionSettings
	Sink     SinkSettings
	Autosave AutosaveSettings
	Style    Style
	Verbose  bool
}

// DefaultAppSettings returns the settings used when nothing is configured.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Provider: ProviderSettings{
			Type: ProviderFile,
			Path: "documents.toml",
		},
		Sink: SinkSettings{
			Type: SinkConsole,
		},
		Style: DefaultStyle(),
	}
}
