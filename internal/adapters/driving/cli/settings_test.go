package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/margin/internal/core/domain"
)

func TestMaskToken(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "Short token", input: "abc123", expected: "****"},
		{name: "Exactly 8 chars", input: "12345678", expected: "****"},
		{name: "Long token", input: "secret-token-123", expected: "secr...-123"},
		{name: "Empty token", input: "", expected: "****"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, maskToken(tt.input))
		})
	}
}

func TestSettingsCmd_NoService(t *testing.T) {
	_, err := run(t, "settings", "show")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "settings service not configured")
}

func TestSettingsShow_Defaults(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := run(t, "settings")

	require.NoError(t, err)
	assert.Contains(t, out, "[Provider]")
	assert.Contains(t, out, "Type: file")
	assert.Contains(t, out, "Path: documents.toml")
	assert.Contains(t, out, "Type: console")
	assert.Contains(t, out, "Schedule: off")
	assert.Contains(t, out, "Background: #FFFF00")
	assert.Contains(t, out, "Font size: 14")
}

func TestSettingsProvider(t *testing.T) {
	t.Run("http requires a url", func(t *testing.T) {
		_, cleanup := setupTestServices()
		defer cleanup()

		_, err := run(t, "settings", "provider", "http")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "--url is required")
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, cleanup := setupTestServices()
		defer cleanup()

		_, err := run(t, "settings", "provider", "ftp")

		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown provider "ftp"`)
	})

	t.Run("http with url and token", func(t *testing.T) {
		_, cleanup := setupTestServices()
		defer cleanup()

		out, err := run(t, "settings", "provider", "HTTP", "--url", "https://docs.example.com", "--token", "secret-token-123", "--rate", "2")
		require.NoError(t, err)
		assert.Contains(t, out, "Provider set to http.")

		settings, err := settingsService.Get()
		require.NoError(t, err)
		assert.Equal(t, domain.ProviderHTTP, settings.Provider.Type)
		assert.Equal(t, "https://docs.example.com", settings.Provider.BaseURL)
		assert.Equal(t, 2.0, settings.Provider.RatePerSecond)

		out, err = run(t, "settings", "show")
		require.NoError(t, err)
		assert.Contains(t, out, "Token: secr...-123")
		assert.NotContains(t, out, "secret-token-123")
		assert.Contains(t, out, "Rate: 2.0/s")
	})
}

func TestSettingsSink(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := run(t, "settings", "sink", "sqlite", "--data-dir", "/var/lib/margin")
	require.NoError(t, err)
	assert.Contains(t, out, "Sink set to sqlite.")

	settings, err := settingsService.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.SinkSQLite, settings.Sink.Type)
	assert.Equal(t, "/var/lib/margin", settings.Sink.DataDir)

	_, err = run(t, "settings", "sink", "s3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown sink "s3"`)
}

func TestSettingsAutosave(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := run(t, "settings", "autosave", "*/5 * * * *")
	require.NoError(t, err)
	assert.Contains(t, out, `Autosave schedule set to "*/5 * * * *".`)

	settings, err := settingsService.Get()
	require.NoError(t, err)
	assert.Equal(t, "*/5 * * * *", settings.Autosave.Schedule)

	_, err = run(t, "settings", "autosave", "every minute")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid autosave schedule")

	out, err = run(t, "settings", "autosave", "off")
	require.NoError(t, err)
	assert.Contains(t, out, "Autosave disabled.")

	settings, err = settingsService.Get()
	require.NoError(t, err)
	assert.Empty(t, settings.Autosave.Schedule)
}

func TestSettingsStyle(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := run(t, "settings", "style", "--color", "#FF0000", "--font-size", "18")
	require.NoError(t, err)
	assert.Contains(t, out, "Style set to #FF0000 on #FFFF00, size 18.")

	settings, err := settingsService.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.Style{Color: "#FF0000", BackgroundColor: "#FFFF00", FontSize: 18}, settings.Style)

	_, err = run(t, "settings", "style", "--font-size=-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--font-size must be positive")
}
