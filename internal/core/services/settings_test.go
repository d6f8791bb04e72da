package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/margin/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/margin/internal/core/domain"
)

func TestNewSettingsService(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	require.NotNil(t, service)
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	settings, err := service.Get()

	require.NoError(t, err)
	require.NotNil(t, settings)

	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.Provider.Type, settings.Provider.Type)
	assert.Equal(t, defaults.Provider.Path, settings.Provider.Path)
	assert.Equal(t, defaults.Sink.Type, settings.Sink.Type)
	assert.Equal(t, defaults.Style, settings.Style)
	assert.Zero(t, settings.Session.LoadDelay)
	assert.Empty(t, settings.Autosave.Schedule)
	assert.False(t, settings.Verbose)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("provider.type", "http")
	_ = store.Set("provider.base_url", "https://docs.example.com")
	_ = store.Set("provider.token", "secret")
	_ = store.Set("provider.rate_per_second", 2.5)
	_ = store.Set("session.load_delay_ms", 500)
	_ = store.Set("sink.type", "sqlite")
	_ = store.Set("sink.data_dir", "/tmp/margin")
	_ = store.Set("autosave.schedule", "*/10 * * * *")
	_ = store.Set("log.verbose", true)
	_ = store.Set("style.color", "#112233")
	_ = store.Set("style.font_size", 18)

	service := NewSettingsService(store)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.ProviderHTTP, settings.Provider.Type)
	assert.Equal(t, "https://docs.example.com", settings.Provider.BaseURL)
	assert.Equal(t, "secret", settings.Provider.Token)
	assert.Equal(t, 2.5, settings.Provider.RatePerSecond)
	assert.Equal(t, 500*time.Millisecond, settings.Session.LoadDelay)
	assert.Equal(t, domain.SinkSQLite, settings.Sink.Type)
	assert.Equal(t, "/tmp/margin", settings.Sink.DataDir)
	assert.Equal(t, "*/10 * * * *", settings.Autosave.Schedule)
	assert.True(t, settings.Verbose)
	assert.Equal(t, "#112233", settings.Style.Color)
	assert.Equal(t, domain.DefaultStyle().BackgroundColor, settings.Style.BackgroundColor)
	assert.Equal(t, 18.0, settings.Style.FontSize)
}

func TestSettingsService_Get_InvalidValuesReturnDefaults(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("provider.type", "ftp")
	_ = store.Set("sink.type", "tape")
	_ = store.Set("style.font_size", -3)
	_ = store.Set("session.load_delay_ms", -10)

	service := NewSettingsService(store)

	settings, err := service.Get()

	require.NoError(t, err)
	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.Provider.Type, settings.Provider.Type)
	assert.Equal(t, defaults.Sink.Type, settings.Sink.Type)
	assert.Equal(t, defaults.Style.FontSize, settings.Style.FontSize)
	assert.Zero(t, settings.Session.LoadDelay)
}

func TestSettingsService_Get_InvalidSchedule(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("autosave.schedule", "sometimes")

	_, err := NewSettingsService(store).Get()

	assert.Error(t, err)
}

func TestSettingsService_SaveRoundTrip(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	want := domain.DefaultAppSettings()
	want.Provider = domain.ProviderSettings{
		Type:          domain.ProviderHTTP,
		BaseURL:       "http://localhost:9000",
		Token:         "t0k",
		RatePerSecond: 4,
		Path:          "documents.toml",
	}
	want.Session.LoadDelay = 250 * time.Millisecond
	want.Sink = domain.SinkSettings{Type: domain.SinkSQLite, DataDir: "/data"}
	want.Autosave.Schedule = "0 * * * *"
	want.Verbose = true

	require.NoError(t, service.Save(&want))

	got, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, want, *got)
}

func TestSettingsService_SaveNil(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())
	assert.ErrorIs(t, service.Save(nil), domain.ErrInvalidInput)
}
