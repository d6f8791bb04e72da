package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSchedule(t *testing.T) {
	assert.NoError(t, ValidateSchedule("*/5 * * * *"))
	assert.NoError(t, ValidateSchedule("0 9 * * 1-5"))
	assert.Error(t, ValidateSchedule("every minute"))
	assert.Error(t, ValidateSchedule("0 */5 * * * *"))
}

func TestNewAutosave_InvalidSchedule(t *testing.T) {
	a, err := NewAutosave("nope", func() {})
	assert.Error(t, err)
	assert.Nil(t, a)
}

func TestAutosave_StartStop(t *testing.T) {
	a, err := NewAutosave("* * * * *", func() {})
	require.NoError(t, err)

	assert.False(t, a.Running())
	require.NoError(t, a.Start())
	require.NoError(t, a.Start())
	assert.True(t, a.Running())

	a.Stop()
	a.Stop()
	assert.False(t, a.Running())

	// Restart after stop schedules a single entry again.
	require.NoError(t, a.Start())
	assert.True(t, a.Running())
	a.Stop()
}

func TestAutosave_Next(t *testing.T) {
	a, err := NewAutosave("30 * * * *", func() {})
	require.NoError(t, err)

	from := time.Date(2024, 5, 1, 12, 10, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC), a.Next(from))
}
