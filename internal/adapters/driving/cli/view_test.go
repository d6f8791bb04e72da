package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewCmd_Use(t *testing.T) {
	assert.Equal(t, "view [doc-id]", viewCmd.Use)
	assert.Contains(t, viewCmd.Long, "double-click")
}

func TestViewCmd_AcceptsAtMostOneArg(t *testing.T) {
	_, err := run(t, "view", "doc-1", "doc-2")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts at most 1 arg(s)")
}

func TestViewCmd_NoServices(t *testing.T) {
	_, err := run(t, "view", "doc-1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "viewer services not configured")
}

func TestViewCmd_RequiresTerminal(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	original := isTerminal
	isTerminal = func() bool { return false }
	defer func() { isTerminal = original }()

	_, err := run(t, "view", "doc-1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "interactive terminal")
}
