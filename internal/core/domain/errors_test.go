package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrPageNotFound", ErrPageNotFound},
		{"ErrAnnotationNotFound", ErrAnnotationNotFound},
		{"ErrInvalidPosition", ErrInvalidPosition},
		{"ErrEmptyText", ErrEmptyText},
		{"ErrEntryInUse", ErrEntryInUse},
		{"ErrSubscriptionClosed", ErrSubscriptionClosed},
		{"ErrLoadFailure", ErrLoadFailure},
		{"ErrDocumentNotLoaded", ErrDocumentNotLoaded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrLoadFailure_Wrapped(t *testing.T) {
	err := fmt.Errorf("loading %q: %w", "doc-1", ErrLoadFailure)

	assert.True(t, errors.Is(err, ErrLoadFailure))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "doc-1")
}
