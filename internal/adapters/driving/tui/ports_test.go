package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seehuhn.de/go/geom/vec"

	"github.com/custodia-labs/margin/internal/core/domain"
	"github.com/custodia-labs/margin/internal/core/ports/driven"
	"github.com/custodia-labs/margin/internal/core/ports/driving"
	"github.com/custodia-labs/margin/internal/core/services"
)

func newDragFactory() DragFactory {
	return func(surface driven.PointerSurface, moved func(pos vec.Vec2)) driving.Dragger {
		return services.NewDragController(surface, moved)
	}
}

func newIdleSession() *services.DocumentSession {
	return services.NewDocumentSession(
		services.NewAnnotationStore(domain.DefaultStyle()), nil, nil, nil, nil, 0,
	)
}

func TestNewPorts(t *testing.T) {
	session := newIdleSession()
	prompter := NewPrompter()

	ports := NewPorts(session, newDragFactory(), prompter)

	require.NotNil(t, ports)
	assert.Equal(t, session, ports.Session)
	assert.Equal(t, prompter, ports.Prompter)
	assert.NotNil(t, ports.NewDrag)
	assert.Empty(t, ports.Documents)
}

func TestPorts_Validate(t *testing.T) {
	tests := []struct {
		name    string
		ports   *Ports
		wantErr error
	}{
		{
			name:  "all set",
			ports: NewPorts(newIdleSession(), newDragFactory(), NewPrompter()),
		},
		{
			name:    "missing session",
			ports:   &Ports{NewDrag: newDragFactory(), Prompter: NewPrompter()},
			wantErr: ErrMissingSession,
		},
		{
			name:    "missing drag factory",
			ports:   &Ports{Session: newIdleSession(), Prompter: NewPrompter()},
			wantErr: ErrMissingDragFactory,
		},
		{
			name:    "missing prompter",
			ports:   &Ports{Session: newIdleSession(), NewDrag: newDragFactory()},
			wantErr: ErrMissingPrompter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ports.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
