package tui

import "errors"

// ErrMissingSession is returned when the document session is not provided.
var ErrMissingSession = errors.New("tui: document session is required")

// ErrMissingDragFactory is returned when the drag factory is not provided.
var ErrMissingDragFactory = errors.New("tui: drag factory is required")

// ErrMissingPrompter is returned when the prompter is not provided.
var ErrMissingPrompter = errors.New("tui: prompter is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
