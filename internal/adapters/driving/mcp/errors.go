// Package mcp provides an MCP (Model Context Protocol) server adapter for margin.
// It lets AI assistants read documents and place annotations on their pages.
package mcp

import "errors"

var (
	// ErrMissingAnnotationService is returned when the annotation service is not provided.
	ErrMissingAnnotationService = errors.New("mcp: annotation service is required")

	// ErrMissingSessionFactory is returned when no session factory is provided.
	ErrMissingSessionFactory = errors.New("mcp: session factory is required")

	// ErrListingUnsupported is returned when the provider cannot enumerate documents.
	ErrListingUnsupported = errors.New("mcp: document listing is not supported by the provider")
)
