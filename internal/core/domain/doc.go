// Package domain defines the core business entities for margin.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Annotation: A positioned text note placed on a document page
//   - Document: A paginated document rendered as a stack of page images
//   - Snapshot: A serialisable point-in-time copy of a document's annotations
//   - AppSettings: Viewer configuration resolved from the config store
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
