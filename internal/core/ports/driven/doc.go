// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - DocumentProvider: Fetches document metadata for a document identifier
//   - Prompter: Text input and message display for the user
//   - SnapshotSink: Receives saved annotation snapshots
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - PointerSurface: Top-level input surface for drag gestures. Without it,
//     drag sessions never start.
//   - SnapshotStore: Queryable snapshot archive (sqlite sink only).
//
// # Import Rules
//
//   - Can Import: domain package, seehuhn.de/go/geom value types
//   - Cannot Import: Any adapter package
package driven
