// Package sqlite provides a SQLite-based snapshot archive.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. Saved annotation snapshots are kept
// as rows in a single snapshots table and exposed through driven.SnapshotStore.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory, named NNN_description.up.sql.
//
// # Data Location
//
// By default, the database is stored at ~/.margin/data/snapshots.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
