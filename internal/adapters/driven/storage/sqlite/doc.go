// Package sqlite provides a SQLite-backed record source for every content domain.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation.
//
// # Schema
//
// Records of all four domains live in a single table keyed by content type and id.
// Each row keeps the JSON-encoded record and its position in the collection, so
// ListAll returns records in the order they were seeded. The schema is managed
// through versioned migrations stored in the migrations/ directory.
//
// # Data Location
//
// By default, the database is stored at ~/.autopropelidos/data/portal.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
