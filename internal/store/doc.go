// Package store provides SQLite-backed storage for monster and source records.
//
// Two tables:
//   - sources: name, hash token, official flag
//   - monsters: one row per monster; environment, alignment, sources and
//     sourcehashes are comma-joined multi-valued text
//
// # Connections
//
// Filter requests use OpenReadOnly and close the store before returning, so
// no connection outlives a request. Open creates the schema and is used for
// seeding.
//
// # Errors
//
// Failures to connect or query are returned as ir.FilterError values with
// code STORAGE_UNAVAILABLE. ResolveSourceHash returns UNKNOWN_SOURCE when no
// source has the requested name.
//
// # Database Configuration
//
//   - journal_mode=DELETE: read-only openers need no shared-memory file
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - Read-only stores open with mode=ro and never touch the schema
package store
