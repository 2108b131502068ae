// Package ir defines the shared domain types for the bestiary filter engine.
//
// Records:
//   - Monster: one row of the monsters table, read-only to the engine
//   - Source: a rulebook or document, addressed by a stable hash token
//
// Source hash tokens are what the monsters.sourcehashes column stores, so a
// filter by source matches on the token rather than on the display name. A
// display name can be a substring of another ("Tome" vs "Tome of Beasts"); a
// fixed-length token cannot.
//
// All filter failures are reported as *FilterError values carrying one of the
// FilterErrorCode constants, see errors.go.
package ir
