// Package pkguid provides helpers for generating unique identifiers.
//
// String IDs (UUID v7) name sessions, events and correlation ids; numeric
// Snowflake IDs number upload batches so they sort by arrival.
package pkguid
