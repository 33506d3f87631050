// Package store provides SQLite-backed persistence for json columns.
//
// A column is a named, ordered list of JSON objects together with its dtype
// and, optionally, the CUE schema that constrains it:
//   - columns: one row per column (UUIDv7 id, unique name, dtype, length,
//     content digest, schema source)
//   - column_elements: one row per element, keyed by (column_id, position),
//     holding the element's RFC 8785 canonical JSON
//
// Saving a name that already exists replaces the column atomically. Reads
// always return elements in position order, and the stored digest is checked
// on load so a tampered or truncated column is reported instead of returned.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity (element cascade)
package store
