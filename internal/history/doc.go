// Package history persists batch runs and their per-pair outcomes in SQLite.
//
// A run row is opened when a batch starts, one run_pairs row is recorded as
// each pair finishes, and the run totals are aggregated from those rows when
// the batch completes. The CLI reads the same tables for `dualsub history`.
//
// Schema changes bump schemaVersion in schema.go; users delete history.db to
// adopt the new schema.
package history
