// Package sqlite archives per-run summaries in a local SQLite database.
//
// The archive is optional: the pipeline runs unchanged without it. When
// enabled it records one row per validation run, which the history
// command lists to show issue counts trending over time.
package sqlite
