// Package file persists run outputs as JSON files on disk.
//
// It implements the driven.HistoryStore port: the previous run's
// snapshot is read at the start of a run, and the report, the new
// snapshot, and the optional raw payload dump are written at the end.
// Files are written with two-space indentation and a trailing newline
// so they diff cleanly under version control.
package file
