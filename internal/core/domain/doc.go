// Package domain contains the core value types for omnivet.
//
// All types here are plain values: they are constructed once, never
// mutated, and carry no behaviour beyond derivation helpers. The domain
// layer has no dependencies on adapters, connectors, or any I/O.
//
// The central concept is the issue pipeline:
//
//   - RawIssue: an opaque JSON value reported by the Omni content
//     validator, of unknown and variable shape.
//   - NormalizedIssue: a RawIssue paired with a stable content-derived
//     identity and a one-line display summary.
//   - HistorySnapshot: the persisted normalised issue set from the most
//     recent prior run.
//   - DiffResult: the partition of current and previous issues into
//     new, existing, and resolved.
//   - Report: the per-run output written for CI and humans.
package domain
