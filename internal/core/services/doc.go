// Package services implements the core engine of omnivet.
//
// Three pure functions form the pipeline:
//
//   - Locate: finds the issue list inside an arbitrarily-shaped payload
//     via an ordered cascade of extraction rules.
//   - Normalise: derives a stable content identity and a display summary
//     for one raw issue of unknown shape.
//   - Partition: splits current and previous issues into new, existing,
//     and resolved by identity.
//
// All three are total: any input, however malformed, produces a
// well-formed output. None of them perform I/O, and all are safe to call
// from any goroutine.
//
// The Validator service wires the pipeline to the driven ports (payload
// source, history store, run archive) and implements the driving port
// the CLI consumes.
package services
