// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - ValidatorAPI: Fetches the content-validator payload (Omni HTTP
//     connector, or a local payload file)
//   - HistoryStore: Snapshot, report, and raw payload persistence
//
// # Optional Interfaces
//
//   - RunStore: Run archive. Nil disables archiving; the pipeline runs
//     unchanged without it.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
