// Package omni implements the HTTP connector for the Omni API.
//
// The connector covers exactly two operations: fetching a model's
// content-validator payload, and resolving a branch name to a branch id
// via the cursor-paginated model listing endpoint. Authentication uses a
// configurable header and scheme, defaulting to a standard Bearer token.
//
// Requests are throttled through a proactive token bucket and retried on
// transient failures. The connector returns decoded JSON; interpreting
// the payload is the core engine's job.
package omni
