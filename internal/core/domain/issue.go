package domain

// RawIssue is a single validation problem as reported by the Omni
// content validator. No schema is guaranteed: it may be a plain string,
// an object with a "message" field and arbitrary context fields, or any
// other JSON value. It is carried through the pipeline untouched.
type RawIssue = any

// NormalizedIssue is a RawIssue with a derived identity and summary.
// It is immutable after construction.
type NormalizedIssue struct {
	// ID is a content-derived fingerprint: the SHA-256 hex digest of the
	// raw issue's canonical serialisation. Two structurally equal issues
	// always share an ID, regardless of key order or list position.
	ID string `json:"id"`

	// Summary is a one-line human-readable description, used only for
	// display. It carries no identity semantics.
	Summary string `json:"summary"`

	// Raw is the original issue value, retained for persistence and audit.
	Raw RawIssue `json:"raw"`
}

// DiffResult partitions current and previous issues by ID.
//
// New and Existing partition the current set exactly; Resolved is drawn
// only from the previous set. All three preserve their input order.
type DiffResult struct {
	New      []NormalizedIssue
	Existing []NormalizedIssue
	Resolved []NormalizedIssue
}
