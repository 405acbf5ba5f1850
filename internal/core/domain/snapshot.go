package domain

import "time"

// TimestampFormat renders timestamps the way reports and snapshots
// store them: ISO-8601 UTC with a trailing "Z".
const TimestampFormat = time.RFC3339

// Timestamp formats t for persistence.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampFormat)
}

// HistorySnapshot is the persisted normalised issue set from one run.
// The current run's snapshot becomes the next run's previous state.
// A missing snapshot file means an empty issue set, never an error.
type HistorySnapshot struct {
	GeneratedAt string            `json:"generated_at"`
	BaseURL     string            `json:"base_url"`
	ModelID     string            `json:"model_id"`
	Issues      []NormalizedIssue `json:"issues"`
}

// MaxSamples caps the per-class sample lists embedded in a Report.
// The full current issue list is always persisted in Issues.
const MaxSamples = 20

// Report is the per-run output written for CI consumers and humans.
type Report struct {
	GeneratedAt    string `json:"generated_at"`
	BaseURL        string `json:"base_url"`
	ModelID        string `json:"model_id"`
	TotalIssues    int    `json:"total_issues"`
	NewIssues      int    `json:"new_issues"`
	ExistingIssues int    `json:"existing_issues"`
	ResolvedIssues int    `json:"resolved_issues"`

	// Issues is the complete current normalised issue list.
	Issues []NormalizedIssue `json:"issues"`

	// Sample lists are capped at MaxSamples entries each.
	NewIssueSamples      []NormalizedIssue `json:"new_issue_samples"`
	ExistingIssueSamples []NormalizedIssue `json:"existing_issue_samples"`
	ResolvedIssueSamples []NormalizedIssue `json:"resolved_issue_samples"`
}

// Snapshot derives the history snapshot corresponding to this report.
func (r Report) Snapshot() HistorySnapshot {
	return HistorySnapshot{
		GeneratedAt: r.GeneratedAt,
		BaseURL:     r.BaseURL,
		ModelID:     r.ModelID,
		Issues:      r.Issues,
	}
}

// RunSummary is one archived run, stored in the optional SQLite run
// archive and listed by the history command.
type RunSummary struct {
	RunID          string
	GeneratedAt    time.Time
	BaseURL        string
	ModelID        string
	TotalIssues    int
	NewIssues      int
	ExistingIssues int
	ResolvedIssues int
}
