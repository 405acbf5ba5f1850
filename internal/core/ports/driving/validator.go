package driving

import (
	"context"

	"github.com/custodia-labs/omnivet-cli/internal/core/domain"
)

// RunOptions configures a single validation run.
type RunOptions struct {
	// IssuesPath is an optional dotted field path pointing at the issue
	// list inside the payload. Empty means auto-detection.
	IssuesPath string

	// HistoryIn is the path of the previous run's snapshot. A missing
	// file is treated as an empty issue set.
	HistoryIn string

	// HistoryOut is where this run's snapshot is written.
	HistoryOut string

	// ReportOut is where this run's report is written.
	ReportOut string

	// RawResponseOut, when non-empty, is where the unprocessed payload
	// is dumped for audit.
	RawResponseOut string

	// FailOnNewOnly makes the run fail only when new issues appeared,
	// rather than whenever any issue is present.
	FailOnNewOnly bool
}

// RunResult is the outcome of one validation run.
type RunResult struct {
	// Report is the full report that was persisted.
	Report domain.Report

	// ResolvedBranchID is the branch id the payload was fetched for,
	// empty when the default branch was used.
	ResolvedBranchID string

	// Failed reports whether the run should terminate the process with
	// a nonzero exit status, per the options' failure policy.
	Failed bool
}

// Validator runs the fetch, extract, normalise, diff, persist pipeline.
type Validator interface {
	Run(ctx context.Context, opts RunOptions) (*RunResult, error)
}
