package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/omnivet-cli/internal/core/domain"
	"github.com/custodia-labs/omnivet-cli/internal/core/ports/driven"
	"github.com/custodia-labs/omnivet-cli/internal/core/ports/driving"
	"github.com/custodia-labs/omnivet-cli/internal/logger"
)

// Ensure Validator implements the interface.
var _ driving.Validator = (*Validator)(nil)

// Validator orchestrates one validation run: fetch the payload, locate
// and normalise issues, diff against history, and persist the outputs.
type Validator struct {
	api     driven.ValidatorAPI
	history driven.HistoryStore
	runs    driven.RunStore // optional, nil disables archiving

	baseURL string
	modelID string

	// now is injectable for tests.
	now func() time.Time
}

// NewValidator creates a validation service. runs may be nil, in which
// case runs are not archived.
func NewValidator(
	api driven.ValidatorAPI,
	history driven.HistoryStore,
	runs driven.RunStore,
	baseURL string,
	modelID string,
) *Validator {
	return &Validator{
		api:     api,
		history: history,
		runs:    runs,
		baseURL: baseURL,
		modelID: modelID,
		now:     time.Now,
	}
}

// Run executes the pipeline and returns the persisted report plus the
// failure verdict for the process exit contract.
func (v *Validator) Run(ctx context.Context, opts driving.RunOptions) (*driving.RunResult, error) {
	// 1. Resolve the branch the payload is fetched for.
	branchID, err := v.api.ResolveBranch(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve branch: %w", err)
	}
	if branchID != "" {
		logger.Info("Using branch id %s", branchID)
	}

	// 2. Fetch the raw payload.
	payload, err := v.api.FetchValidation(ctx, branchID)
	if err != nil {
		return nil, fmt.Errorf("fetch validation: %w", err)
	}
	if opts.RawResponseOut != "" {
		if err := v.history.SaveRawPayload(ctx, opts.RawResponseOut, payload); err != nil {
			return nil, fmt.Errorf("save raw response: %w", err)
		}
	}

	// 3. Extract and normalise. Both are total; no error path.
	raws := Locate(payload, opts.IssuesPath)
	normalized := NormaliseAll(raws)

	// 4. Load the previous snapshot. Absence means an empty set.
	var previous []domain.NormalizedIssue
	snapshot, err := v.history.LoadSnapshot(ctx, opts.HistoryIn)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	if snapshot != nil {
		previous = snapshot.Issues
	}

	// 5. Diff by identity.
	diff := Partition(normalized, previous)

	// 6. Build and persist the report and the next run's snapshot.
	report := v.buildReport(normalized, diff)
	if err := v.history.SaveReport(ctx, opts.ReportOut, report); err != nil {
		return nil, fmt.Errorf("save report: %w", err)
	}
	if err := v.history.SaveSnapshot(ctx, opts.HistoryOut, report.Snapshot()); err != nil {
		return nil, fmt.Errorf("save history: %w", err)
	}

	// 7. Archive the run summary when a run store is configured.
	if v.runs != nil {
		if err := v.recordRun(ctx, report); err != nil {
			return nil, fmt.Errorf("archive run: %w", err)
		}
	}

	failed := report.TotalIssues > 0
	if opts.FailOnNewOnly {
		failed = report.NewIssues > 0
	}

	return &driving.RunResult{
		Report:           report,
		ResolvedBranchID: branchID,
		Failed:           failed,
	}, nil
}

func (v *Validator) buildReport(current []domain.NormalizedIssue, diff domain.DiffResult) domain.Report {
	return domain.Report{
		GeneratedAt:          domain.Timestamp(v.now()),
		BaseURL:              v.baseURL,
		ModelID:              v.modelID,
		TotalIssues:          len(current),
		NewIssues:            len(diff.New),
		ExistingIssues:       len(diff.Existing),
		ResolvedIssues:       len(diff.Resolved),
		Issues:               current,
		NewIssueSamples:      sampleOf(diff.New),
		ExistingIssueSamples: sampleOf(diff.Existing),
		ResolvedIssueSamples: sampleOf(diff.Resolved),
	}
}

func (v *Validator) recordRun(ctx context.Context, report domain.Report) error {
	generatedAt, err := time.Parse(domain.TimestampFormat, report.GeneratedAt)
	if err != nil {
		generatedAt = v.now().UTC()
	}
	return v.runs.RecordRun(ctx, domain.RunSummary{
		RunID:          uuid.NewString(),
		GeneratedAt:    generatedAt,
		BaseURL:        report.BaseURL,
		ModelID:        report.ModelID,
		TotalIssues:    report.TotalIssues,
		NewIssues:      report.NewIssues,
		ExistingIssues: report.ExistingIssues,
		ResolvedIssues: report.ResolvedIssues,
	})
}

// sampleOf caps a class list for embedding in the report.
func sampleOf(issues []domain.NormalizedIssue) []domain.NormalizedIssue {
	if len(issues) > domain.MaxSamples {
		return issues[:domain.MaxSamples]
	}
	return issues
}
