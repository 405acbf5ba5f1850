package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/omnivet-cli/internal/core/domain"
	"github.com/custodia-labs/omnivet-cli/internal/core/ports/driving"
)

// mockAPI implements driven.ValidatorAPI for tests.
type mockAPI struct {
	branchID   string
	branchErr  error
	payload    any
	fetchErr   error
	fetchedFor string
}

func (m *mockAPI) ResolveBranch(_ context.Context) (string, error) {
	return m.branchID, m.branchErr
}

func (m *mockAPI) FetchValidation(_ context.Context, branchID string) (any, error) {
	m.fetchedFor = branchID
	return m.payload, m.fetchErr
}

// mockHistory implements driven.HistoryStore in memory.
type mockHistory struct {
	previous  *domain.HistorySnapshot
	loadErr   error
	savedSnap map[string]domain.HistorySnapshot
	savedRep  map[string]domain.Report
	savedRaw  map[string]any
}

func newMockHistory() *mockHistory {
	return &mockHistory{
		savedSnap: make(map[string]domain.HistorySnapshot),
		savedRep:  make(map[string]domain.Report),
		savedRaw:  make(map[string]any),
	}
}

func (m *mockHistory) LoadSnapshot(_ context.Context, _ string) (*domain.HistorySnapshot, error) {
	return m.previous, m.loadErr
}

func (m *mockHistory) SaveSnapshot(_ context.Context, path string, snap domain.HistorySnapshot) error {
	m.savedSnap[path] = snap
	return nil
}

func (m *mockHistory) SaveReport(_ context.Context, path string, report domain.Report) error {
	m.savedRep[path] = report
	return nil
}

func (m *mockHistory) SaveRawPayload(_ context.Context, path string, payload any) error {
	m.savedRaw[path] = payload
	return nil
}

// mockRuns implements driven.RunStore in memory.
type mockRuns struct {
	recorded []domain.RunSummary
}

func (m *mockRuns) RecordRun(_ context.Context, run domain.RunSummary) error {
	m.recorded = append(m.recorded, run)
	return nil
}

func (m *mockRuns) ListRuns(_ context.Context, _ int) ([]domain.RunSummary, error) {
	return m.recorded, nil
}

func (m *mockRuns) Close() error { return nil }

func fixedClock() time.Time {
	return time.Date(2026, 3, 14, 14, 26, 53, 0, time.UTC)
}

func newTestValidator(api *mockAPI, history *mockHistory, runs *mockRuns) *Validator {
	var v *Validator
	if runs != nil {
		v = NewValidator(api, history, runs, "https://acme.omniapp.co", "model-1")
	} else {
		v = NewValidator(api, history, nil, "https://acme.omniapp.co", "model-1")
	}
	v.now = fixedClock
	return v
}

func defaultOptions() driving.RunOptions {
	return driving.RunOptions{
		IssuesPath: "",
		HistoryIn:  "history.json",
		HistoryOut: "history.json",
		ReportOut:  "report.json",
	}
}

// TestValidator_FirstRun tests a run with no prior history
func TestValidator_FirstRun(t *testing.T) {
	api := &mockAPI{payload: map[string]any{"issues": []any{"missing filter", "missing filter"}}}
	history := newMockHistory()

	result, err := newTestValidator(api, history, nil).Run(context.Background(), defaultOptions())
	require.NoError(t, err)

	report := result.Report
	assert.Equal(t, "2026-03-14T14:26:53Z", report.GeneratedAt)
	assert.Equal(t, "https://acme.omniapp.co", report.BaseURL)
	assert.Equal(t, "model-1", report.ModelID)
	assert.Equal(t, 2, report.TotalIssues)
	assert.Equal(t, 2, report.NewIssues)
	assert.Equal(t, 0, report.ExistingIssues)
	assert.Equal(t, 0, report.ResolvedIssues)

	// Duplicates are retained, sharing one ID.
	require.Len(t, report.Issues, 2)
	assert.Equal(t, report.Issues[0].ID, report.Issues[1].ID)
	assert.Len(t, report.NewIssueSamples, 2)

	assert.True(t, result.Failed)

	// Both outputs were persisted.
	saved, ok := history.savedRep["report.json"]
	require.True(t, ok)
	assert.Equal(t, report, saved)

	snap, ok := history.savedSnap["history.json"]
	require.True(t, ok)
	assert.Equal(t, report.Issues, snap.Issues)
	assert.Equal(t, report.GeneratedAt, snap.GeneratedAt)
}

// TestValidator_DiffAgainstHistory tests the new/resolved flip across runs
func TestValidator_DiffAgainstHistory(t *testing.T) {
	issueX := Normalise("issue X")
	api := &mockAPI{payload: map[string]any{"issues": []any{"issue Y"}}}
	history := newMockHistory()
	history.previous = &domain.HistorySnapshot{Issues: []domain.NormalizedIssue{issueX}}

	result, err := newTestValidator(api, history, nil).Run(context.Background(), defaultOptions())
	require.NoError(t, err)

	report := result.Report
	assert.Equal(t, 1, report.NewIssues)
	assert.Equal(t, 0, report.ExistingIssues)
	assert.Equal(t, 1, report.ResolvedIssues)
	require.Len(t, report.ResolvedIssueSamples, 1)
	assert.Equal(t, issueX.ID, report.ResolvedIssueSamples[0].ID)
}

// TestValidator_CleanRun tests the zero-issue verdict
func TestValidator_CleanRun(t *testing.T) {
	api := &mockAPI{payload: map[string]any{"issues": []any{}}}

	result, err := newTestValidator(api, newMockHistory(), nil).Run(context.Background(), defaultOptions())
	require.NoError(t, err)

	assert.Equal(t, 0, result.Report.TotalIssues)
	assert.False(t, result.Failed)
}

// TestValidator_FailOnNewOnly tests the alternate failure policy
func TestValidator_FailOnNewOnly(t *testing.T) {
	existing := Normalise("lingering issue")
	api := &mockAPI{payload: map[string]any{"issues": []any{"lingering issue"}}}
	history := newMockHistory()
	history.previous = &domain.HistorySnapshot{Issues: []domain.NormalizedIssue{existing}}

	opts := defaultOptions()
	opts.FailOnNewOnly = true

	result, err := newTestValidator(api, history, nil).Run(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Report.TotalIssues)
	assert.Equal(t, 0, result.Report.NewIssues)
	assert.False(t, result.Failed, "existing issues alone should not fail under --fail-on-new-only")
}

// TestValidator_SampleCap tests that sample lists are capped at MaxSamples
func TestValidator_SampleCap(t *testing.T) {
	raw := make([]any, 0, 25)
	for i := 0; i < 25; i++ {
		raw = append(raw, map[string]any{"message": "issue", "n": float64(i)})
	}
	api := &mockAPI{payload: map[string]any{"issues": raw}}

	result, err := newTestValidator(api, newMockHistory(), nil).Run(context.Background(), defaultOptions())
	require.NoError(t, err)

	assert.Equal(t, 25, result.Report.TotalIssues)
	assert.Len(t, result.Report.Issues, 25)
	assert.Len(t, result.Report.NewIssueSamples, domain.MaxSamples)
}

// TestValidator_ExplicitIssuesPath tests that the dotted path reaches the locator
func TestValidator_ExplicitIssuesPath(t *testing.T) {
	api := &mockAPI{payload: map[string]any{
		"data":   map[string]any{"problems": []any{}},
		"issues": []any{"decoy"},
	}}

	opts := defaultOptions()
	opts.IssuesPath = "data.problems"

	result, err := newTestValidator(api, newMockHistory(), nil).Run(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Report.TotalIssues)
	assert.False(t, result.Failed)
}

// TestValidator_RawResponseDump tests the optional raw payload persistence
func TestValidator_RawResponseDump(t *testing.T) {
	payload := map[string]any{"issues": []any{"a"}}
	api := &mockAPI{payload: payload}
	history := newMockHistory()

	opts := defaultOptions()
	opts.RawResponseOut = "raw.json"

	_, err := newTestValidator(api, history, nil).Run(context.Background(), opts)
	require.NoError(t, err)

	saved, ok := history.savedRaw["raw.json"]
	require.True(t, ok)
	assert.Equal(t, payload, saved)
}

// TestValidator_BranchFlowsToFetch tests that the resolved branch id reaches the fetch
func TestValidator_BranchFlowsToFetch(t *testing.T) {
	api := &mockAPI{branchID: "branch-42", payload: map[string]any{"issues": []any{}}}

	result, err := newTestValidator(api, newMockHistory(), nil).Run(context.Background(), defaultOptions())
	require.NoError(t, err)

	assert.Equal(t, "branch-42", api.fetchedFor)
	assert.Equal(t, "branch-42", result.ResolvedBranchID)
}

// TestValidator_RecordsRun tests the optional run archive
func TestValidator_RecordsRun(t *testing.T) {
	api := &mockAPI{payload: map[string]any{"issues": []any{"a", "b"}}}
	runs := &mockRuns{}

	_, err := newTestValidator(api, newMockHistory(), runs).Run(context.Background(), defaultOptions())
	require.NoError(t, err)

	require.Len(t, runs.recorded, 1)
	run := runs.recorded[0]
	assert.NotEmpty(t, run.RunID)
	assert.Equal(t, 2, run.TotalIssues)
	assert.Equal(t, 2, run.NewIssues)
	assert.Equal(t, "model-1", run.ModelID)
	assert.Equal(t, fixedClock(), run.GeneratedAt)
}

// TestValidator_FetchErrorPropagates tests the boundary error path
func TestValidator_FetchErrorPropagates(t *testing.T) {
	api := &mockAPI{fetchErr: errors.New("boom")}

	_, err := newTestValidator(api, newMockHistory(), nil).Run(context.Background(), defaultOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch validation")
}

// TestValidator_BranchErrorPropagates tests branch lookup failure
func TestValidator_BranchErrorPropagates(t *testing.T) {
	api := &mockAPI{branchErr: errors.New("lookup failed")}

	_, err := newTestValidator(api, newMockHistory(), nil).Run(context.Background(), defaultOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolve branch")
}
