package driven

import (
	"context"

	"github.com/custodia-labs/omnivet-cli/internal/core/domain"
)

// RunStore archives per-run summaries.
type RunStore interface {
	// RecordRun appends one run summary to the archive.
	RecordRun(ctx context.Context, run domain.RunSummary) error

	// ListRuns returns up to limit archived runs, most recent first.
	// A non-positive limit returns all runs.
	ListRuns(ctx context.Context, limit int) ([]domain.RunSummary, error)

	// Close releases the underlying storage.
	Close() error
}
