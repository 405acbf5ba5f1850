package driven

import (
	"context"

	"github.com/custodia-labs/omnivet-cli/internal/core/domain"
)

// HistoryStore persists run outputs as JSON documents.
type HistoryStore interface {
	// LoadSnapshot reads the previous run's snapshot.
	// Returns nil and no error if no snapshot exists at path.
	LoadSnapshot(ctx context.Context, path string) (*domain.HistorySnapshot, error)

	// SaveSnapshot writes the current run's snapshot.
	SaveSnapshot(ctx context.Context, path string, snap domain.HistorySnapshot) error

	// SaveReport writes the run report.
	SaveReport(ctx context.Context, path string, report domain.Report) error

	// SaveRawPayload writes the unprocessed validator payload for audit.
	SaveRawPayload(ctx context.Context, path string, payload any) error
}
