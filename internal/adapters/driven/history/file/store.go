package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/custodia-labs/omnivet-cli/internal/core/domain"
	"github.com/custodia-labs/omnivet-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.HistoryStore = (*Store)(nil)

// Store is a file-based implementation of driven.HistoryStore.
type Store struct{}

// NewStore creates a file-based history store.
func NewStore() *Store {
	return &Store{}
}

// rawDump wraps the unprocessed payload for the audit file.
type rawDump struct {
	Payload any `json:"payload"`
}

// LoadSnapshot reads the previous run's snapshot.
// A missing file is not an error: it returns nil, meaning no history.
func (s *Store) LoadSnapshot(_ context.Context, path string) (*domain.HistorySnapshot, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading history %s: %w", path, err)
	}

	var snap domain.HistorySnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parsing history %s: %w", path, err)
	}
	return &snap, nil
}

// SaveSnapshot writes the current run's snapshot.
func (s *Store) SaveSnapshot(_ context.Context, path string, snap domain.HistorySnapshot) error {
	return writeJSON(path, snap)
}

// SaveReport writes the run report.
func (s *Store) SaveReport(_ context.Context, path string, report domain.Report) error {
	return writeJSON(path, report)
}

// SaveRawPayload writes the unprocessed validator payload, wrapped under
// a "payload" key.
func (s *Store) SaveRawPayload(_ context.Context, path string, payload any) error {
	return writeJSON(path, rawDump{Payload: payload})
}

// writeJSON writes v as indented JSON, creating parent directories.
func writeJSON(path string, v any) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling %s: %w", path, err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
