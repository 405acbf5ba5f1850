// Package file serves a locally saved validator payload through the
// driven.ValidatorAPI port. It backs the --from-file mode, which runs
// the extraction and diff pipeline over an exported payload without
// touching the network.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/custodia-labs/omnivet-cli/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.ValidatorAPI = (*Source)(nil)

// Source reads the validation payload from a JSON file.
type Source struct {
	path string
}

// NewSource creates a payload source for the given file.
func NewSource(path string) *Source {
	return &Source{path: path}
}

// ResolveBranch always reports the default branch: a saved payload
// already belongs to whatever branch it was exported from.
func (s *Source) ResolveBranch(_ context.Context) (string, error) {
	return "", nil
}

// FetchValidation reads and decodes the payload file. A raw-response
// dump produced by a previous run ({"payload": ...}) is unwrapped
// transparently.
func (s *Source) FetchValidation(_ context.Context, _ string) (any, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading payload %s: %w", s.path, err)
	}

	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parsing payload %s: %w", s.path, err)
	}

	if obj, ok := payload.(map[string]any); ok && len(obj) == 1 {
		if wrapped, ok := obj["payload"]; ok {
			return wrapped, nil
		}
	}
	return payload, nil
}
