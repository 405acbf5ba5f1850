package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// settingsFile is the file name inside the config directory.
const settingsFile = "config.toml"

// Settings are the file-configurable defaults for omnivet runs.
type Settings struct {
	// BaseURL is the Omni deployment root.
	BaseURL string `toml:"base_url"`

	// ModelID is the default model to validate.
	ModelID string `toml:"model_id"`

	// AuthHeader and AuthScheme override the credential layout.
	AuthHeader string `toml:"auth_header"`
	AuthScheme string `toml:"auth_scheme"`

	// IssuesPath is the default dotted path into the payload.
	IssuesPath string `toml:"issues_path"`

	// HistoryPath and ReportPath override the output locations.
	HistoryPath string `toml:"history_path"`
	ReportPath  string `toml:"report_path"`

	// Archive enables the SQLite run archive for every run.
	Archive bool `toml:"archive"`

	// ArchiveDir overrides the run archive location.
	ArchiveDir string `toml:"archive_dir"`
}

// LoadSettings reads settings from configDir/config.toml.
// If configDir is empty, defaults to ~/.omnivet. A missing file yields
// zero settings and no error.
func LoadSettings(configDir string) (*Settings, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		configDir = filepath.Join(home, ".omnivet")
	}

	path := filepath.Join(configDir, settingsFile)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Settings{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading settings %s: %w", path, err)
	}

	var settings Settings
	if err := toml.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("parsing settings %s: %w", path, err)
	}
	return &settings, nil
}
