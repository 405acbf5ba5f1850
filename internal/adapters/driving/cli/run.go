package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	configfile "github.com/custodia-labs/omnivet-cli/internal/adapters/driven/config/file"
	histfile "github.com/custodia-labs/omnivet-cli/internal/adapters/driven/history/file"
	"github.com/custodia-labs/omnivet-cli/internal/adapters/driven/history/sqlite"
	payloadfile "github.com/custodia-labs/omnivet-cli/internal/adapters/driven/payload/file"
	"github.com/custodia-labs/omnivet-cli/internal/connectors/omni"
	"github.com/custodia-labs/omnivet-cli/internal/core/domain"
	"github.com/custodia-labs/omnivet-cli/internal/core/ports/driven"
	"github.com/custodia-labs/omnivet-cli/internal/core/ports/driving"
	"github.com/custodia-labs/omnivet-cli/internal/core/services"
	"github.com/custodia-labs/omnivet-cli/internal/watch"
)

// Default output locations, relative to the working directory.
const (
	defaultHistoryPath = ".omnivet/history.json"
	defaultReportPath  = ".omnivet/report.json"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the content validator and diff against history",
	Long: `Fetches the model's content-validator payload, extracts and normalises
its issues, and partitions them into new, existing, and resolved
relative to the previous run's history snapshot.

The report and the updated snapshot are written as JSON. With
--from-file the payload is read from a local JSON file instead of the
API; adding --watch re-runs validation whenever that file changes.`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	f := runCmd.Flags()
	f.String("base-url", "", "Omni deployment root URL (env OMNI_BASE_URL)")
	f.String("model-id", "", "Model to validate (env OMNI_MODEL_ID)")
	f.String("api-key", "", "Omni API key (env OMNI_API_KEY)")
	f.String("user-id", "", "Run validation with this user's permissions (env OMNI_USER_ID)")
	f.String("branch-id", "", "Validate this branch id (env OMNI_BRANCH_ID)")
	f.String("branch-name", "", "Validate the branch with this name (env OMNI_BRANCH_NAME)")
	f.String("auth-header", "", "Header carrying the API key (default Authorization)")
	f.String("auth-scheme", "", "Scheme prefixing the API key, '-' for none (default Bearer)")
	f.String("issues-path", "", "Dotted path to the issue list inside the payload (env OMNI_ISSUES_PATH)")
	f.Int("timeout", 60, "HTTP timeout in seconds")
	f.String("history-in", "", "Previous snapshot path (default "+defaultHistoryPath+")")
	f.String("history-out", "", "Where to write this run's snapshot (default "+defaultHistoryPath+")")
	f.String("report-out", "", "Where to write the report (default "+defaultReportPath+")")
	f.String("raw-response-out", "", "Also dump the unprocessed payload to this path")
	f.Bool("fail-on-new-only", false, "Fail only when new issues appeared, not on lingering ones")
	f.String("from-file", "", "Read the payload from a local JSON file instead of the API")
	f.Bool("watch", false, "With --from-file, re-run whenever the payload file changes")
	f.Bool("archive", false, "Record a run summary in the SQLite run archive")
	f.String("archive-dir", "", "Run archive directory (default ~/.omnivet/data)")
	f.String("config-dir", "", "Settings directory (default ~/.omnivet)")
}

// runConfig is the fully resolved configuration for one run invocation.
type runConfig struct {
	omni     omni.Config
	fromFile string
	watch    bool

	archive    bool
	archiveDir string

	options driving.RunOptions
}

func runRun(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveRunConfig(cmd)
	if err != nil {
		return err
	}

	var api driven.ValidatorAPI
	if cfg.fromFile != "" {
		api = payloadfile.NewSource(cfg.fromFile)
	} else {
		api = omni.NewClient(cfg.omni)
	}

	var runStore driven.RunStore
	if cfg.archive {
		store, err := sqlite.NewStore(cfg.archiveDir)
		if err != nil {
			return fmt.Errorf("open run archive: %w", err)
		}
		defer store.Close()
		runStore = store
	}

	validator := services.NewValidator(api, histfile.NewStore(), runStore, cfg.omni.BaseURL, cfg.omni.ModelID)

	ctx := cmd.Context()
	result, err := validator.Run(ctx, cfg.options)
	if err != nil {
		return err
	}
	printResults(cmd, result.Report)

	if cfg.watch {
		return watchLoop(cmd, validator, cfg)
	}

	if result.Failed {
		return ErrIssuesFound
	}
	return nil
}

// resolveRunConfig merges flags, environment, and the settings file.
func resolveRunConfig(cmd *cobra.Command) (*runConfig, error) {
	settings, err := configfile.LoadSettings(stringFlag(cmd, "config-dir"))
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	timeoutSeconds, _ := cmd.Flags().GetInt("timeout")
	failOnNewOnly, _ := cmd.Flags().GetBool("fail-on-new-only")
	watchMode, _ := cmd.Flags().GetBool("watch")
	archiveFlag, _ := cmd.Flags().GetBool("archive")

	cfg := &runConfig{
		omni: omni.Config{
			BaseURL:    resolveString(cmd, "base-url", os.Getenv("OMNI_BASE_URL"), settings.BaseURL, ""),
			ModelID:    resolveString(cmd, "model-id", os.Getenv("OMNI_MODEL_ID"), settings.ModelID, ""),
			APIKey:     resolveString(cmd, "api-key", os.Getenv("OMNI_API_KEY"), "", ""),
			UserID:     resolveString(cmd, "user-id", os.Getenv("OMNI_USER_ID"), "", ""),
			BranchID:   resolveString(cmd, "branch-id", os.Getenv("OMNI_BRANCH_ID"), "", ""),
			BranchName: resolveString(cmd, "branch-name", os.Getenv("OMNI_BRANCH_NAME"), "", ""),
			AuthHeader: resolveString(cmd, "auth-header", "", settings.AuthHeader, ""),
			AuthScheme: resolveString(cmd, "auth-scheme", "", settings.AuthScheme, ""),
			Timeout:    time.Duration(timeoutSeconds) * time.Second,
		},
		fromFile:   stringFlag(cmd, "from-file"),
		watch:      watchMode,
		archive:    archiveFlag || settings.Archive,
		archiveDir: resolveString(cmd, "archive-dir", "", settings.ArchiveDir, ""),
	}

	historyPath := resolveString(cmd, "history-in", "", settings.HistoryPath, defaultHistoryPath)
	cfg.options = driving.RunOptions{
		IssuesPath:     resolveString(cmd, "issues-path", os.Getenv("OMNI_ISSUES_PATH"), settings.IssuesPath, ""),
		HistoryIn:      historyPath,
		HistoryOut:     resolveString(cmd, "history-out", "", settings.HistoryPath, defaultHistoryPath),
		ReportOut:      resolveString(cmd, "report-out", "", settings.ReportPath, defaultReportPath),
		RawResponseOut: stringFlag(cmd, "raw-response-out"),
		FailOnNewOnly:  failOnNewOnly,
	}

	if cfg.watch && cfg.fromFile == "" {
		return nil, errors.New("--watch requires --from-file")
	}

	if cfg.fromFile != "" {
		// Local mode never touches the API; label the report with the
		// payload file when no base URL was configured.
		if cfg.omni.BaseURL == "" {
			cfg.omni.BaseURL = cfg.fromFile
		}
		return cfg, nil
	}

	var missing []string
	if cfg.omni.BaseURL == "" {
		missing = append(missing, "--base-url or OMNI_BASE_URL")
	}
	if cfg.omni.ModelID == "" {
		missing = append(missing, "--model-id or OMNI_MODEL_ID")
	}
	if cfg.omni.APIKey == "" {
		missing = append(missing, "--api-key or OMNI_API_KEY")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required values: %s", strings.Join(missing, ", "))
	}
	return cfg, nil
}

// watchLoop re-runs validation on every payload file change until
// interrupted. The exit contract is suspended: watch mode is an
// interactive aid, not a CI gate.
func watchLoop(cmd *cobra.Command, validator driving.Validator, cfg *runConfig) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	watcher, err := watch.New(cfg.fromFile, 0)
	if err != nil {
		return fmt.Errorf("watch payload: %w", err)
	}
	defer watcher.Close()

	go func() { _ = watcher.Run(ctx) }()

	cmd.Printf("Watching %s for changes (interrupt to stop)...\n", cfg.fromFile)
	for range watcher.Events() {
		result, err := validator.Run(ctx, cfg.options)
		if err != nil {
			cmd.PrintErrf("Run failed: %v\n", err)
			continue
		}
		printResults(cmd, result.Report)
	}
	return nil
}

func printResults(cmd *cobra.Command, report domain.Report) {
	cmd.Printf("Content validator results: total=%d new=%d existing=%d resolved=%d\n",
		report.TotalIssues, report.NewIssues, report.ExistingIssues, report.ResolvedIssues)
}

func stringFlag(cmd *cobra.Command, name string) string {
	value, _ := cmd.Flags().GetString(name)
	return value
}
