package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/omnivet-cli/internal/adapters/driven/history/sqlite"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List archived validation runs",
	Long: `Lists run summaries from the SQLite run archive, most recent first.
Runs are archived when the run command is invoked with --archive (or
archive = true in the settings file).`,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	f := historyCmd.Flags()
	f.Int("limit", 20, "Maximum number of runs to list, 0 for all")
	f.String("archive-dir", "", "Run archive directory (default ~/.omnivet/data)")
}

func runHistory(cmd *cobra.Command, _ []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	store, err := sqlite.NewStore(stringFlag(cmd, "archive-dir"))
	if err != nil {
		return fmt.Errorf("open run archive: %w", err)
	}
	defer store.Close()

	runs, err := store.ListRuns(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}

	if len(runs) == 0 {
		cmd.Println("No archived runs.")
		return nil
	}

	cmd.Printf("%-20s  %-24s  %6s  %5s  %8s  %8s\n",
		"GENERATED", "MODEL", "TOTAL", "NEW", "EXISTING", "RESOLVED")
	for _, run := range runs {
		cmd.Printf("%-20s  %-24s  %6d  %5d  %8d  %8d\n",
			run.GeneratedAt.Format("2006-01-02 15:04:05"),
			run.ModelID,
			run.TotalIssues, run.NewIssues, run.ExistingIssues, run.ResolvedIssues)
	}
	return nil
}
