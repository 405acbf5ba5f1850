// Package cli implements the omnivet command-line interface.
//
// Commands are thin: they resolve configuration from flags, environment
// variables, and the optional settings file, wire the adapters to the
// core validator service, and map its verdict onto the process exit
// contract.
package cli

import (
	"context"
	"errors"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/omnivet-cli/internal/logger"
)

// version is the build version, overridable via SetVersion.
var version = "dev"

var verbose bool

// ErrIssuesFound signals that the run completed but issues remain; the
// process exits nonzero without treating it as an operational failure.
var ErrIssuesFound = errors.New("validation issues found")

var rootCmd = &cobra.Command{
	Use:   "omnivet",
	Short: "Validate Omni model content and track issue history",
	Long: `omnivet polls an Omni model's content validator, assigns each reported
issue a stable content-derived identity, and classifies issues as new,
existing, or resolved relative to the previous run's recorded state.

Exit status is 1 when issues remain (or, with --fail-on-new-only, when
new issues appeared), making it suitable as a CI gate.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
		// A .env in the working directory supplies OMNI_* variables.
		_ = godotenv.Load()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

// SetVersion overrides the version string reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// resolveString picks the effective value for one option: an explicitly
// set flag wins, then the environment, then the settings file, then the
// built-in default. Flag defaults stay empty so precedence is decided
// here, after godotenv has loaded.
func resolveString(cmd *cobra.Command, flagName, envValue, settingsValue, builtin string) string {
	if cmd.Flags().Changed(flagName) {
		value, _ := cmd.Flags().GetString(flagName)
		return value
	}
	if envValue != "" {
		return envValue
	}
	if settingsValue != "" {
		return settingsValue
	}
	return builtin
}
