// Command omnivet validates Omni model content and tracks issue history
// across runs.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/custodia-labs/omnivet-cli/internal/adapters/driving/cli"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)

	if err := cli.Execute(); err != nil {
		if !errors.Is(err, cli.ErrIssuesFound) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
