package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Set with -ldflags "-X github.com/leeforge/modkit/internal/cli.Version=...".
var (
	Version = "dev"
	Commit  = "none"
)

func versionInfo() string {
	return fmt.Sprintf("modkit %s (commit %s, %s)", Version, Commit, runtime.Version())
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of modkit",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), versionInfo())
		},
	}
}
