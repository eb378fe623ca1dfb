// Package cli implements the hayloft command-line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/hayloft-mods/hayloft/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:   "hayloft",
	Short: "Hayloft - call interception and argument rewriting for modded games",
	Long: `Patch host game callables from configuration.

Hayloft installs hooks on named methods of a host game and rewrites their
arguments before the original body executes. Patches are described in a
YAML file: a target callable, match criteria selecting the parameter to
change, and the replacement value or a suppress action.

Key behaviors:
- Hooks run synchronously on the host's calling goroutine
- A hook that fails or panics is logged and its changes are discarded;
  the original call always proceeds
- Removing a patch restores the original callable`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Add subcommands
	rootCmd.AddCommand(NewInitCmd())
	rootCmd.AddCommand(NewDemoCmd())
	rootCmd.AddCommand(newVersionCmd())
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("Hayloft version %s\n", version.Version)
			cmd.Printf("Git commit: %s\n", version.GitCommit)
			cmd.Printf("Build date: %s\n", version.BuildDate)
			cmd.Printf("Go version: %s\n", version.GoVersion)
		},
	}
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
