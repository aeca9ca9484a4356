// At3ctl is a command-line controller for AirTouch 3 HVAC systems.
//
// It talks the console's binary TCP protocol directly on the local network:
// reading full system state, toggling zones and AC units, driving setpoints
// and dampers, and renaming zones on the wall display. No cloud account or
// hardware modification is required.
//
// Usage:
//
//	at3ctl [command] [flags]
//
// See 'at3ctl --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/krobar/airtouch3/internal/logging"
	"github.com/krobar/airtouch3/internal/version"
)

func main() {
	defer logging.Sync()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "at3ctl",
	Short: "AirTouch 3 Control Utility",
	Long: `A command-line controller for AirTouch 3 HVAC zone systems.

Connects to the console over its binary TCP protocol to read system
state, control AC units and zones, and manage device names. Set
AT3_LOG_LEVEL=debug for protocol-level logging.`,
	Version:      version.Version,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logging.InitializeFromEnv()
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("at3ctl %s (commit: %s)\n", version.Version, version.Commit)
	},
}
