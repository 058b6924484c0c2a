package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is overridable at build time via
// -ldflags "-X github.com/talentscout/screener/cmd.version=v1.2.3".
var version = "unknown"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the screener version",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", app, version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
