package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// versionCmd prints the dashkit version.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "dashkit %s\n", Version)
	},
}
