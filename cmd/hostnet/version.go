package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/veesix-networks/hostnet/pkg/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		info := version.Get()
		fmt.Fprintf(cmd.OutOrStdout(), "hostnet %s (%s) built on %s with %s\n", rootCmd.Version, info.Commit, info.Date, info.GoVersion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
