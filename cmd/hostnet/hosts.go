package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var hostsCmd = &cobra.Command{
	Use:   "hosts",
	Short: "List inventory hosts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := openInventory()
		if err != nil {
			return err
		}
		defer src.Close()

		hosts, err := src.Hosts(cmd.Context())
		if err != nil {
			return err
		}
		for _, h := range hosts {
			fmt.Fprintln(cmd.OutOrStdout(), h)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(hostsCmd)
}
