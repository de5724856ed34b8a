package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/veesix-networks/hostnet/pkg/hieradata"
)

var diffCmd = &cobra.Command{
	Use:   "diff <old.yaml> <new.yaml>",
	Short: "Compare two generated resource files",
	Args:  cobra.ExactArgs(2),
	RunE:  runDiff,
}

func init() {
	rootCmd.AddCommand(diffCmd)
}

func runDiff(cmd *cobra.Command, args []string) error {
	old, err := readConfig(args[0])
	if err != nil {
		return err
	}
	updated, err := readConfig(args[1])
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), hieradata.FormatDiff(hieradata.Diff(old, updated)))
	return nil
}

func readConfig(path string) (*hieradata.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg, err := hieradata.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
