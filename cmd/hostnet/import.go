package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/veesix-networks/hostnet/pkg/inventory"
)

var importCmd = &cobra.Command{
	Use:   "import <snapshot.yaml>...",
	Short: "Import snapshot files into the inventory",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	src, err := openInventory()
	if err != nil {
		return err
	}
	defer src.Close()

	store, ok := src.(inventory.Store)
	if !ok {
		return fmt.Errorf("inventory driver does not support import")
	}

	for _, path := range args {
		snap, err := readSnapshot(path)
		if err != nil {
			return err
		}
		if err := snap.Validate(); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if err := store.Put(cmd.Context(), snap); err != nil {
			return fmt.Errorf("import %s: %w", path, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "imported %s\n", snap.Host.Hostname)
	}
	return nil
}
