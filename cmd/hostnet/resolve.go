package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/veesix-networks/hostnet/pkg/models/topology"
	"github.com/veesix-networks/hostnet/pkg/resolver"
)

var (
	flagSnapshot string
	flagAll      bool
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [host]",
	Short: "Generate network resources for a host",
	Long: `Resolve a host from the inventory, or a snapshot file given with --snapshot,
and print the generated resources.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().StringVar(&flagSnapshot, "snapshot", "", "Resolve a snapshot YAML file instead of an inventory host")
	resolveCmd.Flags().BoolVar(&flagAll, "all", false, "Resolve every inventory host")
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if flagSnapshot != "" {
		if _, err := loadConfig(); err != nil {
			return err
		}
		snap, err := readSnapshot(flagSnapshot)
		if err != nil {
			return err
		}
		cfg, err := resolver.New().Resolve(ctx, snap)
		if err != nil {
			return err
		}
		return writeValue(cmd.OutOrStdout(), cfg)
	}

	src, err := openInventory()
	if err != nil {
		return err
	}
	defer src.Close()

	if flagAll {
		hosts, err := src.Hosts(ctx)
		if err != nil {
			return err
		}
		snaps := make([]*topology.Snapshot, 0, len(hosts))
		for _, host := range hosts {
			snap, err := src.Snapshot(ctx, host)
			if err != nil {
				return err
			}
			snaps = append(snaps, snap)
		}

		var errs []error
		for _, res := range resolver.New().ResolveAll(ctx, snaps) {
			if res.Err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", res.Hostname, res.Err))
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "# %s\n", res.Hostname)
			if err := writeValue(cmd.OutOrStdout(), res.Config); err != nil {
				return err
			}
		}
		return errors.Join(errs...)
	}

	if len(args) != 1 {
		return errors.New("a host argument, --snapshot or --all is required")
	}

	snap, err := src.Snapshot(ctx, args[0])
	if err != nil {
		return err
	}
	cfg, err := resolver.New().Resolve(ctx, snap)
	if err != nil {
		return err
	}
	return writeValue(cmd.OutOrStdout(), cfg)
}

func readSnapshot(path string) (*topology.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap topology.Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &snap, nil
}
