package inventory

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/veesix-networks/hostnet/cmd/hostnetcli/commands"
	"github.com/veesix-networks/hostnet/pkg/cli"
	"github.com/veesix-networks/hostnet/pkg/models/topology"
)

func init() {
	cli.RegisterRoot("core", &cli.RootCommand{
		Path:        []string{"inventory"},
		Description: "Modify the inventory",
	})

	cli.Register("core", &cli.Command{
		Path:        []string{"inventory", "put"},
		Description: "Store a snapshot file in the inventory",
		Handler:     put,
		Arguments: []*cli.Argument{
			{Name: "path", Description: "Snapshot YAML file", Type: cli.ArgUserInput},
		},
	})

	cli.Register("core", &cli.Command{
		Path:        []string{"inventory", "delete"},
		Description: "Remove a host from the inventory",
		Handler:     remove,
		Arguments: []*cli.Argument{
			{Name: "host", Description: "Hostname", Type: cli.ArgUserInput},
		},
	})
}

func put(ctx context.Context, c any, args []string) error {
	shell, err := commands.AsShell(c)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	var snap topology.Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("parse %s: %w", args[0], err)
	}
	if snap.Host.Hostname == "" {
		return fmt.Errorf("%s: host.hostname is required", args[0])
	}

	if err := shell.Client().PutHost(ctx, &snap); err != nil {
		return err
	}
	fmt.Fprintf(shell.Out(), "Stored %s\n", snap.Host.Hostname)
	return nil
}

func remove(ctx context.Context, c any, args []string) error {
	shell, err := commands.AsShell(c)
	if err != nil {
		return err
	}

	if err := shell.Client().DeleteHost(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintf(shell.Out(), "Deleted %s\n", args[0])
	return nil
}
