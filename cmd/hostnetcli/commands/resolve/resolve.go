package resolve

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/veesix-networks/hostnet/cmd/hostnetcli/commands"
	"github.com/veesix-networks/hostnet/pkg/cli"
	"github.com/veesix-networks/hostnet/pkg/models/topology"
	"github.com/veesix-networks/hostnet/plugins/northbound/api"
)

func init() {
	cli.Register("core", &cli.Command{
		Path:        []string{"resolve", "snapshot"},
		Description: "Resolve a snapshot file without storing it",
		Handler:     commands.ShowHandlerFunc(snapshot),
		Arguments: []*cli.Argument{
			{Name: "path", Description: "Snapshot YAML file", Type: cli.ArgUserInput},
		},
	})
}

func snapshot(ctx context.Context, client *api.Client, args []string) (any, error) {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, err
	}

	var snap topology.Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse %s: %w", args[0], err)
	}

	resp, err := client.Resolve(ctx, &snap)
	if err != nil {
		return nil, err
	}
	return resp.Config, nil
}
