package show

import (
	"context"

	"github.com/veesix-networks/hostnet/cmd/hostnetcli/commands"
	"github.com/veesix-networks/hostnet/pkg/cli"
	"github.com/veesix-networks/hostnet/plugins/northbound/api"
)

var formatArg = &cli.Argument{
	Name:        "|",
	Description: "Output modifier",
	Type:        cli.ArgKeyword,
	Values:      []string{"cli", "json", "yaml"},
}

func init() {
	cli.RegisterRoot("core", &cli.RootCommand{
		Path:        []string{"show"},
		Description: "Display information",
	})

	cli.Register("core", &cli.Command{
		Path:        []string{"show", "hosts"},
		Description: "Display inventory hosts",
		Handler:     commands.ShowHandlerFunc(hosts),
		Arguments:   []*cli.Argument{formatArg},
	})

	cli.Register("core", &cli.Command{
		Path:        []string{"show", "status"},
		Description: "Display API server status",
		Handler:     commands.ShowHandlerFunc(status),
		Arguments:   []*cli.Argument{formatArg},
	})

	cli.Register("core", &cli.Command{
		Path:        []string{"show", "resolve"},
		Description: "Display generated network resources for a host",
		Handler:     commands.ShowHandlerFunc(resolve),
		Arguments: []*cli.Argument{
			{Name: "host", Description: "Hostname", Type: cli.ArgUserInput},
			formatArg,
		},
	})

	cli.Register("core", &cli.Command{
		Path:        []string{"show", "interfaces"},
		Description: "Display interface classification for a host",
		Handler:     commands.ShowHandlerFunc(interfaces),
		Arguments: []*cli.Argument{
			{Name: "host", Description: "Hostname", Type: cli.ArgUserInput},
			formatArg,
		},
	})
}

type hostRow struct {
	Hostname string `json:"hostname"`
}

func hosts(ctx context.Context, client *api.Client, args []string) (any, error) {
	names, err := client.Hosts(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]hostRow, len(names))
	for i, n := range names {
		rows[i] = hostRow{Hostname: n}
	}
	return rows, nil
}

func status(ctx context.Context, client *api.Client, args []string) (any, error) {
	return client.Status(ctx)
}

func resolve(ctx context.Context, client *api.Client, args []string) (any, error) {
	resp, err := client.ResolveHost(ctx, args[0])
	if err != nil {
		return nil, err
	}
	return resp.Config, nil
}

func interfaces(ctx context.Context, client *api.Client, args []string) (any, error) {
	resp, err := client.Interfaces(ctx, args[0])
	if err != nil {
		return nil, err
	}
	return resp.Interfaces, nil
}
