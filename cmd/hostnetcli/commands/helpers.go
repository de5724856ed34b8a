// Package commands holds what the registered shell commands share.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/veesix-networks/hostnet/pkg/cli"
	"github.com/veesix-networks/hostnet/plugins/northbound/api"
)

// Shell is the part of the running CLI that command handlers use.
type Shell interface {
	Client() *api.Client
	Out() io.Writer
	FormatOutput(data any, format string) (string, error)
}

func AsShell(c any) (Shell, error) {
	shell, ok := c.(Shell)
	if !ok {
		return nil, fmt.Errorf("invalid CLI context")
	}
	return shell, nil
}

// SplitFormat separates a trailing "| <format>" from the positional
// arguments.
func SplitFormat(args []string) ([]string, string) {
	for i := 0; i < len(args); i++ {
		if args[i] == "|" {
			if i+1 < len(args) {
				return args[:i], args[i+1]
			}
			return args[:i], "cli"
		}
	}
	return args, "cli"
}

func Print(shell Shell, data any, format string) error {
	output, err := shell.FormatOutput(data, format)
	if err != nil {
		return fmt.Errorf("format output: %w", err)
	}
	fmt.Fprint(shell.Out(), output)
	return nil
}

// ShowHandlerFunc adapts a fetch function into a command handler that
// prints whatever it returns in the requested format.
func ShowHandlerFunc(fetch func(ctx context.Context, client *api.Client, args []string) (any, error)) cli.CommandHandler {
	return func(ctx context.Context, c any, args []string) error {
		shell, err := AsShell(c)
		if err != nil {
			return err
		}

		args, format := SplitFormat(args)
		data, err := fetch(ctx, shell.Client(), args)
		if err != nil {
			return err
		}
		return Print(shell, data, format)
	}
}
