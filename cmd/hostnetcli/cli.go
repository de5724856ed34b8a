package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/chzyer/readline"

	"github.com/veesix-networks/hostnet/pkg/cli"
	"github.com/veesix-networks/hostnet/plugins/northbound/api"
)

type CLI struct {
	client      *api.Client
	out         io.Writer
	rl          *readline.Instance
	running     bool
	tree        *CommandTree
	currentLine string
}

func (c *CLI) Client() *api.Client {
	return c.client
}

func (c *CLI) Out() io.Writer {
	return c.out
}

func (c *CLI) FormatOutput(data any, format string) (string, error) {
	return NewGenericFormatter().Format(data, OutputFormat(format))
}

func NewCLI(client *api.Client, out io.Writer) *CLI {
	c := &CLI{
		client:  client,
		out:     out,
		running: true,
		tree:    NewCommandTree(out),
	}

	c.registerBuiltins()
	c.buildTreeFromRegistry()

	return c
}

func (c *CLI) Run() error {
	var err error
	c.rl, err = readline.NewEx(&readline.Config{
		Prompt:              prompt,
		HistoryFile:         os.ExpandEnv("$HOME/.hostnetcli_history"),
		AutoComplete:        c.buildCompleter(),
		InterruptPrompt:     "^C",
		EOFPrompt:           "exit",
		FuncFilterInputRune: c.filterInputWithHelp,
		Listener:            c,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize readline: %w", err)
	}
	defer c.rl.Close()

	c.printBanner()

	for c.running {
		line, err := c.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				if len(line) == 0 {
					break
				}
				continue
			} else if err == io.EOF {
				break
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if err := c.processCommand(line); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}

	return nil
}

func (c *CLI) Stop() {
	c.running = false
}

func (c *CLI) printBanner() {
	fmt.Fprintln(c.out, "hostnet interactive CLI")
	fmt.Fprintf(c.out, "Connected to: %s\n", c.client.BaseURL())
	fmt.Fprintln(c.out, "Type '?' or 'help' for available commands, 'exit' to quit")
	fmt.Fprintln(c.out)
}

func (c *CLI) OnChange(line []rune, pos int, key rune) (newLine []rune, newPos int, ok bool) {
	c.currentLine = string(line)
	return nil, 0, false
}

func (c *CLI) filterInputWithHelp(r rune) (rune, bool) {
	if r == '?' {
		fmt.Fprint(c.out, "?\n")
		c.showInlineHelp(c.currentLine)
		c.rl.Write([]byte(c.currentLine))
		return 0, false
	}
	return filterInput(r)
}

func (c *CLI) showInlineHelp(input string) {
	if input == "" || strings.HasSuffix(input, " ") {
		c.tree.ShowHelp(strings.TrimSpace(input))
		return
	}

	completions := c.tree.GetCompletions(input)
	if len(completions) == 0 {
		c.tree.ShowHelp(input)
		return
	}

	fmt.Fprintln(c.out)
	for _, comp := range completions {
		fmt.Fprintf(c.out, "  %s\n", comp)
	}
	fmt.Fprintln(c.out)
}

func (c *CLI) processCommand(line string) error {
	if line == "exit" || line == "quit" {
		c.running = false
		return nil
	}

	if strings.HasSuffix(line, "?") {
		c.showInlineHelp(strings.TrimSuffix(line, "?"))
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return c.tree.Execute(ctx, c, line)
}

func (c *CLI) buildTreeFromRegistry() {
	for _, root := range cli.GetAllRoots() {
		c.tree.AddRoot(root.Path, root.Description)
	}

	for _, cmd := range cli.GetAll() {
		c.tree.AddCommand(cmd.Path, cmd.Description, c.adaptHandler(cmd.Handler), c.convertArguments(cmd.Arguments)...)
	}
}

func (c *CLI) registerBuiltins() {
	c.tree.AddCommand([]string{"help"}, "Display available commands", func(ctx context.Context, shell *CLI, args []string) error {
		shell.tree.ShowHelp(strings.Join(args, " "))
		return nil
	})
	c.tree.AddCommand([]string{"clear", "screen"}, "Clear the screen", func(ctx context.Context, shell *CLI, args []string) error {
		fmt.Fprint(shell.out, "\033[H\033[2J")
		return nil
	})
	c.tree.AddCommand([]string{"exit"}, "Exit the CLI", func(ctx context.Context, shell *CLI, args []string) error {
		shell.Stop()
		return nil
	})
}

func (c *CLI) adaptHandler(h cli.CommandHandler) CommandHandler {
	return func(ctx context.Context, shell *CLI, args []string) error {
		return h(ctx, shell, args)
	}
}

func (c *CLI) convertArguments(cliArgs []*cli.Argument) []*Argument {
	args := make([]*Argument, len(cliArgs))
	for i, cliArg := range cliArgs {
		args[i] = &Argument{
			Name:        cliArg.Name,
			Description: cliArg.Description,
			Type:        ArgumentType(cliArg.Type),
			Values:      cliArg.Values,
		}
	}
	return args
}
