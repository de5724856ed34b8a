package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

type CommandHandler func(ctx context.Context, cli *CLI, args []string) error

type ArgumentType int

const (
	ArgKeyword ArgumentType = iota
	ArgUserInput
	ArgKeywordWithValue
)

type Argument struct {
	Name        string
	Description string
	Type        ArgumentType
	Values      []string
}

type CommandNode struct {
	Name        string
	Description string
	Handler     CommandHandler
	Children    []*CommandNode
	Arguments   []*Argument
}

func (n *CommandNode) child(name string) *CommandNode {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

type CommandTree struct {
	root *CommandNode
	out  io.Writer
}

func NewCommandTree(out io.Writer) *CommandTree {
	return &CommandTree{
		root: &CommandNode{Name: "root"},
		out:  out,
	}
}

func (t *CommandTree) AddRoot(path []string, description string) {
	current := t.root
	for _, part := range path {
		next := current.child(part)
		if next == nil {
			next = &CommandNode{Name: part, Description: description}
			current.Children = append(current.Children, next)
		} else if next.Description == "" {
			next.Description = description
		}
		current = next
	}
}

func (t *CommandTree) AddCommand(path []string, description string, handler CommandHandler, args ...*Argument) {
	current := t.root
	for _, part := range path {
		next := current.child(part)
		if next == nil {
			next = &CommandNode{Name: part}
			current.Children = append(current.Children, next)
		}
		current = next
	}

	current.Description = description
	current.Handler = handler
	current.Arguments = args
}

// Execute walks the tree as far as the tokens match a command and hands the
// remaining tokens to the deepest handler found.
func (t *CommandTree) Execute(ctx context.Context, cli *CLI, input string) error {
	tokens := strings.Fields(input)
	if len(tokens) == 0 {
		return nil
	}

	current := t.root
	var cmdNode *CommandNode
	argStart := 0
	unmatched := false

	for i, token := range tokens {
		next := current.child(token)
		if next == nil {
			unmatched = true
			break
		}
		current = next
		if next.Handler != nil {
			cmdNode = next
			argStart = i + 1
		}
	}

	if cmdNode == nil {
		if unmatched {
			return errors.New("unrecognized command")
		}
		return errors.New("incomplete command")
	}

	args := tokens[argStart:]
	if err := validateArguments(cmdNode, args); err != nil {
		return err
	}
	return cmdNode.Handler(ctx, cli, args)
}

func validateArguments(cmd *CommandNode, args []string) error {
	var required []string
	for _, arg := range cmd.Arguments {
		if arg.Type == ArgUserInput {
			required = append(required, arg.Name)
		}
	}
	if len(required) == 0 {
		return nil
	}

	actual := 0
	for _, arg := range args {
		if arg == "|" {
			break
		}
		actual++
	}

	if actual < len(required) {
		if len(required) == 1 {
			return fmt.Errorf("%s required", required[0])
		}
		return fmt.Errorf("missing required arguments: %s", strings.Join(required, ", "))
	}
	return nil
}

func (t *CommandTree) GetCompletions(input string) []string {
	tokens := strings.Fields(input)
	endsWithSpace := len(input) > 0 && input[len(input)-1] == ' '

	current := t.root
	depth := 0

	for i, token := range tokens {
		if !endsWithSpace && i == len(tokens)-1 {
			break
		}
		next := current.child(token)
		if next == nil {
			if current.Handler != nil {
				break
			}
			return nil
		}
		current = next
		depth = i + 1
	}

	argTokens := tokens[depth:]
	if current.Handler != nil {
		argTokens = argTokens[min(positionalCount(current), len(argTokens)):]
	}
	var completions []string

	if !endsWithSpace && len(tokens) > 0 {
		prefix := tokens[len(tokens)-1]
		for _, child := range current.Children {
			if strings.HasPrefix(child.Name, prefix) {
				completions = append(completions, child.Name)
			}
		}
		if current.Handler != nil && len(argTokens)%2 == 1 {
			for _, name := range unusedKeywords(current, argTokens[:len(argTokens)-1]) {
				if strings.HasPrefix(name, prefix) {
					completions = append(completions, name)
				}
			}
		}
		return completions
	}

	for _, child := range current.Children {
		completions = append(completions, child.Name)
	}

	if current.Handler != nil && len(current.Arguments) > 0 {
		if len(argTokens)%2 == 1 {
			last := argTokens[len(argTokens)-1]
			for _, arg := range current.Arguments {
				if arg.Name != last {
					continue
				}
				if arg.Type == ArgKeyword && len(arg.Values) > 0 {
					return arg.Values
				}
				if arg.Type == ArgKeywordWithValue {
					return []string{}
				}
			}
		} else {
			completions = append(completions, unusedKeywords(current, argTokens)...)
		}
	}

	return completions
}

func positionalCount(node *CommandNode) int {
	n := 0
	for _, arg := range node.Arguments {
		if arg.Type == ArgUserInput {
			n++
		}
	}
	return n
}

func unusedKeywords(node *CommandNode, argTokens []string) []string {
	used := make(map[string]bool)
	for i := 0; i < len(argTokens); i += 2 {
		used[argTokens[i]] = true
	}

	var names []string
	for _, arg := range node.Arguments {
		if (arg.Type == ArgKeyword || arg.Type == ArgKeywordWithValue) && !used[arg.Name] {
			names = append(names, arg.Name)
		}
	}
	return names
}

func (t *CommandTree) ShowHelp(input string) {
	tokens := strings.Fields(input)
	current := t.root
	cmdDepth := 0

	for i, token := range tokens {
		next := current.child(token)
		if next == nil {
			break
		}
		current = next
		cmdDepth = i + 1
	}

	argTokens := tokens[cmdDepth:]

	if len(argTokens) > 0 && current.Handler != nil {
		last := argTokens[len(argTokens)-1]
		for _, arg := range current.Arguments {
			if arg.Name != last {
				continue
			}
			switch {
			case arg.Type == ArgKeyword && len(arg.Values) > 0:
				fmt.Fprintln(t.out)
				for _, val := range arg.Values {
					fmt.Fprintf(t.out, "  %s\n", val)
				}
				fmt.Fprintln(t.out)
				return
			case arg.Type == ArgUserInput:
				fmt.Fprintf(t.out, "\n  <%s>  %s\n\n", arg.Name, arg.Description)
				return
			case arg.Type == ArgKeywordWithValue:
				fmt.Fprintf(t.out, "\n  <value>  %s\n\n", arg.Description)
				return
			}
		}
	}

	if len(current.Children) > 0 {
		fmt.Fprintln(t.out)
		for _, child := range current.Children {
			if child.Description != "" {
				fmt.Fprintf(t.out, "  %-20s %s\n", child.Name, child.Description)
			} else {
				fmt.Fprintf(t.out, "  %s\n", child.Name)
			}
		}
		fmt.Fprintln(t.out)
		return
	}

	if current.Handler != nil && len(current.Arguments) > 0 {
		used := make(map[string]bool)
		for i := 0; i < len(argTokens); i += 2 {
			used[argTokens[i]] = true
		}

		fmt.Fprintln(t.out)
		for _, arg := range current.Arguments {
			if used[arg.Name] {
				continue
			}
			name := arg.Name
			if arg.Type == ArgUserInput {
				name = "<" + arg.Name + ">"
			}
			if arg.Description != "" {
				fmt.Fprintf(t.out, "  %-20s %s\n", name, arg.Description)
			} else {
				fmt.Fprintf(t.out, "  %s\n", name)
			}
		}
		fmt.Fprintln(t.out)
		return
	}

	fmt.Fprintln(t.out, "\n  <cr>")
}
