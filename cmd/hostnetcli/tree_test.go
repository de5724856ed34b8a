package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTree(out *bytes.Buffer, calls *[]string) *CommandTree {
	record := func(name string) CommandHandler {
		return func(ctx context.Context, cli *CLI, args []string) error {
			*calls = append(*calls, name)
			*calls = append(*calls, args...)
			return nil
		}
	}

	tree := NewCommandTree(out)
	tree.AddRoot([]string{"show"}, "Display information")
	tree.AddCommand([]string{"show", "hosts"}, "Display inventory hosts", record("hosts"))
	tree.AddCommand([]string{"show", "resolve"}, "Display resources", record("resolve"),
		&Argument{Name: "host", Description: "Hostname", Type: ArgUserInput},
		&Argument{Name: "|", Type: ArgKeyword, Values: []string{"cli", "json", "yaml"}},
	)
	tree.AddCommand([]string{"help"}, "Display available commands", record("help"))
	return tree
}

func TestTreeExecute(t *testing.T) {
	var out bytes.Buffer
	var calls []string
	tree := testTree(&out, &calls)
	ctx := context.Background()

	require.NoError(t, tree.Execute(ctx, nil, "show resolve controller-0 | json"))
	assert.Equal(t, []string{"resolve", "controller-0", "|", "json"}, calls)

	calls = nil
	require.NoError(t, tree.Execute(ctx, nil, "show hosts"))
	assert.Equal(t, []string{"hosts"}, calls)

	assert.EqualError(t, tree.Execute(ctx, nil, "show resolve"), "host required")
	assert.EqualError(t, tree.Execute(ctx, nil, "show"), "incomplete command")
	assert.EqualError(t, tree.Execute(ctx, nil, "bogus"), "unrecognized command")
	assert.EqualError(t, tree.Execute(ctx, nil, "show bogus"), "unrecognized command")
	assert.NoError(t, tree.Execute(ctx, nil, "   "))
}

func TestTreeCompletions(t *testing.T) {
	var out bytes.Buffer
	var calls []string
	tree := testTree(&out, &calls)

	tests := []struct {
		input string
		want  []string
	}{
		{"", []string{"show", "help"}},
		{"sh", []string{"show"}},
		{"show ", []string{"hosts", "resolve"}},
		{"show re", []string{"resolve"}},
		{"show resolve controller-0 | ", []string{"cli", "json", "yaml"}},
		{"bogus ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, tree.GetCompletions(tt.input))
		})
	}
}

func TestTreeShowHelp(t *testing.T) {
	var out bytes.Buffer
	var calls []string
	tree := testTree(&out, &calls)

	tree.ShowHelp("show")
	assert.Contains(t, out.String(), "hosts")
	assert.Contains(t, out.String(), "Display inventory hosts")

	out.Reset()
	tree.ShowHelp("show resolve")
	assert.Contains(t, out.String(), "<host>")

	out.Reset()
	tree.ShowHelp("show hosts")
	assert.Equal(t, "\n  <cr>\n", out.String())
}
