package main

import (
	"github.com/chzyer/readline"
)

const prompt = "hostnet> "

func (c *CLI) buildCompleter() readline.AutoCompleter {
	return &treeCompleter{tree: c.tree}
}

type treeCompleter struct {
	tree *CommandTree
}

func (tc *treeCompleter) Do(line []rune, pos int) (newLine [][]rune, length int) {
	input := string(line[:pos])
	completions := tc.tree.GetCompletions(input)
	if len(completions) == 0 {
		return nil, 0
	}

	start := 0
	for i := pos - 1; i >= 0; i-- {
		if line[i] == ' ' {
			start = i + 1
			break
		}
	}
	partial := string(line[start:pos])

	result := make([][]rune, len(completions))
	for i, c := range completions {
		if len(c) >= len(partial) {
			result[i] = []rune(c[len(partial):])
		} else {
			result[i] = []rune(c)
		}
	}

	return result, len(partial)
}

func filterInput(r rune) (rune, bool) {
	switch r {
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}
