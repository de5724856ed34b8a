// Package cli holds the command registry for the interactive shell. Command
// packages register themselves from init and the shell builds its completion
// tree from whatever is registered.
package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// CommandHandler receives the running shell as an opaque value so command
// packages do not import the binary.
type CommandHandler func(ctx context.Context, shell any, args []string) error

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

type Command struct {
	Path        []string
	Description string
	Handler     CommandHandler
	Arguments   []*Argument
	Source      string
}

type RootCommand struct {
	Path        []string
	Description string
	Source      string
}

var (
	registry     = make(map[string]*Command)
	rootRegistry = make(map[string]*RootCommand)
	mu           sync.RWMutex
)

func Register(source string, cmd *Command) {
	mu.Lock()
	defer mu.Unlock()

	key := strings.Join(cmd.Path, " ")
	if existing, exists := registry[key]; exists {
		panic(fmt.Sprintf("duplicate command: %v (existing source: %s, new source: %s)",
			cmd.Path, existing.Source, source))
	}

	cmd.Source = source
	registry[key] = cmd
}

func RegisterRoot(source string, root *RootCommand) {
	mu.Lock()
	defer mu.Unlock()

	key := strings.Join(root.Path, " ")
	if existing, exists := rootRegistry[key]; exists {
		panic(fmt.Sprintf("duplicate root command: %v (existing source: %s, new source: %s)",
			root.Path, existing.Source, source))
	}

	root.Source = source
	rootRegistry[key] = root
}

// GetAll returns the registered commands ordered by path.
func GetAll() []*Command {
	mu.RLock()
	defer mu.RUnlock()

	keys := make([]string, 0, len(registry))
	for k := range registry {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	cmds := make([]*Command, 0, len(keys))
	for _, k := range keys {
		cmds = append(cmds, registry[k])
	}
	return cmds
}

func GetAllRoots() []*RootCommand {
	mu.RLock()
	defer mu.RUnlock()

	keys := make([]string, 0, len(rootRegistry))
	for k := range rootRegistry {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	roots := make([]*RootCommand, 0, len(keys))
	for _, k := range keys {
		roots = append(roots, rootRegistry[k])
	}
	return roots
}

func Get(path []string) (*Command, bool) {
	mu.RLock()
	defer mu.RUnlock()

	cmd, exists := registry[strings.Join(path, " ")]
	return cmd, exists
}
