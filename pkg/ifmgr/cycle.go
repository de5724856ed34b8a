package ifmgr

import (
	"fmt"
	"slices"
	"strings"
)

type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("interface dependency cycle: %s", strings.Join(e.Path, " -> "))
}

const (
	unvisited = iota
	visiting
	done
)

func (idx *Index) checkAcyclic() error {
	state := make(map[string]int, len(idx.Interfaces))

	names := make([]string, 0, len(idx.Interfaces))
	for name := range idx.Interfaces {
		names = append(names, name)
	}
	slices.Sort(names)

	var stack []string
	var visit func(name string) error
	visit = func(name string) error {
		switch state[name] {
		case done:
			return nil
		case visiting:
			start := slices.Index(stack, name)
			path := append(slices.Clone(stack[start:]), name)
			return &CycleError{Path: path}
		}

		state[name] = visiting
		stack = append(stack, name)
		for _, lower := range idx.Interfaces[name].Uses {
			if err := visit(lower); err != nil {
				return err
			}
		}
		stack = stack[:len(stack)-1]
		state[name] = done
		return nil
	}

	for _, name := range names {
		if err := visit(name); err != nil {
			return err
		}
	}
	return nil
}
