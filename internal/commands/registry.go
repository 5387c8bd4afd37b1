package commands

import (
	"cmp"
	"fmt"
	"slices"
	"sync"
)

// Registry resolves command words (names and aliases) to commands.
type Registry struct {
	mu     sync.RWMutex
	byWord map[string]Command
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byWord: make(map[string]Command)}
}

// Register adds c under its name and aliases. No word may be taken twice.
func (r *Registry) Register(c Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	words := append([]string{c.Name()}, c.Aliases()...)
	for i, word := range words {
		if _, taken := r.byWord[word]; taken {
			if i == 0 {
				return fmt.Errorf("command already registered: %s", word)
			}
			return fmt.Errorf("command alias already registered: %s", word)
		}
	}
	for _, word := range words {
		r.byWord[word] = c
	}
	return nil
}

// Find returns the command for a name or alias.
func (r *Registry) Find(word string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.byWord[word]
	return cmd, ok
}

// All returns each command once, ordered by name, for the help listing.
func (r *Registry) All() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byName := make(map[string]Command)
	for _, cmd := range r.byWord {
		byName[cmd.Name()] = cmd
	}

	cmds := make([]Command, 0, len(byName))
	for _, cmd := range byName {
		cmds = append(cmds, cmd)
	}
	slices.SortFunc(cmds, func(a, b Command) int {
		return cmp.Compare(a.Name(), b.Name())
	})
	return cmds
}

// DefaultRegistry holds every todo subcommand; cmd/todo dispatches through it.
var DefaultRegistry = NewRegistry()

// Register adds c to DefaultRegistry and panics on a clash, which can only
// happen when two init functions claim the same word.
func Register(c Command) {
	if err := DefaultRegistry.Register(c); err != nil {
		panic(err)
	}
}
