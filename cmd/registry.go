package cmd

import (
	"sync"

	"github.com/spf13/cobra"
)

var (
	registryMu     sync.Mutex
	registered     []*cobra.Command
	registryLocked bool
)

// Register adds a command. Call from init() in custom packages. Panics if registry is locked.
func Register(c *cobra.Command) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if registryLocked {
		panic("cmd/registry: locked (register only during init before Apply)")
	}
	registered = append(registered, c)
}

// Apply adds all registered commands to root. Locks the cmd registry (immutable after).
func Apply() {
	registryMu.Lock()
	defer registryMu.Unlock()
	if registryLocked {
		return
	}
	for _, c := range registered {
		rootCmd.AddCommand(c)
	}
	registryLocked = true
}
