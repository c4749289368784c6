// Package clicontext holds global CLI state set by flags that apply to every command.
package clicontext

import "sync"

// Global holds the global CLI context.
type Global struct {
	// Debug forces debug-level logging regardless of configuration.
	Debug bool
}

var (
	globalContext = &Global{}
	mu            sync.RWMutex
)

// Set replaces the global CLI context.
func Set(ctx *Global) {
	mu.Lock()
	defer mu.Unlock()
	globalContext = ctx
}

// Get returns a copy of the current global CLI context.
func Get() Global {
	mu.RLock()
	defer mu.RUnlock()
	return *globalContext
}

// Debug reports whether debug logging was requested.
func Debug() bool {
	mu.RLock()
	defer mu.RUnlock()
	return globalContext.Debug
}

// SetDebug sets the debug flag.
func SetDebug(value bool) {
	mu.Lock()
	defer mu.Unlock()
	globalContext.Debug = value
}
