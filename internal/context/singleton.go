package context

import "sync"

// globalContext holds the singleton instance of the session context.
var globalContext *CMCContext

// globalContextMu protects access to the global context instance.
var globalContextMu sync.RWMutex

// GetGlobalContext returns the session context singleton, creating it on
// first use.
func GetGlobalContext() *CMCContext {
	globalContextMu.Lock()
	defer globalContextMu.Unlock()
	if globalContext == nil {
		globalContext = New()
	}
	return globalContext
}

// SetGlobalContext replaces the session context instance. Used by tests
// to install a fresh context.
func SetGlobalContext(ctx *CMCContext) {
	globalContextMu.Lock()
	defer globalContextMu.Unlock()
	globalContext = ctx
}

// ResetGlobalContext clears the singleton so the next GetGlobalContext
// call builds a clean state. Primarily for tests.
func ResetGlobalContext() {
	globalContextMu.Lock()
	defer globalContextMu.Unlock()
	globalContext = nil
}
