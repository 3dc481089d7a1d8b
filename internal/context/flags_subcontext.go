package context

import "sync"

// FlagsSubcontext holds the session safety flags. They are set from
// persisted defaults at startup, mutated by the toggle commands, and read
// by every handler that performs a side effect.
type FlagsSubcontext struct {
	mu sync.RWMutex

	batch     bool // confirm-bypass: the confirmation gate auto-proceeds
	dryRun    bool // simulate-only: gated handlers preview instead of acting
	sslVerify bool // transport-verify: TLS certificate verification
}

// NewFlagsSubcontext creates the flags subcontext with transport
// verification on, matching the persisted default.
func NewFlagsSubcontext() *FlagsSubcontext {
	return &FlagsSubcontext{sslVerify: true}
}

// Batch reports whether confirm-bypass is active.
func (f *FlagsSubcontext) Batch() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.batch
}

// SetBatch toggles confirm-bypass.
func (f *FlagsSubcontext) SetBatch(on bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batch = on
}

// DryRun reports whether simulate-only is active.
func (f *FlagsSubcontext) DryRun() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.dryRun
}

// SetDryRun toggles simulate-only.
func (f *FlagsSubcontext) SetDryRun(on bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dryRun = on
}

// SSLVerify reports whether transport verification is active.
func (f *FlagsSubcontext) SSLVerify() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.sslVerify
}

// SetSSLVerify toggles transport verification.
func (f *FlagsSubcontext) SetSSLVerify(on bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sslVerify = on
}

// Snapshot returns the three flags at once for the status panel.
func (f *FlagsSubcontext) Snapshot() (batch, dryRun, sslVerify bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.batch, f.dryRun, f.sslVerify
}
