package context

import (
	"sync"
	"time"
)

// HistoryMax bounds the rolling command history.
const HistoryMax = 20

// LastFailure records the most recent failed or unrecognized command.
// It is overwritten on every failure and consumed by the diagnose command.
type LastFailure struct {
	Command string
	Error   string
}

// HistorySubcontext keeps the rolling raw-input history, the last-failure
// record, and the timestamped action log.
type HistorySubcontext struct {
	mu sync.RWMutex

	commands    []string // most-recent-last, includes unrecognized input
	lastFailure LastFailure
	actionLog   []string
}

// NewHistorySubcontext creates an empty history subcontext.
func NewHistorySubcontext() *HistorySubcontext {
	return &HistorySubcontext{}
}

// Append records one raw command segment, evicting the oldest entry once
// the bound is reached.
func (h *HistorySubcontext) Append(raw string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.commands = append(h.commands, raw)
	if len(h.commands) > HistoryMax {
		h.commands = h.commands[len(h.commands)-HistoryMax:]
	}
}

// Commands returns a copy of the history, most-recent-last.
func (h *HistorySubcontext) Commands() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]string, len(h.commands))
	copy(out, h.commands)
	return out
}

// SetLastFailure overwrites the last-failure record.
func (h *HistorySubcontext) SetLastFailure(command, errMsg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lastFailure = LastFailure{Command: command, Error: errMsg}
}

// GetLastFailure returns the last-failure record and whether one exists.
func (h *HistorySubcontext) GetLastFailure() (LastFailure, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.lastFailure, h.lastFailure.Command != ""
}

// LogAction appends a timestamped entry to the session action log.
func (h *HistorySubcontext) LogAction(entry string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	ts := time.Now().Format("2006-01-02 15:04:05")
	h.actionLog = append(h.actionLog, "["+ts+"] "+entry)
}

// ActionLog returns a copy of the action log, oldest first.
func (h *HistorySubcontext) ActionLog() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]string, len(h.actionLog))
	copy(out, h.actionLog)
	return out
}
