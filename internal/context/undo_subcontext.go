package context

import (
	"sync"

	"cmcshell/pkg/cmctypes"
)

// UndoMax bounds the undo history depth. Pushing past the bound evicts
// the oldest record.
const UndoMax = 30

// UndoSubcontext is the bounded LIFO history of reversible operation
// records. It lives in memory only: cleared on session end, never
// persisted. Records are exclusively owned here: popped records are
// consumed, and re-pushed only when their inverse fails.
type UndoSubcontext struct {
	mu      sync.Mutex
	records []cmctypes.UndoRecord
}

// NewUndoSubcontext creates an empty undo stack.
func NewUndoSubcontext() *UndoSubcontext {
	return &UndoSubcontext{}
}

// Push appends a record, dropping the oldest when at capacity.
func (u *UndoSubcontext) Push(record cmctypes.UndoRecord) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.records = append(u.records, record)
	if len(u.records) > UndoMax {
		u.records = u.records[1:]
	}
}

// Pop removes and returns the most recent record.
func (u *UndoSubcontext) Pop() (cmctypes.UndoRecord, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if len(u.records) == 0 {
		return cmctypes.UndoRecord{}, false
	}
	last := len(u.records) - 1
	record := u.records[last]
	u.records = u.records[:last]
	return record, true
}

// Depth returns the number of stacked records.
func (u *UndoSubcontext) Depth() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.records)
}
