package context

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistorySubcontext_AppendAndBound(t *testing.T) {
	h := NewHistorySubcontext()

	for i := 0; i < HistoryMax+7; i++ {
		h.Append(fmt.Sprintf("echo %d", i))
	}

	cmds := h.Commands()
	require.Len(t, cmds, HistoryMax)
	assert.Equal(t, "echo 7", cmds[0], "oldest surviving entry")
	assert.Equal(t, fmt.Sprintf("echo %d", HistoryMax+6), cmds[len(cmds)-1], "most recent last")
}

func TestHistorySubcontext_LastFailure(t *testing.T) {
	h := NewHistorySubcontext()

	_, ok := h.GetLastFailure()
	assert.False(t, ok, "no failure recorded yet")

	h.SetLastFailure("frobnicate", "Unknown command")
	failure, ok := h.GetLastFailure()
	require.True(t, ok)
	assert.Equal(t, "frobnicate", failure.Command)
	assert.Equal(t, "Unknown command", failure.Error)

	// A later failure overwrites the earlier one.
	h.SetLastFailure("delete '/nope'", "no such path: /nope")
	failure, _ = h.GetLastFailure()
	assert.Equal(t, "delete '/nope'", failure.Command)
}

func TestHistorySubcontext_ActionLog(t *testing.T) {
	h := NewHistorySubcontext()
	assert.Empty(t, h.ActionLog())

	h.LogAction("create file /tmp/a.txt")
	h.LogAction("delete /tmp/a.txt")

	entries := h.ActionLog()
	require.Len(t, entries, 2)
	assert.Contains(t, entries[0], "create file /tmp/a.txt")
	assert.Contains(t, entries[1], "delete /tmp/a.txt")
}
