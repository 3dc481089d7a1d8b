package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cmcshell/internal/context"
	"cmcshell/pkg/cmctypes"
)

func TestMacroAddGetDelete(t *testing.T) {
	setupServices(t)
	macros, err := GetGlobalMacroService()
	require.NoError(t, err)

	steps := []string{"pwd", "list"}
	require.NoError(t, macros.Add("tour", steps))

	got, ok := macros.Get("TOUR")
	require.True(t, ok, "macro names are case-insensitive")
	assert.Equal(t, steps, got)

	require.NoError(t, macros.Delete("tour"))
	assert.False(t, macros.Exists("tour"))

	assert.ErrorIs(t, macros.Delete("tour"), cmctypes.ErrNotFound)
}

func TestMacroOverwriteRecordsPriorSteps(t *testing.T) {
	setupServices(t)
	macros, err := GetGlobalMacroService()
	require.NoError(t, err)

	require.NoError(t, macros.Add("daily", []string{"pwd"}))
	require.NoError(t, macros.Add("daily", []string{"list", "status"}))

	got, _ := macros.Get("daily")
	assert.Equal(t, []string{"list", "status"}, got)

	record, ok := context.GetGlobalContext().Undo().Pop()
	require.True(t, ok)
	assert.Equal(t, cmctypes.UndoMacroAdd, record.Kind)
	assert.True(t, record.HadOld)
	assert.Equal(t, []string{"pwd"}, record.OldSteps)
}

func TestMacroClearSnapshotsStore(t *testing.T) {
	setupServices(t)
	macros, err := GetGlobalMacroService()
	require.NoError(t, err)

	require.NoError(t, macros.Add("a", []string{"pwd"}))
	require.NoError(t, macros.Add("b", []string{"list"}))
	require.NoError(t, macros.Clear())
	assert.Empty(t, macros.List())

	record, ok := context.GetGlobalContext().Undo().Pop()
	require.True(t, ok)
	assert.Equal(t, cmctypes.UndoMacroClear, record.Kind)
	assert.Len(t, record.Snapshot, 2)
	assert.Equal(t, []string{"pwd"}, record.Snapshot["a"])
}

func TestMacroPersistence(t *testing.T) {
	setupServices(t)
	macros, err := GetGlobalMacroService()
	require.NoError(t, err)
	require.NoError(t, macros.Add("tour", []string{"pwd", "list"}))

	reloaded := NewMacroService()
	require.NoError(t, reloaded.Initialize())
	got, ok := reloaded.Get("tour")
	require.True(t, ok)
	assert.Equal(t, []string{"pwd", "list"}, got)
}
