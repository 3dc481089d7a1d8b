package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cmcshell/internal/context"
	"cmcshell/pkg/cmctypes"
)

func TestAliasAddResolveDelete(t *testing.T) {
	setupServices(t)
	aliases, err := GetGlobalAliasService()
	require.NoError(t, err)

	require.NoError(t, aliases.Add("ll", "list"))

	body, ok := aliases.Resolve("ll")
	require.True(t, ok)
	assert.Equal(t, "list", body)

	// Names are case-insensitive.
	body, ok = aliases.Resolve("LL")
	require.True(t, ok)
	assert.Equal(t, "list", body)

	require.NoError(t, aliases.Delete("ll"))
	_, ok = aliases.Resolve("ll")
	assert.False(t, ok)
}

func TestAliasDeleteUnknown(t *testing.T) {
	setupServices(t)
	aliases, err := GetGlobalAliasService()
	require.NoError(t, err)

	err = aliases.Delete("ghost")
	assert.ErrorIs(t, err, cmctypes.ErrNotFound)
}

func TestAliasAddValidation(t *testing.T) {
	setupServices(t)
	aliases, err := GetGlobalAliasService()
	require.NoError(t, err)

	tests := []struct {
		name  string
		alias string
		body  string
	}{
		{"empty name", "", "list"},
		{"empty body", "ll", ""},
		{"chained body", "both", "list, pwd"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, aliases.Add(tt.alias, tt.body), cmctypes.ErrValidation)
		})
	}

	// A comma inside quotes is part of the command, not a separator.
	assert.NoError(t, aliases.Add("wq", "write 'a,b.txt' hello"))
}

func TestAliasOverwriteRecordsPriorBody(t *testing.T) {
	setupServices(t)
	aliases, err := GetGlobalAliasService()
	require.NoError(t, err)

	require.NoError(t, aliases.Add("g", "list"))
	require.NoError(t, aliases.Add("g", "pwd"))

	body, _ := aliases.Resolve("g")
	assert.Equal(t, "pwd", body)

	record, ok := context.GetGlobalContext().Undo().Pop()
	require.True(t, ok)
	assert.Equal(t, cmctypes.UndoAliasAdd, record.Kind)
	assert.True(t, record.HadOld)
	assert.Equal(t, "list", record.OldBody)
}

func TestAliasListKeepsInsertionOrder(t *testing.T) {
	setupServices(t)
	aliases, err := GetGlobalAliasService()
	require.NoError(t, err)

	require.NoError(t, aliases.Add("zz", "pwd"))
	require.NoError(t, aliases.Add("aa", "list"))
	require.NoError(t, aliases.Add("mm", "status"))

	entries := aliases.List()
	require.Len(t, entries, 3)
	assert.Equal(t, []string{"zz", "aa", "mm"},
		[]string{entries[0].Name, entries[1].Name, entries[2].Name})
}

func TestAliasPersistence(t *testing.T) {
	setupServices(t)
	aliases, err := GetGlobalAliasService()
	require.NoError(t, err)
	require.NoError(t, aliases.Add("ll", "list"))

	// A fresh service instance reads the persisted table back.
	reloaded := NewAliasService()
	require.NoError(t, reloaded.Initialize())
	body, ok := reloaded.Resolve("ll")
	require.True(t, ok)
	assert.Equal(t, "list", body)
}
