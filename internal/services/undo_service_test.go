package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cmcshell/internal/context"
	"cmcshell/pkg/cmctypes"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestUndoEmpty(t *testing.T) {
	setupServices(t)
	undo, err := GetGlobalUndoService()
	require.NoError(t, err)

	_, err = undo.UndoLast()
	assert.ErrorIs(t, err, cmctypes.ErrNotFound)
}

func TestUndoMove(t *testing.T) {
	setupServices(t)
	undo, err := GetGlobalUndoService()
	require.NoError(t, err)

	dir := t.TempDir()
	src := writeTempFile(t, dir, "a.txt", "hello")
	dst := filepath.Join(dir, "moved.txt")
	require.NoError(t, os.Rename(src, dst))
	context.GetGlobalContext().Undo().Push(cmctypes.UndoRecord{
		Kind: cmctypes.UndoMove, Src: dst, Dst: src,
	})

	_, err = undo.UndoLast()
	require.NoError(t, err)
	assert.FileExists(t, src)
	assert.NoFileExists(t, dst)
}

func TestUndoDeleteRestoresFromTrash(t *testing.T) {
	setupServices(t)
	undo, err := GetGlobalUndoService()
	require.NoError(t, err)
	trash, err := GetGlobalTrashService()
	require.NoError(t, err)

	dir := t.TempDir()
	path := writeTempFile(t, dir, "doomed.txt", "precious")
	trashed, err := trash.Discard(path)
	require.NoError(t, err)
	assert.NoFileExists(t, path)
	context.GetGlobalContext().Undo().Push(cmctypes.UndoRecord{
		Kind: cmctypes.UndoDelete, Original: path, Trash: trashed,
	})

	_, err = undo.UndoLast()
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "precious", string(data))
}

func TestUndoDeleteConflictRePushesRecord(t *testing.T) {
	setupServices(t)
	undo, err := GetGlobalUndoService()
	require.NoError(t, err)
	trash, err := GetGlobalTrashService()
	require.NoError(t, err)

	dir := t.TempDir()
	path := writeTempFile(t, dir, "doomed.txt", "old")
	trashed, err := trash.Discard(path)
	require.NoError(t, err)
	stack := context.GetGlobalContext().Undo()
	stack.Push(cmctypes.UndoRecord{
		Kind: cmctypes.UndoDelete, Original: path, Trash: trashed,
	})

	// Someone reoccupied the original path.
	writeTempFile(t, dir, "doomed.txt", "new tenant")

	_, err = undo.UndoLast()
	assert.ErrorIs(t, err, cmctypes.ErrConflict)
	assert.Equal(t, 1, stack.Depth(), "failed undo keeps the record for retry")

	// Clearing the conflict makes the retry succeed.
	require.NoError(t, os.Remove(path))
	_, err = undo.UndoLast()
	require.NoError(t, err)
	data, _ := os.ReadFile(path)
	assert.Equal(t, "old", string(data))
}

func TestUndoWrite(t *testing.T) {
	setupServices(t)
	undo, err := GetGlobalUndoService()
	require.NoError(t, err)

	dir := t.TempDir()
	path := writeTempFile(t, dir, "notes.txt", "v2")
	context.GetGlobalContext().Undo().Push(cmctypes.UndoRecord{
		Kind: cmctypes.UndoWrite, Path: path, Existed: true, OldContent: "v1",
	})

	_, err = undo.UndoLast()
	require.NoError(t, err)
	data, _ := os.ReadFile(path)
	assert.Equal(t, "v1", string(data))
}

func TestUndoWriteOfNewFileRemovesIt(t *testing.T) {
	setupServices(t)
	undo, err := GetGlobalUndoService()
	require.NoError(t, err)

	dir := t.TempDir()
	path := writeTempFile(t, dir, "fresh.txt", "content")
	context.GetGlobalContext().Undo().Push(cmctypes.UndoRecord{
		Kind: cmctypes.UndoWrite, Path: path, Existed: false,
	})

	_, err = undo.UndoLast()
	require.NoError(t, err)
	assert.NoFileExists(t, path)
}

func TestUndoCreateFileRefusesModified(t *testing.T) {
	setupServices(t)
	undo, err := GetGlobalUndoService()
	require.NoError(t, err)

	dir := t.TempDir()
	path := writeTempFile(t, dir, "made.txt", "original")
	stack := context.GetGlobalContext().Undo()
	stack.Push(cmctypes.UndoRecord{
		Kind: cmctypes.UndoCreateFile, Path: path, CreatedContent: "original",
	})
	require.NoError(t, os.WriteFile(path, []byte("edited since"), 0644))

	_, err = undo.UndoLast()
	assert.ErrorIs(t, err, cmctypes.ErrConflict)
	assert.FileExists(t, path)
	assert.Equal(t, 1, stack.Depth())
}

func TestUndoCreateFolderRequiresEmpty(t *testing.T) {
	setupServices(t)
	undo, err := GetGlobalUndoService()
	require.NoError(t, err)

	dir := t.TempDir()
	made := filepath.Join(dir, "newdir")
	require.NoError(t, os.Mkdir(made, 0755))
	stack := context.GetGlobalContext().Undo()
	stack.Push(cmctypes.UndoRecord{Kind: cmctypes.UndoCreateFolder, Path: made})
	writeTempFile(t, made, "unrelated.txt", "x")

	_, err = undo.UndoLast()
	assert.ErrorIs(t, err, cmctypes.ErrConflict)
	assert.DirExists(t, made)

	require.NoError(t, os.Remove(filepath.Join(made, "unrelated.txt")))
	_, err = undo.UndoLast()
	require.NoError(t, err)
	assert.NoDirExists(t, made)
}

func TestUndoAliasAndMacroMutations(t *testing.T) {
	setupServices(t)
	undo, err := GetGlobalUndoService()
	require.NoError(t, err)
	aliases, err := GetGlobalAliasService()
	require.NoError(t, err)
	macros, err := GetGlobalMacroService()
	require.NoError(t, err)

	require.NoError(t, aliases.Add("ll", "list"))
	_, err = undo.UndoLast()
	require.NoError(t, err)
	_, ok := aliases.Resolve("ll")
	assert.False(t, ok, "alias add undone")

	require.NoError(t, macros.Add("tour", []string{"pwd"}))
	require.NoError(t, macros.Delete("tour"))
	_, err = undo.UndoLast()
	require.NoError(t, err)
	assert.True(t, macros.Exists("tour"), "macro delete undone")
}

func TestUndoConfigChange(t *testing.T) {
	setupServices(t)
	undo, err := GetGlobalUndoService()
	require.NoError(t, err)
	cfg, err := GetGlobalConfigService()
	require.NoError(t, err)

	snapshot := cfg.Snapshot()
	require.NoError(t, cfg.Set("batch", "on"))
	context.GetGlobalContext().Undo().Push(cmctypes.UndoRecord{
		Kind: cmctypes.UndoConfigChange, OldConfig: snapshot,
	})

	_, err = undo.UndoLast()
	require.NoError(t, err)
	value, _ := cfg.Get("batch")
	assert.Equal(t, false, value)
	assert.False(t, context.GetGlobalContext().Flags().Batch())
}
