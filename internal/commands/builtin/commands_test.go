package builtin

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cmcshell/internal/commands"
	"cmcshell/internal/services"
	"cmcshell/pkg/cmctypes"
)

func TestCdAndBack(t *testing.T) {
	ctx := setupBuiltin(t)
	start := ctx.Cwd()
	sub := filepath.Join(start, "deeper")
	require.NoError(t, os.Mkdir(sub, 0755))

	require.NoError(t, dispatch(t, "cd 'deeper'"))
	assert.Equal(t, sub, ctx.Cwd())

	require.NoError(t, dispatch(t, "cd .."))
	assert.Equal(t, start, ctx.Cwd())

	require.NoError(t, dispatch(t, "back"))
	assert.Equal(t, sub, ctx.Cwd())
}

func TestCdRejectsMissingAndFiles(t *testing.T) {
	ctx := setupBuiltin(t)
	file := filepath.Join(ctx.Cwd(), "plain.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	assert.ErrorIs(t, dispatch(t, "cd 'nowhere'"), cmctypes.ErrNotFound)
	assert.ErrorIs(t, dispatch(t, "cd 'plain.txt'"), cmctypes.ErrValidation)
}

func TestFlagToggleIsPersistedAndUndoable(t *testing.T) {
	ctx := setupBuiltin(t)
	ctx.Flags().SetBatch(false)

	require.NoError(t, dispatch(t, "dry-run on"))
	assert.True(t, ctx.Flags().DryRun())

	data, err := os.ReadFile(filepath.Join(services.ConfigDir(), "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "dry_run: true")

	require.NoError(t, dispatch(t, "undo"))
	assert.False(t, ctx.Flags().DryRun())
}

func TestSSLToggleReachesFlags(t *testing.T) {
	ctx := setupBuiltin(t)
	require.True(t, ctx.Flags().SSLVerify())

	require.NoError(t, dispatch(t, "ssl off"))
	assert.False(t, ctx.Flags().SSLVerify())

	require.NoError(t, dispatch(t, "ssl on"))
	assert.True(t, ctx.Flags().SSLVerify())
}

func TestConfigSetGetAndUndo(t *testing.T) {
	ctx := setupBuiltin(t)

	require.NoError(t, dispatch(t, "config set editor vim"))
	cfg, err := services.GetGlobalConfigService()
	require.NoError(t, err)
	value, ok := cfg.Get("editor")
	require.True(t, ok)
	assert.Equal(t, "vim", value)

	require.NoError(t, dispatch(t, "undo"))
	_, ok = cfg.Get("editor")
	assert.False(t, ok)
	assert.Equal(t, 0, ctx.Undo().Depth())
}

func TestConfigGetUnknownKey(t *testing.T) {
	setupBuiltin(t)
	assert.ErrorIs(t, dispatch(t, "config get nonsense"), cmctypes.ErrNotFound)
}

func TestAliasCommandsRoundTrip(t *testing.T) {
	setupBuiltin(t)

	require.NoError(t, dispatch(t, "alias add ll = list"))
	aliases, err := services.GetGlobalAliasService()
	require.NoError(t, err)
	body, ok := aliases.Resolve("ll")
	require.True(t, ok)
	assert.Equal(t, "list", body)

	require.NoError(t, dispatch(t, "alias delete ll"))
	_, ok = aliases.Resolve("ll")
	assert.False(t, ok)

	assert.ErrorIs(t, dispatch(t, "alias delete ll"), cmctypes.ErrNotFound)
}

func TestMacroAddSplitsSteps(t *testing.T) {
	setupBuiltin(t)

	require.NoError(t, dispatch(t, "macro add tour = pwd, list, echo done"))
	macros, err := services.GetGlobalMacroService()
	require.NoError(t, err)
	steps, ok := macros.Get("tour")
	require.True(t, ok)
	assert.Equal(t, []string{"pwd", "list", "echo done"}, steps)
}

func TestMacroAddKeepsQuotedCommas(t *testing.T) {
	setupBuiltin(t)

	require.NoError(t, dispatch(t, "macro add odd = write 'a,b.txt' hello, pwd"))
	macros, err := services.GetGlobalMacroService()
	require.NoError(t, err)
	steps, _ := macros.Get("odd")
	assert.Equal(t, []string{"write 'a,b.txt' hello", "pwd"}, steps)
}

func TestTimerValidation(t *testing.T) {
	setupBuiltin(t)
	assert.ErrorIs(t, dispatch(t, "timer 0 echo late"), cmctypes.ErrValidation)
}

func TestTimerScheduleAndCancel(t *testing.T) {
	setupBuiltin(t)
	workers, err := services.GetGlobalWorkerService()
	require.NoError(t, err)

	require.NoError(t, dispatch(t, "timer 3600 echo later"))
	pending := workers.Pending()
	require.Len(t, pending, 1)

	require.NoError(t, dispatch(t, "timer cancel "+pending[0]))
	events := workers.Wait()
	assert.Empty(t, events)
}

func TestExitShutdownCancelsPendingTimers(t *testing.T) {
	setupBuiltin(t)
	workers, err := services.GetGlobalWorkerService()
	require.NoError(t, err)

	require.NoError(t, dispatch(t, "timer 3600 echo never"))
	require.NoError(t, dispatch(t, "timer 7200 echo also never"))
	require.Len(t, workers.Pending(), 2)

	(&ExitCommand{}).shutdown()

	assert.Empty(t, workers.Wait(), "cancelled timers post no events")
	assert.Empty(t, workers.Pending())
}

func TestSimulatedCreateLeavesNoTrace(t *testing.T) {
	ctx := setupBuiltin(t)
	ctx.Flags().SetBatch(false)
	ctx.Flags().SetDryRun(true)

	require.NoError(t, dispatch(t, "create file 'ghost.txt' in '"+ctx.Cwd()+"'"))
	assert.NoFileExists(t, filepath.Join(ctx.Cwd(), "ghost.txt"))
	assert.Equal(t, 0, ctx.Undo().Depth())
}

func TestReadHead(t *testing.T) {
	ctx := setupBuiltin(t)
	path := filepath.Join(ctx.Cwd(), "long.txt")
	require.NoError(t, os.WriteFile(path, []byte("1\n2\n3\n4\n"), 0644))

	require.NoError(t, dispatch(t, "read 'long.txt' head=2"))
	assert.ErrorIs(t, dispatch(t, "read 'long.txt' head=0"), cmctypes.ErrValidation)
	assert.ErrorIs(t, dispatch(t, "read 'missing.txt'"), cmctypes.ErrNotFound)
}

func TestUnknownSettingUndoKeepsDepth(t *testing.T) {
	ctx := setupBuiltin(t)
	// A record kind outside the closed set cannot be inverted; the
	// record survives for inspection instead of vanishing.
	ctx.Undo().Push(cmctypes.UndoRecord{Kind: cmctypes.UndoKind("mystery")})

	err := dispatch(t, "undo")
	require.Error(t, err)
	assert.Equal(t, 1, ctx.Undo().Depth())
}

// Guard: every registered command has a name, usage, and at least one
// route. Registration itself enforces most of this, so the loop mainly
// documents the contract.
func TestRegisteredCommandSurface(t *testing.T) {
	setupBuiltin(t)
	for _, cmd := range commands.GetGlobalRouter().All() {
		assert.NotEmpty(t, cmd.Name())
		assert.NotEmpty(t, cmd.Usage())
		assert.NotEmpty(t, cmd.Routes(), "command %s has no routes", cmd.Name())
	}
}
