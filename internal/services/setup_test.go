package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"cmcshell/internal/context"
	"cmcshell/pkg/cmctypes"
)

// setupServices points the config directory at a throwaway location,
// resets the global context, and spins up a fresh registry with every
// service initialized. Each test gets fully isolated persistence.
func setupServices(t *testing.T) {
	t.Helper()
	t.Setenv("CMC_HOME", t.TempDir())
	context.ResetGlobalContext()
	context.GetGlobalContext().SetTestMode(true)

	registry := NewRegistry()
	SetGlobalRegistry(registry)
	all := []cmctypes.Service{
		NewConfigService(),
		NewAliasService(),
		NewMacroService(),
		NewConfirmService(),
		NewTrashService(),
		NewUndoService(),
		NewExecutorService(),
		NewWorkerService(),
	}
	for _, service := range all {
		require.NoError(t, registry.RegisterService(service))
	}
	require.NoError(t, registry.InitializeAll())
}
