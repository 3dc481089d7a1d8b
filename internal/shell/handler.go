package shell

import (
	"strings"

	"github.com/abiosoft/ishell/v2"

	"cmcshell/internal/commands"
	"cmcshell/internal/commands/builtin"
	"cmcshell/internal/logger"
	"cmcshell/internal/services"
	"cmcshell/pkg/cmctypes"
)

// InitializeServices registers and initializes every service, compiles
// the command router, and installs the pipeline runner. Must run before
// the first input line.
func InitializeServices() error {
	registry := services.GetGlobalRegistry()

	all := []cmctypes.Service{
		services.NewConfigService(),
		services.NewAliasService(),
		services.NewMacroService(),
		services.NewConfirmService(),
		services.NewTrashService(),
		services.NewUndoService(),
		services.NewExecutorService(),
		services.NewWorkerService(),
	}
	for _, service := range all {
		if registry.HasService(service.Name()) {
			continue
		}
		if err := registry.RegisterService(service); err != nil {
			return err
		}
	}

	if err := registry.InitializeAll(); err != nil {
		return err
	}
	commands.GetGlobalRouter().Compile()
	if err := installRunner(); err != nil {
		return err
	}

	logger.Debug("Services initialized")
	return nil
}

// ProcessInput handles one raw line from the interactive shell: runs it
// through the pipeline, then drains any worker events that completed in
// the background.
func ProcessInput(c *ishell.Context) {
	if len(c.RawArgs) == 0 {
		return
	}
	rawInput := strings.TrimSpace(strings.Join(c.RawArgs, " "))
	if rawInput == "" {
		return
	}

	// Errors are already surfaced by the pipeline; nothing to add here.
	_ = RunLine(rawInput)

	DrainWorkerEvents()
}

// DrainWorkerEvents executes completed timer actions on the interpreter
// goroutine. Timer actions run with the confirmation gate forced open,
// matching batch semantics for unattended execution.
func DrainWorkerEvents() {
	workers, err := services.GetGlobalWorkerService()
	if err != nil {
		return
	}
	for _, event := range workers.Drain() {
		builtin.RunTimerEvent(event)
	}
}
