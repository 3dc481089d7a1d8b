// Package builtin implements the built-in commands of CMC Shell. Each
// command registers its routes with the global router from init, the
// same way services register with the service registry.
package builtin

import (
	"fmt"
	"os"

	"cmcshell/internal/commands"
	"cmcshell/internal/context"
	"cmcshell/internal/output"
	"cmcshell/internal/services"
	"cmcshell/pkg/cmctypes"
)

// mustRegister wires a command into the global router at init time.
func mustRegister(cmd cmctypes.Command) {
	if err := commands.GetGlobalRouter().Register(cmd); err != nil {
		panic(fmt.Sprintf("failed to register %s command: %v", cmd.Name(), err))
	}
}

// sessionCtx returns the global session context.
func sessionCtx() *context.CMCContext {
	return context.GetGlobalContext()
}

// gate routes a destructive action through the shared confirmation gate
// and the simulate-only check. It returns proceed (the gate allowed the
// action) and simulated (report instead of mutating, push no undo
// record). Handlers that skip this helper are by definition not
// simulate-aware; that asymmetry is intentional.
func gate(desc string) (proceed bool, simulated bool) {
	confirm, err := services.GetGlobalConfirmService()
	if err != nil {
		return false, false
	}
	if !confirm.Confirm(desc) {
		return false, false
	}
	if sessionCtx().Flags().DryRun() {
		return true, true
	}
	return true, false
}

// cancelled builds the error for a declined confirmation.
func cancelled(action string) error {
	output.Println(output.Warn("Canceled."))
	return fmt.Errorf("%w: %s", cmctypes.ErrCancelled, action)
}

// simulate reports what a gated handler would have done.
func simulate(what string) {
	output.Println(output.Warn("DRY-RUN: ") + what)
}

// pick returns the first non-empty capture group. Argument patterns
// accept either a quoted or a bare form, so every slot arrives as a
// pair of alternates of which at most one is set.
func pick(args ...string) string {
	for _, a := range args {
		if a != "" {
			return a
		}
	}
	return ""
}

// pathExists reports whether a path exists at all.
func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// logAction appends to the session action log.
func logAction(format string, args ...any) {
	sessionCtx().History().LogAction(fmt.Sprintf(format, args...))
}
