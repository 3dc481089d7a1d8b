package builtin

import (
	"strings"

	"cmcshell/internal/output"
	"cmcshell/internal/services"
	"cmcshell/pkg/cmctypes"
)

// FlagCommand toggles one of the session flags and persists the new
// default. Toggles push a config-change record so they are undoable.
type FlagCommand struct {
	name    string
	apply   func(on bool)
	onNote  string
	offNote string
}

func (c *FlagCommand) Name() string        { return c.name }
func (c *FlagCommand) Description() string { return "Toggle the " + c.name + " flag" }
func (c *FlagCommand) Usage() string       { return c.name + " on|off" }

func (c *FlagCommand) UsesConfirmGate() bool { return false }

func (c *FlagCommand) Routes() []cmctypes.RouteSpec {
	return []cmctypes.RouteSpec{
		cmctypes.Pattern(`^` + c.name + `\s+(on|off)$`),
	}
}

func (c *FlagCommand) Execute(args []string, line string) error {
	on := strings.EqualFold(args[0], "on")

	cfg, err := services.GetGlobalConfigService()
	if err != nil {
		return err
	}
	snapshot := cfg.Snapshot()

	c.apply(on)
	if err := cfg.PersistFlags(); err != nil {
		return err
	}
	sessionCtx().Undo().Push(cmctypes.UndoRecord{
		Kind:      cmctypes.UndoConfigChange,
		OldConfig: snapshot,
	})
	logAction("%s %s", c.name, onOff(on))

	output.Println(output.Success(c.name + " is now " + onOff(on)))
	if on && c.onNote != "" {
		output.Println(output.Warn(c.onNote))
	}
	if !on && c.offNote != "" {
		output.Println(output.Warn(c.offNote))
	}
	return nil
}

func init() {
	mustRegister(&FlagCommand{
		name:   "batch",
		apply:  func(on bool) { sessionCtx().Flags().SetBatch(on) },
		onNote: "Confirmations are auto-approved until batch off.",
	})
	mustRegister(&FlagCommand{
		name:   "dry-run",
		apply:  func(on bool) { sessionCtx().Flags().SetDryRun(on) },
		onNote: "Gated commands now report instead of acting.",
	})
	mustRegister(&FlagCommand{
		name:    "ssl",
		apply:   func(on bool) { sessionCtx().Flags().SetSSLVerify(on) },
		offNote: "Certificate verification is disabled for downloads.",
	})
}
