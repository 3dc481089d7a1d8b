package builtin

import (
	"fmt"

	"cmcshell/internal/output"
	"cmcshell/internal/services"
	"cmcshell/pkg/cmctypes"
)

// ConfigListCommand prints every persisted setting.
type ConfigListCommand struct{}

func (c *ConfigListCommand) Name() string        { return "config list" }
func (c *ConfigListCommand) Description() string { return "List persisted settings" }
func (c *ConfigListCommand) Usage() string       { return "config list" }

func (c *ConfigListCommand) UsesConfirmGate() bool { return false }

func (c *ConfigListCommand) Routes() []cmctypes.RouteSpec {
	return []cmctypes.RouteSpec{
		cmctypes.Literal("config list"),
		cmctypes.Literal("config"),
	}
}

func (c *ConfigListCommand) Execute(args []string, line string) error {
	cfg, err := services.GetGlobalConfigService()
	if err != nil {
		return err
	}
	output.Println(output.PanelTitle("Config " + output.Dim("("+services.ConfigDir()+")")))
	for _, key := range cfg.Keys() {
		value, _ := cfg.Get(key)
		output.Printf("  %-12s %v\n", output.Accent(key), value)
	}
	return nil
}

// ConfigGetCommand prints one setting.
type ConfigGetCommand struct{}

func (c *ConfigGetCommand) Name() string        { return "config get" }
func (c *ConfigGetCommand) Description() string { return "Show one setting" }
func (c *ConfigGetCommand) Usage() string       { return "config get <key>" }

func (c *ConfigGetCommand) UsesConfirmGate() bool { return false }

func (c *ConfigGetCommand) Routes() []cmctypes.RouteSpec {
	return []cmctypes.RouteSpec{
		cmctypes.Pattern(`^config\s+get\s+(\S+)$`),
	}
}

func (c *ConfigGetCommand) Execute(args []string, line string) error {
	cfg, err := services.GetGlobalConfigService()
	if err != nil {
		return err
	}
	value, ok := cfg.Get(args[0])
	if !ok {
		return cmctypes.NotFoundErrorf("no setting named %s", args[0])
	}
	output.Printf("%s = %v\n", output.Accent(args[0]), value)
	return nil
}

// ConfigSetCommand stores a setting and pushes an undo record holding
// the prior state.
type ConfigSetCommand struct{}

func (c *ConfigSetCommand) Name() string        { return "config set" }
func (c *ConfigSetCommand) Description() string { return "Change a setting" }
func (c *ConfigSetCommand) Usage() string       { return "config set <key> <value>" }

func (c *ConfigSetCommand) UsesConfirmGate() bool { return false }

func (c *ConfigSetCommand) Routes() []cmctypes.RouteSpec {
	return []cmctypes.RouteSpec{
		cmctypes.Pattern(`^config\s+set\s+(\S+)\s+(.+)$`),
	}
}

func (c *ConfigSetCommand) Execute(args []string, line string) error {
	key, value := args[0], args[1]
	cfg, err := services.GetGlobalConfigService()
	if err != nil {
		return err
	}
	snapshot := cfg.Snapshot()
	if err := cfg.Set(key, value); err != nil {
		return err
	}
	sessionCtx().Undo().Push(cmctypes.UndoRecord{
		Kind:      cmctypes.UndoConfigChange,
		OldConfig: snapshot,
	})
	logAction("config set %s = %s", key, value)
	output.Println(output.Success(fmt.Sprintf("%s = %s", key, value)))
	return nil
}

// ConfigResetCommand restores the built-in defaults, dropping extension
// keys. Undoable like any other config change.
type ConfigResetCommand struct{}

func (c *ConfigResetCommand) Name() string        { return "config reset" }
func (c *ConfigResetCommand) Description() string { return "Restore default settings" }
func (c *ConfigResetCommand) Usage() string       { return "config reset" }

func (c *ConfigResetCommand) UsesConfirmGate() bool { return true }

func (c *ConfigResetCommand) Routes() []cmctypes.RouteSpec {
	return []cmctypes.RouteSpec{cmctypes.Literal("config reset")}
}

func (c *ConfigResetCommand) Execute(args []string, line string) error {
	cfg, err := services.GetGlobalConfigService()
	if err != nil {
		return err
	}
	confirm, err := services.GetGlobalConfirmService()
	if err != nil {
		return err
	}
	if !confirm.Confirm("Reset all settings to defaults?") {
		return cancelled("config reset")
	}
	snapshot := cfg.Snapshot()
	if err := cfg.Restore(services.ConfigDefaults()); err != nil {
		return err
	}
	sessionCtx().Undo().Push(cmctypes.UndoRecord{
		Kind:      cmctypes.UndoConfigChange,
		OldConfig: snapshot,
	})
	logAction("config reset")
	output.Println(output.Success("Settings restored to defaults"))
	return nil
}

func init() {
	mustRegister(&ConfigListCommand{})
	mustRegister(&ConfigGetCommand{})
	mustRegister(&ConfigSetCommand{})
	mustRegister(&ConfigResetCommand{})
}
