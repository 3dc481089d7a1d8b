package builtin

import (
	"errors"
	"strings"

	"cmcshell/internal/commands"
	"cmcshell/internal/output"
	"cmcshell/internal/services"
	"cmcshell/pkg/cmctypes"
)

// AliasAddCommand defines or overwrites an alias. An alias resolving to
// a built-in keyword shadows that built-in; the command warns but does
// not refuse.
type AliasAddCommand struct{}

func (c *AliasAddCommand) Name() string        { return "alias add" }
func (c *AliasAddCommand) Description() string { return "Define an alias" }
func (c *AliasAddCommand) Usage() string       { return "alias add <name> [=] <command>" }

func (c *AliasAddCommand) UsesConfirmGate() bool { return false }

func (c *AliasAddCommand) Routes() []cmctypes.RouteSpec {
	return []cmctypes.RouteSpec{
		cmctypes.Pattern(`^alias\s+add\s+([^\s=]+)\s+(?:=\s+)?(.+)$`),
	}
}

func (c *AliasAddCommand) Execute(args []string, line string) error {
	name, body := args[0], strings.TrimSpace(args[1])

	aliases, err := services.GetGlobalAliasService()
	if err != nil {
		return err
	}
	if err := aliases.Add(name, body); err != nil {
		return err
	}
	logAction("alias add %s = %s", name, body)
	output.Println(output.Success("Alias " + name + " → " + body))
	if commands.GetGlobalRouter().HasKeyword(name) {
		output.Println(output.Warn("Note: " + name + " shadows a built-in command until the alias is deleted."))
	}
	return nil
}

// AliasDeleteCommand removes an alias.
type AliasDeleteCommand struct{}

func (c *AliasDeleteCommand) Name() string        { return "alias delete" }
func (c *AliasDeleteCommand) Description() string { return "Remove an alias" }
func (c *AliasDeleteCommand) Usage() string       { return "alias delete <name>" }

func (c *AliasDeleteCommand) UsesConfirmGate() bool { return false }

func (c *AliasDeleteCommand) Routes() []cmctypes.RouteSpec {
	return []cmctypes.RouteSpec{
		cmctypes.Pattern(`^alias\s+(?:delete|remove)\s+(\S+)$`),
	}
}

func (c *AliasDeleteCommand) Execute(args []string, line string) error {
	aliases, err := services.GetGlobalAliasService()
	if err != nil {
		return err
	}
	if err := aliases.Delete(args[0]); err != nil {
		if errors.Is(err, cmctypes.ErrNotFound) {
			return cmctypes.NotFoundErrorf("no alias named %s", args[0])
		}
		return err
	}
	logAction("alias delete %s", args[0])
	output.Println(output.Success("Deleted alias " + args[0]))
	return nil
}

// AliasListCommand prints the alias table in insertion order.
type AliasListCommand struct{}

func (c *AliasListCommand) Name() string        { return "alias list" }
func (c *AliasListCommand) Description() string { return "List aliases" }
func (c *AliasListCommand) Usage() string       { return "alias list" }

func (c *AliasListCommand) UsesConfirmGate() bool { return false }

func (c *AliasListCommand) Routes() []cmctypes.RouteSpec {
	return []cmctypes.RouteSpec{
		cmctypes.Literal("alias list"),
		cmctypes.Literal("alias"),
	}
}

func (c *AliasListCommand) Execute(args []string, line string) error {
	aliases, err := services.GetGlobalAliasService()
	if err != nil {
		return err
	}
	entries := aliases.List()
	if len(entries) == 0 {
		output.Println(output.Dim("No aliases defined."))
		return nil
	}
	for _, e := range entries {
		output.Printf("  %s %s %s\n", output.Accent(e.Name), output.Dim("→"), e.Body)
	}
	return nil
}

func init() {
	mustRegister(&AliasAddCommand{})
	mustRegister(&AliasDeleteCommand{})
	mustRegister(&AliasListCommand{})
}
