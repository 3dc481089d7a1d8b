package builtin

import (
	"fmt"
	"strings"

	"cmcshell/internal/output"
	"cmcshell/internal/parser"
	"cmcshell/internal/services"
	"cmcshell/pkg/cmctypes"
)

// MacroAddCommand records a named command sequence. The body is split
// into steps once, at definition time; the comma splitter refuses to
// break a macro add line apart, so the full body arrives here.
type MacroAddCommand struct{}

func (c *MacroAddCommand) Name() string        { return "macro add" }
func (c *MacroAddCommand) Description() string { return "Define a macro" }
func (c *MacroAddCommand) Usage() string       { return "macro add <name> = <body>" }

func (c *MacroAddCommand) UsesConfirmGate() bool { return true }

func (c *MacroAddCommand) Routes() []cmctypes.RouteSpec {
	return []cmctypes.RouteSpec{
		cmctypes.Pattern(`^macro\s+add\s+([^\s=]+)\s*=\s*(.+)$`),
	}
}

func (c *MacroAddCommand) Execute(args []string, line string) error {
	name, body := args[0], strings.TrimSpace(args[1])

	segments, err := parser.SplitLine(body)
	if err != nil {
		return err
	}
	if len(segments) == 0 {
		return cmctypes.ValidationErrorf("macro body is empty")
	}
	steps := make([]string, len(segments))
	for i, seg := range segments {
		steps[i] = seg.Text
	}

	macros, err := services.GetGlobalMacroService()
	if err != nil {
		return err
	}
	if macros.Exists(name) {
		confirm, err := services.GetGlobalConfirmService()
		if err != nil {
			return err
		}
		if !confirm.Confirm("Macro " + name + " exists. Overwrite?") {
			return cancelled("macro add " + name)
		}
	}
	if err := macros.Add(name, steps); err != nil {
		return err
	}
	logAction("macro add %s (%d steps)", name, len(steps))
	output.Println(output.Success(fmt.Sprintf("Macro %s saved with %d step(s)", name, len(steps))))
	return nil
}

// MacroRunCommand replays a macro through the full pipeline. All steps
// share one expansion context, so %NOW% is identical across the run.
// The run stops at the first failing step unless confirmations are
// bypassed, in which case failures are reported and the run continues.
type MacroRunCommand struct{}

func (c *MacroRunCommand) Name() string        { return "macro run" }
func (c *MacroRunCommand) Description() string { return "Run a macro" }
func (c *MacroRunCommand) Usage() string       { return "macro run <name>" }

func (c *MacroRunCommand) UsesConfirmGate() bool { return false }

func (c *MacroRunCommand) Routes() []cmctypes.RouteSpec {
	return []cmctypes.RouteSpec{
		cmctypes.Pattern(`^macro\s+run\s+(\S+)$`),
	}
}

func (c *MacroRunCommand) Execute(args []string, line string) error {
	name := args[0]
	macros, err := services.GetGlobalMacroService()
	if err != nil {
		return err
	}
	steps, ok := macros.Get(name)
	if !ok {
		return cmctypes.NotFoundErrorf("no macro named %s", name)
	}
	executor, err := services.GetGlobalExecutorService()
	if err != nil {
		return err
	}
	confirm, err := services.GetGlobalConfirmService()
	if err != nil {
		return err
	}

	exp := parser.NewExpansionContext()
	failures := 0
	for i, step := range steps {
		output.Println(output.Dim(fmt.Sprintf("[%s %d/%d] %s", name, i+1, len(steps), step)))
		if err := executor.Run(step, exp, false); err != nil {
			if !confirm.BypassActive() && !sessionCtx().Flags().Batch() {
				return fmt.Errorf("macro %s stopped at step %d: %w", name, i+1, err)
			}
			failures++
			output.Println(output.Error(fmt.Sprintf("step %d failed: %v", i+1, err)))
		}
	}
	if failures > 0 {
		output.Println(output.Warn(fmt.Sprintf("Macro %s finished with %d failed step(s)", name, failures)))
		return nil
	}
	output.Println(output.Success("Macro " + name + " finished"))
	return nil
}

// MacroEditCommand shows the steps of a macro without changing them.
type MacroEditCommand struct{}

func (c *MacroEditCommand) Name() string        { return "macro edit" }
func (c *MacroEditCommand) Description() string { return "Show the steps of a macro" }
func (c *MacroEditCommand) Usage() string       { return "macro edit <name>" }

func (c *MacroEditCommand) UsesConfirmGate() bool { return false }

func (c *MacroEditCommand) Routes() []cmctypes.RouteSpec {
	return []cmctypes.RouteSpec{
		cmctypes.Pattern(`^macro\s+(?:edit|show)\s+(\S+)$`),
	}
}

func (c *MacroEditCommand) Execute(args []string, line string) error {
	macros, err := services.GetGlobalMacroService()
	if err != nil {
		return err
	}
	steps, ok := macros.Get(args[0])
	if !ok {
		return cmctypes.NotFoundErrorf("no macro named %s", args[0])
	}
	output.Println(output.PanelTitle("macro " + args[0]))
	for i, step := range steps {
		output.Printf("  %s %s\n", output.Dim(fmt.Sprintf("%d.", i+1)), step)
	}
	output.Println(output.Dim("Redefine with: macro add " + args[0] + " = <body>"))
	return nil
}

// MacroListCommand prints all macros in insertion order.
type MacroListCommand struct{}

func (c *MacroListCommand) Name() string        { return "macro list" }
func (c *MacroListCommand) Description() string { return "List macros" }
func (c *MacroListCommand) Usage() string       { return "macro list" }

func (c *MacroListCommand) UsesConfirmGate() bool { return false }

func (c *MacroListCommand) Routes() []cmctypes.RouteSpec {
	return []cmctypes.RouteSpec{
		cmctypes.Literal("macro list"),
		cmctypes.Literal("macro"),
	}
}

func (c *MacroListCommand) Execute(args []string, line string) error {
	macros, err := services.GetGlobalMacroService()
	if err != nil {
		return err
	}
	entries := macros.List()
	if len(entries) == 0 {
		output.Println(output.Dim("No macros defined."))
		return nil
	}
	for _, e := range entries {
		output.Printf("  %s %s\n", output.Accent(e.Name), output.Dim(fmt.Sprintf("(%d steps)", len(e.Steps))))
	}
	return nil
}

// MacroDeleteCommand removes one macro.
type MacroDeleteCommand struct{}

func (c *MacroDeleteCommand) Name() string        { return "macro delete" }
func (c *MacroDeleteCommand) Description() string { return "Remove a macro" }
func (c *MacroDeleteCommand) Usage() string       { return "macro delete <name>" }

func (c *MacroDeleteCommand) UsesConfirmGate() bool { return false }

func (c *MacroDeleteCommand) Routes() []cmctypes.RouteSpec {
	return []cmctypes.RouteSpec{
		cmctypes.Pattern(`^macro\s+(?:delete|remove)\s+(\S+)$`),
	}
}

func (c *MacroDeleteCommand) Execute(args []string, line string) error {
	macros, err := services.GetGlobalMacroService()
	if err != nil {
		return err
	}
	if err := macros.Delete(args[0]); err != nil {
		return err
	}
	logAction("macro delete %s", args[0])
	output.Println(output.Success("Deleted macro " + args[0]))
	return nil
}

// MacroClearCommand removes every macro after confirmation.
type MacroClearCommand struct{}

func (c *MacroClearCommand) Name() string        { return "macro clear" }
func (c *MacroClearCommand) Description() string { return "Remove all macros" }
func (c *MacroClearCommand) Usage() string       { return "macro clear" }

func (c *MacroClearCommand) UsesConfirmGate() bool { return true }

func (c *MacroClearCommand) Routes() []cmctypes.RouteSpec {
	return []cmctypes.RouteSpec{cmctypes.Literal("macro clear")}
}

func (c *MacroClearCommand) Execute(args []string, line string) error {
	macros, err := services.GetGlobalMacroService()
	if err != nil {
		return err
	}
	count := len(macros.List())
	if count == 0 {
		output.Println(output.Dim("No macros defined."))
		return nil
	}
	confirm, err := services.GetGlobalConfirmService()
	if err != nil {
		return err
	}
	if !confirm.Confirm(fmt.Sprintf("Remove all %d macro(s)?", count)) {
		return cancelled("macro clear")
	}
	if err := macros.Clear(); err != nil {
		return err
	}
	logAction("macro clear (%d removed)", count)
	output.Println(output.Success(fmt.Sprintf("Removed %d macro(s)", count)))
	return nil
}

func init() {
	mustRegister(&MacroAddCommand{})
	mustRegister(&MacroRunCommand{})
	mustRegister(&MacroEditCommand{})
	mustRegister(&MacroListCommand{})
	mustRegister(&MacroDeleteCommand{})
	mustRegister(&MacroClearCommand{})
}
