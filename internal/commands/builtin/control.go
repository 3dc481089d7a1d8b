package builtin

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"cmcshell/internal/output"
	"cmcshell/internal/services"
	"cmcshell/pkg/cmctypes"
)

// EchoCommand prints its argument. Useful as a macro step and for
// checking variable expansion.
type EchoCommand struct{}

func (c *EchoCommand) Name() string        { return "echo" }
func (c *EchoCommand) Description() string { return "Print text after expansion" }
func (c *EchoCommand) Usage() string       { return "echo <text>" }

func (c *EchoCommand) UsesConfirmGate() bool { return false }

func (c *EchoCommand) Routes() []cmctypes.RouteSpec {
	return []cmctypes.RouteSpec{
		cmctypes.Literal("echo"),
		cmctypes.Pattern(`^echo\s+(.+)$`),
	}
}

func (c *EchoCommand) Execute(args []string, line string) error {
	output.Println(pick(args...))
	return nil
}

// StatusCommand shows the session state at a glance.
type StatusCommand struct{}

func (c *StatusCommand) Name() string        { return "status" }
func (c *StatusCommand) Description() string { return "Show session flags and state" }
func (c *StatusCommand) Usage() string       { return "status" }

func (c *StatusCommand) UsesConfirmGate() bool { return false }

func (c *StatusCommand) Routes() []cmctypes.RouteSpec {
	return []cmctypes.RouteSpec{cmctypes.Literal("status")}
}

func (c *StatusCommand) Execute(args []string, line string) error {
	ctx := sessionCtx()
	batch, dryRun, sslVerify := ctx.Flags().Snapshot()

	var b strings.Builder
	fmt.Fprintf(&b, "cwd:        %s\n", ctx.Cwd())
	fmt.Fprintf(&b, "batch:      %s\n", onOff(batch))
	fmt.Fprintf(&b, "dry-run:    %s\n", onOff(dryRun))
	fmt.Fprintf(&b, "ssl-verify: %s\n", onOff(sslVerify))
	fmt.Fprintf(&b, "undo depth: %d", ctx.Undo().Depth())
	if aliases, err := services.GetGlobalAliasService(); err == nil {
		fmt.Fprintf(&b, "\naliases:    %d", len(aliases.List()))
	}
	if macros, err := services.GetGlobalMacroService(); err == nil {
		fmt.Fprintf(&b, "\nmacros:     %d", len(macros.List()))
	}
	if workers, err := services.GetGlobalWorkerService(); err == nil {
		fmt.Fprintf(&b, "\ntimers:     %d", len(workers.Pending()))
	}
	output.Println(output.PanelTitle("Session"))
	output.Println(output.Panel(b.String()))
	return nil
}

// LogCommand prints the action log of the current session.
type LogCommand struct{}

func (c *LogCommand) Name() string        { return "log" }
func (c *LogCommand) Description() string { return "Show the session action log" }
func (c *LogCommand) Usage() string       { return "log" }

func (c *LogCommand) UsesConfirmGate() bool { return false }

func (c *LogCommand) Routes() []cmctypes.RouteSpec {
	return []cmctypes.RouteSpec{cmctypes.Literal("log")}
}

func (c *LogCommand) Execute(args []string, line string) error {
	entries := sessionCtx().History().ActionLog()
	if len(entries) == 0 {
		output.Println(output.Dim("No actions recorded this session."))
		return nil
	}
	for _, e := range entries {
		output.Println("  " + e)
	}
	return nil
}

// HistoryCommand prints the recent raw input segments.
type HistoryCommand struct{}

func (c *HistoryCommand) Name() string        { return "history" }
func (c *HistoryCommand) Description() string { return "Show recent commands" }
func (c *HistoryCommand) Usage() string       { return "history" }

func (c *HistoryCommand) UsesConfirmGate() bool { return false }

func (c *HistoryCommand) Routes() []cmctypes.RouteSpec {
	return []cmctypes.RouteSpec{cmctypes.Literal("history")}
}

func (c *HistoryCommand) Execute(args []string, line string) error {
	cmds := sessionCtx().History().Commands()
	if len(cmds) == 0 {
		output.Println(output.Dim("History is empty."))
		return nil
	}
	for i, cmd := range cmds {
		output.Printf("  %s %s\n", output.Dim(fmt.Sprintf("%2d", i+1)), cmd)
	}
	return nil
}

// DiagnoseCommand explains the most recent failure.
type DiagnoseCommand struct{}

func (c *DiagnoseCommand) Name() string        { return "diagnose" }
func (c *DiagnoseCommand) Description() string { return "Explain the last failed command" }
func (c *DiagnoseCommand) Usage() string       { return "diagnose" }

func (c *DiagnoseCommand) UsesConfirmGate() bool { return false }

func (c *DiagnoseCommand) Routes() []cmctypes.RouteSpec {
	return []cmctypes.RouteSpec{cmctypes.Literal("diagnose")}
}

func (c *DiagnoseCommand) Execute(args []string, line string) error {
	failure, ok := sessionCtx().History().GetLastFailure()
	if !ok {
		output.Println(output.Success("Nothing failed so far."))
		return nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "command: %s\n", failure.Command)
	fmt.Fprintf(&b, "error:   %s", failure.Error)
	if failure.Error == "Unknown command" {
		b.WriteString("\nhint:    check spelling or see help for the command list")
	}
	output.Println(output.PanelTitle("Last failure"))
	output.Println(output.Panel(b.String()))
	return nil
}

// UndoCommand reverts the most recent reversible operation.
type UndoCommand struct{}

func (c *UndoCommand) Name() string        { return "undo" }
func (c *UndoCommand) Description() string { return "Revert the last reversible operation" }
func (c *UndoCommand) Usage() string       { return "undo" }

func (c *UndoCommand) UsesConfirmGate() bool { return false }

func (c *UndoCommand) Routes() []cmctypes.RouteSpec {
	return []cmctypes.RouteSpec{cmctypes.Literal("undo")}
}

func (c *UndoCommand) Execute(args []string, line string) error {
	undo, err := services.GetGlobalUndoService()
	if err != nil {
		return err
	}
	desc, err := undo.UndoLast()
	if err != nil {
		if errors.Is(err, cmctypes.ErrNotFound) {
			output.Println(output.Dim("Nothing to undo."))
			return nil
		}
		return err
	}
	logAction("undo: %s", desc)
	output.Println(output.Success(desc))
	return nil
}

// ExitCommand ends the session.
type ExitCommand struct{}

func (c *ExitCommand) Name() string        { return "exit" }
func (c *ExitCommand) Description() string { return "Leave the shell" }
func (c *ExitCommand) Usage() string       { return "exit" }

func (c *ExitCommand) UsesConfirmGate() bool { return false }

func (c *ExitCommand) Routes() []cmctypes.RouteSpec {
	return []cmctypes.RouteSpec{
		cmctypes.Literal("exit"),
		cmctypes.Literal("quit"),
	}
}

func (c *ExitCommand) Execute(args []string, line string) error {
	c.shutdown()
	os.Exit(0)
	return nil
}

// shutdown cancels pending timers so their goroutines stop cleanly
// before the process ends.
func (c *ExitCommand) shutdown() {
	if workers, err := services.GetGlobalWorkerService(); err == nil {
		if pending := workers.Pending(); len(pending) > 0 {
			output.Println(output.Warn(fmt.Sprintf("Cancelling %d pending timer(s).", len(pending))))
			for _, id := range pending {
				_ = workers.Cancel(id)
			}
		}
	}
	output.Println(output.Dim("Bye."))
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func init() {
	mustRegister(&EchoCommand{})
	mustRegister(&StatusCommand{})
	mustRegister(&LogCommand{})
	mustRegister(&HistoryCommand{})
	mustRegister(&DiagnoseCommand{})
	mustRegister(&UndoCommand{})
	mustRegister(&ExitCommand{})
}
