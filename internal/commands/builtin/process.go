package builtin

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"time"

	"cmcshell/internal/logger"
	"cmcshell/internal/output"
	"cmcshell/pkg/cmctypes"
)

// RunCommand launches an external program and waits for it. It is not
// routed through the confirmation gate; launching a process is treated
// as the user's explicit intent and nothing about it is undoable.
type RunCommand struct{}

func (c *RunCommand) Name() string        { return "run" }
func (c *RunCommand) Description() string { return "Run an external command" }
func (c *RunCommand) Usage() string       { return "run '<command>' [in '<dir>']" }

func (c *RunCommand) UsesConfirmGate() bool { return false }

func (c *RunCommand) Routes() []cmctypes.RouteSpec {
	return []cmctypes.RouteSpec{
		cmctypes.Pattern(`^run\s+'([^']*)'(?:\s+in\s+(?:'([^']*)'|(\S+)))?$`),
	}
}

func (c *RunCommand) Execute(args []string, line string) error {
	cmdline := args[0]
	if cmdline == "" {
		return cmctypes.ValidationErrorf("run needs a command")
	}
	dir := sessionCtx().Cwd()
	if target := pick(args[1], args[2]); target != "" {
		dir = sessionCtx().Resolve(target)
	}

	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		cmd = exec.Command("cmd", "/C", cmdline)
	} else {
		cmd = exec.Command("sh", "-c", cmdline)
	}
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	logger.Debug("Launching external command", "command", cmdline, "dir", dir)
	if err := cmd.Run(); err != nil {
		if exit, ok := err.(*exec.ExitError); ok {
			return fmt.Errorf("command exited with status %d", exit.ExitCode())
		}
		return fmt.Errorf("cannot run %q: %w", cmdline, err)
	}
	logAction("run %s", cmdline)
	return nil
}

// OpenCommand hands a path or URL to the desktop environment.
type OpenCommand struct{}

func (c *OpenCommand) Name() string        { return "open" }
func (c *OpenCommand) Description() string { return "Open a path or URL with the default handler" }
func (c *OpenCommand) Usage() string       { return "open '<path-or-url>'" }

func (c *OpenCommand) UsesConfirmGate() bool { return false }

func (c *OpenCommand) Routes() []cmctypes.RouteSpec {
	return []cmctypes.RouteSpec{
		cmctypes.Pattern(`^open\s+(?:'([^']*)'|(\S+))$`),
	}
}

func (c *OpenCommand) Execute(args []string, line string) error {
	target := pick(args...)
	if !isURL(target) {
		target = sessionCtx().Resolve(target)
		if !pathExists(target) {
			return cmctypes.NotFoundErrorf("no such path: %s", target)
		}
	}
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", target)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", target)
	default:
		cmd = exec.Command("xdg-open", target)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("cannot open %s: %w", target, err)
	}
	output.Println(output.Dim("Opened " + target))
	return nil
}

// SleepCommand pauses the interpreter for a number of seconds.
type SleepCommand struct{}

func (c *SleepCommand) Name() string        { return "sleep" }
func (c *SleepCommand) Description() string { return "Pause for a number of seconds" }
func (c *SleepCommand) Usage() string       { return "sleep <seconds>" }

func (c *SleepCommand) UsesConfirmGate() bool { return false }

func (c *SleepCommand) Routes() []cmctypes.RouteSpec {
	return []cmctypes.RouteSpec{
		cmctypes.Pattern(`^sleep\s+(\d+(?:\.\d+)?)$`),
	}
}

func (c *SleepCommand) Execute(args []string, line string) error {
	seconds, err := strconv.ParseFloat(args[0], 64)
	if err != nil || seconds < 0 {
		return cmctypes.ValidationErrorf("sleep needs a non-negative number of seconds")
	}
	time.Sleep(time.Duration(seconds * float64(time.Second)))
	return nil
}

func init() {
	mustRegister(&RunCommand{})
	mustRegister(&OpenCommand{})
	mustRegister(&SleepCommand{})
}
