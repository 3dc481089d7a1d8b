package builtin

import (
	"os"

	"cmcshell/internal/output"
	"cmcshell/pkg/cmctypes"
)

// PwdCommand prints the session working directory.
type PwdCommand struct{}

func (c *PwdCommand) Name() string        { return "pwd" }
func (c *PwdCommand) Description() string { return "Print the current working directory" }
func (c *PwdCommand) Usage() string       { return "pwd" }

func (c *PwdCommand) UsesConfirmGate() bool { return false }

func (c *PwdCommand) Routes() []cmctypes.RouteSpec {
	return []cmctypes.RouteSpec{cmctypes.Literal("pwd")}
}

func (c *PwdCommand) Execute(args []string, line string) error {
	output.Println(output.Accent(sessionCtx().Cwd()))
	return nil
}

// CdCommand changes the session working directory. A bare cd goes home,
// matching the home command.
type CdCommand struct{}

func (c *CdCommand) Name() string        { return "cd" }
func (c *CdCommand) Description() string { return "Change the working directory" }
func (c *CdCommand) Usage() string       { return "cd '<path>' | cd .. | cd | home | back" }

func (c *CdCommand) UsesConfirmGate() bool { return false }

func (c *CdCommand) Routes() []cmctypes.RouteSpec {
	return []cmctypes.RouteSpec{
		cmctypes.Literal("cd"),
		cmctypes.Literal("home"),
		cmctypes.Pattern(`^cd\s+(?:'([^']*)'|(\S+))$`),
	}
}

func (c *CdCommand) Execute(args []string, line string) error {
	target := pick(args...)
	if target == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cmctypes.NotFoundErrorf("home directory: %v", err)
		}
		target = home
	}
	resolved := sessionCtx().Resolve(target)
	info, err := os.Stat(resolved)
	if err != nil {
		return cmctypes.NotFoundErrorf("no such directory: %s", resolved)
	}
	if !info.IsDir() {
		return cmctypes.ValidationErrorf("not a directory: %s", resolved)
	}
	sessionCtx().SetCwd(resolved)
	output.Println(output.Dim("→ ") + resolved)
	return nil
}

// BackCommand returns to the previously visited directory.
type BackCommand struct{}

func (c *BackCommand) Name() string        { return "back" }
func (c *BackCommand) Description() string { return "Return to the previous directory" }
func (c *BackCommand) Usage() string       { return "back" }

func (c *BackCommand) UsesConfirmGate() bool { return false }

func (c *BackCommand) Routes() []cmctypes.RouteSpec {
	return []cmctypes.RouteSpec{cmctypes.Literal("back")}
}

func (c *BackCommand) Execute(args []string, line string) error {
	dir, ok := sessionCtx().PopDir()
	if !ok {
		output.Println(output.Warn("Already at the start of the directory history."))
		return nil
	}
	output.Println(output.Dim("→ ") + dir)
	return nil
}

func init() {
	mustRegister(&PwdCommand{})
	mustRegister(&CdCommand{})
	mustRegister(&BackCommand{})
}
