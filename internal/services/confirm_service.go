package services

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"cmcshell/internal/context"
	"cmcshell/internal/output"
)

// ConfirmService is the single shared confirmation gate. Every handler
// that would destroy or overwrite data calls Confirm before acting.
//
// Gate semantics:
//   - confirm-bypass (batch) active: always proceed, announcing "(auto)".
//   - simulate-only (dry-run) active: proceed without prompting. The
//     handler previews instead of acting, so there is nothing for the
//     user to approve.
//   - otherwise: surface a yes/no prompt and block on the answer.
type ConfirmService struct {
	initialized bool
	in          io.Reader
	out         io.Writer

	// forced counts pipeline-scoped bypasses (timer-triggered actions).
	// Touched only from the interpreter goroutine.
	forced int
}

// NewConfirmService creates a ConfirmService reading from stdin.
func NewConfirmService() *ConfirmService {
	return &ConfirmService{in: os.Stdin, out: os.Stdout}
}

// Name returns the service name "confirm" for registration.
func (c *ConfirmService) Name() string { return "confirm" }

// Initialize prepares the gate for use.
func (c *ConfirmService) Initialize() error {
	c.initialized = true
	return nil
}

// SetStreams redirects the prompt streams. Used by tests to script
// answers.
func (c *ConfirmService) SetStreams(in io.Reader, out io.Writer) {
	c.in = in
	c.out = out
}

// PushForce opens the gate for the current pipeline run without touching
// the session flags. Paired with PopForce.
func (c *ConfirmService) PushForce() { c.forced++ }

// PopForce closes a pipeline-scoped bypass.
func (c *ConfirmService) PopForce() {
	if c.forced > 0 {
		c.forced--
	}
}

// BypassActive reports whether confirm-bypass currently applies, either
// from the batch flag or a pipeline-scoped force.
func (c *ConfirmService) BypassActive() bool {
	return c.forced > 0 || context.GetGlobalContext().Flags().Batch()
}

// Confirm asks the user to approve an action. It returns true when the
// action may proceed.
func (c *ConfirmService) Confirm(msg string) bool {
	flags := context.GetGlobalContext().Flags()
	if c.forced > 0 || flags.Batch() {
		fmt.Fprintln(c.out, output.Dim("(auto) ")+msg)
		return true
	}
	if flags.DryRun() {
		return true
	}

	fmt.Fprintln(c.out, output.PanelTitle("Confirm"))
	fmt.Fprintln(c.out, msg)
	fmt.Fprint(c.out, "Proceed? (y/n): ")
	reader := bufio.NewReader(c.in)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(answer)), "y")
}
