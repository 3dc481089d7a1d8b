package builtin

import (
	"fmt"
	"strconv"
	"time"

	"cmcshell/internal/output"
	"cmcshell/internal/parser"
	"cmcshell/internal/services"
	"cmcshell/pkg/cmctypes"
)

// TimerCommand schedules a command line to run after a delay. The comma
// splitter refuses to break a timer line apart, so a chained action like
// "timer 60 echo a, echo b" arrives here whole. The action runs with the
// confirmation gate bypassed for that execution only.
type TimerCommand struct{}

func (c *TimerCommand) Name() string        { return "timer" }
func (c *TimerCommand) Description() string { return "Run a command after a delay" }
func (c *TimerCommand) Usage() string       { return "timer <seconds> [action]" }

func (c *TimerCommand) UsesConfirmGate() bool { return false }

func (c *TimerCommand) Routes() []cmctypes.RouteSpec {
	return []cmctypes.RouteSpec{
		cmctypes.Pattern(`^timer\s+(\d+(?:\.\d+)?)(?:\s+(.+))?$`),
	}
}

func (c *TimerCommand) Execute(args []string, line string) error {
	seconds, err := strconv.ParseFloat(args[0], 64)
	if err != nil || seconds <= 0 {
		return cmctypes.ValidationErrorf("timer needs a positive number of seconds")
	}
	action := args[1]

	workers, err := services.GetGlobalWorkerService()
	if err != nil {
		return err
	}
	id, err := workers.StartTimer(time.Duration(seconds*float64(time.Second)), action)
	if err != nil {
		return err
	}
	logAction("timer %s (%gs)", id, seconds)
	output.Println(output.Success(fmt.Sprintf("Timer %s set for %gs", id, seconds)))
	if action != "" {
		output.Println(output.Dim("  then: " + action))
	}
	return nil
}

// TimerCancelCommand stops a pending timer.
type TimerCancelCommand struct{}

func (c *TimerCancelCommand) Name() string        { return "timer cancel" }
func (c *TimerCancelCommand) Description() string { return "Cancel a pending timer" }
func (c *TimerCancelCommand) Usage() string       { return "timer cancel <id>" }

func (c *TimerCancelCommand) UsesConfirmGate() bool { return false }

func (c *TimerCancelCommand) Routes() []cmctypes.RouteSpec {
	return []cmctypes.RouteSpec{
		cmctypes.Pattern(`^timer\s+cancel\s+(\S+)$`),
	}
}

func (c *TimerCancelCommand) Execute(args []string, line string) error {
	workers, err := services.GetGlobalWorkerService()
	if err != nil {
		return err
	}
	if err := workers.Cancel(args[0]); err != nil {
		return err
	}
	logAction("timer cancel %s", args[0])
	output.Println(output.Success("Cancelled timer " + args[0]))
	return nil
}

// WaitCommand blocks until every pending timer has fired, then runs the
// delivered actions.
type WaitCommand struct{}

func (c *WaitCommand) Name() string        { return "wait" }
func (c *WaitCommand) Description() string { return "Wait for pending timers" }
func (c *WaitCommand) Usage() string       { return "wait" }

func (c *WaitCommand) UsesConfirmGate() bool { return false }

func (c *WaitCommand) Routes() []cmctypes.RouteSpec {
	return []cmctypes.RouteSpec{cmctypes.Literal("wait")}
}

func (c *WaitCommand) Execute(args []string, line string) error {
	workers, err := services.GetGlobalWorkerService()
	if err != nil {
		return err
	}
	pending := len(workers.Pending())
	if pending > 0 {
		output.Println(output.Dim(fmt.Sprintf("Waiting for %d timer(s)…", pending)))
	}
	events := workers.Wait()
	if len(events) == 0 {
		output.Println(output.Dim("No pending timers."))
		return nil
	}
	for _, ev := range events {
		RunTimerEvent(ev)
	}
	return nil
}

// RunTimerEvent announces a fired timer and executes its action inside
// the pipeline with the confirmation gate bypassed. Shared with the
// prompt-time drain in the shell loop.
func RunTimerEvent(ev services.WorkerEvent) {
	output.Println(output.Accent("⏰ " + ev.Message))
	if ev.Action == "" {
		return
	}
	executor, err := services.GetGlobalExecutorService()
	if err != nil {
		output.Println(output.Error("timer action dropped: " + err.Error()))
		return
	}
	segments, err := parser.SplitLine(ev.Action)
	if err != nil {
		output.Println(output.Error(fmt.Sprintf("timer %s action: %v", ev.ID, err)))
		return
	}
	exp := parser.NewExpansionContext()
	for _, seg := range segments {
		if err := executor.Run(seg.Text, exp, true); err != nil {
			output.Println(output.Error(fmt.Sprintf("timer %s action failed: %v", ev.ID, err)))
		}
	}
}

func init() {
	mustRegister(&TimerCommand{})
	mustRegister(&TimerCancelCommand{})
	mustRegister(&WaitCommand{})
}
