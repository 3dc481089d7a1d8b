package services

import (
	"fmt"

	"cmcshell/internal/parser"
)

// SegmentRunner executes one already-split command segment through the
// full pipeline (alias resolution, expansion, routing). The expansion
// context is shared across a macro run so %NOW% stays constant;
// bypassConfirm forces the confirmation gate open for timer-triggered
// actions without touching the session flags.
type SegmentRunner func(segment string, exp *parser.ExpansionContext, bypassConfirm bool) error

// ExecutorService is the re-entry point into the interpreter pipeline.
// The shell package installs the runner at startup; macro and timer
// handlers call through it, which keeps the command packages free of a
// dependency cycle on the shell.
type ExecutorService struct {
	initialized bool
	runner      SegmentRunner
}

// NewExecutorService creates an ExecutorService instance.
func NewExecutorService() *ExecutorService {
	return &ExecutorService{}
}

// Name returns the service name "executor" for registration.
func (e *ExecutorService) Name() string { return "executor" }

// Initialize prepares the service; the runner is installed separately.
func (e *ExecutorService) Initialize() error {
	e.initialized = true
	return nil
}

// SetRunner installs the pipeline re-entry function.
func (e *ExecutorService) SetRunner(runner SegmentRunner) {
	e.runner = runner
}

// Run executes one segment through the installed pipeline.
func (e *ExecutorService) Run(segment string, exp *parser.ExpansionContext, bypassConfirm bool) error {
	if e.runner == nil {
		return fmt.Errorf("executor has no pipeline installed")
	}
	return e.runner(segment, exp, bypassConfirm)
}
