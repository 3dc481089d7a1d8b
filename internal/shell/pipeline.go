// Package shell wires the interactive session together: it owns the
// per-segment pipeline (history, alias resolution, variable expansion,
// routing) and the ishell input handler that feeds it.
package shell

import (
	"errors"
	"strings"

	"cmcshell/internal/commands"
	"cmcshell/internal/context"
	"cmcshell/internal/logger"
	"cmcshell/internal/output"
	"cmcshell/internal/parser"
	"cmcshell/internal/services"
	"cmcshell/pkg/cmctypes"
)

// RunLine splits a raw input line and runs each segment in order. One
// expansion context covers the whole line. Segment failures are reported
// but never abort the session; the error of the last failing segment is
// returned so non-interactive callers can set an exit code.
func RunLine(line string) error {
	segments, err := parser.SplitLine(line)
	if err != nil {
		history := context.GetGlobalContext().History()
		history.Append(line)
		history.SetLastFailure(line, err.Error())
		return err
	}

	exp := parser.NewExpansionContext()
	var lastErr error
	for _, segment := range segments {
		if err := RunSegment(segment.Text, exp, false); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

// RunLineUnattended runs a line with the confirmation gate forced open,
// used for timer-triggered actions that cannot answer prompts.
func RunLineUnattended(line string) error {
	segments, err := parser.SplitLine(line)
	if err != nil {
		return err
	}
	exp := parser.NewExpansionContext()
	var lastErr error
	for _, segment := range segments {
		if err := RunSegment(segment.Text, exp, true); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

// RunSegment routes one segment through the full pipeline. The expansion
// context is shared across a macro run; bypassConfirm forces the
// confirmation gate open for timer-triggered actions.
func RunSegment(segment string, exp *parser.ExpansionContext, bypassConfirm bool) error {
	ctx := context.GetGlobalContext()
	ctx.History().Append(segment)

	if bypassConfirm {
		if confirm, err := services.GetGlobalConfirmService(); err == nil {
			confirm.PushForce()
			defer confirm.PopForce()
		}
	}

	// Alias resolution happens before built-in matching, so a user alias
	// shadows a built-in of the same name.
	resolved := resolveAlias(segment)
	expanded := exp.Expand(resolved)

	result := commands.GetGlobalRouter().Dispatch(expanded)
	if !result.Recognized {
		output.Println(output.Error("Unknown command: ") + segment)
		output.Println(output.Dim("Type 'help' for available commands, 'diagnose' for details."))
		return result.Err
	}
	if result.Err != nil && !errors.Is(result.Err, cmctypes.ErrCancelled) {
		logger.Error("Command failed", "command", result.Command, "error", result.Err)
	}
	return result.Err
}

// resolveAlias expands a leading alias name one level, appending any
// call-time arguments verbatim to the stored body.
func resolveAlias(segment string) string {
	aliases, err := services.GetGlobalAliasService()
	if err != nil {
		return segment
	}
	head, rest, _ := strings.Cut(strings.TrimSpace(segment), " ")
	body, ok := aliases.Resolve(head)
	if !ok {
		return segment
	}
	expanded := body
	if rest = strings.TrimSpace(rest); rest != "" {
		expanded += " " + rest
	}
	output.Println(output.Dim("alias → " + expanded))
	return expanded
}

// installRunner hands the pipeline to the executor service so macro and
// timer handlers can re-enter it without importing this package.
func installRunner() error {
	executor, err := services.GetGlobalExecutorService()
	if err != nil {
		return err
	}
	executor.SetRunner(RunSegment)
	return nil
}
