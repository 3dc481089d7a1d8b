// Package context provides session state management for CMC Shell.
// It holds the session flags, working directory, command history,
// last-failure record, and the undo stack in one explicit context
// object shared through a singleton accessor.
package context

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// CMCContext is the process-lifetime session state. All interpreter-side
// mutation happens from the single interpreter goroutine; background
// workers report results over channels and never touch this directly.
type CMCContext struct {
	flagsCtx   *FlagsSubcontext
	historyCtx *HistorySubcontext
	undoCtx    *UndoSubcontext

	cwd        string
	dirHistory []string
	testMode   bool
}

// New creates a CMCContext rooted at the current working directory.
func New() *CMCContext {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	return &CMCContext{
		flagsCtx:   NewFlagsSubcontext(),
		historyCtx: NewHistorySubcontext(),
		undoCtx:    NewUndoSubcontext(),
		cwd:        cwd,
		dirHistory: []string{cwd},
	}
}

// Flags returns the session flags subcontext.
func (ctx *CMCContext) Flags() *FlagsSubcontext { return ctx.flagsCtx }

// History returns the command history subcontext.
func (ctx *CMCContext) History() *HistorySubcontext { return ctx.historyCtx }

// Undo returns the undo stack subcontext.
func (ctx *CMCContext) Undo() *UndoSubcontext { return ctx.undoCtx }

// Cwd returns the session working directory.
func (ctx *CMCContext) Cwd() string { return ctx.cwd }

// SetCwd changes the session working directory, recording the previous
// one for the back command.
func (ctx *CMCContext) SetCwd(dir string) {
	if dir == ctx.cwd {
		return
	}
	ctx.dirHistory = append(ctx.dirHistory, dir)
	ctx.cwd = dir
}

// PopDir steps back to the previously visited directory. Returns false
// when there is nowhere to go back to.
func (ctx *CMCContext) PopDir() (string, bool) {
	if len(ctx.dirHistory) < 2 {
		return "", false
	}
	ctx.dirHistory = ctx.dirHistory[:len(ctx.dirHistory)-1]
	ctx.cwd = ctx.dirHistory[len(ctx.dirHistory)-1]
	return ctx.cwd, true
}

var windowsDrivePath = regexp.MustCompile(`^[A-Za-z]:[/\\]`)

// Resolve turns a user-supplied path into an absolute one, interpreting
// relative paths against the session working directory. Backslashes are
// normalized so paths pasted from Windows-style docs still resolve.
func (ctx *CMCContext) Resolve(path string) string {
	path = strings.ReplaceAll(path, "\\", "/")
	if strings.HasPrefix(path, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	if filepath.IsAbs(path) || windowsDrivePath.MatchString(path) {
		return filepath.Clean(path)
	}
	return filepath.Clean(filepath.Join(ctx.cwd, path))
}

// SetTestMode enables deterministic behavior for tests.
func (ctx *CMCContext) SetTestMode(on bool) { ctx.testMode = on }

// IsTestMode reports whether test mode is enabled.
func (ctx *CMCContext) IsTestMode() bool { return ctx.testMode }
