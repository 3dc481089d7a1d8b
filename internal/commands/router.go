// Package commands provides the command router for CMC Shell: an
// ordered table of tagged match rules resolved at startup. Literal
// routes are matched before pattern routes, and among literals the
// longest phrase wins, so routing order and alias shadowing are testable
// in isolation.
package commands

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"cmcshell/internal/context"
	"cmcshell/internal/logger"
	"cmcshell/pkg/cmctypes"
)

// literalRoute binds one fixed keyword phrase to a command.
type literalRoute struct {
	phrase  string // lowercased
	command cmctypes.Command
}

// patternRoute binds one parameterized expression to a command.
type patternRoute struct {
	spec    cmctypes.RouteSpec
	command cmctypes.Command
}

// Router is the priority-ordered dispatch table. Commands register at
// init time; Compile sorts the literal rules once so lookup order is
// fixed for the life of the session.
type Router struct {
	mu       sync.RWMutex
	commands []cmctypes.Command
	literals []literalRoute
	patterns []patternRoute
	log      *log.Logger
}

// NewRouter creates an empty router.
func NewRouter() *Router {
	return &Router{log: logger.NewStyledLogger("router")}
}

// Register adds a command and its routes. Route specs are validated here
// so a bad registration fails at startup, not mid-session.
func (r *Router) Register(cmd cmctypes.Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cmd.Name() == "" {
		return fmt.Errorf("command name cannot be empty")
	}
	for _, existing := range r.commands {
		if existing.Name() == cmd.Name() {
			return fmt.Errorf("command %s already registered", cmd.Name())
		}
	}

	for _, spec := range cmd.Routes() {
		switch spec.Kind {
		case cmctypes.RouteLiteral:
			phrase := strings.ToLower(strings.TrimSpace(spec.Literal))
			if phrase == "" {
				return fmt.Errorf("command %s has an empty literal route", cmd.Name())
			}
			r.literals = append(r.literals, literalRoute{phrase: phrase, command: cmd})
		case cmctypes.RoutePattern:
			if spec.Pattern == nil {
				return fmt.Errorf("command %s has a nil pattern route", cmd.Name())
			}
			r.patterns = append(r.patterns, patternRoute{spec: spec, command: cmd})
		default:
			return fmt.Errorf("command %s has an unknown route kind", cmd.Name())
		}
	}

	r.commands = append(r.commands, cmd)
	return nil
}

// Compile fixes the routing order: literals sorted longest-first (ties
// keep registration order), patterns in registration order. The scoped
// logger picks up the level configured after startup flags are parsed.
func (r *Router) Compile() {
	r.mu.Lock()
	defer r.mu.Unlock()
	sort.SliceStable(r.literals, func(i, j int) bool {
		return len(r.literals[i].phrase) > len(r.literals[j].phrase)
	})
	r.log.SetLevel(logger.Logger.GetLevel())
}

// Resolve selects the command for an expanded segment. It returns the
// command, the pattern capture groups (nil for literal matches), and
// whether any rule matched. Keyword matching is case-insensitive; path
// and free-text arguments keep their case.
func (r *Router) Resolve(segment string) (cmctypes.Command, []string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	trimmed := strings.TrimSpace(segment)
	low := strings.ToLower(trimmed)

	for _, route := range r.literals {
		if low == route.phrase {
			return route.command, nil, true
		}
	}
	for _, route := range r.patterns {
		if m := route.spec.Pattern.FindStringSubmatch(trimmed); m != nil {
			return route.command, m[1:], true
		}
	}
	return nil, nil, false
}

// Dispatch resolves and executes one expanded segment, converting every
// failure mode into a structured result. Unknown input and handler
// errors (including panics) are recorded as the session's last failure;
// the router never lets a handler take the session down.
func (r *Router) Dispatch(segment string) cmctypes.Result {
	history := context.GetGlobalContext().History()

	cmd, args, ok := r.Resolve(segment)
	if !ok {
		history.SetLastFailure(segment, "Unknown command")
		return cmctypes.Result{
			Recognized: false,
			Err:        fmt.Errorf("%w: %s", cmctypes.ErrUnknownCommand, segment),
		}
	}

	r.log.Debug("Executing command", "command", cmd.Name(), "args", args)
	err := r.execute(cmd, args, segment)
	if err != nil {
		history.SetLastFailure(segment, err.Error())
	}
	return cmctypes.Result{Recognized: true, Command: cmd.Name(), Err: err}
}

// execute runs a handler, converting panics into errors at the router
// boundary.
func (r *Router) execute(cmd cmctypes.Command, args []string, segment string) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error("Command panicked", "command", cmd.Name(), "error", rec)
			err = fmt.Errorf("command %s panicked: %v", cmd.Name(), rec)
		}
	}()
	return cmd.Execute(args, segment)
}

// All returns the registered commands in registration order.
func (r *Router) All() []cmctypes.Command {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]cmctypes.Command, len(r.commands))
	copy(out, r.commands)
	return out
}

// HasKeyword reports whether a word is the leading keyword of any route.
// The alias add handler uses it to warn when a new alias shadows a
// built-in.
func (r *Router) HasKeyword(word string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	word = strings.ToLower(word)
	for _, route := range r.literals {
		if route.phrase == word || strings.HasPrefix(route.phrase, word+" ") {
			return true
		}
	}
	for _, cmd := range r.commands {
		name := strings.ToLower(cmd.Name())
		if name == word || strings.HasPrefix(name, word+" ") {
			return true
		}
	}
	return false
}

// GlobalRouter is the global router instance. Built-in commands register
// themselves with it during initialization.
var GlobalRouter = NewRouter()

// GetGlobalRouter returns the global router instance.
func GetGlobalRouter() *Router {
	return GlobalRouter
}
