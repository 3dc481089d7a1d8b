// Package cmctypes provides shared types and interfaces for CMC Shell.
// It defines the command contract, route specifications, undo records,
// and the error taxonomy used across the application.
package cmctypes

import "regexp"

// RouteKind distinguishes fixed literal routes from parameterized pattern routes.
type RouteKind int

const (
	// RouteLiteral matches the whole segment against a fixed keyword phrase.
	RouteLiteral RouteKind = iota
	// RoutePattern matches the segment against a regular expression and
	// passes the capture groups to the handler as arguments.
	RoutePattern
)

// RouteSpec describes one way a command can be addressed. Literal routes
// are matched before pattern routes; among literals the longest wins.
type RouteSpec struct {
	Kind    RouteKind
	Literal string         // lowercased keyword phrase, e.g. "batch on"
	Pattern *regexp.Regexp // compiled with (?i), anchored ^...$
}

// Literal builds a literal route spec.
func Literal(phrase string) RouteSpec {
	return RouteSpec{Kind: RouteLiteral, Literal: phrase}
}

// Pattern builds a pattern route spec from an anchored, case-insensitive
// expression. The expression must already include ^ and $ anchors.
func Pattern(expr string) RouteSpec {
	return RouteSpec{Kind: RoutePattern, Pattern: regexp.MustCompile("(?i)" + expr)}
}

// Command is the contract every operation handler fulfills.
//
// A command declares whether it consults the confirmation gate via
// UsesConfirmGate. Handlers that do not declare gate usage are executed
// regardless of the simulate-only flag; this asymmetry is intentional
// and surfaced in help output.
type Command interface {
	// Name returns the command keyword used for help and collision warnings.
	Name() string

	// Description returns a one-line summary for help listings.
	Description() string

	// Usage returns the invocation syntax.
	Usage() string

	// UsesConfirmGate reports whether Execute routes destructive actions
	// through the shared confirmation gate.
	UsesConfirmGate() bool

	// Routes returns the match rules that address this command.
	Routes() []RouteSpec

	// Execute runs the command. args holds the pattern capture groups
	// (empty for literal routes); line is the full expanded segment.
	Execute(args []string, line string) error
}
