package parser

import (
	"os"
	"strings"
	"time"
)

// Expansion placeholders recognized inside a segment.
const (
	PlaceholderDate = "%DATE%"
	PlaceholderNow  = "%NOW%"
	PlaceholderHome = "%HOME%"
)

// ExpansionContext carries the fixed values placeholders resolve to.
// One context is created per input line and shared across every step of
// a macro run, so %NOW% expands to the same instant throughout the run.
type ExpansionContext struct {
	date string
	now  string
	home string
}

// NewExpansionContext captures the current instant and home directory.
func NewExpansionContext() *ExpansionContext {
	return NewExpansionContextAt(time.Now())
}

// NewExpansionContextAt captures a fixed instant; used directly by tests.
func NewExpansionContextAt(t time.Time) *ExpansionContext {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return &ExpansionContext{
		date: t.Format("2006-01-02"),
		now:  t.Format("2006-01-02_15-04-05"),
		home: home,
	}
}

// Expand replaces each recognized placeholder with its literal value.
// Replacement is plain textual substitution; placeholders do not nest.
func (e *ExpansionContext) Expand(segment string) string {
	if !strings.Contains(segment, "%") {
		return segment
	}
	replacer := strings.NewReplacer(
		PlaceholderDate, e.date,
		PlaceholderNow, e.now,
		PlaceholderHome, e.home,
	)
	return replacer.Replace(segment)
}

// Now returns the timestamp value %NOW% expands to.
func (e *ExpansionContext) Now() string { return e.now }
