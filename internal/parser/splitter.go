// Package parser provides command line splitting and variable expansion
// for CMC Shell. Splitting is quote-aware: commas inside quoted spans are
// never treated as separators, and a handful of commands consume the
// remainder of the line as a single argument.
package parser

import (
	"strings"

	"cmcshell/pkg/cmctypes"
)

// CommentMarker discards a whole input line when it appears first.
const CommentMarker = "#"

// Two commands take arguments that may legally contain commas. A macro
// body claims the rest of the line whenever "macro add" heads a segment;
// a timer action claims it only when "timer" leads the whole line.

// Segment is one command unit after splitting, before alias resolution
// and variable expansion.
type Segment struct {
	Text string
	// Pos is the 1-based index of the segment within its input line.
	Pos int
}

// SplitLine splits a raw input line into ordered segments on unescaped,
// unquoted commas. Lines beginning with the comment marker produce zero
// segments. An unterminated quote is a parse error.
func SplitLine(line string) ([]Segment, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, nil
	}
	if strings.HasPrefix(line, CommentMarker) {
		return nil, nil
	}

	var segments []Segment
	var buf strings.Builder
	var quote rune
	locked := false // set once a non-splittable prefix is recognized

	appendSegment := func(text string) {
		text = strings.TrimSpace(text)
		if text != "" {
			segments = append(segments, Segment{Text: text, Pos: len(segments) + 1})
		}
	}

	for _, ch := range line {
		if quote != 0 {
			if ch == quote {
				quote = 0
			}
			buf.WriteRune(ch)
			continue
		}

		if !locked {
			head := strings.ToLower(strings.TrimLeft(buf.String(), " \t"))
			switch {
			case strings.HasPrefix(head, "macro add "):
				locked = true
			case len(segments) == 0 && strings.HasPrefix(head, "timer "):
				locked = true
			}
		}

		switch {
		case ch == '\'' || ch == '"':
			quote = ch
			buf.WriteRune(ch)
		case ch == ',' && !locked:
			appendSegment(buf.String())
			buf.Reset()
		default:
			buf.WriteRune(ch)
		}
	}

	if quote != 0 {
		return nil, cmctypes.ParseErrorf("unterminated %c quote in %q", quote, line)
	}
	appendSegment(buf.String())
	return segments, nil
}
