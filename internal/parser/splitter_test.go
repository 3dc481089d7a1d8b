package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestSplitLine(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "single command",
			input:    "pwd",
			expected: []string{"pwd"},
		},
		{
			name:     "chained commands",
			input:    "pwd, list, status",
			expected: []string{"pwd", "list", "status"},
		},
		{
			name:     "comma inside single quotes is not a separator",
			input:    "write 'a,b.txt' hello, list",
			expected: []string{"write 'a,b.txt' hello", "list"},
		},
		{
			name:     "comma inside double quotes is not a separator",
			input:    `echo "one, two", pwd`,
			expected: []string{`echo "one, two"`, "pwd"},
		},
		{
			name:     "leading timer consumes the rest of the line",
			input:    "timer 10 macro run backup, list",
			expected: []string{"timer 10 macro run backup, list"},
		},
		{
			name:     "timer after another segment does not lock the line",
			input:    "pwd, timer 5 echo a, echo b",
			expected: []string{"pwd", "timer 5 echo a", "echo b"},
		},
		{
			name:     "macro add body keeps embedded commas",
			input:    "macro add daily = cd 'C:/Work', list, status",
			expected: []string{"macro add daily = cd 'C:/Work', list, status"},
		},
		{
			name:     "macro add locks only from its own segment onward",
			input:    "pwd, macro add x = list, status",
			expected: []string{"pwd", "macro add x = list, status"},
		},
		{
			name:     "comment line produces no segments",
			input:    "# this is a note, not a command",
			expected: nil,
		},
		{
			name:     "empty line produces no segments",
			input:    "   ",
			expected: nil,
		},
		{
			name:     "empty segments are dropped",
			input:    "pwd,, list,",
			expected: []string{"pwd", "list"},
		},
		{
			name:     "whitespace around segments is trimmed",
			input:    "  pwd ,   list  ",
			expected: []string{"pwd", "list"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segments, err := SplitLine(tt.input)
			assert.NoError(t, err)

			var texts []string
			for _, seg := range segments {
				texts = append(texts, seg.Text)
			}
			if diff := cmp.Diff(tt.expected, texts); diff != "" {
				t.Errorf("SplitLine(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestSplitLine_Positions(t *testing.T) {
	segments, err := SplitLine("pwd, list, status")
	assert.NoError(t, err)
	assert.Len(t, segments, 3)
	for i, seg := range segments {
		assert.Equal(t, i+1, seg.Pos)
	}
}

func TestSplitLine_UnterminatedQuote(t *testing.T) {
	_, err := SplitLine("write 'a,b.txt hello, list")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parse error")
}
