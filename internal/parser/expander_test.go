package parser

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExpand_Placeholders(t *testing.T) {
	at := time.Date(2026, 3, 14, 15, 9, 26, 0, time.Local)
	exp := NewExpansionContextAt(at)
	home, _ := os.UserHomeDir()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "date placeholder",
			input:    "create file 'report_%DATE%.txt' in '.'",
			expected: "create file 'report_2026-03-14.txt' in '.'",
		},
		{
			name:     "now placeholder",
			input:    "zip 'src' to 'backup_%NOW%'",
			expected: "zip 'src' to 'backup_2026-03-14_15-09-26'",
		},
		{
			name:     "home placeholder",
			input:    "cd '%HOME%'",
			expected: "cd '" + home + "'",
		},
		{
			name:     "repeated placeholders all expand",
			input:    "%NOW% and %NOW%",
			expected: "2026-03-14_15-09-26 and 2026-03-14_15-09-26",
		},
		{
			name:     "text without placeholders is untouched",
			input:    "list 'C:/100% done'",
			expected: "list 'C:/100% done'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, exp.Expand(tt.input))
		})
	}
}

// A single context must yield identical timestamps across every step of a
// macro run, even when the steps expand at different wall-clock times.
func TestExpand_SharedContextIsStable(t *testing.T) {
	exp := NewExpansionContext()

	first := exp.Expand("echo %NOW%")
	time.Sleep(5 * time.Millisecond)
	second := exp.Expand("echo %NOW%")

	assert.Equal(t, first, second)
	assert.False(t, strings.Contains(first, "%NOW%"))
}
