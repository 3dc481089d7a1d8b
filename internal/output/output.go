// Package output provides styled console printing for CMC Shell.
// Styling degrades to plain text on terminals without color support.
package output

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var colorEnabled = termenv.DefaultOutput().Profile != termenv.Ascii

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("45"))
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("45"))
	panelStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("45")).
			Padding(0, 1)
)

func render(style lipgloss.Style, s string) string {
	if !colorEnabled {
		return s
	}
	return style.Render(s)
}

// Success formats a success message.
func Success(s string) string { return render(successStyle, s) }

// Warn formats a warning message.
func Warn(s string) string { return render(warnStyle, s) }

// Error formats an error message.
func Error(s string) string { return render(errorStyle, s) }

// Dim formats secondary text.
func Dim(s string) string { return render(dimStyle, s) }

// Accent formats highlighted text.
func Accent(s string) string { return render(accentStyle, s) }

// PanelTitle formats a short panel heading.
func PanelTitle(s string) string { return render(titleStyle, s) }

// Panel wraps content in a bordered box.
func Panel(content string) string {
	if !colorEnabled {
		return content
	}
	return panelStyle.Render(content)
}

// Println prints a line to stdout.
func Println(args ...any) {
	fmt.Fprintln(os.Stdout, args...)
}

// Printf prints formatted text to stdout.
func Printf(format string, args ...any) {
	fmt.Fprintf(os.Stdout, format, args...)
}
