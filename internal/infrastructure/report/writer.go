// Package report prints human-readable console output for test and coverage
// runs.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#CA8A04")).Bold(true)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#DC2626")).Bold(true)
	totalStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#16A34A")).Bold(true)
)

// Writer renders progress and results to a terminal, with colors gated on TTY
// detection and NO_COLOR.
type Writer struct {
	Out io.Writer
}

func (w Writer) Header(text string) {
	rule := strings.Repeat("=", len(text))
	if w.colorEnabled() {
		text = headerStyle.Render(text)
	}
	fmt.Fprintf(w.Out, "\n%s\n%s\n", text, rule)
}

func (w Writer) Coverage(testType, percent string) {
	fmt.Fprintf(w.Out, "%s test coverage: %s\n", title(testType), percent)
}

func (w Writer) Total(percent string) {
	line := fmt.Sprintf("Total coverage: %s", percent)
	if w.colorEnabled() {
		line = totalStyle.Render(line)
	}
	fmt.Fprintln(w.Out, line)
}

func (w Writer) Warningf(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	if w.colorEnabled() {
		line = warnStyle.Render(line)
	}
	fmt.Fprintln(w.Out, line)
}

func (w Writer) Errorf(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	if w.colorEnabled() {
		line = errStyle.Render(line)
	}
	fmt.Fprintln(w.Out, line)
}

func (w Writer) Hintf(format string, args ...any) {
	fmt.Fprintf(w.Out, format+"\n", args...)
}

func (w Writer) colorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := w.Out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}

func title(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
