// Package output prints CLI status lines. Colors are used only when the
// destination is a terminal and NO_COLOR is unset.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Palette
const (
	ColorGreen = "154"
	ColorAmber = "220"
)

// Styles holds the status line styles.
type Styles struct {
	Success lipgloss.Style
	Warning lipgloss.Style
	Label   lipgloss.Style
}

// DefaultStyles returns the colored styles.
func DefaultStyles() Styles {
	return Styles{
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGreen)),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAmber)),
		Label:   lipgloss.NewStyle().Bold(true),
	}
}

// NoColorStyles returns unstyled components for plain output.
func NoColorStyles() Styles {
	return Styles{
		Success: lipgloss.NewStyle(),
		Warning: lipgloss.NewStyle(),
		Label:   lipgloss.NewStyle(),
	}
}

// Writer provides formatted output for the CLI.
type Writer struct {
	out    io.Writer
	styles Styles
	quiet  bool
}

// Option configures a Writer.
type Option func(*Writer)

// WithQuiet suppresses all output.
func WithQuiet(quiet bool) Option {
	return func(w *Writer) { w.quiet = quiet }
}

// New creates a Writer. Colors are enabled when out is a terminal.
func New(out io.Writer, opts ...Option) *Writer {
	w := &Writer{out: out, styles: NoColorStyles()}
	if IsTTY(out) && !DetectNoColor() {
		w.styles = DefaultStyles()
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Status prints a status line with an icon.
// Errors from writing are intentionally ignored for console output.
func (w *Writer) Status(icon, msg string) {
	if w.quiet {
		return
	}
	if icon != "" {
		_, _ = fmt.Fprintf(w.out, "%s %s\n", icon, msg)
	} else {
		_, _ = fmt.Fprintf(w.out, "  %s\n", msg)
	}
}

// Statusf prints a formatted status line.
func (w *Writer) Statusf(icon, format string, args ...any) {
	w.Status(icon, fmt.Sprintf(format, args...))
}

// Success prints a success line with a checkmark.
func (w *Writer) Success(msg string) {
	w.Status(w.styles.Success.Render("✓"), msg)
}

// Successf prints a formatted success line.
func (w *Writer) Successf(format string, args ...any) {
	w.Success(fmt.Sprintf(format, args...))
}

// Warning prints a warning line.
func (w *Writer) Warning(msg string) {
	w.Status(w.styles.Warning.Render("!"), msg)
}

// Warningf prints a formatted warning line.
func (w *Writer) Warningf(format string, args ...any) {
	w.Warning(fmt.Sprintf(format, args...))
}

// KeyValue prints an aligned "key: value" line.
func (w *Writer) KeyValue(key string, value any) {
	if w.quiet {
		return
	}
	_, _ = fmt.Fprintf(w.out, "  %s %v\n", w.styles.Label.Render(fmt.Sprintf("%-12s", key+":")), value)
}

// Newline prints an empty line.
func (w *Writer) Newline() {
	if w.quiet {
		return
	}
	_, _ = fmt.Fprintln(w.out)
}

// IsTTY checks if w is a terminal.
func IsTTY(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return false
}

// DetectNoColor checks if the NO_COLOR environment variable is set.
func DetectNoColor() bool {
	_, exists := os.LookupEnv("NO_COLOR")
	return exists
}
