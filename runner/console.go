package runner

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Delimiter frames the echoed response on the console.
const Delimiter = "============================================"

var delimiterStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#928374"))

// Console writes the user-facing output of a run. Only the delimiter lines
// are ever styled; the response text is written byte for byte.
type Console struct {
	w      io.Writer
	styled bool
}

// NewConsole writes to w. Styling is enabled when w is a terminal.
func NewConsole(w io.Writer) *Console {
	if w == nil {
		w = io.Discard
	}
	c := &Console{w: w}
	if f, ok := w.(*os.File); ok {
		c.styled = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return c
}

func (c *Console) delimiter() string {
	if c.styled {
		return delimiterStyle.Render(Delimiter)
	}
	return Delimiter
}

// Response echoes text between two delimiter lines.
func (c *Console) Response(text string) {
	fmt.Fprintln(c.w, c.delimiter())
	fmt.Fprintln(c.w, text)
	fmt.Fprintln(c.w, c.delimiter())
	fmt.Fprintln(c.w)
}

// Printf writes a plain status line.
func (c *Console) Printf(format string, args ...any) {
	fmt.Fprintf(c.w, format+"\n", args...)
}
