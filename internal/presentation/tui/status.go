package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// Status writes a one-line outcome, green when ok and red otherwise. Colors follow the
// terminal profile of w, so redirected output stays plain.
func Status(w io.Writer, ok bool, format string, args ...any) {
	out := termenv.NewOutput(w)
	mark, color := "✓", "#22c55e"
	if !ok {
		mark, color = "✗", "#ef4444"
	}
	line := out.String(mark + " " + fmt.Sprintf(format, args...)).Foreground(out.Color(color))
	fmt.Fprintln(w, line)
}
