package platform

import (
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// IsTerminal reports whether out is an interactive terminal that understands
// escape sequences.
func IsTerminal(out io.Writer) bool {
	file, ok := out.(*os.File)
	if !ok {
		return false
	}
	if !term.IsTerminal(int(file.Fd())) {
		return false
	}
	name := strings.TrimSpace(os.Getenv("TERM"))
	return name != "dumb"
}

// TerminalWidth returns the column count of out, or 0 when out is not a
// terminal.
func TerminalWidth(out io.Writer) int {
	file, ok := out.(*os.File)
	if !ok {
		return 0
	}
	width, _, err := term.GetSize(int(file.Fd()))
	if err != nil || width <= 0 {
		return 0
	}
	return width
}
