package cli

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// PrintError writes err to w, marking it with an emoji when w is a terminal.
func PrintError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %v\n", errorPrefix(w), err)
}

func errorPrefix(w io.Writer) string {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "❌ Error:"
	}
	return "Error:"
}
