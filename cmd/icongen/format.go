package main

import (
	"os"

	"golang.org/x/term"
)

// Colors used for status text when stdout is a terminal.
const (
	colorDefault = "\x1b[0m"
	colorStatus  = "\x1b[36m"
	colorSuccess = "\x1b[32m"
	colorError   = "\x1b[31m"
)

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// decorate wraps s in the given color, or returns it unchanged when output
// is redirected to a file or pipe.
func decorate(s, color string) string {
	if !stdoutIsTerminal() {
		return s
	}
	return color + s + colorDefault
}
