package config

import (
	"fmt"
	"io"
	"os"
)

var exit = os.Exit

// Exitf writes a formatted error message to stderr and exits with code 1.
// CLI entry points use it as the single place a process is terminated; the
// packages below them only return errors.
func Exitf(format string, args ...any) {
	exitf(os.Stderr, 1, format, args...)
}

// ExitCodef is Exitf with an explicit exit code.
func ExitCodef(code int, format string, args ...any) {
	exitf(os.Stderr, code, format, args...)
}

func exitf(w io.Writer, code int, format string, args ...any) {
	fmt.Fprintf(w, format+"\n", args...)
	exit(code)
}
