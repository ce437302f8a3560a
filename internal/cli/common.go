package cli

import (
	"fmt"
	"io"
)

// CanceledMessage is printed when the user canceled an interactive command.
const CanceledMessage = "Action canceled."

// FormatError formats an error message for CLI output
func FormatError(err error) string {
	return fmt.Sprintf("Error: %v", err)
}

// FormatSuccess formats a success message for CLI output
func FormatSuccess(msg string) string {
	return fmt.Sprintf("✓ %s", msg)
}

// FormatWarning formats a warning message for CLI output
func FormatWarning(msg string) string {
	return fmt.Sprintf("⚠ %s", msg)
}

// PrintSuccess writes a success line unless quiet is set.
func PrintSuccess(out io.Writer, quiet bool, format string, args ...any) {
	if quiet {
		return
	}
	fmt.Fprintln(out, FormatSuccess(fmt.Sprintf(format, args...)))
}
