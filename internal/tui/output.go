package tui

import (
	"io"
)

// Output renders command results either styled for a terminal or as JSON.
type Output interface {
	// Success prints a success message.
	Success(msg string)
	// Error prints an error with its user-facing message and suggested action.
	Error(err error)
	// Warning prints a warning message.
	Warning(msg string)
	// Info prints an informational message.
	Info(msg string)
	// Result prints one action result.
	Result(v ResultView)
	// Run prints the summary of a processed action list.
	Run(v RunView)
	// Status prints the status report.
	Status(v StatusView)
	// JSON outputs a value as JSON.
	JSON(v any) error
}

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// NewOutput creates the appropriate output based on format.
func NewOutput(w io.Writer, format string) Output {
	if format == FormatJSON {
		return NewJSONOutput(w)
	}
	return NewTTYOutput(w)
}
