package cmd

import (
	"io"

	"github.com/charmbracelet/log"
)

// newLogger returns a stderr logger. Only warnings and errors are shown
// unless verbose is set, so the default output stays two lines.
func newLogger(w io.Writer, verbose bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Prefix:          "tokenscrub",
		ReportTimestamp: verbose,
		TimeFormat:      "15:04:05",
		Level:           log.WarnLevel,
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
