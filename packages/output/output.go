package output

import (
	"io"

	"github.com/abdul-hamid-achik/tokenscrub/packages/redact"
)

// Formatter renders redaction results.
type Formatter interface {
	FormatRedaction(result *redact.Result)
	FormatVerification(result *redact.Result)
	FormatError(err error)
	// Flush writes anything the formatter has buffered.
	Flush() error
}

// New returns the formatter for the named output format, writing results to
// out and errors to errOut.
func New(format string, out, errOut io.Writer, verbose, noColor bool) Formatter {
	if format == "json" {
		return NewJSONFormatter(JSONWithWriter(out), JSONWithErrWriter(errOut))
	}
	return NewConsoleFormatter(
		WithWriter(out),
		WithErrWriter(errOut),
		WithVerbose(verbose),
		WithNoColor(noColor),
	)
}
