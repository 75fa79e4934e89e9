package output

import (
	"fmt"
	"io"
	"os"

	"github.com/abdul-hamid-achik/tokenscrub/packages/redact"
	"github.com/fatih/color"
)

type ConsoleFormatter struct {
	writer    io.Writer
	errWriter io.Writer
	verbose   bool
	noColor   bool
}

type ConsoleOption func(*ConsoleFormatter)

func NewConsoleFormatter(opts ...ConsoleOption) *ConsoleFormatter {
	f := &ConsoleFormatter{
		writer:    os.Stdout,
		errWriter: os.Stderr,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.noColor {
		color.NoColor = true
	}
	return f
}

func WithWriter(w io.Writer) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.writer = w
	}
}

// WithErrWriter sets where errors are written.
func WithErrWriter(w io.Writer) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.errWriter = w
	}
}

func WithVerbose(v bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.verbose = v
	}
}

func WithNoColor(nc bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.noColor = nc
	}
}

// FormatRedaction prints one confirmation line after substitution and one
// after validation.
func (f *ConsoleFormatter) FormatRedaction(result *redact.Result) {
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	with := ""
	if result.Placeholder != "" {
		with = " with " + result.Placeholder
	}

	switch {
	case result.DryRun:
		fmt.Fprintf(f.writer, "%s\n", yellow(fmt.Sprintf("✅ Would replace %d hardcoded tokens%s (dry run)", result.Total, with)))
	case !result.Written:
		fmt.Fprintf(f.writer, "%s\n", yellow(fmt.Sprintf("✅ No hardcoded tokens found in %s", result.Path)))
	default:
		fmt.Fprintf(f.writer, "%s\n", green("✅ Replaced all hardcoded tokens"+with))
	}
	if f.verbose {
		f.formatCounts(result)
	}

	if result.Valid {
		fmt.Fprintf(f.writer, "%s\n", green("✅ JSON is still valid"))
	}
	if f.verbose {
		f.formatSummary(result)
	}
}

func (f *ConsoleFormatter) FormatVerification(result *redact.Result) {
	green := color.New(color.FgGreen).SprintFunc()

	if result.Valid {
		fmt.Fprintf(f.writer, "%s\n", green(fmt.Sprintf("✅ %s is valid JSON", result.Path)))
	}
	if f.verbose {
		f.formatSummary(result)
	}
}

func (f *ConsoleFormatter) formatCounts(result *redact.Result) {
	cyan := color.New(color.FgCyan).SprintFunc()
	for _, r := range result.Replacements {
		fmt.Fprintf(f.writer, "    %s %s\n", r.Rule, cyan(fmt.Sprintf("(%d)", r.Count)))
	}
}

func (f *ConsoleFormatter) formatSummary(result *redact.Result) {
	s := result.Summary
	if s.Name != "" {
		fmt.Fprintf(f.writer, "    Collection: %s\n", s.Name)
	}
	fmt.Fprintf(f.writer, "    Requests:   %d (%d folders)\n", s.Requests, s.Folders)
	fmt.Fprintf(f.writer, "    Time:       %dms\n", result.Duration.Milliseconds())
}

func (f *ConsoleFormatter) FormatError(err error) {
	red := color.New(color.FgRed).SprintFunc()
	fmt.Fprintf(f.errWriter, "%s %v\n", red("Error:"), err)
}

// Flush is a no-op; console output is written as it is produced.
func (f *ConsoleFormatter) Flush() error {
	return nil
}
