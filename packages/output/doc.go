// Package output provides formatters for displaying redaction results.
//
// Supported output formats:
//   - Console: Human-readable colored terminal output
//   - JSON: Machine-readable JSON output, one document per run
//
// Each formatter implements the Formatter interface. Formatters that buffer
// results write them on Flush.
package output
