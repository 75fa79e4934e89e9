// Package cmd implements the tokenscrub CLI commands using Cobra.
//
// Available commands:
//   - (root): Replace hardcoded bearer tokens in a collection and validate it
//   - verify: Check a collection is valid JSON without rewriting it
//   - rules: Print the substitution rules that would be applied
//   - init: Write a config file with the default settings
//   - version: Show tokenscrub version information
//
// The root command supports dry runs, in-place (non-transactional) writes,
// JSON output and a watch mode that re-runs on every new export.
package cmd
