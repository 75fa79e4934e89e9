package cmd

// Exit codes for tokenscrub CLI
const (
	// ExitSuccess indicates the document was rewritten and is valid JSON
	ExitSuccess = 0

	// ExitIOError indicates the document could not be read, written or locked
	ExitIOError = 1

	// ExitParseError indicates the document is not valid JSON after rewriting
	ExitParseError = 2

	// ExitConfigError indicates a configuration or rule error
	ExitConfigError = 3

	// ExitUsageError indicates invalid CLI usage
	ExitUsageError = 64
)
