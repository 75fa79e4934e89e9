package config

import "github.com/abdul-hamid-achik/tokenscrub/packages/redact"

// DefaultDocumentPath is the collection export rewritten when no path is given
const DefaultDocumentPath = "postman/collections/Integration Testing.postman_collection.json"

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		DocumentPath:  DefaultDocumentPath,
		Placeholder:   redact.DefaultPlaceholder,
		Rules:         nil,
		Transactional: BoolPtr(true),
		SchemaPath:    "",
		Output:        OutputConsole,
		Verbose:       BoolPtr(false),
		NoColor:       BoolPtr(false),
	}
}

// IsDefault returns true if the config matches defaults
func (c *Config) IsDefault() bool {
	defaults := DefaultConfig()
	return c.DocumentPath == defaults.DocumentPath &&
		c.Placeholder == defaults.Placeholder &&
		len(c.Rules) == 0 &&
		c.GetTransactional() == defaults.GetTransactional() &&
		c.SchemaPath == defaults.SchemaPath &&
		c.Output == defaults.Output &&
		c.GetVerbose() == defaults.GetVerbose() &&
		c.GetNoColor() == defaults.GetNoColor()
}
