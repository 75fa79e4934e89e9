// Package config handles configuration loading and management for tokenscrub.
//
// It provides functionality for:
//   - Loading configuration from .tokenscrub.json or .tokenscrub.yaml files
//   - Default configuration values (document path, placeholder, rules)
//   - Merging command-line overrides over file values
package config
