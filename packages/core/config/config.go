package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/abdul-hamid-achik/tokenscrub/packages/redact"
	"gopkg.in/yaml.v3"
)

// Output formats
const (
	OutputConsole = "console"
	OutputJSON    = "json"
)

// Config represents the tokenscrub configuration
type Config struct {
	DocumentPath  string        `json:"documentPath,omitempty" yaml:"documentPath,omitempty"`
	Placeholder   string        `json:"placeholder,omitempty" yaml:"placeholder,omitempty"` // template variable name, without braces
	Rules         []redact.Rule `json:"rules,omitempty" yaml:"rules,omitempty"`             // replaces the default rules when set
	Transactional *bool         `json:"transactional,omitempty" yaml:"transactional,omitempty"`
	SchemaPath    string        `json:"schemaPath,omitempty" yaml:"schemaPath,omitempty"`
	Output        string        `json:"output,omitempty" yaml:"output,omitempty"`
	Verbose       *bool         `json:"verbose,omitempty" yaml:"verbose,omitempty"`
	NoColor       *bool         `json:"noColor,omitempty" yaml:"noColor,omitempty"`
}

// BoolPtr returns a pointer to a bool value
func BoolPtr(b bool) *bool {
	return &b
}

// getBool returns the value of a bool pointer, or the default if nil
func getBool(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}

// GetTransactional returns the transactional write setting, defaulting to true
func (c *Config) GetTransactional() bool {
	return getBool(c.Transactional, true)
}

// GetVerbose returns the verbose setting, defaulting to false
func (c *Config) GetVerbose() bool {
	return getBool(c.Verbose, false)
}

// GetNoColor returns the no color setting, defaulting to false
func (c *Config) GetNoColor() bool {
	return getBool(c.NoColor, false)
}

// EffectiveRules returns the configured rules, or the default rules for the
// configured placeholder.
func (c *Config) EffectiveRules() []redact.Rule {
	if len(c.Rules) > 0 {
		return c.Rules
	}
	return redact.DefaultRules(c.Placeholder)
}

// Validate checks values that cannot be caught by decoding
func (c *Config) Validate() error {
	if c.DocumentPath == "" {
		return fmt.Errorf("documentPath must not be empty")
	}
	if strings.ContainsAny(c.Placeholder, "{} \t\n") {
		return fmt.Errorf("placeholder %q must be a bare variable name", c.Placeholder)
	}
	switch c.Output {
	case "", OutputConsole, OutputJSON:
	default:
		return fmt.Errorf("unknown output format %q (want %s or %s)", c.Output, OutputConsole, OutputJSON)
	}
	return nil
}

// ConfigFilenames contains the possible config file names
var ConfigFilenames = []string{
	".tokenscrub.json",
	"tokenscrub.config.json",
	".tokenscrub.yaml",
	".tokenscrub.yml",
}

// LoadConfig loads configuration from the specified path or searches for config files
func LoadConfig(path string) (*Config, error) {
	if path != "" {
		return loadConfigFromFile(path)
	}

	// Search for config file in current directory
	return FindAndLoadConfig(".")
}

// FindAndLoadConfig searches for a config file in the given directory
func FindAndLoadConfig(dir string) (*Config, error) {
	for _, filename := range ConfigFilenames {
		configPath := filepath.Join(dir, filename)
		if _, err := os.Stat(configPath); err == nil {
			return loadConfigFromFile(configPath)
		}
	}

	// Return defaults if no config file found
	return DefaultConfig(), nil
}

// loadConfigFromFile loads configuration from a specific file
func loadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	fileConfig := &Config{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, fileConfig)
	default:
		err = json.Unmarshal(data, fileConfig)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return DefaultConfig().Merge(fileConfig), nil
}

// Merge merges another config into this one, with other taking precedence
func (c *Config) Merge(other *Config) *Config {
	if other == nil {
		return c
	}

	result := *c // Copy

	if other.DocumentPath != "" {
		result.DocumentPath = other.DocumentPath
	}
	if other.Placeholder != "" {
		result.Placeholder = other.Placeholder
	}
	if other.SchemaPath != "" {
		result.SchemaPath = other.SchemaPath
	}
	if other.Output != "" {
		result.Output = other.Output
	}

	// Boolean flags - only override if explicitly set in other config
	if other.Transactional != nil {
		result.Transactional = other.Transactional
	}
	if other.Verbose != nil {
		result.Verbose = other.Verbose
	}
	if other.NoColor != nil {
		result.NoColor = other.NoColor
	}

	// Rules replace rather than append
	if len(other.Rules) > 0 {
		result.Rules = append([]redact.Rule(nil), other.Rules...)
	}

	return &result
}

// SaveConfig saves the configuration to a file
func (c *Config) SaveConfig(path string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
