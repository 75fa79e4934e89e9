package redact

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultPlaceholder is the template variable tokens are replaced with.
const DefaultPlaceholder = "admin_token"

// authTypeIndent is the indentation of the "type" key inside a bearer auth
// block of an exported collection.
const authTypeIndent = 22

// Rule names for DefaultRules.
const (
	RuleBearerHeader = "bearer-header"
	RuleBearerAuth   = "bearer-auth"
)

// Rule is a single textual substitution.
type Rule struct {
	Name string `json:"name" yaml:"name"`
	// Pattern is an RE2 regular expression.
	Pattern string `json:"pattern" yaml:"pattern"`
	// Replacement is inserted literally; "$" is not expanded.
	Replacement string `json:"replacement" yaml:"replacement"`
}

// Placeholder returns the template reference for a variable name.
func Placeholder(name string) string {
	if name == "" {
		name = DefaultPlaceholder
	}
	return "{{" + name + "}}"
}

// DefaultRules returns the two substitutions for tokens starting with "eyJ":
// header values of the form "Bearer <token>", and bearer auth blocks where
// the token value is followed by "type": "string".
func DefaultRules(placeholder string) []Rule {
	ref := Placeholder(placeholder)
	return []Rule{
		{
			Name:        RuleBearerHeader,
			Pattern:     `"value": "Bearer eyJ[^"]+",`,
			Replacement: `"value": "Bearer ` + ref + `",`,
		},
		{
			Name:        RuleBearerAuth,
			Pattern:     `"value": "eyJ[^"]+",\s*"type": "string"`,
			Replacement: `"value": "` + ref + `",` + "\n" + strings.Repeat(" ", authTypeIndent) + `"type": "string"`,
		},
	}
}

// Replacement counts the matches a rule replaced.
type Replacement struct {
	Rule  string `json:"rule"`
	Count int    `json:"count"`
}

type compiledRule struct {
	Rule
	re *regexp.Regexp
}

// Ruleset is an ordered list of compiled rules.
type Ruleset struct {
	rules []compiledRule
}

// Compile validates and compiles rules. The order of rules is kept.
func Compile(rules []Rule) (*Ruleset, error) {
	if len(rules) == 0 {
		return nil, ConfigError("compile rules", "", fmt.Errorf("no rules configured"))
	}

	rs := &Ruleset{rules: make([]compiledRule, 0, len(rules))}
	seen := make(map[string]bool, len(rules))
	for i, r := range rules {
		if r.Name == "" {
			return nil, ConfigError("compile rules", "", fmt.Errorf("rule %d: missing name", i+1))
		}
		if seen[r.Name] {
			return nil, ConfigError("compile rules", "", fmt.Errorf("rule %q: duplicate name", r.Name))
		}
		seen[r.Name] = true

		if r.Pattern == "" {
			return nil, ConfigError("compile rules", "", fmt.Errorf("rule %q: missing pattern", r.Name))
		}
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return nil, ConfigError("compile rules", "", fmt.Errorf("rule %q: %w", r.Name, err))
		}
		rs.rules = append(rs.rules, compiledRule{Rule: r, re: re})
	}
	return rs, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(rules []Rule) *Ruleset {
	rs, err := Compile(rules)
	if err != nil {
		panic(err)
	}
	return rs
}

// Rules returns the uncompiled rules in order.
func (rs *Ruleset) Rules() []Rule {
	out := make([]Rule, len(rs.rules))
	for i, r := range rs.rules {
		out[i] = r.Rule
	}
	return out
}

// Apply runs every rule over content, each one over the output of the
// previous, replacing all non-overlapping matches.
func (rs *Ruleset) Apply(content string) (string, []Replacement) {
	counts := make([]Replacement, 0, len(rs.rules))
	for _, r := range rs.rules {
		n := len(r.re.FindAllStringIndex(content, -1))
		if n > 0 {
			content = r.re.ReplaceAllLiteralString(content, r.Replacement)
		}
		counts = append(counts, Replacement{Rule: r.Name, Count: n})
	}
	return content, counts
}
