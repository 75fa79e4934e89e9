package redact

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var authIndent = strings.Repeat(" ", 22)

func TestApply_DefaultRules(t *testing.T) {
	rules := MustCompile(DefaultRules(""))

	tests := []struct {
		name     string
		input    string
		expected string
		counts   map[string]int
	}{
		{
			name:     "bearer header value",
			input:    `{"value": "Bearer eyJabc123.def456.ghi789", "other": 1}`,
			expected: `{"value": "Bearer {{admin_token}}", "other": 1}`,
			counts:   map[string]int{RuleBearerHeader: 1, RuleBearerAuth: 0},
		},
		{
			name:     "bearer auth block",
			input:    "\"value\": \"eyJtoken999\",\n  \"type\": \"string\"",
			expected: "\"value\": \"{{admin_token}}\",\n" + authIndent + "\"type\": \"string\"",
			counts:   map[string]int{RuleBearerHeader: 0, RuleBearerAuth: 1},
		},
		{
			name:     "auth block on one line",
			input:    `{"value": "eyJtoken999", "type": "string"}`,
			expected: "{\"value\": \"{{admin_token}}\",\n" + authIndent + "\"type\": \"string\"}",
			counts:   map[string]int{RuleBearerHeader: 0, RuleBearerAuth: 1},
		},
		{
			name:     "every occurrence is replaced",
			input:    `[{"value": "Bearer eyJa", "k": 1}, {"value": "Bearer eyJb", "k": 2}]`,
			expected: `[{"value": "Bearer {{admin_token}}", "k": 1}, {"value": "Bearer {{admin_token}}", "k": 2}]`,
			counts:   map[string]int{RuleBearerHeader: 2, RuleBearerAuth: 0},
		},
		{
			name:     "token without eyJ prefix is untouched",
			input:    `{"value": "Bearer abc.def.ghi", "other": 1}`,
			expected: `{"value": "Bearer abc.def.ghi", "other": 1}`,
			counts:   map[string]int{RuleBearerHeader: 0, RuleBearerAuth: 0},
		},
		{
			name:     "header value without trailing comma is untouched",
			input:    `{"value": "Bearer eyJabc"}`,
			expected: `{"value": "Bearer eyJabc"}`,
			counts:   map[string]int{RuleBearerHeader: 0, RuleBearerAuth: 0},
		},
		{
			name:     "standalone token not followed by a string type is untouched",
			input:    `{"value": "eyJabc", "type": "text"}`,
			expected: `{"value": "eyJabc", "type": "text"}`,
			counts:   map[string]int{RuleBearerHeader: 0, RuleBearerAuth: 0},
		},
		{
			name:     "already templated",
			input:    `{"value": "Bearer {{admin_token}}", "other": 1}`,
			expected: `{"value": "Bearer {{admin_token}}", "other": 1}`,
			counts:   map[string]int{RuleBearerHeader: 0, RuleBearerAuth: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, counts := rules.Apply(tt.input)
			assert.Equal(t, tt.expected, got)
			require.Len(t, counts, 2)
			for _, c := range counts {
				assert.Equal(t, tt.counts[c.Rule], c.Count, "rule %s", c.Rule)
			}
		})
	}
}

func TestApply_Idempotent(t *testing.T) {
	rules := MustCompile(DefaultRules(""))

	input := "{\n  \"header\": {\"value\": \"Bearer eyJx.y.z\", \"type\": \"text\"},\n" +
		"  \"auth\": {\"value\": \"eyJq.r.s\",\n    \"type\": \"string\"}\n}"

	once, _ := rules.Apply(input)
	twice, counts := rules.Apply(once)

	assert.Equal(t, once, twice)
	for _, c := range counts {
		assert.Zero(t, c.Count, "rule %s matched on second pass", c.Rule)
	}
}

func TestApply_RulesRunInOrder(t *testing.T) {
	rules := MustCompile([]Rule{
		{Name: "first", Pattern: `a`, Replacement: "b"},
		{Name: "second", Pattern: `b`, Replacement: "c"},
	})

	got, counts := rules.Apply("ab")
	assert.Equal(t, "cc", got)
	assert.Equal(t, []Replacement{{Rule: "first", Count: 1}, {Rule: "second", Count: 2}}, counts)
}

func TestApply_ReplacementIsLiteral(t *testing.T) {
	rules := MustCompile([]Rule{
		{Name: "dollar", Pattern: `(secret)`, Replacement: "$1-${1}"},
	})

	got, _ := rules.Apply("a secret")
	assert.Equal(t, "a $1-${1}", got)
}

func TestDefaultRules_Placeholder(t *testing.T) {
	rules := DefaultRules("api_token")
	require.Len(t, rules, 2)
	assert.Equal(t, `"value": "Bearer {{api_token}}",`, rules[0].Replacement)
	assert.True(t, strings.HasPrefix(rules[1].Replacement, `"value": "{{api_token}}",`+"\n"))

	assert.Equal(t, "{{admin_token}}", Placeholder(""))
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		name  string
		rules []Rule
		msg   string
	}{
		{name: "no rules", rules: nil, msg: "no rules"},
		{name: "missing name", rules: []Rule{{Pattern: "a"}}, msg: "missing name"},
		{name: "missing pattern", rules: []Rule{{Name: "r"}}, msg: "missing pattern"},
		{name: "invalid pattern", rules: []Rule{{Name: "r", Pattern: "("}}, msg: `rule "r"`},
		{
			name:  "duplicate name",
			rules: []Rule{{Name: "r", Pattern: "a"}, {Name: "r", Pattern: "b"}},
			msg:   "duplicate name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.rules)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrConfig)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestRuleset_Rules(t *testing.T) {
	defaults := DefaultRules("")
	rules := MustCompile(defaults)
	assert.Equal(t, defaults, rules.Rules())
}
