package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/abdul-hamid-achik/tokenscrub/packages/redact"
	"github.com/abdul-hamid-achik/tokenscrub/packages/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *redact.Result {
	return &redact.Result{
		Path:        "collection.json",
		Placeholder: "{{admin_token}}",
		Replacements: []redact.Replacement{
			{Rule: redact.RuleBearerHeader, Count: 3},
			{Rule: redact.RuleBearerAuth, Count: 2},
		},
		Total:    5,
		Written:  true,
		Valid:    true,
		Summary:  validate.Summary{Name: "Integration Testing", Requests: 12, Folders: 3},
		Duration: 4 * time.Millisecond,
	}
}

func TestConsoleFormatter_Redaction(t *testing.T) {
	var buf bytes.Buffer
	f := NewConsoleFormatter(WithWriter(&buf), WithNoColor(true))

	f.FormatRedaction(sampleResult())

	assert.Equal(t, "✅ Replaced all hardcoded tokens with {{admin_token}}\n✅ JSON is still valid\n", buf.String())
}

func TestConsoleFormatter_RedactionVerbose(t *testing.T) {
	var buf bytes.Buffer
	f := NewConsoleFormatter(WithWriter(&buf), WithNoColor(true), WithVerbose(true))

	f.FormatRedaction(sampleResult())

	out := buf.String()
	assert.Contains(t, out, "bearer-header (3)")
	assert.Contains(t, out, "bearer-auth (2)")
	assert.Contains(t, out, "Collection: Integration Testing")
	assert.Contains(t, out, "Requests:   12 (3 folders)")
	assert.True(t, strings.HasPrefix(out, "✅ Replaced all hardcoded tokens with {{admin_token}}\n"))
}

func TestConsoleFormatter_DryRunAndUnchanged(t *testing.T) {
	var buf bytes.Buffer
	f := NewConsoleFormatter(WithWriter(&buf), WithNoColor(true))

	dry := sampleResult()
	dry.Written = false
	dry.DryRun = true
	f.FormatRedaction(dry)
	assert.Contains(t, buf.String(), "Would replace 5 hardcoded tokens with {{admin_token}} (dry run)")

	buf.Reset()
	unchanged := sampleResult()
	unchanged.Written = false
	unchanged.Total = 0
	f.FormatRedaction(unchanged)
	assert.Contains(t, buf.String(), "No hardcoded tokens found in collection.json")
	assert.Contains(t, buf.String(), "JSON is still valid")
}

func TestConsoleFormatter_CustomRulesOmitPlaceholder(t *testing.T) {
	var buf bytes.Buffer
	f := NewConsoleFormatter(WithWriter(&buf), WithNoColor(true))

	result := sampleResult()
	result.Placeholder = ""
	f.FormatRedaction(result)
	assert.Equal(t, "✅ Replaced all hardcoded tokens\n✅ JSON is still valid\n", buf.String())

	buf.Reset()
	result.Written = false
	result.DryRun = true
	f.FormatRedaction(result)
	assert.Contains(t, buf.String(), "Would replace 5 hardcoded tokens (dry run)")
}

func TestConsoleFormatter_VerificationAndError(t *testing.T) {
	var out, errOut bytes.Buffer
	f := NewConsoleFormatter(WithWriter(&out), WithErrWriter(&errOut), WithNoColor(true))

	f.FormatVerification(sampleResult())
	f.FormatError(errors.New("boom"))
	require.NoError(t, f.Flush())

	assert.Equal(t, "✅ collection.json is valid JSON\n", out.String())
	assert.Equal(t, "Error: boom\n", errOut.String())
}

func TestJSONFormatter(t *testing.T) {
	var out, errOut bytes.Buffer
	f := NewJSONFormatter(JSONWithWriter(&out), JSONWithErrWriter(&errOut))

	f.FormatRedaction(sampleResult())
	assert.Empty(t, out.String(), "nothing is written before Flush")
	require.NoError(t, f.Flush())

	var got JSONOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.NotEmpty(t, got.RunID)
	assert.Equal(t, "redact", got.Operation)
	assert.Equal(t, "collection.json", got.Path)
	assert.Equal(t, 5, got.Total)
	assert.True(t, got.Written)
	assert.True(t, got.Valid)
	assert.Len(t, got.Replacements, 2)
	require.NotNil(t, got.Collection)
	assert.Equal(t, 12, got.Collection.Requests)

	f.FormatError(errors.New("boom"))
	require.NoError(t, f.Flush())
	require.NoError(t, json.Unmarshal(errOut.Bytes(), &got))
	assert.Equal(t, "error", got.Operation)
	assert.Equal(t, "boom", got.Error)
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	_, ok := New("json", &buf, &buf, false, true).(*JSONFormatter)
	assert.True(t, ok)

	_, ok = New("console", &buf, &buf, false, true).(*ConsoleFormatter)
	assert.True(t, ok)
}
