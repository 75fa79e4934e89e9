package output

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/abdul-hamid-achik/tokenscrub/packages/redact"
	"github.com/abdul-hamid-achik/tokenscrub/packages/validate"
	"github.com/google/uuid"
)

// JSONOutput represents one run in JSON form
type JSONOutput struct {
	RunID        string               `json:"runId"`
	Operation    string               `json:"operation"`
	Path         string               `json:"path,omitempty"`
	Placeholder  string               `json:"placeholder,omitempty"`
	Replacements []redact.Replacement `json:"replacements,omitempty"`
	Total        int                  `json:"total"`
	Written      bool                 `json:"written"`
	DryRun       bool                 `json:"dryRun,omitempty"`
	Valid        bool                 `json:"valid"`
	Collection   *validate.Summary    `json:"collection,omitempty"`
	Error        string               `json:"error,omitempty"`
	Duration     float64              `json:"duration"`
	Time         string               `json:"time"`
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	writer    io.Writer
	errWriter io.Writer
	pending   []JSONOutput
}

type JSONOption func(*JSONFormatter)

func NewJSONFormatter(opts ...JSONOption) *JSONFormatter {
	f := &JSONFormatter{
		writer:    os.Stdout,
		errWriter: os.Stderr,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func JSONWithWriter(w io.Writer) JSONOption {
	return func(f *JSONFormatter) {
		f.writer = w
	}
}

// JSONWithErrWriter sets where error reports are written.
func JSONWithErrWriter(w io.Writer) JSONOption {
	return func(f *JSONFormatter) {
		f.errWriter = w
	}
}

func (f *JSONFormatter) FormatRedaction(result *redact.Result) {
	f.pending = append(f.pending, newJSONOutput("redact", result))
}

func (f *JSONFormatter) FormatVerification(result *redact.Result) {
	f.pending = append(f.pending, newJSONOutput("verify", result))
}

func (f *JSONFormatter) FormatError(err error) {
	f.pending = append(f.pending, JSONOutput{
		RunID:     uuid.NewString(),
		Operation: "error",
		Error:     err.Error(),
		Time:      time.Now().Format(time.RFC3339),
	})
}

// Flush writes each buffered report as one JSON document. Error reports go
// to the error writer.
func (f *JSONFormatter) Flush() error {
	pending := f.pending
	f.pending = nil

	for _, out := range pending {
		w := f.writer
		if out.Error != "" {
			w = f.errWriter
		}
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(out); err != nil {
			return err
		}
	}
	return nil
}

func newJSONOutput(op string, result *redact.Result) JSONOutput {
	summary := result.Summary
	return JSONOutput{
		RunID:        uuid.NewString(),
		Operation:    op,
		Path:         result.Path,
		Placeholder:  result.Placeholder,
		Replacements: result.Replacements,
		Total:        result.Total,
		Written:      result.Written,
		DryRun:       result.DryRun,
		Valid:        result.Valid,
		Collection:   &summary,
		Duration:     float64(result.Duration.Milliseconds()),
		Time:         time.Now().Format(time.RFC3339),
	}
}
