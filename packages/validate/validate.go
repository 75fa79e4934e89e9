package validate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/xeipuuv/gojsonschema"
)

// SyntaxError reports where a document stops being valid JSON.
type SyntaxError struct {
	Offset int64 // byte offset of the error
	Line   int   // 1-based
	Column int   // 1-based, in bytes
	Msg    string
}

func (e *SyntaxError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("invalid JSON: %s", e.Msg)
	}
	return fmt.Sprintf("invalid JSON at line %d, column %d: %s", e.Line, e.Column, e.Msg)
}

// SchemaError lists the schema violations of a document.
type SchemaError struct {
	Schema     string
	Violations []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("document does not match schema %s: %s", e.Schema, strings.Join(e.Violations, "; "))
}

// Syntax returns nil if data is a single valid JSON value, otherwise a
// *SyntaxError.
func Syntax(data []byte) error {
	var v any
	err := json.Unmarshal(data, &v)
	if err == nil {
		return nil
	}

	var synErr *json.SyntaxError
	if errors.As(err, &synErr) {
		line, col := position(data, synErr.Offset)
		return &SyntaxError{Offset: synErr.Offset, Line: line, Column: col, Msg: synErr.Error()}
	}
	return &SyntaxError{Msg: err.Error()}
}

func position(data []byte, offset int64) (line, col int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	before := data[:offset]
	line = bytes.Count(before, []byte("\n")) + 1
	col = int(offset) - (bytes.LastIndexByte(before, '\n') + 1)
	if col == 0 {
		col = 1
	}
	return line, col
}

// Schema validates data against the JSON Schema stored at schemaPath.
func Schema(data []byte, schemaPath string) error {
	schemaData, err := os.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("failed to read schema file: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaData),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if result.Valid() {
		return nil
	}

	violations := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		violations = append(violations, desc.String())
	}
	return &SchemaError{Schema: filepath.Base(schemaPath), Violations: violations}
}

// Summary describes the collection held in a document.
type Summary struct {
	Name     string `json:"name,omitempty"`
	Requests int    `json:"requests"`
	Folders  int    `json:"folders"`
}

// Summarize reads the collection name and counts requests and folders,
// descending into nested "item" arrays. data must be valid JSON.
func Summarize(data []byte) Summary {
	s := Summary{Name: gjson.GetBytes(data, "info.name").String()}
	countItems(gjson.GetBytes(data, "item"), &s)
	return s
}

func countItems(items gjson.Result, s *Summary) {
	if !items.IsArray() {
		return
	}
	items.ForEach(func(_, item gjson.Result) bool {
		if item.Get("request").Exists() {
			s.Requests++
		}
		if nested := item.Get("item"); nested.IsArray() {
			s.Folders++
			countItems(nested, s)
		}
		return true
	})
}
