package redact

import (
	"errors"
	"fmt"
)

// Error kinds. Use errors.Is against these to classify a failure.
var (
	// ErrIO indicates the document could not be read, written or locked.
	ErrIO = errors.New("i/o error")

	// ErrParse indicates the document is not valid JSON after substitution.
	ErrParse = errors.New("parse error")

	// ErrConfig indicates an invalid rule or configuration value.
	ErrConfig = errors.New("config error")
)

// ErrEncoding is wrapped in an ErrIO error when the document is not UTF-8.
var ErrEncoding = errors.New("document is not valid UTF-8")

// Error describes a failed redaction step.
type Error struct {
	Kind error  // ErrIO, ErrParse or ErrConfig
	Op   string // step that failed, e.g. "read", "write", "validate"
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the error's kind.
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

// IOError wraps err as a read, write or filesystem failure.
func IOError(op, path string, err error) error {
	return ioError(op, path, err)
}

func ioError(op, path string, err error) error {
	return &Error{Kind: ErrIO, Op: op, Path: path, Err: err}
}

func parseError(path string, err error) error {
	return &Error{Kind: ErrParse, Op: "validate", Path: path, Err: err}
}

// ConfigError wraps err as a configuration failure.
func ConfigError(op, path string, err error) error {
	return &Error{Kind: ErrConfig, Op: op, Path: path, Err: err}
}
