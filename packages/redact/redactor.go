package redact

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/abdul-hamid-achik/tokenscrub/packages/validate"
	"github.com/charmbracelet/log"
	"github.com/gofrs/flock"
)

const (
	lockSuffix     = ".lock"
	lockRetryDelay = 50 * time.Millisecond
)

// Result describes one run over a document.
type Result struct {
	Path         string
	Placeholder  string // empty when custom rules are in use
	Replacements []Replacement
	Total        int
	Written      bool
	DryRun       bool
	Valid        bool
	Summary      validate.Summary
	Duration     time.Duration
}

// Redactor applies a Ruleset to collection documents.
type Redactor struct {
	rules         *Ruleset
	placeholder   string
	transactional bool
	dryRun        bool
	skipUnchanged bool
	schemaPath    string
	logger        *log.Logger
}

// Option is a functional option for Redactor.
type Option func(*Redactor)

// WithPlaceholder sets the placeholder name reported in results. An empty
// name reports no placeholder, for rules that write their own replacements.
func WithPlaceholder(name string) Option {
	return func(r *Redactor) {
		r.placeholder = name
	}
}

// WithTransactional selects how the document is written. When true (the
// default) the output is written to a temporary file, validated there and
// renamed over the original, so a failed run leaves the document untouched.
// When false the document is overwritten first and validated afterwards.
func WithTransactional(t bool) Option {
	return func(r *Redactor) {
		r.transactional = t
	}
}

// WithDryRun validates the substituted text in memory and writes nothing.
func WithDryRun(d bool) Option {
	return func(r *Redactor) {
		r.dryRun = d
	}
}

// WithSkipUnchanged skips the write when no rule matched.
func WithSkipUnchanged(s bool) Option {
	return func(r *Redactor) {
		r.skipUnchanged = s
	}
}

// WithSchema validates the result against a JSON Schema file.
func WithSchema(path string) Option {
	return func(r *Redactor) {
		r.schemaPath = path
	}
}

// WithLogger sets the logger for progress messages.
func WithLogger(l *log.Logger) Option {
	return func(r *Redactor) {
		r.logger = l
	}
}

// New creates a Redactor for the given rules.
func New(rules *Ruleset, opts ...Option) *Redactor {
	r := &Redactor{
		rules:         rules,
		placeholder:   DefaultPlaceholder,
		transactional: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = log.New(io.Discard)
	}
	return r
}

// Redact replaces tokens in the document at path and verifies the written
// document is valid JSON.
func (r *Redactor) Redact(ctx context.Context, path string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, ioError("read", path, err)
	}
	start := time.Now()

	info, err := os.Stat(path)
	if err != nil {
		return nil, ioError("read", path, err)
	}
	if info.IsDir() {
		return nil, ioError("read", path, fs.ErrInvalid)
	}

	if !r.dryRun {
		unlock, err := r.lock(ctx, path)
		if err != nil {
			return nil, err
		}
		defer unlock()
	}

	original, err := readDocument(path)
	if err != nil {
		return nil, err
	}

	content, counts := r.rules.Apply(original)
	result := &Result{
		Path:         path,
		Placeholder:  r.placeholderRef(),
		Replacements: counts,
		DryRun:       r.dryRun,
	}
	for _, c := range counts {
		result.Total += c.Count
		r.logger.Debug("applied rule", "rule", c.Rule, "matches", c.Count)
	}

	switch {
	case r.dryRun:
		err = r.check(path, []byte(content), result)
	case r.skipUnchanged && result.Total == 0:
		r.logger.Debug("no tokens found, leaving document untouched", "path", path)
		err = r.check(path, []byte(original), result)
	case r.transactional:
		err = r.writeTransactional(path, content, info.Mode().Perm(), result)
	default:
		err = r.writeInPlace(path, content, info.Mode().Perm(), result)
	}
	if err != nil {
		return nil, err
	}

	result.Duration = time.Since(start)
	r.logger.Info("redacted document", "path", path, "replacements", result.Total, "written", result.Written)
	return result, nil
}

// Verify runs only the validation step against the document at path.
func (r *Redactor) Verify(ctx context.Context, path string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, ioError("read", path, err)
	}
	start := time.Now()

	content, err := readDocument(path)
	if err != nil {
		return nil, err
	}

	result := &Result{Path: path, Placeholder: r.placeholderRef()}
	if err := r.check(path, []byte(content), result); err != nil {
		return nil, err
	}
	result.Duration = time.Since(start)
	return result, nil
}

func (r *Redactor) placeholderRef() string {
	if r.placeholder == "" {
		return ""
	}
	return Placeholder(r.placeholder)
}

func (r *Redactor) lock(ctx context.Context, path string) (func(), error) {
	fl := flock.New(path + lockSuffix)
	locked, err := fl.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, ioError("lock", path, err)
	}
	if !locked {
		return nil, ioError("lock", path, context.Canceled)
	}
	r.logger.Debug("acquired document lock", "lock", fl.Path())

	// The lock file is left in place. Removing it would let a run that is
	// already waiting on the old inode and a new run on a fresh file both
	// hold the lock.
	return func() {
		if err := fl.Unlock(); err != nil {
			r.logger.Warn("failed to release lock", "lock", fl.Path(), "err", err)
		}
	}, nil
}

// writeInPlace overwrites the document, then re-reads and validates it.
// A validation failure leaves the overwritten document on disk.
func (r *Redactor) writeInPlace(path, content string, mode fs.FileMode, result *Result) error {
	if err := os.WriteFile(path, []byte(content), mode); err != nil {
		return ioError("write", path, err)
	}
	result.Written = true
	r.logger.Debug("wrote document in place", "path", path, "bytes", len(content))

	written, err := readDocument(path)
	if err != nil {
		return err
	}
	return r.check(path, []byte(written), result)
}

// writeTransactional writes to a temporary file next to the document,
// validates it and renames it into place. The temporary file is removed on
// every failure path.
func (r *Redactor) writeTransactional(path, content string, mode fs.FileMode, result *Result) (err error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return ioError("write", path, err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err = tmp.WriteString(content); err != nil {
		_ = tmp.Close()
		return ioError("write", tmpPath, err)
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return ioError("write", tmpPath, err)
	}
	if err = tmp.Close(); err != nil {
		return ioError("write", tmpPath, err)
	}
	if err = os.Chmod(tmpPath, mode); err != nil {
		return ioError("write", tmpPath, err)
	}
	r.logger.Debug("wrote temporary document", "tmp", tmpPath, "bytes", len(content))

	written, err := readDocument(tmpPath)
	if err != nil {
		return err
	}
	if err = r.check(path, []byte(written), result); err != nil {
		return err
	}

	if err = os.Rename(tmpPath, path); err != nil {
		return ioError("rename", path, err)
	}
	result.Written = true
	return nil
}

// check validates data and fills in the document summary.
func (r *Redactor) check(path string, data []byte, result *Result) error {
	if err := validate.Syntax(data); err != nil {
		return parseError(path, err)
	}
	if r.schemaPath != "" {
		if err := validate.Schema(data, r.schemaPath); err != nil {
			var schemaErr *validate.SchemaError
			if errors.As(err, &schemaErr) {
				return parseError(path, err)
			}
			return ConfigError("load schema", r.schemaPath, err)
		}
		r.logger.Debug("document matches schema", "schema", r.schemaPath)
	}
	result.Valid = true
	result.Summary = validate.Summarize(data)
	return nil
}

func readDocument(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", ioError("read", path, err)
	}
	if !utf8.Valid(data) {
		return "", ioError("read", path, ErrEncoding)
	}
	return string(data), nil
}
