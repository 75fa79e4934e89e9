// Package redact replaces hardcoded bearer tokens in a collection export
// with a template placeholder.
//
// A Redactor runs a fixed pipeline over a single document:
//   - read the file as UTF-8 text
//   - apply each substitution rule globally, in order
//   - write the result back to the same path
//   - re-read the written file and check it is still valid JSON
//
// Substitution is textual. Everything outside the matched substrings is
// preserved byte for byte, including indentation and key order.
package redact
