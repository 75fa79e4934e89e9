// Package validate checks collection documents.
//
// Syntax checks that a document is a single well-formed JSON value and
// reports the line and column of the first error. Schema optionally checks
// the document against a JSON Schema file, such as the Postman collection
// v2.1 schema. Summarize extracts the collection name and request counts.
package validate
