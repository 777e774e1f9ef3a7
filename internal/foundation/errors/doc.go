// Package errors provides the classified error primitives used across the site builder.
//
// Every failure surfaced to the operator is a ClassifiedError carrying a
// category from the build taxonomy (config, malformed_page, invalid_metadata,
// path, copy, io, template) and enough context (path, operation) to be
// printed directly.
//
// Example usage:
//
//	err := errors.MalformedPage("missing @Meta marker").
//		WithContext("path", path).
//		Build()
package errors
