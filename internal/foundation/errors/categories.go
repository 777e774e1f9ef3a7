package errors

import "maps"

// ErrorCategory classifies a failure by the stage of the pipeline that produced it.
type ErrorCategory string

const (
	// CategoryConfig covers site configuration loading and validation.
	CategoryConfig ErrorCategory = "config"

	// Content errors, raised per page.
	CategoryMalformedPage   ErrorCategory = "malformed_page"
	CategoryInvalidMetadata ErrorCategory = "invalid_metadata"

	// Output errors.
	CategoryPath     ErrorCategory = "path"
	CategoryCopy     ErrorCategory = "copy"
	CategoryIO       ErrorCategory = "io"
	CategoryTemplate ErrorCategory = "template"

	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates the impact level of an error.
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Aborts the build pass
	SeverityError   ErrorSeverity = "error"   // Fails the current operation
	SeverityWarning ErrorSeverity = "warning" // Reported, build continues
)

// ErrorContext provides structured context for errors.
type ErrorContext map[string]any

// Set adds or updates a context value.
func (c ErrorContext) Set(key string, value any) ErrorContext {
	if c == nil {
		c = make(ErrorContext)
	}
	c[key] = value
	return c
}

// Get retrieves a context value.
func (c ErrorContext) Get(key string) (any, bool) {
	if c == nil {
		return nil, false
	}
	value, exists := c[key]
	return value, exists
}

// GetString retrieves a string context value.
func (c ErrorContext) GetString(key string) (string, bool) {
	if value, exists := c.Get(key); exists {
		if str, ok := value.(string); ok {
			return str, true
		}
	}
	return "", false
}

// Merge combines two contexts, with other taking precedence.
func (c ErrorContext) Merge(other ErrorContext) ErrorContext {
	if c == nil {
		return other
	}
	if other == nil {
		return c
	}
	result := make(ErrorContext)
	maps.Copy(result, c)
	maps.Copy(result, other)
	return result
}
