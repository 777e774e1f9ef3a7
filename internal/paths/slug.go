package paths

import (
	"errors"
	"strings"
)

var (
	ErrEmptySlug     = errors.New("slug must not be empty")
	ErrSlugSeparator = errors.New("slug must be a single path segment")
	ErrSlugDots      = errors.New("slug must not be . or ..")
)

// ValidateSlug ensures a slug stays inside its parent directory.
func ValidateSlug(slug string) error {
	switch {
	case strings.TrimSpace(slug) == "":
		return ErrEmptySlug
	case strings.ContainsAny(slug, `/\`):
		return ErrSlugSeparator
	case slug == "." || slug == "..":
		return ErrSlugDots
	}
	return nil
}
