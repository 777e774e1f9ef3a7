package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Validate checks required fields and directory relationships.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Title) == "" {
		errs = append(errs, errors.New("title is required"))
	}
	if strings.TrimSpace(c.Tagline) == "" {
		errs = append(errs, errors.New("tagline is required"))
	}
	if strings.TrimSpace(c.Domain) == "" {
		errs = append(errs, errors.New("domain is required"))
	}
	if c.Serve.Port < 0 || c.Serve.Port > 65535 {
		errs = append(errs, fmt.Errorf("serve.port out of range: %d", c.Serve.Port))
	}
	if c.Serve.Debounce.Duration < 0 {
		errs = append(errs, fmt.Errorf("serve.debounce must not be negative: %s", c.Serve.Debounce))
	}

	// The output root is replaced on every pass, so it must never hold the sources.
	out := filepath.Clean(c.OutputPath())
	root := filepath.Clean(c.Root)
	if c.Root != "" && out == root {
		errs = append(errs, fmt.Errorf("output_dir %q must not be the site root", out))
	}
	sources := []struct{ name, dir string }{
		{"content_dir", c.ContentPath()},
		{"template_dir", c.TemplatePath()},
	}
	for _, src := range sources {
		if within(filepath.Clean(src.dir), out) {
			errs = append(errs, fmt.Errorf("%s %q must not be inside output_dir %q", src.name, src.dir, out))
		}
	}
	for _, src := range sources {
		if within(out, filepath.Clean(src.dir)) {
			errs = append(errs, fmt.Errorf("output_dir %q must not be inside %s", out, src.name))
		}
	}
	return errors.Join(errs...)
}

// within reports whether path equals root or is nested beneath it.
func within(path, root string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
