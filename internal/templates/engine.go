// Package templates loads a site's layout templates and renders them against
// named values.
//
// Every *.html file under the template root is parsed into one set and named
// by its slash-separated path relative to the root ("page.html",
// "partials/nav.html"), so templates can include each other by that name. The
// static/ subdirectory holds assets, not templates, and is skipped.
package templates

import (
	"bytes"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	ferrors "git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
)

const (
	// PageTemplate renders a single content page.
	PageTemplate = "page.html"
	// IndexTemplate renders a directory index.
	IndexTemplate = "index.html"
	// StaticDir is the asset directory inside the template root.
	StaticDir = "static"
)

// Renderer renders a named template with a set of named values.
type Renderer interface {
	Render(name string, data map[string]any) (string, error)
}

// Engine is a parsed template set. It is read-only after Load and safe for
// concurrent rendering.
type Engine struct {
	root string
	set  *template.Template
}

// Load parses every template under root.
func Load(root string) (*Engine, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryTemplate, "template directory is not readable").
			Fatal().WithPath(root).Build()
	}
	if !info.IsDir() {
		return nil, ferrors.TemplateError("template root is not a directory").WithPath(root).Build()
	}

	set := template.New("").Option("missingkey=error")
	walkErr := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(root, p)
		if relErr != nil {
			return relErr
		}
		if d.IsDir() {
			if rel == StaticDir {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(p) != ".html" {
			return nil
		}
		// #nosec G304 -- p comes from walking the configured template root.
		src, readErr := os.ReadFile(p)
		if readErr != nil {
			return readErr
		}
		if _, parseErr := set.New(filepath.ToSlash(rel)).Parse(string(src)); parseErr != nil {
			return ferrors.WrapError(parseErr, ferrors.CategoryTemplate, "template parse failed").
				Fatal().WithPath(p).Build()
		}
		return nil
	})
	if walkErr != nil {
		if ferrors.IsClassified(walkErr) {
			return nil, walkErr
		}
		return nil, ferrors.WrapError(walkErr, ferrors.CategoryTemplate, "template loading failed").
			Fatal().WithPath(root).Build()
	}
	return &Engine{root: root, set: set}, nil
}

// Root returns the directory the templates were loaded from.
func (e *Engine) Root() string { return e.root }

// Has reports whether a template called name was loaded.
func (e *Engine) Has(name string) bool {
	return e.set.Lookup(name) != nil
}

// Names lists the loaded template names in sorted order.
func (e *Engine) Names() []string {
	var names []string
	for _, t := range e.set.Templates() {
		if t.Name() != "" {
			names = append(names, t.Name())
		}
	}
	sort.Strings(names)
	return names
}

// Render executes the named template.
func (e *Engine) Render(name string, data map[string]any) (string, error) {
	t := e.set.Lookup(name)
	if t == nil {
		return "", ferrors.TemplateError("template not found").
			WithContext("template", name).WithContext("root", e.root).Build()
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", ferrors.WrapError(err, ferrors.CategoryTemplate, "template render failed").
			Fatal().WithContext("template", name).Build()
	}
	return buf.String(), nil
}
