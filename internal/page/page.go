// Package page turns one content file into a rendered HTML page on disk.
package page

import (
	"html/template"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/sitebuilder/internal/frontmatter"
	ferrors "git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
	"git.home.luguber.info/inful/sitebuilder/internal/paths"
	"git.home.luguber.info/inful/sitebuilder/internal/templates"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Site is the site-wide template context.
type Site struct {
	Title   string
	Tagline string
	Domain  string
}

// Metadata is the parsed and derived record of one page.
type Metadata struct {
	Title    string
	Author   string
	Slug     string
	Date     *frontmatter.Date
	ShowDate bool
	// OutputPath is the absolute location of the rendered file.
	OutputPath string
	// Link is the site-relative public URL, e.g. "/blog/hello/".
	Link string
	// Source is the content-root relative path of the source file.
	Source string
}

// Page is a fully resolved page ready to be written.
type Page struct {
	Metadata Metadata
	Content  template.HTML
}

// Markup renders a page body to HTML.
type Markup interface {
	Render(body string) (string, error)
}

// Builder builds pages against one resolver, markup renderer and template set.
type Builder struct {
	resolver  *paths.Resolver
	markup    Markup
	templates templates.Renderer
	site      Site
}

// NewBuilder returns a Builder. All collaborators are used read-only.
func NewBuilder(resolver *paths.Resolver, markup Markup, tmpl templates.Renderer, site Site) *Builder {
	return &Builder{resolver: resolver, markup: markup, templates: tmpl, site: site}
}

// Build reads, renders and writes the content file at path.
func (b *Builder) Build(path string) (Metadata, error) {
	p, err := b.Prepare(path)
	if err != nil {
		return Metadata{}, err
	}
	if err := b.Write(p); err != nil {
		return Metadata{}, err
	}
	return p.Metadata, nil
}

// Prepare parses and renders the file at path without touching the output tree.
func (b *Builder) Prepare(path string) (*Page, error) {
	rel, err := b.resolver.Rel(path)
	if err != nil {
		return nil, err
	}

	// #nosec G304 -- path is produced by walking the content root and checked by Rel.
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryIO, "failed to read content file").
			Fatal().WithPath(path).WithContext("op", "read").Build()
	}

	doc, err := frontmatter.Parse(rel, raw)
	if err != nil {
		return nil, err
	}

	slug := doc.Metadata.Slug
	if slug == "" {
		slug = paths.DefaultSlug(path)
	}
	out, err := b.resolver.Resolve(path, slug)
	if err != nil {
		return nil, err
	}
	link, err := b.resolver.Link(out)
	if err != nil {
		return nil, err
	}

	html, err := b.markup.Render(doc.Body)
	if err != nil {
		if ce, ok := ferrors.AsClassified(err); ok {
			return nil, ce.WithContext("path", rel)
		}
		return nil, ferrors.WrapError(err, ferrors.CategoryMalformedPage, "markup rendering failed").
			Fatal().WithPath(rel).Build()
	}

	return &Page{
		Metadata: Metadata{
			Title:      doc.Metadata.Title,
			Author:     doc.Metadata.Author,
			Slug:       slug,
			Date:       doc.Metadata.Date,
			ShowDate:   doc.Metadata.ShowsDate(),
			OutputPath: out,
			Link:       link,
			Source:     filepath.ToSlash(rel),
		},
		// #nosec G203 -- rendered by the markup renderer from trusted site content.
		Content: template.HTML(html),
	}, nil
}

// Write renders p through the page template and writes it to its output path.
func (b *Builder) Write(p *Page) error {
	meta := p.Metadata
	if err := os.MkdirAll(filepath.Dir(meta.OutputPath), dirPerm); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryIO, "failed to create output directory").
			Fatal().WithPath(filepath.Dir(meta.OutputPath)).WithContext("op", "mkdir").Build()
	}

	rendered, err := b.templates.Render(templates.PageTemplate, map[string]any{
		"content": p.Content,
		"page":    meta,
		"site":    b.site,
	})
	if err != nil {
		if ce, ok := ferrors.AsClassified(err); ok {
			return ce.WithContext("source", meta.Source)
		}
		return ferrors.WrapError(err, ferrors.CategoryTemplate, "page template failed").
			Fatal().WithContext("source", meta.Source).Build()
	}

	// #nosec G306 -- generated site output is meant to be world-readable.
	if err := os.WriteFile(meta.OutputPath, []byte(rendered), filePerm); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryIO, "failed to write page").
			Fatal().WithPath(meta.OutputPath).WithContext("source", meta.Source).WithContext("op", "write").Build()
	}

	slog.Debug("Built page",
		logfields.Source(meta.Source),
		logfields.Output(meta.OutputPath),
		logfields.Link(meta.Link))
	return nil
}
