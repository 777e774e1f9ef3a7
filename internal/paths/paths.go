// Package paths maps content files to output locations and public links.
//
// Markup files become pretty URLs (<dir>/<slug>/index.html). A file literally
// named index.md is the exception and becomes <dir>/index.html, never adding a
// directory level.
package paths

import (
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"

	ferrors "git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
)

const (
	MarkupExt     = ".md"
	HTMLExt       = ".html"
	IndexStem     = "index"
	IndexMarkup   = IndexStem + MarkupExt
	IndexHTML     = IndexStem + HTMLExt
	linkSeparator = "/"
)

// Resolver computes output paths relative to a content root and an output root.
// It holds no mutable state and is safe to share.
type Resolver struct {
	contentRoot string
	outputRoot  string
}

// NewResolver returns a Resolver for the given roots.
func NewResolver(contentRoot, outputRoot string) *Resolver {
	return &Resolver{
		contentRoot: filepath.Clean(contentRoot),
		outputRoot:  filepath.Clean(outputRoot),
	}
}

// ContentRoot returns the cleaned content root.
func (r *Resolver) ContentRoot() string { return r.contentRoot }

// OutputRoot returns the cleaned output root.
func (r *Resolver) OutputRoot() string { return r.outputRoot }

// Rel returns p relative to the content root, failing with a PathError when p
// lies outside it.
func (r *Resolver) Rel(p string) (string, error) {
	rel, err := filepath.Rel(r.contentRoot, filepath.Clean(p))
	if err != nil {
		return "", ferrors.WrapError(err, ferrors.CategoryPath, "path is not under the content root").
			Fatal().WithPath(p).WithContext("content_root", r.contentRoot).Build()
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return "", ferrors.PathError("path is not under the content root").
			WithPath(p).WithContext("content_root", r.contentRoot).Build()
	}
	return rel, nil
}

// Mirror returns the output location of a content-tree entry copied verbatim.
func (r *Resolver) Mirror(p string) (string, error) {
	rel, err := r.Rel(p)
	if err != nil {
		return "", err
	}
	return filepath.Join(r.outputRoot, rel), nil
}

// Resolve returns the output path of the markup file at p rendered under slug.
func (r *Resolver) Resolve(p, slug string) (string, error) {
	rel, err := r.Rel(p)
	if err != nil {
		return "", err
	}
	if filepath.Base(rel) == IndexMarkup {
		return filepath.Join(r.outputRoot, strings.TrimSuffix(rel, MarkupExt)+HTMLExt), nil
	}
	if err := ValidateSlug(slug); err != nil {
		return "", ferrors.WrapError(err, ferrors.CategoryPath, "invalid slug").
			Fatal().WithPath(p).WithContext("slug", slug).Build()
	}
	return filepath.Join(r.outputRoot, filepath.Dir(rel), slug, IndexHTML), nil
}

// Link returns the directory-style public link of an output path, relative to
// the site root: "/" for the root index, "/blog/hello/" for blog/hello/index.html.
func (r *Resolver) Link(outputPath string) (string, error) {
	rel, err := filepath.Rel(r.outputRoot, filepath.Clean(outputPath))
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", ferrors.PathError("output path is not under the output root").
			WithPath(outputPath).WithContext("output_root", r.outputRoot).Build()
	}
	dir := path.Dir(filepath.ToSlash(rel))
	if dir == "." {
		return linkSeparator, nil
	}
	return linkSeparator + dir + linkSeparator, nil
}

// DefaultSlug derives a slug from a file name: the stem, NFC-normalised.
func DefaultSlug(fileName string) string {
	base := filepath.Base(fileName)
	return norm.NFC.String(strings.TrimSuffix(base, filepath.Ext(base)))
}

// IsMarkup reports whether name has the markup extension.
func IsMarkup(name string) bool {
	return filepath.Ext(name) == MarkupExt
}
