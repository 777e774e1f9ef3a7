// Package markdown converts page bodies to HTML.
//
// Rendering uses goldmark with GFM, footnotes, definition lists and smart
// punctuation enabled. Fenced code blocks whose language chroma recognises are
// replaced with inline-styled highlighted markup; every other node is rendered
// by goldmark's stock HTML renderer, unchanged.
package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"

	ferrors "git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
)

// codeBlockPriority must sort ahead of goldmark's html renderer (1000).
const codeBlockPriority = 200

// Renderer turns markup into an HTML fragment. It is safe for concurrent use.
type Renderer struct {
	md    goldmark.Markdown
	codes *codeBlockRenderer
}

// New returns a Renderer that highlights fenced code blocks with the one-dark
// theme.
func New() *Renderer {
	codes := newCodeBlockRenderer(OneDark)
	return &Renderer{md: newMarkdown(codes), codes: codes}
}

// NewPlain returns a Renderer without syntax highlighting. Its output is the
// baseline the highlighting Renderer falls back to.
func NewPlain() *Renderer {
	return &Renderer{md: newMarkdown(nil)}
}

func htmlOptions() []renderer.Option {
	// Raw HTML in content files passes through.
	return []renderer.Option{html.WithUnsafe()}
}

func newMarkdown(codes *codeBlockRenderer) goldmark.Markdown {
	rendererOpts := htmlOptions()
	if codes != nil {
		rendererOpts = append(rendererOpts, renderer.WithNodeRenderers(
			util.Prioritized(codes, codeBlockPriority),
		))
	}
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			extension.DefinitionList,
			extension.Typographer,
		),
		goldmark.WithParserOptions(parser.WithAttribute()),
		goldmark.WithRendererOptions(rendererOpts...),
	)
}

// Render converts body to HTML.
func (r *Renderer) Render(body string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(body), &buf); err != nil {
		return "", ferrors.WrapError(err, ferrors.CategoryMalformedPage, "markup rendering failed").Fatal().Build()
	}
	return buf.String(), nil
}

// HighlightedBlocks returns how many code blocks this Renderer has highlighted.
func (r *Renderer) HighlightedBlocks() int64 {
	if r.codes == nil {
		return 0
	}
	return r.codes.highlighted.Load()
}
