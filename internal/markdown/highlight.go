package markdown

import (
	"bytes"
	"sync/atomic"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// funcCapture records the render funcs a NodeRenderer registers.
type funcCapture map[ast.NodeKind]renderer.NodeRendererFunc

func (f funcCapture) Register(kind ast.NodeKind, fn renderer.NodeRendererFunc) {
	f[kind] = fn
}

// codeBlockRenderer renders fenced code blocks through chroma when the block
// names a known language and defers to goldmark's own renderer otherwise.
type codeBlockRenderer struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
	fallback  renderer.NodeRendererFunc

	highlighted atomic.Int64
}

func newCodeBlockRenderer(style *chroma.Style) *codeBlockRenderer {
	stock := funcCapture{}
	html.NewRenderer(html.WithUnsafe()).RegisterFuncs(stock)

	return &codeBlockRenderer{
		style:     style,
		formatter: chromahtml.New(chromahtml.WithClasses(false), chromahtml.TabWidth(4)),
		fallback:  stock[ast.KindFencedCodeBlock],
	}
}

func (c *codeBlockRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, c.renderFencedCodeBlock)
}

func (c *codeBlockRenderer) renderFencedCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.FencedCodeBlock)
	lexer := lookupLexer(n.Language(source))
	if lexer == nil {
		return c.fallback(w, source, node, entering)
	}
	if !entering {
		return ast.WalkContinue, nil
	}

	code := collectLines(n, source)
	it, err := chroma.Coalesce(lexer).Tokenise(nil, code)
	if err != nil {
		return ast.WalkStop, err
	}
	if err := c.formatter.Format(w, c.style, it); err != nil {
		return ast.WalkStop, err
	}
	c.highlighted.Add(1)
	return ast.WalkContinue, nil
}

// lookupLexer resolves a fence info word by name, alias or file extension.
func lookupLexer(lang []byte) chroma.Lexer {
	if len(lang) == 0 {
		return nil
	}
	return lexers.Get(string(lang))
}

// collectLines concatenates the raw text of a code block in order.
func collectLines(n *ast.FencedCodeBlock, source []byte) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}
	return buf.String()
}
