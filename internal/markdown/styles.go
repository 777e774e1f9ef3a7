package markdown

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
)

// OneDark is the highlighting theme applied to every code block. It is
// registered with chroma under the name "one-dark".
var OneDark = styles.Register(chroma.MustNewStyle("one-dark", chroma.StyleEntries{
	chroma.Background:        "#abb2bf bg:#282c34",
	chroma.Comment:           "italic #5c6370",
	chroma.CommentPreproc:    "#c678dd",
	chroma.Keyword:           "#c678dd",
	chroma.KeywordConstant:   "#d19a66",
	chroma.KeywordType:       "#e5c07b",
	chroma.Name:              "#abb2bf",
	chroma.NameAttribute:     "#d19a66",
	chroma.NameBuiltin:       "#e5c07b",
	chroma.NameClass:         "#e5c07b",
	chroma.NameFunction:      "#61afef",
	chroma.NameTag:           "#e06c75",
	chroma.NameVariable:      "#e06c75",
	chroma.LiteralString:     "#98c379",
	chroma.LiteralNumber:     "#d19a66",
	chroma.Operator:          "#56b6c2",
	chroma.Punctuation:       "#abb2bf",
	chroma.GenericDeleted:    "#e06c75",
	chroma.GenericInserted:   "#98c379",
	chroma.GenericEmph:       "italic",
	chroma.GenericStrong:     "bold",
	chroma.GenericHeading:    "bold #61afef",
	chroma.GenericSubheading: "bold #61afef",
	chroma.Error:             "#e06c75",
}))
