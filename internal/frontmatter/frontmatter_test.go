package frontmatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
)

const validPage = `@Meta
title = "Hello World"
author = "Jane"
slug = "hello"
date = 2021-06-01
show_date = false
@Content
# Heading

Body text.
`

func TestSplit_ReturnsMetaAndVerbatimBody(t *testing.T) {
	meta, body, err := Split("@Meta\ntitle = \"x\"\n@Content\n  body  \n\n")
	require.NoError(t, err)
	require.Equal(t, "\ntitle = \"x\"\n", meta)
	require.Equal(t, "\n  body  \n\n", body, "body must not be trimmed")
}

func TestSplit_MarkerErrors(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    error
	}{
		{"missing meta", "title = \"x\"\n@Content\nbody", ErrMissingMetaMarker},
		{"missing content", "@Meta\ntitle = \"x\"\nbody", ErrMissingContentMarker},
		{"content before meta", "@Content\nbody\n@Meta\ntitle = \"x\"\n", ErrMarkerOrder},
		{"empty file", "", ErrMissingMetaMarker},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Split(tc.content)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestParse_ValidPage(t *testing.T) {
	doc, err := Parse("blog/hello.md", []byte(validPage))
	require.NoError(t, err)
	require.Equal(t, "Hello World", doc.Metadata.Title)
	require.Equal(t, "Jane", doc.Metadata.Author)
	require.Equal(t, "hello", doc.Metadata.Slug)
	require.NotNil(t, doc.Metadata.Date)
	require.Equal(t, "2021-06-01", doc.Metadata.Date.String())
	require.False(t, doc.Metadata.ShowsDate())
	require.Equal(t, "\n# Heading\n\nBody text.\n", doc.Body)
}

func TestParse_OptionalFieldsDefault(t *testing.T) {
	doc, err := Parse("a.md", []byte("@Meta\ntitle = \"A\"\nauthor = \"B\"\n@Content\nx"))
	require.NoError(t, err)
	require.Empty(t, doc.Metadata.Slug)
	require.Nil(t, doc.Metadata.Date)
	require.True(t, doc.Metadata.ShowsDate())
}

func TestParse_QuotedDate(t *testing.T) {
	doc, err := Parse("a.md", []byte("@Meta\ntitle = \"A\"\nauthor = \"B\"\ndate = \"2020-02-29\"\n@Content\n"))
	require.NoError(t, err)
	require.Equal(t, NewDate(2020, time.February, 29), *doc.Metadata.Date)
}

func TestParse_MalformedPage(t *testing.T) {
	_, err := Parse("blog/broken.md", []byte("title = \"A\"\n@Content\nbody"))
	require.Error(t, err)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryMalformedPage))
	require.ErrorIs(t, err, ErrMissingMetaMarker)
	require.Contains(t, err.Error(), "blog/broken.md")
}

func TestParse_InvalidMetadata(t *testing.T) {
	cases := map[string]string{
		"missing title":    "@Meta\nauthor = \"B\"\n@Content\n",
		"missing author":   "@Meta\ntitle = \"A\"\n@Content\n",
		"bad date":         "@Meta\ntitle = \"A\"\nauthor = \"B\"\ndate = \"June 1st\"\n@Content\n",
		"date with time":   "@Meta\ntitle = \"A\"\nauthor = \"B\"\ndate = 2021-06-01T10:30:00\n@Content\n",
		"time only":        "@Meta\ntitle = \"A\"\nauthor = \"B\"\ndate = 00:00:00\n@Content\n",
		"midnight offset":  "@Meta\ntitle = \"A\"\nauthor = \"B\"\ndate = 2021-01-01T00:00:00Z\n@Content\n",
		"midnight local":   "@Meta\ntitle = \"A\"\nauthor = \"B\"\ndate = 2021-01-01T00:00:00\n@Content\n",
		"blank title":      "@Meta\ntitle = \"\"\nauthor = \"B\"\n@Content\n",
		"blank author":     "@Meta\ntitle = \"A\"\nauthor = \"  \"\n@Content\n",
		"not toml":         "@Meta\ntitle: A\n@Content\n",
		"wrong field type": "@Meta\ntitle = \"A\"\nauthor = \"B\"\nshow_date = \"yes\"\n@Content\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse("p.md", []byte(content))
			require.Error(t, err)
			require.True(t, ferrors.HasCategory(err, ferrors.CategoryInvalidMetadata), "got %v", err)
			require.Contains(t, err.Error(), "p.md")
		})
	}
}

func TestJoin_RoundTrip(t *testing.T) {
	date := NewDate(2021, time.January, 1)
	hide := false
	cases := []Metadata{
		{Title: "A", Author: "B"},
		{Title: "Quotes \"inside\"", Author: "B", Slug: "custom", Date: &date},
		{Title: "A", Author: "B", Date: &date, ShowDate: &hide},
	}
	for _, in := range cases {
		out, err := Join(in, "\nbody\n")
		require.NoError(t, err)

		doc, err := Parse("roundtrip.md", out)
		require.NoError(t, err)
		require.Equal(t, in.Title, doc.Metadata.Title)
		require.Equal(t, in.Author, doc.Metadata.Author)
		require.Equal(t, in.Slug, doc.Metadata.Slug)
		require.Equal(t, in.ShowsDate(), doc.Metadata.ShowsDate())
		if in.Date == nil {
			require.Nil(t, doc.Metadata.Date)
		} else {
			require.True(t, in.Date.Equal(*doc.Metadata.Date))
		}
		require.Equal(t, "\nbody\n", doc.Body)
	}
}

func TestDate_Ordering(t *testing.T) {
	a := NewDate(2021, time.January, 1)
	b := NewDate(2021, time.June, 1)
	require.True(t, b.After(a))
	require.False(t, a.After(b))
	require.Equal(t, "Jun 1, 2021", b.Format("Jan 2, 2006"))
}
