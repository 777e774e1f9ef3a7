package page

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/paths"
)

type upperMarkup struct{}

func (upperMarkup) Render(body string) (string, error) {
	return "<p>" + strings.TrimSpace(strings.ToUpper(body)) + "</p>", nil
}

type recordingTemplates struct {
	name string
	data map[string]any
	err  error
}

func (r *recordingTemplates) Render(name string, data map[string]any) (string, error) {
	r.name = name
	r.data = data
	if r.err != nil {
		return "", r.err
	}
	return "rendered:" + data["page"].(Metadata).Title, nil
}

func setup(t *testing.T) (content, out string) {
	t.Helper()
	root := t.TempDir()
	content = filepath.Join(root, "content")
	out = filepath.Join(root, "public")
	require.NoError(t, os.MkdirAll(filepath.Join(content, "blog"), 0o750))
	return content, out
}

func writeFile(t *testing.T, p, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
}

func TestBuild_WritesPrettyURL(t *testing.T) {
	content, out := setup(t)
	src := filepath.Join(content, "blog", "hello.md")
	writeFile(t, src, "@Meta\ntitle = \"Hello\"\nauthor = \"Jane\"\ndate = 2021-06-01\n@Content\nbody\n")

	tmpl := &recordingTemplates{}
	site := Site{Title: "Site", Tagline: "tag", Domain: "example.com"}
	b := NewBuilder(paths.NewResolver(content, out), upperMarkup{}, tmpl, site)

	meta, err := b.Build(src)
	require.NoError(t, err)
	require.Equal(t, "Hello", meta.Title)
	require.Equal(t, "hello", meta.Slug)
	require.Equal(t, "/blog/hello/", meta.Link)
	require.Equal(t, "blog/hello.md", meta.Source)
	require.True(t, meta.ShowDate)
	require.Equal(t, "2021-06-01", meta.Date.String())
	require.Equal(t, filepath.Join(out, "blog", "hello", "index.html"), meta.OutputPath)

	written, err := os.ReadFile(meta.OutputPath)
	require.NoError(t, err)
	require.Equal(t, "rendered:Hello", string(written))

	require.Equal(t, "page.html", tmpl.name)
	require.EqualValues(t, "<p>BODY</p>", tmpl.data["content"])
	require.Equal(t, site, tmpl.data["site"])
}

func TestBuild_ExplicitSlugAndIndexFile(t *testing.T) {
	content, out := setup(t)
	b := NewBuilder(paths.NewResolver(content, out), upperMarkup{}, &recordingTemplates{}, Site{})

	post := filepath.Join(content, "blog", "a.md")
	writeFile(t, post, "@Meta\ntitle = \"A\"\nauthor = \"B\"\nslug = \"first\"\n@Content\n")
	meta, err := b.Build(post)
	require.NoError(t, err)
	require.Equal(t, "/blog/first/", meta.Link)

	idx := filepath.Join(content, "index.md")
	writeFile(t, idx, "@Meta\ntitle = \"Home\"\nauthor = \"B\"\n@Content\nwelcome")
	meta, err = b.Build(idx)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(out, "index.html"), meta.OutputPath)
	require.Equal(t, "/", meta.Link)
	_, err = os.Stat(filepath.Join(out, "index", "index.html"))
	require.True(t, os.IsNotExist(err))
}

func TestBuild_MalformedPageNamesFile(t *testing.T) {
	content, out := setup(t)
	src := filepath.Join(content, "blog", "broken.md")
	writeFile(t, src, "no markers here")

	b := NewBuilder(paths.NewResolver(content, out), upperMarkup{}, &recordingTemplates{}, Site{})
	_, err := b.Build(src)
	require.Error(t, err)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryMalformedPage))
	require.Contains(t, err.Error(), "blog/broken.md")

	_, statErr := os.Stat(out)
	require.True(t, os.IsNotExist(statErr), "nothing is written for a broken page")
}

func TestBuild_TemplateFailure(t *testing.T) {
	content, out := setup(t)
	src := filepath.Join(content, "a.md")
	writeFile(t, src, "@Meta\ntitle = \"A\"\nauthor = \"B\"\n@Content\n")

	tmpl := &recordingTemplates{err: errors.New("boom")}
	b := NewBuilder(paths.NewResolver(content, out), upperMarkup{}, tmpl, Site{})
	_, err := b.Build(src)
	require.Error(t, err)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryTemplate))
}

func TestPrepare_DoesNotWrite(t *testing.T) {
	content, out := setup(t)
	src := filepath.Join(content, "a.md")
	writeFile(t, src, "@Meta\ntitle = \"A\"\nauthor = \"B\"\nshow_date = false\n@Content\nx")

	b := NewBuilder(paths.NewResolver(content, out), upperMarkup{}, &recordingTemplates{}, Site{})
	p, err := b.Prepare(src)
	require.NoError(t, err)
	require.False(t, p.Metadata.ShowDate)
	require.Nil(t, p.Metadata.Date)
	_, statErr := os.Stat(p.Metadata.OutputPath)
	require.True(t, os.IsNotExist(statErr))
}
