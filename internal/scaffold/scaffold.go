// Package scaffold creates the skeleton of a new site: configuration, a
// landing page, a first post with its directory index, and starter templates.
package scaffold

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/sitebuilder/internal/config"
	ferrors "git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/frontmatter"
)

const (
	defaultTagline = "A new site"
	defaultDomain  = "example.com"
	defaultAuthor  = "Anonymous"
)

// Options describes the site to create.
type Options struct {
	// Name becomes the site title after title-casing.
	Name string
	// Dir is the target directory. Empty means Name.
	Dir    string
	Author string
	// Now dates the sample post. Zero means time.Now.
	Now time.Time
}

// Result lists what was written.
type Result struct {
	Dir   string
	Files []string
}

type siteFile struct {
	Title   string `toml:"title"`
	Tagline string `toml:"tagline"`
	Domain  string `toml:"domain"`
}

// Title derives a display title from a site name: "my-blog" becomes "My Blog".
func Title(name string) string {
	words := strings.NewReplacer("-", " ", "_", " ").Replace(strings.TrimSpace(name))
	return cases.Title(language.Und).String(strings.Join(strings.Fields(words), " "))
}

// New creates the site. It refuses to write into a non-empty directory and
// never overwrites an existing file.
func New(opts Options) (*Result, error) {
	if strings.TrimSpace(opts.Name) == "" {
		return nil, ferrors.ConfigError("site name is required").Build()
	}
	dir := opts.Dir
	if dir == "" {
		dir = opts.Name
	}
	if opts.Author == "" {
		opts.Author = defaultAuthor
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	if err := ensureEmptyDir(dir); err != nil {
		return nil, err
	}

	files, err := render(opts)
	if err != nil {
		return nil, err
	}

	res := &Result{Dir: dir}
	for _, f := range files {
		full, err := WriteNewFile(dir, f.path, f.content)
		if err != nil {
			return nil, err
		}
		res.Files = append(res.Files, full)
	}
	return res, nil
}

type entry struct {
	path    string
	content []byte
}

func render(opts Options) ([]entry, error) {
	title := Title(opts.Name)

	var cfg bytes.Buffer
	if err := toml.NewEncoder(&cfg).Encode(siteFile{Title: title, Tagline: defaultTagline, Domain: defaultDomain}); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryInternal, "failed to encode site configuration").Build()
	}

	home, err := frontmatter.Join(frontmatter.Metadata{
		Title:    title,
		Author:   opts.Author,
		ShowDate: boolPtr(false),
	}, "\n# Welcome\n\nThis is the landing page of "+title+". Read the [latest posts](/posts/).\n")
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryInternal, "failed to encode landing page").Build()
	}

	date := frontmatter.NewDate(opts.Now.Year(), opts.Now.Month(), opts.Now.Day())
	post, err := frontmatter.Join(frontmatter.Metadata{
		Title:  "Hello, world",
		Author: opts.Author,
		Slug:   "hello-world",
		Date:   &date,
	}, "\nThe first post.\n\n```go\npackage main\n\nfunc main() {\n\tprintln(\"hello\")\n}\n```\n")
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryInternal, "failed to encode sample post").Build()
	}

	return []entry{
		{config.TOMLFileName, cfg.Bytes()},
		{filepath.Join(config.DefaultContentDir, "index.md"), home},
		{filepath.Join(config.DefaultContentDir, "posts", "index.toml"), []byte("title = \"Posts\"\n")},
		{filepath.Join(config.DefaultContentDir, "posts", "hello-world.md"), post},
		{filepath.Join(config.DefaultTemplateDir, "page.html"), []byte(pageTemplate)},
		{filepath.Join(config.DefaultTemplateDir, "index.html"), []byte(indexTemplate)},
		{filepath.Join(config.DefaultTemplateDir, "static", "style.css"), []byte(styleSheet)},
	}, nil
}

func ensureEmptyDir(dir string) error {
	f, err := os.Open(dir) // #nosec G304 -- dir is the operator-chosen target.
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryIO, "failed to open target directory").
			Fatal().WithPath(dir).Build()
	}
	defer func() { _ = f.Close() }()

	st, err := f.Stat()
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryIO, "failed to stat target directory").
			Fatal().WithPath(dir).Build()
	}
	if !st.IsDir() {
		return ferrors.ConfigError("target exists and is not a directory").WithPath(dir).Build()
	}
	if _, err := f.Readdirnames(1); !errors.Is(err, io.EOF) {
		return ferrors.ConfigError("target directory is not empty").WithPath(dir).Build()
	}
	return nil
}

func boolPtr(b bool) *bool { return &b }
