// Package frontmatter splits content files into their metadata block and
// markup body and decodes the metadata.
//
// A content file is laid out as:
//
//	@Meta
//	title = "Hello"
//	author = "Jane"
//	date = 2021-06-01
//	@Content
//	# Markdown body ...
//
// The text between the end of the @Meta marker and the start of the @Content
// marker is TOML. Everything after the @Content marker is the body, returned
// verbatim.
package frontmatter

import (
	"errors"
	"strings"

	"github.com/BurntSushi/toml"

	ferrors "git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
)

// Section markers.
const (
	MetaMarker    = "@Meta"
	ContentMarker = "@Content"
)

var (
	// ErrMissingMetaMarker indicates the file does not contain the @Meta marker.
	ErrMissingMetaMarker = errors.New("could not find " + MetaMarker + " section")
	// ErrMissingContentMarker indicates the file does not contain the @Content marker.
	ErrMissingContentMarker = errors.New("could not find " + ContentMarker + " section")
	// ErrMarkerOrder indicates the @Content marker appears before the @Meta marker.
	ErrMarkerOrder = errors.New(MetaMarker + " section must precede " + ContentMarker + " section")
)

// Metadata is the structured record decoded from a page's metadata block.
type Metadata struct {
	Title    string `toml:"title"`
	Author   string `toml:"author"`
	Slug     string `toml:"slug,omitempty"`
	Date     *Date  `toml:"date,omitempty"`
	ShowDate *bool  `toml:"show_date,omitempty"`
}

// ShowsDate reports the show_date flag, defaulting to true.
func (m Metadata) ShowsDate() bool {
	return m.ShowDate == nil || *m.ShowDate
}

// Document is a split and decoded content file.
type Document struct {
	Metadata Metadata
	Body     string
}

// Split locates the markers and returns the raw metadata text and the body.
// The first occurrence of each marker is used.
func Split(content string) (meta string, body string, err error) {
	metaIdx := strings.Index(content, MetaMarker)
	if metaIdx < 0 {
		return "", "", ErrMissingMetaMarker
	}
	contentIdx := strings.Index(content, ContentMarker)
	if contentIdx < 0 {
		return "", "", ErrMissingContentMarker
	}
	metaEnd := metaIdx + len(MetaMarker)
	if contentIdx < metaEnd {
		return "", "", ErrMarkerOrder
	}
	return content[metaEnd:contentIdx], content[contentIdx+len(ContentMarker):], nil
}

// DecodeMetadata decodes a raw TOML metadata block and checks required fields.
func DecodeMetadata(raw string) (Metadata, error) {
	var m Metadata
	md, err := toml.Decode(raw, &m)
	if err != nil {
		return Metadata{}, err
	}
	var missing []string
	required := map[string]string{"title": m.Title, "author": m.Author}
	for _, key := range []string{"title", "author"} {
		if !md.IsDefined(key) || strings.TrimSpace(required[key]) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return Metadata{}, errors.New("missing or blank required field(s): " + strings.Join(missing, ", "))
	}
	return m, nil
}

// Parse splits and decodes a content file. path is only used for error context.
//
// Marker problems are reported as MalformedPage, decoding problems as
// InvalidMetadata.
func Parse(path string, content []byte) (*Document, error) {
	raw, body, err := Split(string(content))
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryMalformedPage, "malformed page").
			Fatal().WithPath(path).Build()
	}
	meta, err := DecodeMetadata(raw)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryInvalidMetadata, "invalid page metadata").
			Fatal().WithPath(path).Build()
	}
	return &Document{Metadata: meta, Body: body}, nil
}
