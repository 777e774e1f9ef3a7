package frontmatter

import (
	"bytes"

	"github.com/BurntSushi/toml"
)

// Encode serializes metadata as a TOML block (without markers).
// Optional fields that are unset are omitted.
func Encode(m Metadata) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Join reassembles a content file from metadata and body.
// Join followed by Parse yields the same metadata and body.
func Join(m Metadata, body string) ([]byte, error) {
	meta, err := Encode(m)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(MetaMarker)+len(meta)+len(ContentMarker)+len(body)+1)
	out = append(out, MetaMarker...)
	out = append(out, '\n')
	out = append(out, meta...)
	out = append(out, ContentMarker...)
	out = append(out, body...)
	return out, nil
}
