package build

import (
	"sort"

	"github.com/BurntSushi/toml"

	ferrors "git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/page"
)

// Reserved per-directory file names. Neither is copied into the output.
const (
	// IndexConfigFile turns a directory listing into an index page.
	IndexConfigFile = "index.toml"
	// DirConfigFile is set aside for per-directory settings.
	DirConfigFile = "_dir.toml"
)

// IndexConfig is the decoded index.toml of one directory.
type IndexConfig struct {
	Title       string `toml:"title"`
	Description string `toml:"description"`
}

// DecodeIndexConfig parses an index.toml document. title is required.
func DecodeIndexConfig(path string, raw []byte) (IndexConfig, error) {
	var cfg IndexConfig
	md, err := toml.Decode(string(raw), &cfg)
	if err != nil {
		return IndexConfig{}, ferrors.WrapError(err, ferrors.CategoryInvalidMetadata, "failed to parse index configuration").
			Fatal().WithPath(path).Build()
	}
	if !md.IsDefined("title") {
		return IndexConfig{}, ferrors.InvalidMetadata("index configuration is missing title").
			WithPath(path).Build()
	}
	return cfg, nil
}

// SortIndex orders pages newest first. Undated pages follow every dated page.
// Pages with equal dates, and undated pages among themselves, keep their
// input order.
func SortIndex(pages []page.Metadata) {
	sort.SliceStable(pages, func(i, j int) bool {
		a, b := pages[i].Date, pages[j].Date
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})
}
