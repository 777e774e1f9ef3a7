package build

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/frontmatter"
	"git.home.luguber.info/inful/sitebuilder/internal/page"
)

func dated(title string, year int, month time.Month, day int) page.Metadata {
	d := frontmatter.NewDate(year, month, day)
	return page.Metadata{Title: title, Date: &d}
}

func titles(pages []page.Metadata) []string {
	out := make([]string, 0, len(pages))
	for _, p := range pages {
		out = append(out, p.Title)
	}
	return out
}

func TestSortIndex_DescendingByDate(t *testing.T) {
	pages := []page.Metadata{
		dated("a", 2021, time.January, 1),
		dated("c", 2022, time.March, 5),
		dated("b", 2021, time.June, 1),
	}
	SortIndex(pages)
	require.Equal(t, []string{"c", "b", "a"}, titles(pages))
}

func TestSortIndex_EqualDatesKeepInputOrder(t *testing.T) {
	pages := []page.Metadata{
		dated("first", 2021, time.June, 1),
		dated("newer", 2022, time.June, 1),
		dated("second", 2021, time.June, 1),
		dated("third", 2021, time.June, 1),
	}
	SortIndex(pages)
	require.Equal(t, []string{"newer", "first", "second", "third"}, titles(pages))
}

func TestSortIndex_UndatedAfterDated(t *testing.T) {
	pages := []page.Metadata{
		{Title: "undated-1"},
		dated("old", 2019, time.May, 1),
		{Title: "undated-2"},
		dated("new", 2020, time.May, 1),
	}
	SortIndex(pages)
	require.Equal(t, []string{"new", "old", "undated-1", "undated-2"}, titles(pages))
}

func TestDecodeIndexConfig(t *testing.T) {
	cfg, err := DecodeIndexConfig("blog/index.toml", []byte("title = \"Blog\"\ndescription = \"Posts\"\n"))
	require.NoError(t, err)
	require.Equal(t, "Blog", cfg.Title)
	require.Equal(t, "Posts", cfg.Description)

	_, err = DecodeIndexConfig("blog/index.toml", []byte("description = \"no title\"\n"))
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryInvalidMetadata))
	require.Contains(t, err.Error(), "blog/index.toml")

	_, err = DecodeIndexConfig("blog/index.toml", []byte("title = \n"))
	require.Error(t, err)
}
