package build

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	ferrors "git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
	"git.home.luguber.info/inful/sitebuilder/internal/observability"
	"git.home.luguber.info/inful/sitebuilder/internal/page"
	"git.home.luguber.info/inful/sitebuilder/internal/paths"
	"git.home.luguber.info/inful/sitebuilder/internal/templates"
)

// walker is the read-only context of one pass plus the pass's tallies. It is
// used from a single goroutine.
type walker struct {
	ctx       context.Context
	resolver  *paths.Resolver
	pages     *page.Builder
	templates templates.Renderer
	site      page.Site
	strict    bool

	// claims maps every output path written in this pass to its source.
	claims map[string]string
	result *BuildResult
}

// claim registers dst as produced by src, failing if another source already
// produced it.
func (w *walker) claim(dst, src string) error {
	if prev, ok := w.claims[dst]; ok {
		return ferrors.PathError("output path collision").
			WithPath(dst).
			WithContext("source", src).
			WithContext("previous_source", prev).
			Build()
	}
	w.claims[dst] = src
	return nil
}

func (w *walker) rel(p string) string {
	if rel, err := w.resolver.Rel(p); err == nil {
		return filepath.ToSlash(rel)
	}
	return p
}

// walk builds dir and everything below it and returns dir's own index.
func (w *walker) walk(dir string) ([]page.Metadata, error) {
	outDir, err := w.resolver.Mirror(dir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(outDir, dirPerm); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryIO, "failed to create output directory").
			Fatal().WithPath(outDir).WithContext("op", "mkdir").Build()
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryIO, "failed to read content directory").
			Fatal().WithPath(dir).WithContext("op", "readdir").Build()
	}
	// ReadDir already sorts by name; keep the order explicit.
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var index []page.Metadata
	hasIndexConfig := false

	for _, entry := range entries {
		if err := w.ctx.Err(); err != nil {
			return nil, err
		}

		name := entry.Name()
		full := filepath.Join(dir, name)

		switch {
		case entry.Type()&os.ModeSymlink != 0:
			observability.WarnContext(w.ctx, "Skipping symlink", logfields.Path(w.rel(full)))

		case entry.IsDir():
			if _, err := w.walk(full); err != nil {
				return nil, err
			}

		case name == IndexConfigFile:
			hasIndexConfig = true

		case name == DirConfigFile:
			// Reserved.

		case paths.IsMarkup(name):
			meta, ok, err := w.buildPage(full)
			if err != nil {
				return nil, err
			}
			if ok {
				index = append(index, meta)
			}

		case entry.Type().IsRegular():
			if err := w.copyAsset(full); err != nil {
				return nil, err
			}

		default:
			observability.WarnContext(w.ctx, "Skipping irregular file", logfields.Path(w.rel(full)))
		}
	}

	SortIndex(index)
	if hasIndexConfig {
		if err := w.writeIndex(dir, outDir, index); err != nil {
			return nil, err
		}
	}
	return index, nil
}

// buildPage builds one markup file. ok is false when a lenient pass skipped it.
func (w *walker) buildPage(path string) (meta page.Metadata, ok bool, err error) {
	p, err := w.pages.Prepare(path)
	if err != nil {
		if !w.strict && ferrors.IsPageError(err) {
			source := w.rel(path)
			observability.WarnContext(w.ctx, "Skipping invalid page",
				logfields.Source(source), logfields.Error(err))
			w.result.Skipped = append(w.result.Skipped, SkippedPage{Source: source, Err: err})
			return page.Metadata{}, false, nil
		}
		return page.Metadata{}, false, err
	}
	if err := w.claim(p.Metadata.OutputPath, p.Metadata.Source); err != nil {
		return page.Metadata{}, false, err
	}
	if err := w.pages.Write(p); err != nil {
		return page.Metadata{}, false, err
	}
	w.result.Pages++
	return p.Metadata, true, nil
}

func (w *walker) copyAsset(src string) error {
	dst, err := w.resolver.Mirror(src)
	if err != nil {
		return err
	}
	if err := w.claim(dst, w.rel(src)); err != nil {
		return err
	}
	if err := copyFile(src, dst); err != nil {
		return err
	}
	w.result.Assets++
	return nil
}

func (w *walker) writeIndex(dir, outDir string, index []page.Metadata) error {
	cfgPath := filepath.Join(dir, IndexConfigFile)
	source := w.rel(cfgPath)

	// #nosec G304 -- cfgPath is a reserved name inside the walked content root.
	raw, err := os.ReadFile(cfgPath)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryIO, "failed to read index configuration").
			Fatal().WithPath(cfgPath).WithContext("op", "read").Build()
	}
	cfg, err := DecodeIndexConfig(source, raw)
	if err != nil {
		return err
	}

	dst := filepath.Join(outDir, paths.IndexHTML)
	if err := w.claim(dst, source); err != nil {
		return err
	}

	rendered, err := w.templates.Render(templates.IndexTemplate, map[string]any{
		"pages": index,
		"index": cfg,
		"site":  w.site,
	})
	if err != nil {
		var ce *ferrors.ClassifiedError
		if errors.As(err, &ce) {
			return ce.WithContext("source", source)
		}
		return ferrors.WrapError(err, ferrors.CategoryTemplate, "index template failed").
			Fatal().WithContext("source", source).Build()
	}

	// #nosec G306 -- generated site output is meant to be world-readable.
	if err := os.WriteFile(dst, []byte(rendered), filePerm); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryIO, "failed to write index").
			Fatal().WithPath(dst).WithContext("op", "write").Build()
	}
	w.result.Indexes++
	slog.Debug("Built index", logfields.Source(source), logfields.Pages(len(index)))
	return nil
}
