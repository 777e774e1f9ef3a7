// Package watch rebuilds the site when its sources change.
//
// A Loop runs one build immediately, then watches the content and template
// roots recursively. Bursts of filesystem events are coalesced over a quiet
// window before exactly one rebuild is requested. Rebuilds run on a single
// worker goroutine, so they never overlap; a request that arrives while a
// rebuild runs is held and served once it finishes. A failed rebuild is
// logged and the loop keeps watching.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
	"git.home.luguber.info/inful/sitebuilder/internal/metrics"
)

// DefaultDebounce is the quiet window used when Options.Debounce is zero.
const DefaultDebounce = 2 * time.Second

// RebuildFunc runs one build pass.
type RebuildFunc func(ctx context.Context) error

// Options configures a Loop.
type Options struct {
	// Roots are watched recursively. Missing roots are skipped with a warning.
	Roots []string
	// Debounce is the quiet window after the last event before a rebuild.
	Debounce time.Duration
	// OnRebuild, when set, is called after every pass with its error.
	OnRebuild func(err error)
	// Recorder counts debounced rebuild triggers.
	Recorder metrics.Recorder
}

// Loop watches source roots and drives rebuilds.
type Loop struct {
	opts    Options
	rebuild RebuildFunc
}

// New returns a Loop that calls rebuild for every debounced change.
func New(opts Options, rebuild RebuildFunc) *Loop {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Recorder == nil {
		opts.Recorder = metrics.NoopRecorder{}
	}
	return &Loop{opts: opts, rebuild: rebuild}
}

// Run builds once, then watches until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	l.runRebuild(ctx)

	watcher, err := l.setupFileWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	rebuildReq := make(chan struct{}, 1)
	deb := newDebouncer(l.opts.Debounce, func() {
		l.opts.Recorder.IncRebuildTrigger()
		select {
		case rebuildReq <- struct{}{}:
		default:
		}
	})
	defer deb.Stop()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		l.rebuildWorker(ctx, rebuildReq)
	}()
	defer wg.Wait()

	for {
		select {
		case <-ctx.Done():
			slog.Info("Stopping file watcher")
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if handleFileEvent(watcher, ev) {
				deb.Trigger()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", logfields.Error(err))
		}
	}
}

// rebuildWorker serves rebuild requests one at a time. The request channel
// holds at most one pending request, which is the coalescing point.
func (l *Loop) rebuildWorker(ctx context.Context, rebuildReq <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-rebuildReq:
			slog.Info("Change detected; rebuilding site")
			l.runRebuild(ctx)
		}
	}
}

func (l *Loop) runRebuild(ctx context.Context) {
	err := l.rebuild(ctx)
	if err != nil && ctx.Err() == nil {
		slog.Error("Build failed", logfields.Error(err))
	}
	if l.opts.OnRebuild != nil {
		l.opts.OnRebuild(err)
	}
}

func (l *Loop) setupFileWatcher() (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify: %w", err)
	}
	for _, root := range l.opts.Roots {
		if st, statErr := os.Stat(root); statErr != nil || !st.IsDir() {
			slog.Warn("Watch root missing; skipping", logfields.Path(root))
			continue
		}
		if err := addDirsRecursive(watcher, root); err != nil {
			_ = watcher.Close()
			return nil, err
		}
		slog.Info("Watching for changes", logfields.Path(root))
	}
	return watcher, nil
}

// handleFileEvent reports whether ev should trigger a rebuild. Newly created
// directories are added to the watch set.
func handleFileEvent(watcher *fsnotify.Watcher, ev fsnotify.Event) bool {
	if shouldIgnoreEvent(ev) {
		return false
	}
	if ev.Has(fsnotify.Create) {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			_ = addDirsRecursive(watcher, ev.Name)
		}
	}
	slog.Debug("File change detected", logfields.Path(ev.Name), logfields.Op(ev.Op.String()))
	return true
}

func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if err := w.Add(path); err != nil {
				slog.Warn("Watch add failed", logfields.Path(path), logfields.Error(err))
			}
		}
		return nil
	})
}

// shouldIgnoreEvent returns true for filesystem events that should not trigger rebuilds.
func shouldIgnoreEvent(ev fsnotify.Event) bool {
	// Attribute-only changes (touch, chmod) do not change content.
	if ev.Op == fsnotify.Chmod {
		return true
	}

	base := filepath.Base(ev.Name)

	// Hidden files, including .#lock files and .DS_Store
	if strings.HasPrefix(base, ".") {
		return true
	}

	// Editor temp/swap files
	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}

	return base == "Thumbs.db" || base == "4913"
}
