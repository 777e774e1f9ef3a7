package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitebuilder/internal/metrics"
)

type triggerRecorder struct {
	metrics.NoopRecorder
	mu       sync.Mutex
	triggers int
}

func (r *triggerRecorder) IncRebuildTrigger() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.triggers++
}

func (r *triggerRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.triggers
}

func TestShouldIgnoreEvent(t *testing.T) {
	tests := []struct {
		name   string
		ev     fsnotify.Event
		ignore bool
	}{
		{"markdown write", fsnotify.Event{Name: "/c/post.md", Op: fsnotify.Write}, false},
		{"template create", fsnotify.Event{Name: "/t/page.html", Op: fsnotify.Create}, false},
		{"remove", fsnotify.Event{Name: "/c/old.md", Op: fsnotify.Remove}, false},
		{"chmod only", fsnotify.Event{Name: "/c/post.md", Op: fsnotify.Chmod}, true},
		{"write and chmod", fsnotify.Event{Name: "/c/post.md", Op: fsnotify.Write | fsnotify.Chmod}, false},
		{"hidden file", fsnotify.Event{Name: "/c/.DS_Store", Op: fsnotify.Create}, true},
		{"emacs lock", fsnotify.Event{Name: "/c/.#post.md", Op: fsnotify.Create}, true},
		{"emacs autosave", fsnotify.Event{Name: "/c/#post.md#", Op: fsnotify.Write}, true},
		{"backup", fsnotify.Event{Name: "/c/post.md~", Op: fsnotify.Write}, true},
		{"vim swap", fsnotify.Event{Name: "/c/post.md.swp", Op: fsnotify.Write}, true},
		{"vim write test file", fsnotify.Event{Name: "/c/4913", Op: fsnotify.Create}, true},
		{"thumbs", fsnotify.Event{Name: "/c/Thumbs.db", Op: fsnotify.Create}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.ignore, shouldIgnoreEvent(tt.ev))
		})
	}
}

func TestDebouncer_CoalescesBurst(t *testing.T) {
	var fired atomic.Int32
	d := newDebouncer(50*time.Millisecond, func() { fired.Add(1) })
	defer d.Stop()

	for range 10 {
		d.Trigger()
		time.Sleep(5 * time.Millisecond)
	}

	require.Eventually(t, func() bool { return fired.Load() == 1 }, time.Second, 10*time.Millisecond)
	time.Sleep(100 * time.Millisecond)
	require.Equal(t, int32(1), fired.Load())
}

func TestDebouncer_StopCancelsPending(t *testing.T) {
	var fired atomic.Int32
	d := newDebouncer(30*time.Millisecond, func() { fired.Add(1) })
	d.Trigger()
	d.Stop()
	d.Trigger()

	time.Sleep(100 * time.Millisecond)
	require.Zero(t, fired.Load())
}

func TestNew_Defaults(t *testing.T) {
	l := New(Options{}, func(context.Context) error { return nil })
	require.Equal(t, DefaultDebounce, l.opts.Debounce)
	require.NotNil(t, l.opts.Recorder)
}

// startLoop runs a Loop over root and returns a channel receiving every
// rebuild result. The loop is stopped when the test ends.
func startLoop(t *testing.T, root string, rec metrics.Recorder, rebuild RebuildFunc) <-chan error {
	t.Helper()

	results := make(chan error, 16)
	l := New(Options{
		Roots:     []string{root},
		Debounce:  50 * time.Millisecond,
		OnRebuild: func(err error) { results <- err },
		Recorder:  rec,
	}, rebuild)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Error("watch loop did not stop")
		}
	})

	select {
	case <-results:
	case <-time.After(5 * time.Second):
		t.Fatal("initial build did not run")
	}
	// Let the watcher register before the test starts writing.
	time.Sleep(100 * time.Millisecond)
	return results
}

func waitRebuild(t *testing.T, results <-chan error) error {
	t.Helper()
	select {
	case err := <-results:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("no rebuild after change")
		return nil
	}
}

func TestLoop_RebuildsOnChange(t *testing.T) {
	root := t.TempDir()
	var builds atomic.Int32
	results := startLoop(t, root, nil, func(context.Context) error {
		builds.Add(1)
		return nil
	})

	require.NoError(t, os.WriteFile(filepath.Join(root, "post.md"), []byte("# hi\n"), 0o600))
	require.NoError(t, waitRebuild(t, results))
	require.Equal(t, int32(2), builds.Load())
}

func TestLoop_BurstCoalescesIntoOneRebuild(t *testing.T) {
	root := t.TempDir()
	var builds atomic.Int32
	rec := &triggerRecorder{}
	results := startLoop(t, root, rec, func(context.Context) error {
		builds.Add(1)
		return nil
	})

	for i := range 5 {
		name := filepath.Join(root, "post"+string(rune('a'+i))+".md")
		require.NoError(t, os.WriteFile(name, []byte("x"), 0o600))
	}
	require.NoError(t, waitRebuild(t, results))

	time.Sleep(200 * time.Millisecond)
	require.Equal(t, int32(2), builds.Load())
	require.Equal(t, 1, rec.count())
}

func TestLoop_FailureDoesNotStopWatching(t *testing.T) {
	root := t.TempDir()
	var builds atomic.Int32
	results := startLoop(t, root, nil, func(context.Context) error {
		if builds.Add(1) == 2 {
			return errors.New("broken page")
		}
		return nil
	})

	require.NoError(t, os.WriteFile(filepath.Join(root, "a.md"), []byte("x"), 0o600))
	require.EqualError(t, waitRebuild(t, results), "broken page")

	require.NoError(t, os.WriteFile(filepath.Join(root, "b.md"), []byte("x"), 0o600))
	require.NoError(t, waitRebuild(t, results))
}

func TestLoop_WatchesNewSubdirectories(t *testing.T) {
	root := t.TempDir()
	results := startLoop(t, root, nil, func(context.Context) error { return nil })

	sub := filepath.Join(root, "blog")
	require.NoError(t, os.Mkdir(sub, 0o750))
	require.NoError(t, waitRebuild(t, results))

	require.NoError(t, os.WriteFile(filepath.Join(sub, "post.md"), []byte("x"), 0o600))
	require.NoError(t, waitRebuild(t, results))
}

func TestLoop_IgnoredEventsDoNotRebuild(t *testing.T) {
	root := t.TempDir()
	results := startLoop(t, root, nil, func(context.Context) error { return nil })

	require.NoError(t, os.WriteFile(filepath.Join(root, ".hidden"), []byte("x"), 0o600))
	select {
	case <-results:
		t.Fatal("rebuild triggered by ignored file")
	case <-time.After(300 * time.Millisecond):
	}
}
