package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bundlekit/cli/internal/testutil"
)

// startWatcher runs a watcher over dir and returns a channel of
// coalesced change sets plus a stop function.
func startWatcher(t *testing.T, dir, skipDir string) (<-chan []string, func()) {
	t.Helper()

	events := make(chan []string, 16)
	w, err := New(Config{
		Dir:      dir,
		SkipDir:  skipDir,
		Debounce: 50 * time.Millisecond,
		OnChange: func(_ context.Context, changed []string) error {
			events <- changed
			return nil
		},
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(ctx)
	}()

	return events, func() {
		cancel()
		<-done
	}
}

func waitForEvent(t *testing.T, events <-chan []string) []string {
	t.Helper()
	select {
	case changed := <-events:
		return changed
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change callback")
		return nil
	}
}

func TestRun_CoalescesRapidEvents(t *testing.T) {
	dir := t.TempDir()
	events, stop := startWatcher(t, dir, "")
	defer stop()

	a := filepath.Join(dir, "a.js")
	b := filepath.Join(dir, "b.js")
	require.NoError(t, os.WriteFile(a, []byte("var a;"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("var b;"), 0o644))

	seen := map[string]bool{}
	for !seen[a] || !seen[b] {
		changed := waitForEvent(t, events)
		assert.IsIncreasing(t, changed, "coalesced paths arrive sorted")
		for _, path := range changed {
			seen[path] = true
		}
	}
}

func TestRun_SkipsConfiguredDir(t *testing.T) {
	dir := t.TempDir()
	buildDir := filepath.Join(dir, "build")
	require.NoError(t, os.MkdirAll(buildDir, 0o755))

	events, stop := startWatcher(t, dir, buildDir)
	defer stop()

	// Output churn must not produce events; a source change must.
	require.NoError(t, os.WriteFile(filepath.Join(buildDir, "out.js"), []byte("x"), 0o644))
	time.Sleep(200 * time.Millisecond)

	src := filepath.Join(dir, "src.js")
	require.NoError(t, os.WriteFile(src, []byte("var s;"), 0o644))

	changed := waitForEvent(t, events)
	assert.Equal(t, []string{src}, changed)
}

func TestRun_WatchesNewDirectories(t *testing.T) {
	dir := t.TempDir()
	events, stop := startWatcher(t, dir, "")
	defer stop()

	sub := filepath.Join(dir, "lib")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	// Give the watcher a moment to register the new directory.
	time.Sleep(200 * time.Millisecond)

	inner := filepath.Join(sub, "mod.js")
	require.NoError(t, os.WriteFile(inner, []byte("var m;"), 0o644))

	changed := waitForEvent(t, events)
	assert.Contains(t, changed, inner)
}

func TestRun_SlowCallbackNeverRunsConcurrently(t *testing.T) {
	dir := t.TempDir()

	var (
		inFlight int32
		maxSeen  int32
	)
	seen := make(chan string, 64)

	w, err := New(Config{
		Dir:      dir,
		Debounce: 20 * time.Millisecond,
		OnChange: func(_ context.Context, changed []string) error {
			n := atomic.AddInt32(&inFlight, 1)
			for {
				prev := atomic.LoadInt32(&maxSeen)
				if n <= prev || atomic.CompareAndSwapInt32(&maxSeen, prev, n) {
					break
				}
			}
			time.Sleep(150 * time.Millisecond)
			atomic.AddInt32(&inFlight, -1)
			for _, path := range changed {
				seen <- path
			}
			return nil
		},
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(ctx)
	}()

	// Keep writing while callbacks are still in flight so later
	// debounce windows expire mid-callback.
	paths := make([]string, 6)
	for i := range paths {
		paths[i] = filepath.Join(dir, string(rune('a'+i))+".js")
		require.NoError(t, os.WriteFile(paths[i], []byte("x"), 0o644))
		time.Sleep(60 * time.Millisecond)
	}

	// Every written path must eventually reach a callback, even the
	// ones whose debounce fired while a previous callback was running.
	got := map[string]bool{}
	deadline := time.After(10 * time.Second)
	for len(got) < len(paths) {
		select {
		case path := <-seen:
			got[path] = true
		case <-deadline:
			t.Fatalf("timed out; observed %d of %d paths", len(got), len(paths))
		}
	}

	cancel()
	<-done
	assert.Equal(t, int32(1), atomic.LoadInt32(&maxSeen),
		"change callbacks must be strictly serialized")
}

func TestNew_MissingDir(t *testing.T) {
	_, err := New(Config{Dir: filepath.Join(t.TempDir(), "absent")})
	assert.Error(t, err)
}

func TestNew_SkipDirNotRegistered(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "node_modules/pkg/index.js", "x")

	w, err := New(Config{Dir: dir})
	require.NoError(t, err)
	defer w.fsw.Close() //nolint:errcheck

	assert.NotContains(t, w.fsw.WatchList(), filepath.Join(dir, "node_modules"))
	assert.Contains(t, w.fsw.WatchList(), dir)
}
