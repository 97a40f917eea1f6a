// Package watch provides debounced filesystem watching for bundle
// directories. Events within the debounce window are coalesced so the
// change callback fires once with the full set of changed paths; the
// callback is never invoked concurrently, which keeps pipeline events
// serialized per bundle.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bundlekit/cli/internal/output"
)

// DefaultDebounce is the delay before firing the change callback after
// the last filesystem event. Rapid successive events (an editor writing
// then renaming a temp file) coalesce into a single callback.
const DefaultDebounce = 500 * time.Millisecond

// skipDirs lists directory names always excluded from watching.
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
}

// Config configures a Watcher.
type Config struct {
	// Dir is the directory tree to watch.
	Dir string

	// SkipDir, when non-empty, excludes one extra directory subtree
	// (the bundle's build output directory).
	SkipDir string

	// Debounce is the coalescing window. Zero means DefaultDebounce.
	Debounce time.Duration

	// OnChange receives the coalesced set of changed paths, sorted.
	// Calls are strictly serialized.
	OnChange func(ctx context.Context, changed []string) error
}

// Watcher monitors a directory tree and dispatches debounced change
// callbacks.
type Watcher struct {
	cfg      Config
	fsw      *fsnotify.Watcher
	debounce time.Duration
}

// New creates a watcher and registers all non-skipped directories under
// cfg.Dir for monitoring.
func New(cfg Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}

	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w := &Watcher{cfg: cfg, fsw: fsw, debounce: debounce}

	if err := w.addTree(cfg.Dir); err != nil {
		fsw.Close() //nolint:errcheck // best-effort cleanup
		return nil, err
	}
	return w, nil
}

// addTree registers dir and every non-skipped subdirectory.
func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if skipDirs[d.Name()] || (w.cfg.SkipDir != "" && path == w.cfg.SkipDir) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch: add %s: %w", path, err)
		}
		return nil
	})
}

// Run blocks until ctx is cancelled, processing filesystem events and
// dispatching debounced callbacks. It returns nil on clean context
// cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	var (
		mu      sync.Mutex
		pending = make(map[string]struct{})
		timer   *time.Timer
		running atomic.Bool
	)

	// fire drains the pending set and invokes the callback. Each fire
	// runs on its own timer goroutine, so an atomic "skip-if-busy"
	// guard enforces the one-callback-at-a-time contract when the
	// callback outlasts the debounce window; the skipped fire
	// reschedules the timer so pending events are not lost.
	fire := func() {
		if ctx.Err() != nil {
			return
		}
		if !running.CompareAndSwap(false, true) {
			mu.Lock()
			if timer != nil {
				timer.Reset(w.debounce)
			}
			mu.Unlock()
			return
		}
		defer running.Store(false)

		mu.Lock()
		if len(pending) == 0 {
			mu.Unlock()
			return
		}
		changed := make([]string, 0, len(pending))
		for path := range pending {
			changed = append(changed, path)
		}
		clear(pending)
		mu.Unlock()
		sort.Strings(changed)

		if w.cfg.OnChange != nil {
			if err := w.cfg.OnChange(ctx, changed); err != nil {
				output.Error("change event failed", "err", err)
			}
		}
	}

	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
		if err := w.fsw.Close(); err != nil {
			output.Warn("closing watcher", "err", err)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return fmt.Errorf("watch: event channel closed unexpectedly")
			}
			if evt.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}

			// Newly created directories join the watch set.
			if evt.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(evt.Name); err == nil && info.IsDir() {
					if err := w.addTree(evt.Name); err != nil {
						output.Debug("could not watch new directory", "path", evt.Name, "err", err)
					}
					continue
				}
			}

			mu.Lock()
			pending[evt.Name] = struct{}{}
			if timer == nil {
				timer = time.AfterFunc(w.debounce, fire)
			} else {
				timer.Reset(w.debounce)
			}
			mu.Unlock()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return fmt.Errorf("watch: error channel closed unexpectedly")
			}
			output.Warn("watch error", "err", err)
		}
	}
}
