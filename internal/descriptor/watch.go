package descriptor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/opmodel/mfe/internal/output"
)

// DefaultDebounce coalesces bursts of file events (editors write in several steps).
const DefaultDebounce = 200 * time.Millisecond

// Watch calls onChange after descriptor files under dir change, until ctx is done.
// New module directories are picked up as they appear.
func Watch(ctx context.Context, dir string, debounce time.Duration, onChange func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading modules directory %s: %w", dir, err)
	}
	for _, e := range entries {
		if e.IsDir() {
			if err := w.Add(filepath.Join(dir, e.Name())); err != nil {
				output.Warn("cannot watch module directory", "dir", e.Name(), "error", err)
			}
		}
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	var (
		mu    sync.Mutex
		timer *time.Timer
	)
	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			output.Warn("descriptor watcher error", "error", err)
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			// A new module directory may hold its descriptor before the watch lands.
			newDir := false
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					_ = w.Add(ev.Name)
					newDir = true
				}
			}
			if !newDir && !relevant(ev) {
				continue
			}
			output.Debug("descriptor change", "file", ev.Name, "op", ev.Op.String())
			mu.Lock()
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, onChange)
			mu.Unlock()
		}
	}
}

// relevant filters out chmod-only events and unrelated files.
func relevant(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	base := filepath.Base(ev.Name)
	for _, n := range fileNames {
		if base == n {
			return true
		}
	}
	// Removing or renaming a module directory drops its descriptor.
	return ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename)
}
