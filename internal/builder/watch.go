package builder

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

	"github.com/agentflare-ai/go-apirst/internal/logfields"
)

// DebounceInterval coalesces bursts of file events into one rebuild.
const DebounceInterval = 300 * time.Millisecond

// Watch runs rebuild whenever a relevant file below dirs changes, until ctx
// is cancelled. Rebuilds never overlap; events that arrive during a rebuild
// schedule exactly one more. Rebuild errors are logged, not returned.
func Watch(ctx context.Context, dirs []string, rebuild func(context.Context) error, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer watcher.Close()
	for _, dir := range dirs {
		addDirsRecursive(watcher, dir, logger)
	}

	requests, trigger := newDebouncer(DebounceInterval)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case <-requests:
				logger.Info("change detected; regenerating api pages")
				if err := rebuild(ctx); err != nil {
					logger.Warn("rebuild failed", logfields.Error(err))
				}
			}
		}
	}()
	defer wg.Wait()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Op&fsnotify.Create == fsnotify.Create {
				if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
					addDirsRecursive(watcher, ev.Name, logger)
				}
			}
			if shouldIgnoreEvent(ev.Name) {
				continue
			}
			logger.Debug("file change detected", logfields.File(ev.Name), slog.String("op", ev.Op.String()))
			trigger()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", logfields.Error(err))
		}
	}
}

// newDebouncer returns a channel that receives one value per quiet period
// following calls to trigger.
func newDebouncer(interval time.Duration) (<-chan struct{}, func()) {
	var mu sync.Mutex
	var timer *time.Timer
	requests := make(chan struct{}, 1)
	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(interval, func() {
			select {
			case requests <- struct{}{}:
			default:
			}
		})
	}
	return requests, trigger
}

func addDirsRecursive(w *fsnotify.Watcher, root string, logger *slog.Logger) {
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.Add(path); err != nil {
			logger.Warn("watch add failed", logfields.Path(path), logfields.Error(err))
		}
		return nil
	})
}

// shouldIgnoreEvent drops hidden files, editor temp files and anything that
// cannot change the API: only Go sources and YAML manifests count.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") || strings.HasPrefix(base, "#") || strings.HasSuffix(base, "~") {
		return true
	}
	if strings.HasSuffix(base, "_test.go") {
		return true
	}
	switch filepath.Ext(base) {
	case ".go", ".yaml", ".yml":
		return false
	default:
		return true
	}
}
