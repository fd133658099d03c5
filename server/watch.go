package server

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// watchGlobs watches the directories underlying the glob patterns and
// emits a notification for every matching write. The returned stop
// function releases the watcher.
func watchGlobs(globs []string, logger *slog.Logger) (<-chan struct{}, func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, err
	}
	for _, dir := range watchDirs(globs) {
		if err := watcher.Add(dir); err != nil {
			logger.Warn("cannot watch directory", "dir", dir, "error", err)
		}
	}

	changes := make(chan struct{}, 1)
	go func() {
		defer close(changes)
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				if !matchesAny(globs, event.Name) {
					continue
				}
				logger.Debug("source changed", "path", event.Name)
				select {
				case changes <- struct{}{}:
				default:
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("watch error", "error", err)
			}
		}
	}()

	return changes, func() { watcher.Close() }, nil
}

// watchDirs extracts the unique static directory roots of the glob
// patterns.
func watchDirs(globs []string) []string {
	seen := make(map[string]bool)
	var dirs []string
	for _, glob := range globs {
		base, _ := doublestar.SplitPattern(filepath.ToSlash(glob))
		if base == "" {
			base = "."
		}
		if !seen[base] {
			seen[base] = true
			dirs = append(dirs, filepath.FromSlash(base))
		}
	}
	return dirs
}

// matchesAny reports whether the path matches one of the glob patterns,
// by full relative path or by base name for bare patterns.
func matchesAny(globs []string, path string) bool {
	slashPath := filepath.ToSlash(path)
	base := filepath.Base(path)
	for _, glob := range globs {
		pattern := filepath.ToSlash(glob)
		if ok, err := doublestar.Match(pattern, slashPath); err == nil && ok {
			return true
		}
		if ok, err := doublestar.Match(pattern, base); err == nil && ok {
			return true
		}
	}
	return false
}

// coalesce merges bursts of notifications: the output fires once no input
// has arrived for the debounce window.
func coalesce(ctx context.Context, in <-chan struct{}, debounce time.Duration) <-chan struct{} {
	out := make(chan struct{}, 1)
	go func() {
		defer close(out)
		var timer *time.Timer
		var timerC <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				if timer != nil {
					timer.Stop()
				}
				return
			case _, ok := <-in:
				if !ok {
					return
				}
				if timer == nil {
					timer = time.NewTimer(debounce)
					timerC = timer.C
				} else {
					if !timer.Stop() {
						select {
						case <-timerC:
						default:
						}
					}
					timer.Reset(debounce)
				}
			case <-timerC:
				timer = nil
				timerC = nil
				select {
				case out <- struct{}{}:
				default:
				}
			}
		}
	}()
	return out
}
