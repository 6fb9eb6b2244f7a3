// Package watch reports changes to the settings file.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/grovetools/gamestate/logging"
	"github.com/grovetools/gamestate/util/pathutil"
	"github.com/sirupsen/logrus"
)

// DefaultDebounce is how long the file must stay quiet before a change is
// reported.
const DefaultDebounce = 200 * time.Millisecond

// SettingsWatcher calls a callback once a burst of writes to the settings
// file has settled. The containing directory is watched rather than the file,
// so atomic replacement by rename is seen too. A symlinked settings file also
// has its target's directory watched.
type SettingsWatcher struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	onChange func(path string)
	logger   *logrus.Entry

	mu    sync.Mutex
	timer *time.Timer

	// runMu keeps callbacks from overlapping when one outlasts the debounce.
	runMu sync.Mutex
}

// New starts watching path. onChange runs on its own goroutine, at most once
// per quiet period of length debounce, and never concurrently with itself.
func New(path string, debounce time.Duration, onChange func(path string)) (*SettingsWatcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	logger := logging.NewLogger("watch")

	dir := filepath.Dir(absPath)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, err
	}

	// fsnotify doesn't follow symlinks, so watch the target's directory too.
	if info, err := os.Lstat(absPath); err == nil && info.Mode()&os.ModeSymlink != 0 {
		if target, err := filepath.EvalSymlinks(absPath); err == nil && filepath.Dir(target) != dir {
			if err := watcher.Add(filepath.Dir(target)); err != nil {
				logger.WithError(err).Warnf("Failed to watch symlink target dir %s", filepath.Dir(target))
			} else {
				logger.Debugf("Watching symlink target directory: %s", filepath.Dir(target))
			}
		}
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &SettingsWatcher{
		watcher:  watcher,
		path:     absPath,
		debounce: debounce,
		onChange: onChange,
		logger:   logger,
	}, nil
}

// Path returns the watched settings file.
func (w *SettingsWatcher) Path() string {
	return w.path
}

// Run processes events until ctx is cancelled, then releases the watcher.
func (w *SettingsWatcher) Run(ctx context.Context) error {
	defer w.stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.logger.Tracef("fsnotify event: %s op=%v", event.Name, event.Op)

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 && w.isSettingsFile(event.Name) {
				w.schedule()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Errorf("Watcher error: %v", err)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (w *SettingsWatcher) isSettingsFile(name string) bool {
	if filepath.Clean(name) == w.path {
		return true
	}
	return pathutil.SamePath(name, w.path)
}

// schedule restarts the quiet period, so only the last event of a burst
// triggers the callback.
func (w *SettingsWatcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		if w.timer.Stop() {
			w.logger.Tracef("Debounced change to %s", filepath.Base(w.path))
		}
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		w.logger.Infof("Settings changed: %s", filepath.Base(w.path))
		if w.onChange == nil {
			return
		}
		w.runMu.Lock()
		defer w.runMu.Unlock()
		w.onChange(w.path)
	})
}

func (w *SettingsWatcher) stop() {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	w.watcher.Close()
}
