package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/wallswap/wallswap/pkg/logger"
)

// ReloadFunc is invoked after the watched configuration file changes.
// It runs on the watcher goroutine; implementations should hand off
// to their own control flow quickly.
type ReloadFunc func()

// Watcher watches the configuration file and triggers reloads, as an
// alternative to sending SIGHUP by hand. Editors typically replace
// the file rather than write it in place, so the parent directory is
// watched and events are debounced.
type Watcher struct {
	configPath     string
	logger         logger.Logger
	watcher        *fsnotify.Watcher
	onReload       ReloadFunc
	debounceTimer  *time.Timer
	debouncePeriod time.Duration
	done           chan struct{}
	mu             sync.Mutex
	watching       bool
}

// NewWatcher creates a configuration file watcher
func NewWatcher(configPath string, log logger.Logger, onReload ReloadFunc) *Watcher {
	return &Watcher{
		configPath:     configPath,
		logger:         log,
		onReload:       onReload,
		debouncePeriod: 500 * time.Millisecond,
	}
}

// SetDebouncePeriod overrides the event debounce period
func (w *Watcher) SetDebouncePeriod(period time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.debouncePeriod = period
}

// Start begins watching the configuration file for changes
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.watching {
		return fmt.Errorf("already watching %s", w.configPath)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	if err := watcher.Add(filepath.Dir(w.configPath)); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch config directory: %w", err)
	}

	w.watcher = watcher
	w.done = make(chan struct{})
	w.watching = true

	go w.watchLoop()

	w.logger.Debug("Watching configuration file",
		logger.WithField("path", w.configPath))
	return nil
}

// Stop stops watching. Safe to call when not watching.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.watching {
		return
	}

	close(w.done)
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
		w.debounceTimer = nil
	}
	if err := w.watcher.Close(); err != nil {
		w.logger.Warn("Error closing file watcher", logger.WithField("error", err))
	}
	w.watcher = nil
	w.watching = false
}

func (w *Watcher) watchLoop() {
	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.isConfigFileEvent(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.logger.Debug("Configuration file event",
				logger.WithField("event", event.String()))
			w.debounce()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Configuration watcher error",
				logger.WithField("error", err))
		}
	}
}

func (w *Watcher) isConfigFileEvent(eventPath string) bool {
	configName := filepath.Base(w.configPath)
	eventName := filepath.Base(eventPath)

	// Direct match, or a temporary file an editor renames over ours.
	return eventName == configName || strings.HasPrefix(eventName, configName)
}

func (w *Watcher) debounce() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debouncePeriod, w.onReload)
}
