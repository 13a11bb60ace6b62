package config

import (
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ogs-notify/ogs-notify/internal/models"
)

const reloadDebounce = 100 * time.Millisecond

// SettingsWatcher reloads the config file when it changes on disk.
type SettingsWatcher struct {
	path      string
	fsWatcher *fsnotify.Watcher
	updates   chan *models.Settings
	done      chan struct{}
	stopOnce  sync.Once

	debounceMu sync.Mutex
	debounce   *time.Timer
}

// WatchSettings starts watching the config file at path. The parent directory
// is watched rather than the file so that atomic saves (write tmp, rename)
// and files created after startup are both picked up.
func WatchSettings(path string) (*SettingsWatcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsWatcher.Add(filepath.Dir(path)); err != nil {
		_ = fsWatcher.Close()
		return nil, err
	}

	w := &SettingsWatcher{
		path:      filepath.Clean(path),
		fsWatcher: fsWatcher,
		updates:   make(chan *models.Settings, 1),
		done:      make(chan struct{}),
	}
	go w.processEvents()

	log.Printf("[config] Watching %s", w.path)
	return w, nil
}

// Updates returns the channel of successfully reloaded settings.
func (w *SettingsWatcher) Updates() <-chan *models.Settings {
	return w.updates
}

// Stop stops the watcher.
func (w *SettingsWatcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		_ = w.fsWatcher.Close()

		w.debounceMu.Lock()
		if w.debounce != nil {
			w.debounce.Stop()
		}
		w.debounceMu.Unlock()
	})
}

func (w *SettingsWatcher) processEvents() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Printf("[config] Watcher error: %v", err)
		}
	}
}

func (w *SettingsWatcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	// Rename shows up on the target of atomic writes.
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return
	}

	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()
	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounce = time.AfterFunc(reloadDebounce, w.reload)
}

func (w *SettingsWatcher) reload() {
	settings, err := LoadSettings(w.path)
	if err != nil {
		log.Printf("[config] Ignoring config change: %v", err)
		return
	}

	// Keep only the newest settings if the consumer hasn't caught up.
	select {
	case <-w.updates:
	default:
	}
	select {
	case w.updates <- settings:
		log.Printf("[config] Reloaded %s", w.path)
	case <-w.done:
	}
}
