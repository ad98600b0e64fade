// This file implements a file system watcher for the inbox directory.
// It uses OS-level file system events to detect new comic files and hands
// them to a callback once they have stopped changing.

package library

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches an inbox directory and reports settled comic files.
type Watcher struct {
	root          string
	onChange      func(paths []string)
	logger        *slog.Logger
	watcher       *fsnotify.Watcher
	changedPaths  map[string]bool
	mu            sync.Mutex
	debounceTimer *time.Timer
	debounceDelay time.Duration
	stopChan      chan struct{}
	stopOnce      sync.Once
}

// NewWatcher creates a watcher for root. onChange receives the comic files
// created or written since the previous callback, after debounceDelay of
// quiet.
func NewWatcher(root string, debounceDelay time.Duration, logger *slog.Logger, onChange func(paths []string)) *Watcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if debounceDelay <= 0 {
		debounceDelay = 2 * time.Second
	}
	return &Watcher{
		root:          root,
		onChange:      onChange,
		logger:        logger,
		changedPaths:  make(map[string]bool),
		debounceDelay: debounceDelay,
		stopChan:      make(chan struct{}),
	}
}

// Start begins watching root and every directory below it.
func (w *Watcher) Start() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	w.watcher = watcher

	err = filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		watcher.Close()
		return err
	}

	w.logger.Info("inbox watcher started", "root", w.root)
	go w.processEvents()
	return nil
}

// Stop stops the watcher. Pending changes are dropped.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.stopChan)
		w.mu.Lock()
		if w.debounceTimer != nil {
			w.debounceTimer.Stop()
		}
		w.mu.Unlock()
		if w.watcher != nil {
			err = w.watcher.Close()
		}
	})
	return err
}

func (w *Watcher) processEvents() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("inbox watcher error", "error", err)

		case <-w.stopChan:
			return
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}

	info, err := os.Stat(event.Name)
	if err != nil {
		return
	}
	if info.IsDir() {
		if event.Has(fsnotify.Create) {
			if err := w.watcher.Add(event.Name); err != nil {
				w.logger.Warn("failed to watch new directory", "path", event.Name, "error", err)
			}
		}
		return
	}
	if !IsComicFile(event.Name) || filepath.Base(event.Name)[0] == '.' {
		return
	}
	w.markChanged(event.Name)
}

// markChanged records path and restarts the debounce timer.
func (w *Watcher) markChanged(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.changedPaths[path] = true
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debounceDelay, w.flush)
}

// flush hands the settled paths to the callback. Files that vanished in the
// meantime (moved away or deleted) are dropped.
func (w *Watcher) flush() {
	w.mu.Lock()
	paths := make([]string, 0, len(w.changedPaths))
	for p := range w.changedPaths {
		if _, err := os.Stat(p); err == nil {
			paths = append(paths, p)
		}
	}
	w.changedPaths = make(map[string]bool)
	w.mu.Unlock()

	select {
	case <-w.stopChan:
		return
	default:
	}
	if len(paths) == 0 {
		return
	}
	SortNatural(paths)
	w.logger.Info("inbox watcher detected new files", "count", len(paths))
	w.onChange(paths)
}
