// Package watcher monitors the recipe data directory and triggers a reload
// when data files change on disk.
package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultSettleDelay is how long the watcher waits after the last change
// before firing. Editors and sync tools write files in several bursts;
// reloading on every burst would thrash the library.
const DefaultSettleDelay = 500 * time.Millisecond

// Watcher monitors a directory of JSON data files using fsnotify and
// invokes the reload callback once writes have settled.
type Watcher struct {
	fsw         *fsnotify.Watcher
	logger      *slog.Logger
	settleDelay time.Duration
	onChange    func()

	mu    sync.Mutex
	timer *time.Timer
}

// Options configures the watcher.
type Options struct {
	// SettleDelay overrides DefaultSettleDelay when positive.
	SettleDelay time.Duration
}

// New creates a watcher that calls onChange after data files stop changing.
func New(logger *slog.Logger, onChange func(), opts Options) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	delay := opts.SettleDelay
	if delay <= 0 {
		delay = DefaultSettleDelay
	}

	return &Watcher{
		fsw:         fsw,
		logger:      logger,
		settleDelay: delay,
		onChange:    onChange,
	}, nil
}

// Watch adds a directory to be monitored.
func (w *Watcher) Watch(dir string) error {
	if err := w.fsw.Add(filepath.Clean(dir)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	w.logger.Info("watching recipe data directory", "dir", dir)
	return nil
}

// Start processes file system events until the context is cancelled.
// This method blocks.
func (w *Watcher) Start(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("file watcher error", "error", err)
		}
	}
}

// handleEvent schedules a reload for relevant changes.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !strings.HasSuffix(event.Name, ".json") {
		return
	}
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}

	w.logger.Debug("recipe data file changed", "file", event.Name, "op", event.Op.String())

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.settleDelay, w.onChange)
}

// Stop stops the watcher and releases resources.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.mu.Unlock()

	return w.fsw.Close()
}
