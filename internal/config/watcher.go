package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ReloadFunc receives a reloaded configuration, or the error that
// prevented the reload.
type ReloadFunc func(cfg *Config, err error)

// Watcher reloads a configuration file when it changes.
type Watcher struct {
	mu sync.Mutex

	path     string
	watcher  *fsnotify.Watcher
	onReload ReloadFunc
	debounce time.Duration
	timer    *time.Timer

	closed   bool
	closeCh  chan struct{}
	closedWg sync.WaitGroup
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets the delay used to coalesce rapid changes.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// NewWatcher starts watching path. The parent directory is watched so the
// file may be created later or replaced by an editor's rename.
func NewWatcher(path string, onReload ReloadFunc, opts ...WatcherOption) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(absPath), err)
	}

	w := &Watcher{
		path:     absPath,
		watcher:  fsw,
		onReload: onReload,
		debounce: 100 * time.Millisecond,
		closeCh:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	w.closedWg.Add(1)
	go w.processLoop()

	return w, nil
}

// Path returns the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// processLoop handles incoming fsnotify events.
func (w *Watcher) processLoop() {
	defer w.closedWg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				w.schedule()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.notify(nil, fmt.Errorf("watching %s: %w", w.path, err))
		}
	}
}

// schedule (re)starts the debounce timer.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

// reload reads the file and reports the result.
func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	w.notify(cfg, err)
}

func (w *Watcher) notify(cfg *Config, err error) {
	w.mu.Lock()
	closed := w.closed
	w.mu.Unlock()

	if !closed && w.onReload != nil {
		w.onReload(cfg, err)
	}
}

// Close stops the watcher. Pending reloads are dropped.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrWatcherClosed
	}
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	close(w.closeCh)
	w.mu.Unlock()

	w.closedWg.Wait()
	return w.watcher.Close()
}
