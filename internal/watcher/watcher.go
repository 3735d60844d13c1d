// Package watcher monitors source directories and organizes new files as
// they arrive.
package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchConfig contains watcher settings.
type WatchConfig struct {
	Debounce        time.Duration // Delay before processing a new file
	StableThreshold time.Duration // Time the file size must hold steady
	IgnorePatterns  []string      // Glob patterns for files to ignore
}

// DefaultWatchConfig returns a WatchConfig with sensible defaults.
func DefaultWatchConfig() *WatchConfig {
	return &WatchConfig{
		Debounce:        2 * time.Second,
		StableThreshold: time.Second,
		IgnorePatterns:  DefaultIgnorePatterns(),
	}
}

// Disposition is what the handler did with a file.
type Disposition int

const (
	// Organized indicates the file was moved to a destination folder.
	Organized Disposition = iota
	// Skipped indicates the file was excluded from organization.
	Skipped
	// Failed indicates the move was attempted and failed.
	Failed
)

// FileHandler classifies and moves a single file. It is called once per
// settled file and reports how the file was handled.
type FileHandler func(path string) (Disposition, error)

// WatchSummary contains statistics from a watch session.
type WatchSummary struct {
	Organized int
	Skipped   int
	Failed    int
	Duration  time.Duration
}

// Watcher monitors directories and routes new files through a handler.
// Events are debounced, and files must hold a steady size before the
// handler runs, so partially written downloads are left alone. Settled
// files are drained by a single dispatch goroutine, so the handler is
// never invoked concurrently.
type Watcher struct {
	config    *WatchConfig
	handler   FileHandler
	fsWatcher *fsnotify.Watcher
	filter    *FileFilter
	debouncer *Debouncer
	stability *StabilityChecker
	settled   chan string
	done      chan struct{}
	cancel    context.CancelFunc
	ctx       context.Context
	wg        sync.WaitGroup
	startTime time.Time

	mu        sync.Mutex
	organized int
	skipped   int
	failed    int
}

// New creates a Watcher. A nil config selects the defaults.
func New(config *WatchConfig, handler FileHandler) *Watcher {
	if config == nil {
		config = DefaultWatchConfig()
	}
	w := &Watcher{
		config:    config,
		handler:   handler,
		filter:    NewFileFilter(config.IgnorePatterns),
		stability: NewStabilityChecker(config.StableThreshold),
		done:      make(chan struct{}),
	}
	w.debouncer = NewDebouncer(config.Debounce, w.enqueue)
	return w
}

// Start begins watching the given directories. The watcher runs until
// Stop is called.
func (w *Watcher) Start(dirs []string) error {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	for _, dir := range dirs {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			fsWatcher.Close()
			return err
		}
		if err := fsWatcher.Add(absDir); err != nil {
			fsWatcher.Close()
			return err
		}
	}

	w.fsWatcher = fsWatcher
	w.startTime = time.Now()
	w.done = make(chan struct{})
	w.settled = make(chan string, 64)
	w.ctx, w.cancel = context.WithCancel(context.Background())

	w.wg.Add(2)
	go w.eventLoop()
	go w.dispatchLoop()

	return nil
}

// Stop shuts the watcher down and returns the session summary. A file
// already in the handler is allowed to finish and is counted; files
// still waiting out their debounce delay are abandoned.
func (w *Watcher) Stop() *WatchSummary {
	if w.cancel != nil {
		w.cancel()
	}
	close(w.done)
	w.wg.Wait()

	w.debouncer.CancelAll()
	if w.fsWatcher != nil {
		w.fsWatcher.Close()
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	return &WatchSummary{
		Organized: w.organized,
		Skipped:   w.skipped,
		Failed:    w.failed,
		Duration:  time.Since(w.startTime),
	}
}

// eventLoop dispatches fsnotify events into the debouncer.
func (w *Watcher) eventLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			// New files arrive as Create; downloads that finish with an
			// atomic rename arrive as Rename in the final location.
			if event.Op&(fsnotify.Create|fsnotify.Rename) != 0 {
				w.handleEvent(event.Name)
			}
		case _, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
		}
	}
}

// handleEvent filters one event and schedules the file for processing.
func (w *Watcher) handleEvent(path string) {
	if w.filter.ShouldIgnore(path) {
		return
	}
	w.debouncer.Schedule(path)
}

// enqueue hands a settled path from its debounce timer to the dispatch
// goroutine.
func (w *Watcher) enqueue(path string) {
	select {
	case w.settled <- path:
	case <-w.done:
	}
}

// dispatchLoop drains settled paths one at a time. The handler and the
// move it performs are serialized here.
func (w *Watcher) dispatchLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.done:
			return
		default:
		}
		select {
		case <-w.done:
			return
		case path := <-w.settled:
			w.processFile(path)
		}
	}
}

// processFile runs once per settled file, on the dispatch goroutine.
func (w *Watcher) processFile(path string) {
	info, err := os.Lstat(path)
	if err != nil {
		// Vanished while debouncing; nothing to do.
		return
	}
	// Destination folders created by the organizer show up as Create
	// events in the watched directory.
	if info.IsDir() || info.Mode()&os.ModeSymlink != 0 {
		return
	}

	if err := w.stability.WaitForStableContext(w.ctx, path); err != nil {
		if errors.Is(err, context.Canceled) {
			// Shutdown cut the wait short; the file is abandoned, not failed.
			return
		}
		w.tally(Failed)
		return
	}

	if w.handler == nil {
		return
	}
	disposition, err := w.handler(path)
	if err != nil {
		w.tally(Failed)
		return
	}
	w.tally(disposition)
}

func (w *Watcher) tally(d Disposition) {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch d {
	case Organized:
		w.organized++
	case Skipped:
		w.skipped++
	case Failed:
		w.failed++
	}
}

// IsRunning reports whether the watcher is active.
func (w *Watcher) IsRunning() bool {
	select {
	case <-w.done:
		return false
	default:
		return w.fsWatcher != nil
	}
}
