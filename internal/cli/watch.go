package cli

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
)

// Watcher marks the session stale when a deck source changes on disk.
// The session loop polls Stale between prompts; the watcher never touches deck state.
type Watcher struct {
	fsw    *fsnotify.Watcher
	logger *slog.Logger
	out    io.Writer

	mu    sync.Mutex
	files map[string]bool
	dirs  map[string]bool

	stale atomic.Bool
	done  chan struct{}
}

// NewWatcher starts an fsnotify watcher. Notices are printed to out.
func NewWatcher(logger *slog.Logger, out io.Writer) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to start file watcher: %w", err)
	}
	w := &Watcher{
		fsw:    fsw,
		logger: logger,
		out:    out,
		files:  make(map[string]bool),
		dirs:   make(map[string]bool),
		done:   make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Watch replaces the watched set with files, typically the deck and its includes.
// Parent directories are watched so editors that replace files on save are seen.
func (w *Watcher) Watch(files []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.files = make(map[string]bool, len(files))
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return err
		}
		w.files[abs] = true

		dir := filepath.Dir(abs)
		if w.dirs[dir] {
			continue
		}
		if err := w.fsw.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		w.dirs[dir] = true
	}
	w.logger.Debug("watching deck sources", "files", len(w.files), "dirs", len(w.dirs))
	return nil
}

// Stale reports whether a source changed since the last call, and resets the flag.
func (w *Watcher) Stale() bool {
	return w.stale.CompareAndSwap(true, false)
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("file watcher error", "err", err)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return
	}

	w.mu.Lock()
	watched := w.files[abs]
	w.mu.Unlock()
	if !watched {
		return
	}

	w.logger.Info("change detected", "file", abs, "op", event.Op.String())
	if !w.stale.Swap(true) {
		printSystemMessage(w.out, "%s changed, the deck reloads at the next prompt.", filepath.Base(abs))
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}
