// Package watch notifies when the profile collection file changes on disk.
//
// The parent directory is watched rather than the file itself so that
// editors and tools that replace the file with a rename keep being seen.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/custodia-labs/profilerag/internal/logger"
)

// DefaultDebounce is how long the file must be quiet before a change is reported.
const DefaultDebounce = 500 * time.Millisecond

// ErrEmptyPath is returned when no file path is given.
var ErrEmptyPath = errors.New("watch: file path is required")

// Event reports a settled change to the watched file.
type Event struct {
	Path string
	Op   fsnotify.Op
}

// Removed reports whether the file was deleted or moved away.
func (e Event) Removed() bool {
	return e.Op.Has(fsnotify.Remove) || e.Op.Has(fsnotify.Rename)
}

// Watcher reports debounced changes to a single file.
type Watcher struct {
	path     string
	dir      string
	debounce time.Duration
}

// New creates a watcher for path. A non-positive debounce uses DefaultDebounce.
func New(path string, debounce time.Duration) (*Watcher, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{path: abs, dir: filepath.Dir(abs), debounce: debounce}, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Watch starts watching and returns a channel of settled changes.
// The channel is closed when ctx is cancelled.
func (w *Watcher) Watch(ctx context.Context) (<-chan Event, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(w.dir); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch %s: %w", w.dir, err)
	}

	logger.L().Debug("watching profile file", zap.String("path", w.path))

	out := make(chan Event, 1)
	go w.loop(ctx, fw, out)
	return out, nil
}

func (w *Watcher) loop(ctx context.Context, fw *fsnotify.Watcher, out chan<- Event) {
	defer close(out)
	defer fw.Close()

	var (
		timer   *time.Timer
		fire    <-chan time.Time
		pending Event
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-fw.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			pending = Event{Path: w.path, Op: pending.Op | ev.Op}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			select {
			case out <- pending:
			case <-ctx.Done():
				return
			}
			pending = Event{}

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			logger.Warn("watch %s: %v", w.path, err)
		}
	}
}

// relevant reports whether ev touches the watched file in a way that can
// change its contents. Chmod-only events are ignored.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Write) ||
		ev.Op.Has(fsnotify.Remove) || ev.Op.Has(fsnotify.Rename)
}
