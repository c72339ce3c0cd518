package store

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"redox/internal/debounce"
)

// ChangeEvent reports that the database file was written to
type ChangeEvent struct {
	Path string
	At   time.Time
}

// Watcher monitors the database file (and its WAL/journal siblings) for
// writes made by other processes.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	path      string
	debouncer *debounce.Debouncer

	Events chan ChangeEvent
	Errors chan error
	done   chan struct{}
}

// NewWatcher creates a watcher for the database at path. Bursts of writes
// closer together than delay are reported once.
func NewWatcher(path string, delay time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	// Watch the directory: SQLite replaces and creates sibling files
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	return &Watcher{
		fsWatcher: fsw,
		path:      abs,
		debouncer: debounce.New(delay),
		Events:    make(chan ChangeEvent, 1),
		Errors:    make(chan error, 10),
		done:      make(chan struct{}),
	}, nil
}

// Start begins watching for file changes
func (w *Watcher) Start() {
	go w.watchLoop()
}

// Stop stops the watcher
func (w *Watcher) Stop() error {
	w.debouncer.Cancel()
	close(w.done)
	return w.fsWatcher.Close()
}

func (w *Watcher) watchLoop() {
	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleFSEvent(event)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
				// Error channel full, drop
			}
		}
	}
}

// handleFSEvent schedules a change notification for writes to the database
func (w *Watcher) handleFSEvent(event fsnotify.Event) {
	if !w.matches(event.Name) {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}

	w.debouncer.Trigger(func() {
		select {
		case <-w.done:
			return
		default:
		}
		select {
		case w.Events <- ChangeEvent{Path: w.path, At: time.Now()}:
		default:
			// a change is already pending
		}
	})
}

// matches reports whether name is the database file or one of its
// -wal, -shm or -journal siblings
func (w *Watcher) matches(name string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		abs = name
	}
	return abs == w.path || strings.HasPrefix(abs, w.path+"-")
}
