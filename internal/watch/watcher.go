// Package watch reports changes to the image files of the gallery folders.
package watch

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"mapgallery/internal/errors"
	"mapgallery/internal/log"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period used when none is configured.
const DefaultDebounce = 500 * time.Millisecond

// Change describes one image file event.
type Change struct {
	Path string
	Op   fsnotify.Op
}

// Watcher monitors directories and coalesces image file events into a
// single callback once the folders have been quiet for the debounce period.
type Watcher struct {
	// Directories being watched
	directories []string

	// Reports whether a base file name is a gallery image
	match func(name string) bool

	debounce time.Duration
	onChange func([]Change)

	fsWatcher *fsnotify.Watcher
	stopChan  chan struct{}
	doneChan  chan struct{}

	// Lock for running state, the directory list and the pending batch
	mutex   sync.Mutex
	running bool
	pending []Change
	timer   *time.Timer
}

// New creates a watcher that calls onChange with the batched changes of
// files accepted by match. A nil match accepts every file.
func New(match func(name string) bool, debounce time.Duration, onChange func([]Change)) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if match == nil {
		match = func(string) bool { return true }
	}

	return &Watcher{
		directories: []string{},
		match:       match,
		debounce:    debounce,
		onChange:    onChange,
		fsWatcher:   fsWatcher,
	}, nil
}

// AddDirectory adds a directory to watch
func (w *Watcher) AddDirectory(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		kind := errors.FolderUnreadable
		if os.IsNotExist(err) {
			kind = errors.FolderNotFound
		}
		return errors.NewFileError("cannot watch folder", dir, kind, err)
	}
	if !info.IsDir() {
		return errors.NewFileError("not a directory", dir, errors.FolderUnreadable, nil)
	}

	if err := w.fsWatcher.Add(dir); err != nil {
		return errors.NewFileError("failed to add directory to watcher", dir, errors.FolderUnreadable, err)
	}

	w.mutex.Lock()
	found := false
	for _, existing := range w.directories {
		if existing == dir {
			found = true
			break
		}
	}
	if !found {
		w.directories = append(w.directories, dir)
	}
	w.mutex.Unlock()

	log.LogWithFields(log.F("directory", dir)).Info("Watching directory")
	return nil
}

// Start begins processing events in a background goroutine.
func (w *Watcher) Start() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.running {
		return errors.New("watcher already running")
	}
	w.running = true
	w.stopChan = make(chan struct{})
	w.doneChan = make(chan struct{})

	go w.loop(w.stopChan, w.doneChan)
	log.Debug("Watcher started")
	return nil
}

func (w *Watcher) loop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handle(event)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.LogWithFields(log.F("error", err)).Error("fsnotify watcher error")

		case <-stop:
			return
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	relevant := fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename
	if event.Op&relevant == 0 {
		return
	}
	if !w.match(filepath.Base(event.Name)) {
		return
	}

	w.mutex.Lock()
	defer w.mutex.Unlock()
	if !w.running {
		return
	}
	w.pending = append(w.pending, Change{Path: event.Name, Op: event.Op})
	if w.timer == nil {
		w.timer = time.AfterFunc(w.debounce, w.flush)
	} else {
		w.timer.Reset(w.debounce)
	}
}

func (w *Watcher) flush() {
	w.mutex.Lock()
	batch := w.pending
	w.pending = nil
	w.timer = nil
	running := w.running
	w.mutex.Unlock()

	if !running || len(batch) == 0 || w.onChange == nil {
		return
	}
	log.LogWithFields(log.F("changes", len(batch))).Debug("Image folders changed")
	w.onChange(batch)
}

// Stop halts the watcher. Pending changes are discarded.
func (w *Watcher) Stop() {
	w.mutex.Lock()
	if !w.running {
		w.mutex.Unlock()
		return
	}
	w.running = false
	close(w.stopChan)
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.pending = nil
	done := w.doneChan
	w.mutex.Unlock()

	<-done
	if err := w.fsWatcher.Close(); err != nil {
		log.LogWithFields(log.F("error", err)).Error("Error closing fsnotify watcher")
	}
	log.Debug("Watcher stopped")
}

// IsRunning returns whether the watcher is currently active
func (w *Watcher) IsRunning() bool {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return w.running
}

// GetDirectories returns the list of directories being watched
func (w *Watcher) GetDirectories() []string {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	dirsCopy := make([]string, len(w.directories))
	copy(dirsCopy, w.directories)
	return dirsCopy
}

// WatchFolders creates and starts a watcher over every existing folder.
// Folders that cannot be watched are logged and skipped.
func WatchFolders(folders []string, match func(string) bool, debounce time.Duration, onChange func([]Change)) (*Watcher, error) {
	w, err := New(match, debounce, onChange)
	if err != nil {
		return nil, err
	}
	for _, dir := range folders {
		if err := w.AddDirectory(dir); err != nil {
			log.LogWithError(err).Warn("Folder will not be watched")
		}
	}
	if err := w.Start(); err != nil {
		w.fsWatcher.Close()
		return nil, err
	}
	return w, nil
}
