package loader

import (
	"errors"
	"io/fs"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceInterval drops repeated events for one file.
const debounceInterval = 100 * time.Millisecond

// Watcher reports asset paths whose descriptors changed below a DirSource
// root. Events carries asset paths, not file names; the caller invalidates
// them on its own goroutine.
type Watcher struct {
	watcher *fsnotify.Watcher
	source  *DirSource
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewWatcher watches the root of source and all directories below it.
func NewWatcher(source *DirSource) (*Watcher, error) {
	if source.Root() == "" {
		return nil, errors.New("source has no directory to watch")
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	err = filepath.WalkDir(source.Root(), func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return err
		}
		return w.Add(path)
	})
	if err != nil {
		_ = w.Close()
		return nil, err
	}

	watcher := &Watcher{
		watcher: w,
		source:  source,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Close stops watching. Events and Errors are closed once the watch loop
// has exited.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

// Drain hands every pending asset path to apply without blocking and
// returns how many were handled.
func (w *Watcher) Drain(apply func(path string)) int {
	handled := 0
	for {
		select {
		case path, ok := <-w.Events:
			if !ok {
				return handled
			}
			apply(path)
			handled++
		default:
			return handled
		}
	}
}

func (w *Watcher) run() {
	defer func() {
		close(w.Events)
		close(w.Errors)
		close(w.done)
	}()

	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !isDescriptorFile(event.Name) {
				continue
			}
			path, ok := w.source.AssetPath(event.Name)
			if !ok {
				continue
			}

			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < debounceInterval {
				continue
			}
			last[event.Name] = now

			log.Printf("[Watcher] %s changed (%s)", path, event.Op)
			select {
			case w.Events <- path:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
				log.Printf("[Watcher] Dropped error: %v", err)
			}
		case <-w.closeCh:
			return
		}
	}
}

func isDescriptorFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
