package catalog

import (
	"io/fs"
	"maps"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports changes to asset images and the manifest under a root.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

// NewWatcher watches root and every folder below it.
func NewWatcher(root string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
	if err != nil {
		_ = w.Close()
		return nil, err
	}

	watcher := &Watcher{
		watcher: w,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

// debounceDelay is how long a path must stay quiet before it is reported.
var debounceDelay = 100 * time.Millisecond

func (w *Watcher) run() {
	defer close(w.Events)
	defer close(w.Errors)
	pending := make(map[string]struct{})
	timer := time.NewTimer(debounceDelay)
	timer.Stop()
	defer timer.Stop()
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !isCatalogFile(event.Name) {
				continue
			}
			pending[event.Name] = struct{}{}
			timer.Reset(debounceDelay)
		case <-timer.C:
			for _, path := range slices.Sorted(maps.Keys(pending)) {
				select {
				case w.Events <- path:
				case <-w.closeCh:
					return
				}
				delete(pending, path)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

// Drain collects every change and error already queued without blocking.
// open is false once the watcher has shut down and will report nothing more.
func (w *Watcher) Drain() (paths []string, errs []error, open bool) {
	for {
		select {
		case path, ok := <-w.Events:
			if !ok {
				return paths, errs, false
			}
			paths = append(paths, path)
		case err, ok := <-w.Errors:
			if !ok {
				return paths, errs, false
			}
			errs = append(errs, err)
		default:
			return paths, errs, true
		}
	}
}

func isCatalogFile(path string) bool {
	return IsImageFile(path) || filepath.Base(path) == ManifestFile
}
