package sprite

import (
	"image"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounce = 100 * time.Millisecond

// Watcher reloads a sprite file whenever it changes on disk.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
	size    int
	Images  chan image.Image
	Errors  chan error
	closeCh chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
}

// Watch observes the directory holding path, since editors commonly replace
// files by rename and a watch on the file itself would be lost.
func Watch(path string, size int) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, err
	}

	watcher := &Watcher{
		watcher: w,
		path:    abs,
		size:    size,
		Images:  make(chan image.Image, 1),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	watcher.wg.Add(1)
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		w.wg.Wait()
		close(w.Images)
		close(w.Errors)
	})
	return err
}

// run reloads once the file has been quiet for the debounce period, so a
// save that arrives as several events is decoded only when complete.
func (w *Watcher) run() {
	defer w.wg.Done()

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			timer.Reset(debounce)
		case <-timer.C:
			img, err := Load(w.path, w.size)
			if err != nil {
				w.sendErr(err)
				continue
			}
			w.sendImage(img)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.sendErr(err)
		case <-w.closeCh:
			return
		}
	}
}

// sendImage keeps only the newest image when the consumer falls behind.
func (w *Watcher) sendImage(img image.Image) {
	for {
		select {
		case w.Images <- img:
			return
		case <-w.closeCh:
			return
		default:
		}
		select {
		case <-w.Images:
		default:
		}
	}
}

func (w *Watcher) sendErr(err error) {
	select {
	case w.Errors <- err:
	case <-w.closeCh:
	default:
	}
}
