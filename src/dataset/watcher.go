package dataset

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/leeric92/SalaryHistogramExplorer/src/logging"
)

// Watcher invokes a callback when the dataset file changes on disk, so the
// viewer and the daemon can re-load without a manual refresh. Events are
// debounced: editors and exporters often emit several writes per save.
type Watcher struct {
	fw   *fsnotify.Watcher
	done chan struct{}
}

const watchDebounce = 300 * time.Millisecond

// Watch starts watching path's directory and calls onChange (on the
// watcher goroutine) after each settled burst of writes to the file.
func Watch(path string, onChange func()) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(path)
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, err
	}
	w := &Watcher{fw: fw, done: make(chan struct{})}
	base := filepath.Base(path)

	go func() {
		var timer *time.Timer
		var timerC <-chan time.Time
		for {
			select {
			case ev, ok := <-fw.Events:
				if !ok {
					return
				}
				if filepath.Base(ev.Name) != base {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
					continue
				}
				logging.Debugf("dataset: change event %s on %s", ev.Op, ev.Name)
				if timer == nil {
					timer = time.NewTimer(watchDebounce)
					timerC = timer.C
				} else {
					timer.Reset(watchDebounce)
				}
			case <-timerC:
				timer = nil
				timerC = nil
				onChange()
			case err, ok := <-fw.Errors:
				if !ok {
					return
				}
				logging.Warnf("dataset: watch error: %v", err)
			case <-w.done:
				return
			}
		}
	}()
	return w, nil
}

// Close stops the watcher.
func (w *Watcher) Close() {
	close(w.done)
	w.fw.Close()
}
