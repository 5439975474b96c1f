package templates

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/proctorhq/proctor/internal/log"
)

// watchDebounce coalesces the burst of write events editors emit when
// saving a file into a single reload notification.
const watchDebounce = 500 * time.Millisecond

// Watch monitors the template file for changes and sends on the returned
// channel whenever it is rewritten. The parent directory is watched rather
// than the file itself so atomic save-and-rename editors are still seen.
// The returned stop function releases the watcher.
func Watch(path string) (<-chan struct{}, func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, err
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		_ = watcher.Close()
		return nil, nil, err
	}

	changes := make(chan struct{}, 1)
	target := filepath.Clean(path)

	log.SafeGo("templates.watch", func() {
		var timer *time.Timer
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(watchDebounce, func() {
					select {
					case changes <- struct{}{}:
					default:
					}
				})
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warn(log.CatTemplates, "template watcher error", "error", err.Error())
			}
		}
	})

	stop := func() { _ = watcher.Close() }
	return changes, stop, nil
}
