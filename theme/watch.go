package theme

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the theme file whenever it changes and hands the result
// to onReload on the watcher goroutine. Editors that replace the file
// (rename + create) are handled by watching the directory. Parse errors
// go to onError and keep the previous theme in effect. The returned
// stop function releases the watcher.
func Watch(path string, onReload func(*Theme), onError func(error)) (stop func(), err error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, err
	}

	target := filepath.Clean(path)
	go func() {
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
					continue
				}
				t, lerr := Load(path)
				if lerr != nil {
					if onError != nil {
						onError(lerr)
					}
					continue
				}
				onReload(t)

			case werr, ok := <-watcher.Errors:
				if !ok {
					return
				}
				if onError != nil {
					onError(werr)
				}
			}
		}
	}()

	return func() { watcher.Close() }, nil
}
