package editor

import (
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// fileChangedMsg reports that the open file was modified on disk.
type fileChangedMsg struct {
	path string
}

// watcher watches the directory holding the open file. Watching the
// directory instead of the file keeps events flowing when a save
// replaces the file rather than rewriting it in place.
type watcher struct {
	fs   *fsnotify.Watcher
	path string
}

func newWatcher(path string) (*watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		fsw.Close()
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, err
	}
	return &watcher{fs: fsw, path: abs}, nil
}

// waitForChange blocks until an event for the watched file arrives.
// The command is re-issued by the model after each delivery.
func (w *watcher) waitForChange() tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case ev, ok := <-w.fs.Events:
				if !ok {
					return nil
				}
				if ev.Name != w.path {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
					return fileChangedMsg{path: ev.Name}
				}
			case _, ok := <-w.fs.Errors:
				if !ok {
					return nil
				}
			}
		}
	}
}

func (w *watcher) Close() error {
	return w.fs.Close()
}
