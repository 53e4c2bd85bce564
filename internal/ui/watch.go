package ui

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

type fileChangedMsg struct{}

type watchErrMsg struct {
	err error
}

// fileWatcher reports changes to a single file. It watches the parent
// directory because saves usually replace the file rather than write to it.
type fileWatcher struct {
	watcher *fsnotify.Watcher
	name    string
}

func newFileWatcher(path string) (*fileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	return &fileWatcher{watcher: w, name: filepath.Base(abs)}, nil
}

// wait blocks until the watched file is created or written.
func (fw *fileWatcher) wait() tea.Cmd {
	if fw == nil {
		return nil
	}
	return func() tea.Msg {
		for {
			select {
			case ev, ok := <-fw.watcher.Events:
				if !ok {
					return nil
				}
				if filepath.Base(ev.Name) != fw.name {
					continue
				}
				if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
					return fileChangedMsg{}
				}
			case err, ok := <-fw.watcher.Errors:
				if !ok {
					return nil
				}
				return watchErrMsg{err: err}
			}
		}
	}
}

func (fw *fileWatcher) Close() error {
	if fw == nil {
		return nil
	}
	return fw.watcher.Close()
}
