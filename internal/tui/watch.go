package tui

import (
	"path/filepath"
	"strings"
	"time"

	"crewdeck/internal/palette"
	"crewdeck/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

type storeChangedMsg struct{}

func newStoreWatcher(dir string) (*fsnotify.Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return nil, err
	}
	return w, nil
}

// watchStore blocks on the watcher until db.json changes. The store saves
// atomically (temp file + rename), so writes arrive as a burst of events;
// sleep briefly and drain the channel so one save yields one reload.
func watchStore(w *fsnotify.Watcher) tea.Cmd {
	return func() tea.Msg {
		for {
			ev, ok := <-w.Events
			if !ok {
				return nil
			}
			// The rename target is db.json; temp files are db.json.tmp-*.
			if !strings.HasPrefix(filepath.Base(ev.Name), "db.json") {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			time.Sleep(100 * time.Millisecond)
		drain:
			for {
				select {
				case _, ok := <-w.Events:
					if !ok {
						break drain
					}
				default:
					break drain
				}
			}
			return storeChangedMsg{}
		}
	}
}

// snapshotFromDB projects the store into the palette's read model.
func snapshotFromDB(db *store.DB) palette.Snapshot {
	if db == nil {
		return palette.Snapshot{}
	}
	return palette.Snapshot{
		Loaded:     true,
		Workspaces: db.Workspaces,
		Clients:    db.Clients,
		Projects:   db.Projects,
		Members:    db.Members,
		Teams:      db.Teams,
		Tasks:      db.Tasks,
	}
}
