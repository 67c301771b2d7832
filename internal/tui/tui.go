package tui

import (
	"crewdeck/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

func Run(dir string, db *store.DB) error {
	applyColorProfilePreference()
	applyThemePreference()

	m := newAppModel(dir, db)
	m.restoreTUIState()
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if fm, ok := final.(appModel); ok {
		fm.saveTUIState()
	}
	if m.watcher != nil {
		_ = m.watcher.Close()
	}
	return err
}
