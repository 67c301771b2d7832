package tui

import (
	"fmt"

	"crewdeck/internal/model"

	"github.com/charmbracelet/bubbles/list"
)

type workspaceItem struct {
	workspace  model.Workspace
	clientName string
	current    bool
	openTasks  int
}

func (i workspaceItem) FilterValue() string { return i.workspace.Name + " " + i.clientName }
func (i workspaceItem) Title() string {
	if i.current {
		return i.workspace.Name + " •"
	}
	return i.workspace.Name
}
func (i workspaceItem) Description() string {
	if i.clientName != "" {
		return i.clientName
	}
	return i.workspace.ID
}
func (i workspaceItem) Badge() string { return fmt.Sprintf("%d", i.openTasks) }

type projectItem struct {
	project   model.Project
	openTasks int
}

func (i projectItem) FilterValue() string { return i.project.Name }
func (i projectItem) Title() string       { return i.project.Name }
func (i projectItem) Description() string {
	if i.project.Description != "" {
		return i.project.Description
	}
	return i.project.ID
}
func (i projectItem) Badge() string { return fmt.Sprintf("%d", i.openTasks) }

type taskItem struct {
	task         model.Task
	projectName  string
	assigneeName string
}

func (i taskItem) FilterValue() string { return i.task.Title + " " + i.projectName }
func (i taskItem) Title() string       { return i.task.Title }
func (i taskItem) Description() string {
	if i.projectName != "" {
		return i.projectName
	}
	return i.task.ID
}
func (i taskItem) Badge() string {
	if i.task.StatusID == "" {
		return ""
	}
	return i.task.StatusID
}

func newList(title string, items []list.Item) list.Model {
	l := list.New(items, newCompactDelegate(), 0, 0)
	l.Title = title
	// The app renders its own breadcrumb header and footer, so keep the
	// list chrome minimal.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(true)
	// Bubble list defaults to quitting on ESC; here ESC means "back".
	l.KeyMap.Quit.SetKeys("q")
	// Emacs-style navigation aliases.
	up := append([]string{}, l.KeyMap.CursorUp.Keys()...)
	l.KeyMap.CursorUp.SetKeys(append(up, "ctrl+p")...)
	down := append([]string{}, l.KeyMap.CursorDown.Keys()...)
	l.KeyMap.CursorDown.SetKeys(append(down, "ctrl+n")...)
	return l
}
