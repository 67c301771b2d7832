package tui

import (
	"strconv"
	"strings"

	"crewdeck/internal/mutate"
	"crewdeck/internal/palette"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLists()
		return m, nil

	case storeChangedMsg:
		if err := m.reloadFromDisk(); err != nil {
			m = m.statusf("reload: %v", err)
		}
		if m.watcher != nil {
			return m, watchStore(m.watcher)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.debugKeyMsg(msg)
	if key.Matches(msg, globalKeys.ForceQuit) {
		return m, tea.Quit
	}

	if m.modal == modalAddTime {
		return m.handleAddTimeKey(msg)
	}

	if m.pal.Visible() {
		m = m.handlePaletteKey(msg)
		m = m.applyPaletteEffects()
		return m, nil
	}

	switch {
	case key.Matches(msg, globalKeys.Palette):
		m.pal.Toggle(m.selectedWorkspaceID, m.workspaceName(m.selectedWorkspaceID))
		return m, nil
	case key.Matches(msg, globalKeys.Quit):
		if !m.activeListFiltering() {
			return m, tea.Quit
		}
	case key.Matches(msg, globalKeys.Reload):
		if !m.activeListFiltering() {
			if err := m.reloadFromDisk(); err != nil {
				m = m.statusf("reload: %v", err)
			}
			return m, nil
		}
	case key.Matches(msg, globalKeys.Back):
		if !m.activeListFiltering() {
			return m.goBack(), nil
		}
	case key.Matches(msg, globalKeys.Select):
		if !m.activeListFiltering() {
			return m.drillDown(), nil
		}
	}

	var cmd tea.Cmd
	switch m.view {
	case viewWorkspaces:
		m.workspacesList, cmd = m.workspacesList.Update(msg)
	case viewProjects:
		m.projectsList, cmd = m.projectsList.Update(msg)
	case viewTasks:
		m.tasksList, cmd = m.tasksList.Update(msg)
	}
	return m, cmd
}

func (m appModel) activeListFiltering() bool {
	switch m.view {
	case viewWorkspaces:
		return m.workspacesList.FilterState() == list.Filtering
	case viewProjects:
		return m.projectsList.FilterState() == list.Filtering
	case viewTasks:
		return m.tasksList.FilterState() == list.Filtering
	}
	return false
}

func (m appModel) goBack() appModel {
	switch m.view {
	case viewTask:
		m.view = viewTasks
		m.openTaskID = ""
	case viewTasks:
		if m.selectedMemberID != "" && m.selectedWorkspaceID == "" {
			m.view = viewWorkspaces
		} else {
			m.view = viewProjects
		}
		m.selectedProjectID = ""
		m.selectedMemberID = ""
	case viewProjects:
		m.view = viewWorkspaces
		m.selectedWorkspaceID = ""
	}
	return m
}

func (m appModel) drillDown() appModel {
	switch m.view {
	case viewWorkspaces:
		if it, ok := m.workspacesList.SelectedItem().(workspaceItem); ok {
			m.selectedWorkspaceID = it.workspace.ID
			m.selectedMemberID = ""
			m.refreshProjects()
			m.view = viewProjects
		}
	case viewProjects:
		if it, ok := m.projectsList.SelectedItem().(projectItem); ok {
			m.selectedProjectID = it.project.ID
			m.selectedMemberID = ""
			m.refreshTasks()
			m.view = viewTasks
		}
	case viewTasks:
		if it, ok := m.tasksList.SelectedItem().(taskItem); ok {
			m.openTaskID = it.task.ID
			m.view = viewTask
		}
	}
	return m
}

func (m appModel) handlePaletteKey(msg tea.KeyMsg) appModel {
	switch msg.String() {
	case "ctrl+k":
		m.pal.Toggle(m.selectedWorkspaceID, m.workspaceName(m.selectedWorkspaceID))
		return m
	case "esc":
		m.pal.Close()
		return m
	case "up", "ctrl+p":
		m.pal.MoveUp()
		return m
	case "down", "ctrl+n":
		m.pal.MoveDown()
		return m
	case "enter":
		m.pal.Select()
		return m
	case "backspace":
		m.pal.Backspace()
		return m
	case "ctrl+a":
		m.pal.ToggleAIMode()
		return m
	case "ctrl+u":
		m.pal.SetQuery("")
		return m
	case "alt+1":
		m.pal.SetCategoryFilter(palette.KindWorkspace)
		return m
	case "alt+2":
		m.pal.SetCategoryFilter(palette.KindProject)
		return m
	case "alt+3":
		m.pal.SetCategoryFilter(palette.KindMember)
		return m
	case "alt+4":
		m.pal.SetCategoryFilter(palette.KindTeam)
		return m
	case "alt+5":
		m.pal.SetCategoryFilter(palette.KindTask)
		return m
	case "alt+0":
		m.pal.ClearFilters()
		return m
	}

	if msg.Type == tea.KeyRunes && !msg.Alt {
		m.pal.SetQuery(m.pal.Query() + string(msg.Runes))
	} else if msg.Type == tea.KeySpace {
		m.pal.SetQuery(m.pal.Query() + " ")
	}
	return m
}

// applyPaletteEffects drains the callback side effects recorded during the
// last palette dispatch and applies them to the model.
func (m appModel) applyPaletteEffects() appModel {
	fx := *m.fx
	*m.fx = paletteEffects{}

	if fx.workspaceID != "" {
		m.selectedWorkspaceID = fx.workspaceID
		m.selectedMemberID = ""
		m.selectedProjectID = ""
		m.refreshProjects()
		m.view = viewProjects
	}
	if fx.projectID != "" {
		m.selectedProjectID = fx.projectID
		m.selectedMemberID = ""
		m.refreshTasks()
		m.view = viewTasks
	}
	if fx.memberID != "" {
		m.selectedMemberID = fx.memberID
		m.selectedProjectID = ""
		m.refreshTasks()
		m.view = viewTasks
	}
	if fx.teamID != "" {
		if tm, ok := m.db.FindTeam(fx.teamID); ok {
			m = m.statusf("equipo %s: %d miembros", tm.Name, len(tm.MemberIDs))
		}
	}
	if fx.openTaskID != "" {
		m.openTaskID = fx.openTaskID
		if t, ok := m.db.FindTask(fx.openTaskID); ok && t.WorkspaceID != "" {
			if m.selectedWorkspaceID != t.WorkspaceID {
				m.selectedWorkspaceID = t.WorkspaceID
				m.refreshProjects()
			}
			if m.selectedProjectID != t.ProjectID {
				m.selectedProjectID = t.ProjectID
				m.selectedMemberID = ""
				m.refreshTasks()
			}
		}
		m.view = viewTask
	}
	if fx.deleteTaskID != "" {
		m = m.archiveTask(fx.deleteTaskID)
	}
	if fx.shareTaskID != "" {
		m = m.shareTask(fx.shareTaskID)
	}
	if fx.addTimeTaskID != "" {
		m.modal = modalAddTime
		m.modalTaskID = fx.addTimeTaskID
		m.minutesInput.SetValue("")
		m.minutesInput.Focus()
	}
	if fx.chatTaskID != "" {
		m = m.statusf("chat: no backend configured")
	}
	if fx.editClientWS != "" {
		clientID := ""
		if w, ok := m.db.FindWorkspace(fx.editClientWS); ok {
			clientID = w.ClientID
		}
		if clientID == "" {
			m = m.statusf("workspace has no client attached")
		} else {
			m = m.statusf("edit client with: crewdeck clients edit %s", clientID)
		}
	}
	if fx.aiPrompt != "" {
		_ = m.store.AppendEvent(m.db.CurrentMemberID, "ai.prompt", m.db.CurrentMemberID,
			map[string]any{"prompt": fx.aiPrompt})
		m = m.statusf("prompt queued: %s", fx.aiPrompt)
	}
	return m
}

func (m appModel) archiveTask(taskID string) appModel {
	res, err := mutate.SetTaskArchived(m.db, m.db.CurrentMemberID, taskID, true)
	if err != nil {
		return m.statusf("%v", err)
	}
	if res.Changed {
		if err := m.store.Save(m.db); err != nil {
			return m.statusf("save: %v", err)
		}
		_ = m.store.AppendEvent(m.db.CurrentMemberID, "task.archive", res.Task.ID, res.EventPayload)
	}
	m.pal.SetSnapshot(snapshotFromDB(m.db))
	m.refreshWorkspaces()
	m.refreshTasks()
	return m.statusf("tarea eliminada: %s", res.Task.Title)
}

func (m appModel) shareTask(taskID string) appModel {
	t, ok := m.db.FindTask(taskID)
	if !ok {
		return m.statusf("task not found: %s", taskID)
	}
	var b strings.Builder
	if w, ok := m.db.FindWorkspace(t.WorkspaceID); ok {
		b.WriteString(w.Name)
		b.WriteString(" / ")
	}
	if p, ok := m.db.FindProject(t.ProjectID); ok {
		b.WriteString(p.Name)
		b.WriteString(" / ")
	}
	b.WriteString(t.Title)
	if t.StatusID != "" {
		b.WriteString(" [" + t.StatusID + "]")
	}
	b.WriteString(" (" + t.ID + ")")

	if err := copyToClipboard(b.String()); err != nil {
		return m.statusf("clipboard: %v", err)
	}
	return m.statusf("copiado: %s", t.Title)
}

func (m appModel) handleAddTimeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.modal = modalNone
		m.modalTaskID = ""
		m.minutesInput.Blur()
		return m, nil
	case "enter":
		minutes, err := strconv.Atoi(strings.TrimSpace(m.minutesInput.Value()))
		if err != nil || minutes <= 0 {
			m = m.statusf("minutos inválidos")
			return m, nil
		}
		m = m.bookTime(m.modalTaskID, minutes)
		m.modal = modalNone
		m.modalTaskID = ""
		m.minutesInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.minutesInput, cmd = m.minutesInput.Update(msg)
	return m, cmd
}

func (m appModel) bookTime(taskID string, minutes int) appModel {
	e, err := mutate.AddTimeEntry(m.db, m.store, m.db.CurrentMemberID, taskID, minutes, "")
	if err != nil {
		return m.statusf("%v", err)
	}
	if err := m.store.Save(m.db); err != nil {
		return m.statusf("save: %v", err)
	}
	_ = m.store.AppendEvent(m.db.CurrentMemberID, "task.time", e.TaskID, *e)
	t, _ := m.db.FindTask(taskID)
	return m.statusf("añadidos %d min a %s", minutes, t.Title)
}
