package tui

import (
	"fmt"
	"os"
	"strings"

	"crewdeck/internal/model"
	"crewdeck/internal/palette"
	"crewdeck/internal/store"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

type view int

const (
	viewWorkspaces view = iota
	viewProjects
	viewTasks
	viewTask
)

type modalKind int

const (
	modalNone modalKind = iota
	modalAddTime
)

// paletteEffects collects the side effects the palette callbacks request
// during one key dispatch. The palette fires plain funcs; the Update loop
// drains this afterwards and applies the changes to the (value) model.
type dbHolder struct {
	db *store.DB
}

type paletteEffects struct {
	workspaceID string
	projectID   string
	memberID    string
	teamID      string
	openTaskID  string

	deleteTaskID  string
	shareTaskID   string
	addTimeTaskID string
	chatTaskID    string
	editClientWS  string
	aiPrompt      string
}

type appModel struct {
	dir   string
	store store.Store
	db    *store.DB

	width  int
	height int

	view view

	workspacesList list.Model
	projectsList   list.Model
	tasksList      list.Model

	selectedWorkspaceID string
	selectedProjectID   string
	// selectedMemberID scopes the tasks view to one member instead of a
	// project (set when drilling into a member from the palette).
	selectedMemberID string
	openTaskID       string

	pal *palette.Palette
	fx  *paletteEffects
	// dbh is shared with the palette's permission closures so they keep
	// seeing the live document across reloads.
	dbh *dbHolder

	modal        modalKind
	modalTaskID  string
	minutesInput textinput.Model

	watcher *fsnotify.Watcher

	debugEnabled bool
	debugLogPath string

	statusMsg string
}

func newAppModel(dir string, db *store.DB) appModel {
	s := store.Store{Dir: dir}
	m := appModel{
		dir:   dir,
		store: s,
		db:    db,
		view:  viewWorkspaces,
		fx:    &paletteEffects{},
		dbh:   &dbHolder{db: db},
	}

	if strings.TrimSpace(os.Getenv("CREWDECK_TUI_DEBUG")) != "" {
		m.debugEnabled = true
	}
	m.debugLogPath = strings.TrimSpace(os.Getenv("CREWDECK_TUI_DEBUG_LOG"))

	m.workspacesList = newList("Workspaces", []list.Item{})
	m.projectsList = newList("Projects", []list.Item{})
	m.tasksList = newList("Tasks", []list.Item{})

	m.minutesInput = textinput.New()
	m.minutesInput.Placeholder = "minutos"
	m.minutesInput.CharLimit = 5
	m.minutesInput.Width = 10

	fx := m.fx
	m.pal = palette.New(palette.Callbacks{
		OnWorkspaceSelect: func(id string) { fx.workspaceID = id },
		OnProjectSelect:   func(id string) { fx.projectID = id },
		OnMemberSelect:    func(id string) { fx.memberID = id },
		OnTaskSelect:      func(id string) { fx.openTaskID = id },
		OnTeamSelect:      func(id string) { fx.teamID = id },
		OnEditTask:        func(id string) { fx.openTaskID = id },
		OnDeleteTask:      func(id string) { fx.deleteTaskID = id },
		OnShareTask:       func(id string) { fx.shareTaskID = id },
		OnAddManualTime:   func(id string) { fx.addTimeTaskID = id },
		OnOpenChat:        func(id string) { fx.chatTaskID = id },
		OnEditClient:      func(ws string) { fx.editClientWS = ws },
		OnAIPrompt:        func(p string) { fx.aiPrompt = p },
	}, m.permissions())
	m.pal.SetSnapshot(snapshotFromDB(db))

	if w, err := newStoreWatcher(dir); err == nil {
		m.watcher = w
	}

	m.refreshWorkspaces()
	return m
}

func (m appModel) Init() tea.Cmd {
	if m.watcher != nil {
		return watchStore(m.watcher)
	}
	return nil
}

// permissions binds the palette's gates to the store's current member.
func (m appModel) permissions() palette.Permissions {
	dbh := m.dbh
	return palette.Permissions{
		IsAdmin: func() bool {
			mem, ok := dbh.db.FindMember(dbh.db.CurrentMemberID)
			return ok && mem.Admin
		},
		IsInvolved: func(taskID string) bool {
			return dbh.db.MemberIsInvolved(dbh.db.CurrentMemberID, taskID)
		},
	}
}

func (m *appModel) reloadFromDisk() error {
	db, err := m.store.Load()
	if err != nil {
		return err
	}
	m.db = db
	m.dbh.db = db
	m.pal.SetSnapshot(snapshotFromDB(db))
	m.refreshWorkspaces()
	if m.selectedWorkspaceID != "" {
		m.refreshProjects()
	}
	m.refreshTasks()
	return nil
}

func (m *appModel) refreshWorkspaces() {
	items := make([]list.Item, 0, len(m.db.Workspaces))
	for _, w := range m.db.Workspaces {
		if w.Archived {
			continue
		}
		clientName := ""
		if c, ok := m.db.FindClient(w.ClientID); ok {
			clientName = c.Name
		}
		items = append(items, workspaceItem{
			workspace:  w,
			clientName: clientName,
			current:    w.ID == m.db.CurrentWorkspaceID,
			openTasks:  m.openTaskCountForWorkspace(w.ID),
		})
	}
	m.workspacesList.SetItems(items)
}

func (m *appModel) refreshProjects() {
	items := []list.Item{}
	for _, p := range m.db.Projects {
		if p.Archived || p.WorkspaceID != m.selectedWorkspaceID {
			continue
		}
		items = append(items, projectItem{
			project:   p,
			openTasks: len(m.db.TasksForProject(p.ID)),
		})
	}
	m.projectsList.SetItems(items)
}

func (m *appModel) refreshTasks() {
	var tasks []model.Task
	switch {
	case m.selectedMemberID != "":
		for _, t := range m.db.TasksForMember(m.selectedMemberID) {
			if m.selectedWorkspaceID == "" || t.WorkspaceID == m.selectedWorkspaceID {
				tasks = append(tasks, t)
			}
		}
	case m.selectedProjectID != "":
		tasks = m.db.TasksForProject(m.selectedProjectID)
	}

	items := make([]list.Item, 0, len(tasks))
	for _, t := range tasks {
		projectName := ""
		if p, ok := m.db.FindProject(t.ProjectID); ok {
			projectName = p.Name
		}
		assigneeName := ""
		if a, ok := m.db.FindMember(t.AssigneeID); ok {
			assigneeName = a.Name
		}
		items = append(items, taskItem{task: t, projectName: projectName, assigneeName: assigneeName})
	}
	m.tasksList.SetItems(items)
}

func (m *appModel) openTaskCountForWorkspace(workspaceID string) int {
	n := 0
	for _, t := range m.db.Tasks {
		if !t.Archived && t.WorkspaceID == workspaceID {
			n++
		}
	}
	return n
}

func (m *appModel) resizeLists() {
	h := m.height - chromeHeight
	if h < 1 {
		h = 1
	}
	m.workspacesList.SetSize(m.width, h)
	m.projectsList.SetSize(m.width, h)
	m.tasksList.SetSize(m.width, h)
}

func (m appModel) workspaceName(id string) string {
	if w, ok := m.db.FindWorkspace(id); ok {
		return w.Name
	}
	return ""
}

func (m appModel) statusf(format string, args ...any) appModel {
	m.statusMsg = fmt.Sprintf(format, args...)
	return m
}

// restoreTUIState reopens the screen from the last session. Best effort:
// stale references (deleted workspace, removed task) leave the model on the
// workspaces view, so a bad state file never strands the UI.
func (m *appModel) restoreTUIState() {
	st, err := m.store.LoadTUIState()
	if err != nil || st == nil {
		return
	}
	if st.SelectedWorkspaceID != "" {
		if _, ok := m.db.FindWorkspace(st.SelectedWorkspaceID); ok {
			m.selectedWorkspaceID = st.SelectedWorkspaceID
		}
	}
	if st.SelectedProjectID != "" {
		if p, ok := m.db.FindProject(st.SelectedProjectID); ok &&
			(m.selectedWorkspaceID == "" || p.WorkspaceID == m.selectedWorkspaceID) {
			m.selectedProjectID = st.SelectedProjectID
		}
	}
	switch st.View {
	case "projects":
		if m.selectedWorkspaceID == "" {
			return
		}
		m.view = viewProjects
	case "tasks":
		if m.selectedProjectID == "" {
			return
		}
		m.view = viewTasks
	case "task":
		if _, ok := m.db.FindTask(st.OpenTaskID); !ok {
			return
		}
		m.openTaskID = st.OpenTaskID
		m.view = viewTask
	default:
		return
	}
	if m.selectedWorkspaceID != "" {
		m.refreshProjects()
	}
	m.refreshTasks()
}

// saveTUIState snapshots the current screen for the next launch. Member-scoped
// task lists are not persisted; they restore as the workspaces view.
func (m appModel) saveTUIState() {
	st := &store.TUIState{Version: 1}
	switch m.view {
	case viewProjects:
		st.View = "projects"
	case viewTasks:
		st.View = "tasks"
	case viewTask:
		st.View = "task"
		st.OpenTaskID = m.openTaskID
	default:
		st.View = "workspaces"
	}
	st.SelectedWorkspaceID = m.selectedWorkspaceID
	if m.selectedMemberID == "" {
		st.SelectedProjectID = m.selectedProjectID
	}
	_ = m.store.SaveTUIState(st)
}
