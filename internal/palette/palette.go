// Package palette implements the command-palette navigation model: a
// drill-down stack over workspaces, projects, members, teams and tasks, a
// query-filtered projection of selectable rows, and a clamped selection
// cursor. All state is in-memory and all transitions are synchronous; the
// palette only dispatches host callbacks and never interprets their outcome.
package palette

import "strings"

// Callbacks are the outbound hooks the host supplies. The palette invokes at
// most one per user selection and never retries. Nil hooks are skipped.
type Callbacks struct {
	OnWorkspaceSelect func(workspaceID string)
	OnProjectSelect   func(projectID string)
	OnMemberSelect    func(memberID string)
	OnTaskSelect      func(taskID string)
	OnTeamSelect      func(teamID string)

	OnEditTask      func(taskID string)
	OnDeleteTask    func(taskID string)
	OnShareTask     func(taskID string)
	OnAddManualTime func(taskID string)
	OnOpenChat      func(taskID string)
	OnEditClient    func(workspaceID string)

	// OnAIPrompt receives the raw query when the palette is in AI-prompt mode.
	OnAIPrompt func(prompt string)
}

// Palette composes the navigation stack, the data projection and the
// selection cursor into the open/close lifecycle.
type Palette struct {
	stack *Stack
	snap  Snapshot

	query    string
	selected int
	visible  bool
	aiMode   bool
	filters  Filters

	callbacks Callbacks
	perms     Permissions
}

func New(cb Callbacks, perms Permissions) *Palette {
	return &Palette{
		stack:     NewStack(),
		callbacks: cb,
		perms:     perms,
	}
}

// SetSnapshot swaps in a fresh read-only view of the collections. The
// selection is re-clamped since the row count may have changed.
func (p *Palette) SetSnapshot(snap Snapshot) {
	p.snap = snap
	p.clampSelection()
}

func (p *Palette) Snapshot() Snapshot { return p.snap }

// Open seeds a fresh stack at the absolute root.
func (p *Palette) Open() {
	p.stack.ResetToRoot()
	p.visible = true
	p.query = ""
	p.selected = 0
	p.aiMode = false
}

// OpenAtWorkspace seeds [root, workspace] when the host already has a
// workspace selected.
func (p *Palette) OpenAtWorkspace(id, name string) {
	if id == "" {
		p.Open()
		return
	}
	p.stack.ResetToFrame(WorkspaceFrame(id, name))
	p.visible = true
	p.query = ""
	p.selected = 0
	p.aiMode = false
}

// Close hides the palette and clears query and selection. The stack is left
// alone: Open reseeds it, so reopening always starts fresh anyway.
func (p *Palette) Close() {
	p.visible = false
	p.query = ""
	p.selected = 0
	p.aiMode = false
	p.filters = nil
}

// Toggle opens at the given workspace seed (possibly empty) or closes.
// Safe under rapid repeated toggling: open and close are both idempotent.
func (p *Palette) Toggle(workspaceID, workspaceName string) {
	if p.visible {
		p.Close()
		return
	}
	p.OpenAtWorkspace(workspaceID, workspaceName)
}

func (p *Palette) Visible() bool { return p.visible }

func (p *Palette) Query() string { return p.query }

// SetQuery replaces the live query and resets the cursor. It never navigates.
func (p *Palette) SetQuery(q string) {
	p.query = q
	p.selected = 0
}

func (p *Palette) AIMode() bool { return p.aiMode }

func (p *Palette) ToggleAIMode() { p.aiMode = !p.aiMode }

// SetCategoryFilter toggles a per-category filter on the projection.
func (p *Palette) SetCategoryFilter(k Kind) {
	if p.filters == nil {
		p.filters = Filters{}
	}
	if p.filters[k] {
		delete(p.filters, k)
	} else {
		p.filters[k] = true
	}
	p.selected = 0
}

func (p *Palette) ClearFilters() {
	p.filters = nil
	p.selected = 0
}

func (p *Palette) ActiveFilters() Filters { return p.filters }

// Items returns the selectable rows for the current frame. At the task level
// the projection is empty and the fixed action list takes its place.
func (p *Palette) Items() []Item {
	cur := p.stack.Current()
	if cur.Level == LevelTask {
		return taskActionItems(cur, p.query, p.perms)
	}
	return ProjectItems(cur, p.query, p.snap, p.filters)
}

// Loading reports whether the snapshot has not been populated yet; it takes
// precedence over empty-result rendering in the host.
func (p *Palette) Loading() bool { return !p.snap.Loaded }

func (p *Palette) Current() Frame { return p.stack.Current() }

func (p *Palette) CanGoBack() bool { return p.stack.CanGoBack() }

func (p *Palette) Breadcrumbs() []string { return p.stack.Breadcrumbs() }

func (p *Palette) SelectedIndex() int { return p.selected }

func (p *Palette) clampSelection() {
	n := len(p.Items())
	if n == 0 {
		p.selected = 0
		return
	}
	if p.selected >= n {
		p.selected = n - 1
	}
	if p.selected < 0 {
		p.selected = 0
	}
}

func (p *Palette) MoveUp() {
	p.selected--
	p.clampSelection()
}

func (p *Palette) MoveDown() {
	p.selected++
	p.clampSelection()
}

// Backspace implements the edit-wins rule: with query text present it edits
// the text; only an empty query navigates back.
func (p *Palette) Backspace() {
	if p.query != "" {
		q := []rune(p.query)
		p.query = string(q[:len(q)-1])
		p.selected = 0
		return
	}
	p.Back()
}

// Back pops one frame; query and selection are frame-scoped so both reset.
func (p *Palette) Back() bool {
	_, ok := p.stack.Pop()
	if ok {
		p.query = ""
		p.selected = 0
	}
	return ok
}

// JumpToIndex truncates to breadcrumb position i.
func (p *Palette) JumpToIndex(i int) {
	p.stack.JumpToIndex(i)
	p.query = ""
	p.selected = 0
}

// Select activates the highlighted row. In AI-prompt mode the query is
// dispatched instead. Selecting from an empty list is a no-op.
func (p *Palette) Select() {
	if p.aiMode {
		prompt := p.query
		p.Close()
		if p.callbacks.OnAIPrompt != nil {
			prompt = strings.TrimSpace(prompt)
			if prompt != "" {
				p.callbacks.OnAIPrompt(prompt)
			}
		}
		return
	}

	items := p.Items()
	if len(items) == 0 {
		return
	}
	p.clampSelection()
	p.activate(items[p.selected])
}

func (p *Palette) activate(it Item) {
	switch it.Kind {
	case KindWorkspace:
		p.pushAndNotify(Frame{
			Level:         LevelWorkspace,
			WorkspaceID:   it.ID,
			WorkspaceName: it.Title,
			Title:         it.Title,
		}, p.callbacks.OnWorkspaceSelect, it.ID)

	case KindProject:
		cur := p.stack.Current()
		p.pushAndNotify(Frame{
			Level:         LevelProject,
			WorkspaceID:   cur.WorkspaceID,
			WorkspaceName: cur.WorkspaceName,
			ProjectID:     it.ID,
			ProjectName:   it.Title,
			Title:         it.Title,
		}, p.callbacks.OnProjectSelect, it.ID)

	case KindMember:
		cur := p.stack.Current()
		p.pushAndNotify(Frame{
			Level:         LevelMember,
			WorkspaceID:   cur.WorkspaceID,
			WorkspaceName: cur.WorkspaceName,
			MemberID:      it.ID,
			MemberName:    it.Title,
			Title:         it.Title,
		}, p.callbacks.OnMemberSelect, it.ID)

	case KindTeam:
		p.pushAndNotify(Frame{
			Level:    LevelTeam,
			TeamID:   it.ID,
			TeamName: it.Title,
			Title:    it.Title,
		}, p.callbacks.OnTeamSelect, it.ID)

	case KindTask:
		cur := p.stack.Current()
		p.pushAndNotify(Frame{
			Level:         LevelTask,
			WorkspaceID:   cur.WorkspaceID,
			WorkspaceName: cur.WorkspaceName,
			TaskID:        it.ID,
			TaskTitle:     it.Title,
			Title:         it.Title,
		}, p.callbacks.OnTaskSelect, it.ID)

	case KindAction:
		p.dispatchAction(it)
	}
}

func (p *Palette) pushAndNotify(f Frame, cb func(string), id string) {
	p.stack.Push(f)
	p.query = ""
	p.selected = 0
	if cb != nil {
		cb(id)
	}
}

// dispatchAction invokes the bound callback and closes the palette. The
// callback's outcome (including failure) belongs to the host.
func (p *Palette) dispatchAction(it Item) {
	taskID := it.ID
	workspaceID := p.stack.Current().WorkspaceID
	p.Close()

	switch it.Action {
	case ActionViewTask:
		if p.callbacks.OnTaskSelect != nil {
			p.callbacks.OnTaskSelect(taskID)
		}
	case ActionEditTask:
		if p.callbacks.OnEditTask != nil {
			p.callbacks.OnEditTask(taskID)
		}
	case ActionDeleteTask:
		if p.callbacks.OnDeleteTask != nil {
			p.callbacks.OnDeleteTask(taskID)
		}
	case ActionShareTask:
		if p.callbacks.OnShareTask != nil {
			p.callbacks.OnShareTask(taskID)
		}
	case ActionAddManualTime:
		if p.callbacks.OnAddManualTime != nil {
			p.callbacks.OnAddManualTime(taskID)
		}
	case ActionOpenChat:
		if p.callbacks.OnOpenChat != nil {
			p.callbacks.OnOpenChat(taskID)
		}
	case ActionEditClient:
		if p.callbacks.OnEditClient != nil {
			p.callbacks.OnEditClient(workspaceID)
		}
	}
}
