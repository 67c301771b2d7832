package palette

import (
	"fmt"
	"sort"
	"strings"

	"crewdeck/internal/model"
)

// Snapshot is a read-only view of the entity collections the palette can
// search. The host refreshes it opaquely (reload, file watcher); the palette
// never mutates it.
type Snapshot struct {
	// Loaded distinguishes "collections not populated yet" from genuinely
	// empty results. Loading takes precedence over empty-state rendering.
	Loaded bool

	Workspaces []model.Workspace
	Clients    []model.Client
	Projects   []model.Project
	Members    []model.Member
	Teams      []model.Team
	Tasks      []model.Task
}

// Filters restricts projection to a subset of item kinds. Empty means all.
type Filters map[Kind]bool

func (f Filters) allows(k Kind) bool {
	if len(f) == 0 {
		return true
	}
	return f[k]
}

// ProjectItems derives the ordered selectable rows for a frame:
// root => workspaces+teams; workspace => projects + members with tasks there;
// project/member => tasks; team => its members; task => none (the orchestrator
// swaps in the action list).
func ProjectItems(f Frame, query string, snap Snapshot, filters Filters) []Item {
	switch f.Level {
	case LevelRoot:
		items := workspaceItems(query, snap, filters)
		return append(items, teamItems(query, snap, filters)...)
	case LevelWorkspace:
		items := projectItems(f.WorkspaceID, query, snap, filters)
		return append(items, memberItems(f.WorkspaceID, query, snap, filters)...)
	case LevelProject:
		return taskItems(query, snap, filters, func(t model.Task) bool {
			return t.ProjectID == f.ProjectID
		})
	case LevelMember:
		return taskItems(query, snap, filters, func(t model.Task) bool {
			if t.AssigneeID != f.MemberID {
				return false
			}
			return f.WorkspaceID == "" || t.WorkspaceID == f.WorkspaceID
		})
	case LevelTeam:
		return teamMemberItems(f.TeamID, query, snap, filters)
	case LevelTask:
		// Terminal: the fixed action list lives in the orchestrator.
		return nil
	default:
		return nil
	}
}

// matchQuery is a case-insensitive substring match across the given fields.
// An empty query matches everything.
func matchQuery(query string, fields ...string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

func workspaceItems(query string, snap Snapshot, filters Filters) []Item {
	if !filters.allows(KindWorkspace) {
		return nil
	}
	var out []Item
	for _, w := range snap.Workspaces {
		if w.Archived || !matchQuery(query, w.Name) {
			continue
		}
		out = append(out, Item{
			Kind:     KindWorkspace,
			ID:       w.ID,
			Title:    w.Name,
			Subtitle: clientNameFor(snap, w.ClientID),
			Badge:    countBadge(openTaskCountForWorkspace(snap, w.ID)),
		})
	}
	return out
}

func teamItems(query string, snap Snapshot, filters Filters) []Item {
	if !filters.allows(KindTeam) {
		return nil
	}
	var out []Item
	for _, t := range snap.Teams {
		if !matchQuery(query, t.Name) {
			continue
		}
		out = append(out, Item{
			Kind:  KindTeam,
			ID:    t.ID,
			Title: t.Name,
			Badge: countBadge(len(t.MemberIDs)),
		})
	}
	return out
}

// projectItems lists a workspace's projects ordered by descending open task
// count (ties keep snapshot order).
func projectItems(workspaceID, query string, snap Snapshot, filters Filters) []Item {
	if !filters.allows(KindProject) {
		return nil
	}
	type scored struct {
		item  Item
		count int
	}
	var rows []scored
	for _, p := range snap.Projects {
		if p.WorkspaceID != workspaceID || p.Archived || !matchQuery(query, p.Name) {
			continue
		}
		n := openTaskCountForProject(snap, p.ID)
		rows = append(rows, scored{
			item: Item{
				Kind:  KindProject,
				ID:    p.ID,
				Title: p.Name,
				Badge: countBadge(n),
			},
			count: n,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].count > rows[j].count })
	out := make([]Item, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.item)
	}
	return out
}

// memberItems lists members that have tasks in the workspace, ordered by
// descending task count.
func memberItems(workspaceID, query string, snap Snapshot, filters Filters) []Item {
	if !filters.allows(KindMember) {
		return nil
	}
	type scored struct {
		item  Item
		count int
	}
	var rows []scored
	for _, m := range snap.Members {
		n := openTaskCountForMember(snap, workspaceID, m.ID)
		if n == 0 || !matchQuery(query, m.Name, m.Email) {
			continue
		}
		rows = append(rows, scored{
			item: Item{
				Kind:     KindMember,
				ID:       m.ID,
				Title:    m.Name,
				Subtitle: m.Email,
				Badge:    countBadge(n),
			},
			count: n,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].count > rows[j].count })
	out := make([]Item, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.item)
	}
	return out
}

// taskItems keeps natural (snapshot) order. The query also matches the
// secondary fields (project name, status) so "invoice" finds tasks filed under
// an Invoices project.
func taskItems(query string, snap Snapshot, filters Filters, keep func(model.Task) bool) []Item {
	if !filters.allows(KindTask) {
		return nil
	}
	var out []Item
	for _, t := range snap.Tasks {
		if t.Archived || !keep(t) {
			continue
		}
		sub := projectNameFor(snap, t.ProjectID)
		if !matchQuery(query, t.Title, sub, t.StatusID) {
			continue
		}
		out = append(out, Item{
			Kind:     KindTask,
			ID:       t.ID,
			Title:    t.Title,
			Subtitle: sub,
			Badge:    t.StatusID,
		})
	}
	return out
}

func teamMemberItems(teamID, query string, snap Snapshot, filters Filters) []Item {
	if !filters.allows(KindMember) {
		return nil
	}
	var team *model.Team
	for i := range snap.Teams {
		if snap.Teams[i].ID == teamID {
			team = &snap.Teams[i]
			break
		}
	}
	if team == nil {
		return nil
	}
	var out []Item
	for _, id := range team.MemberIDs {
		for _, m := range snap.Members {
			if m.ID != id {
				continue
			}
			if !matchQuery(query, m.Name, m.Email) {
				break
			}
			out = append(out, Item{
				Kind:     KindMember,
				ID:       m.ID,
				Title:    m.Name,
				Subtitle: m.Email,
			})
			break
		}
	}
	return out
}

func openTaskCountForWorkspace(snap Snapshot, workspaceID string) int {
	n := 0
	for _, t := range snap.Tasks {
		if !t.Archived && t.WorkspaceID == workspaceID {
			n++
		}
	}
	return n
}

func openTaskCountForProject(snap Snapshot, projectID string) int {
	n := 0
	for _, t := range snap.Tasks {
		if !t.Archived && t.ProjectID == projectID {
			n++
		}
	}
	return n
}

func openTaskCountForMember(snap Snapshot, workspaceID, memberID string) int {
	n := 0
	for _, t := range snap.Tasks {
		if t.Archived || t.AssigneeID != memberID {
			continue
		}
		if workspaceID != "" && t.WorkspaceID != workspaceID {
			continue
		}
		n++
	}
	return n
}

func clientNameFor(snap Snapshot, clientID string) string {
	for _, c := range snap.Clients {
		if c.ID == clientID {
			return c.Name
		}
	}
	return ""
}

func projectNameFor(snap Snapshot, projectID string) string {
	for _, p := range snap.Projects {
		if p.ID == projectID {
			return p.Name
		}
	}
	return ""
}

func countBadge(n int) string {
	if n <= 0 {
		return ""
	}
	return fmt.Sprintf("%d", n)
}
