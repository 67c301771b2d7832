// Package report renders workspace and task markdown pages for sharing
// outside the terminal (client status updates, handoffs).
package report

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"time"

	"crewdeck/internal/model"
	"crewdeck/internal/store"
)

type RenderOptions struct {
	IncludeArchived bool
	IncludeTime     bool
}

func RenderTaskMarkdown(db *store.DB, taskID string, opt RenderOptions) (string, error) {
	if db == nil {
		return "", fmt.Errorf("missing db")
	}
	t, ok := db.FindTask(strings.TrimSpace(taskID))
	if !ok {
		return "", fmt.Errorf("task not found: %s", taskID)
	}
	if t.Archived && !opt.IncludeArchived {
		return "", fmt.Errorf("task archived (use --include-archived): %s", t.ID)
	}

	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	writeLn("# " + strings.TrimSpace(t.Title))
	writeLn("")
	writeLn("## Meta")
	writeLn("")
	writeLn("- ID: " + t.ID)
	if w, ok := db.FindWorkspace(t.WorkspaceID); ok {
		writeLn("- Workspace: " + strings.TrimSpace(w.Name) + " (" + t.WorkspaceID + ")")
	}
	if p, ok := db.FindProject(t.ProjectID); ok {
		writeLn("- Project: " + strings.TrimSpace(p.Name) + " (" + t.ProjectID + ")")
	}
	if strings.TrimSpace(t.StatusID) != "" {
		writeLn("- Status: " + strings.TrimSpace(t.StatusID))
	}
	if name := memberName(db, t.AssigneeID); name != "" {
		writeLn("- Assigned: " + name)
	}
	if t.Due != nil && strings.TrimSpace(*t.Due) != "" {
		writeLn("- Due: " + strings.TrimSpace(*t.Due))
	}
	if t.Archived {
		writeLn("- Archived: true")
	}
	writeLn("- Created: " + t.CreatedAt.UTC().Format(time.RFC3339))
	writeLn("- Updated: " + t.UpdatedAt.UTC().Format(time.RFC3339))

	if notes := strings.TrimSpace(t.Notes); notes != "" {
		writeLn("")
		writeLn("## Notes")
		writeLn("")
		writeLn(notes)
	}

	if opt.IncludeTime {
		entries := db.TimeForTask(t.ID)
		if len(entries) > 0 {
			total := 0
			writeLn("")
			writeLn("## Time log")
			writeLn("")
			for _, e := range entries {
				total += e.Minutes
				line := fmt.Sprintf("- %s: %d min", e.CreatedAt.UTC().Format("2006-01-02"), e.Minutes)
				if name := memberName(db, e.MemberID); name != "" {
					line += " (" + name + ")"
				}
				if note := strings.TrimSpace(e.Note); note != "" {
					line += " — " + note
				}
				writeLn(line)
			}
			writeLn("")
			writeLn(fmt.Sprintf("Total: %d min", total))
		}
	}

	return buf.String(), nil
}

// RenderWorkspaceMarkdown renders a workspace overview. Projects are ordered
// by open task count, busiest first, matching the drill-down ordering in the
// palette.
func RenderWorkspaceMarkdown(db *store.DB, workspaceID string, opt RenderOptions) (string, error) {
	if db == nil {
		return "", fmt.Errorf("missing db")
	}
	w, ok := db.FindWorkspace(strings.TrimSpace(workspaceID))
	if !ok {
		return "", fmt.Errorf("workspace not found: %s", workspaceID)
	}

	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	writeLn("# " + strings.TrimSpace(w.Name))
	writeLn("")
	if c, ok := db.FindClient(w.ClientID); ok {
		line := "Client: " + strings.TrimSpace(c.Name)
		if contact := strings.TrimSpace(c.Contact); contact != "" {
			line += " (" + contact + ")"
		}
		writeLn(line)
		writeLn("")
	}

	projects := workspaceProjects(db, w.ID, opt.IncludeArchived)
	if len(projects) == 0 {
		writeLn("No projects.")
		return buf.String(), nil
	}

	totalMinutes := 0
	for _, p := range projects {
		tasks := projectTasks(db, p.ID, opt.IncludeArchived)
		writeLn(fmt.Sprintf("## %s (%d tasks)", strings.TrimSpace(p.Name), len(tasks)))
		writeLn("")
		if desc := strings.TrimSpace(p.Description); desc != "" {
			writeLn(desc)
			writeLn("")
		}
		for _, t := range tasks {
			line := "- "
			if t.StatusID != "" {
				line += "[" + t.StatusID + "] "
			}
			line += strings.TrimSpace(t.Title)
			if name := memberName(db, t.AssigneeID); name != "" {
				line += " — " + name
			}
			if t.Due != nil && strings.TrimSpace(*t.Due) != "" {
				line += " (due " + strings.TrimSpace(*t.Due) + ")"
			}
			writeLn(line)
			if opt.IncludeTime {
				for _, e := range db.TimeForTask(t.ID) {
					totalMinutes += e.Minutes
				}
			}
		}
		writeLn("")
	}

	if opt.IncludeTime {
		writeLn(fmt.Sprintf("Total time booked: %d min", totalMinutes))
	}
	return buf.String(), nil
}

func workspaceProjects(db *store.DB, workspaceID string, includeArchived bool) []model.Project {
	out := make([]model.Project, 0)
	for _, p := range db.Projects {
		if p.WorkspaceID != workspaceID {
			continue
		}
		if p.Archived && !includeArchived {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return len(db.TasksForProject(out[i].ID)) > len(db.TasksForProject(out[j].ID))
	})
	return out
}

func projectTasks(db *store.DB, projectID string, includeArchived bool) []model.Task {
	out := make([]model.Task, 0)
	for _, t := range db.Tasks {
		if t.ProjectID != projectID {
			continue
		}
		if t.Archived && !includeArchived {
			continue
		}
		out = append(out, t)
	}
	return out
}

func memberName(db *store.DB, memberID string) string {
	if strings.TrimSpace(memberID) == "" {
		return ""
	}
	if m, ok := db.FindMember(memberID); ok {
		return strings.TrimSpace(m.Name)
	}
	return memberID
}
