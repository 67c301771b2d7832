package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"crewdeck/internal/model"
	"crewdeck/internal/store"
)

func reportDB(now time.Time) *store.DB {
	return &store.DB{
		Version:         1,
		CurrentMemberID: "mem-ana",
		Clients: []model.Client{
			{ID: "cli-acme", Name: "Acme Inc.", Contact: "Laura"},
		},
		Workspaces: []model.Workspace{
			{ID: "ws-acme", Name: "Acme", ClientID: "cli-acme", CreatedBy: "mem-ana", CreatedAt: now},
		},
		Projects: []model.Project{
			{ID: "proj-web", WorkspaceID: "ws-acme", Name: "Website", CreatedBy: "mem-ana", CreatedAt: now},
			{ID: "proj-seo", WorkspaceID: "ws-acme", Name: "SEO", CreatedBy: "mem-ana", CreatedAt: now},
		},
		Members: []model.Member{
			{ID: "mem-ana", Name: "Ana", Admin: true},
			{ID: "mem-bruno", Name: "Bruno"},
		},
		Tasks: []model.Task{
			{ID: "task-1", WorkspaceID: "ws-acme", ProjectID: "proj-web", Title: "Home page",
				Notes: "Some **markdown**.", StatusID: "doing", AssigneeID: "mem-bruno",
				CreatedBy: "mem-ana", CreatedAt: now, UpdatedAt: now},
			{ID: "task-2", WorkspaceID: "ws-acme", ProjectID: "proj-web", Title: "Contact form",
				StatusID: "open", CreatedBy: "mem-ana", CreatedAt: now, UpdatedAt: now},
			{ID: "task-3", WorkspaceID: "ws-acme", ProjectID: "proj-seo", Title: "Keywords",
				StatusID: "open", CreatedBy: "mem-ana", CreatedAt: now, UpdatedAt: now},
		},
		TimeLog: []model.TimeEntry{
			{ID: "time-1", TaskID: "task-1", MemberID: "mem-bruno", Minutes: 90, Note: "maqueta", CreatedAt: now},
		},
	}
}

func TestRenderTaskMarkdown(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	db := reportDB(now)

	md, err := RenderTaskMarkdown(db, "task-1", RenderOptions{IncludeTime: true})
	if err != nil {
		t.Fatalf("RenderTaskMarkdown: %v", err)
	}
	if !strings.Contains(md, "# Home page") {
		t.Fatalf("expected title header, got:\n%s", md)
	}
	if !strings.Contains(md, "## Notes") || !strings.Contains(md, "Some **markdown**.") {
		t.Fatalf("expected notes section, got:\n%s", md)
	}
	if !strings.Contains(md, "Total: 90 min") {
		t.Fatalf("expected time total, got:\n%s", md)
	}
	if !strings.Contains(md, "- Assigned: Bruno") {
		t.Fatalf("expected assignee name, got:\n%s", md)
	}
}

func TestRenderWorkspaceMarkdownOrdersProjectsByTaskCount(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	db := reportDB(now)

	md, err := RenderWorkspaceMarkdown(db, "ws-acme", RenderOptions{IncludeTime: true})
	if err != nil {
		t.Fatalf("RenderWorkspaceMarkdown: %v", err)
	}
	if !strings.Contains(md, "Client: Acme Inc. (Laura)") {
		t.Fatalf("expected client line, got:\n%s", md)
	}
	web := strings.Index(md, "## Website (2 tasks)")
	seo := strings.Index(md, "## SEO (1 tasks)")
	if web < 0 || seo < 0 || web > seo {
		t.Fatalf("expected Website before SEO, got:\n%s", md)
	}
	if !strings.Contains(md, "Total time booked: 90 min") {
		t.Fatalf("expected total time, got:\n%s", md)
	}
}

func TestWriteWorkspace(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	db := reportDB(now)

	to := t.TempDir()
	res, err := WriteWorkspace(db, "ws-acme", to, WriteOptions{Overwrite: true})
	if err != nil {
		t.Fatalf("WriteWorkspace: %v", err)
	}
	if len(res.Written) != 4 {
		t.Fatalf("expected index + 3 task pages; got %d (%v)", len(res.Written), res.Written)
	}
	if _, err := os.Stat(filepath.Join(to, "workspaces", "ws-acme", "index.md")); err != nil {
		t.Fatalf("stat index.md: %v", err)
	}
	if _, err := os.Stat(filepath.Join(to, "workspaces", "ws-acme", "tasks", "task-1.md")); err != nil {
		t.Fatalf("stat task-1.md: %v", err)
	}

	// Existing files are protected without --overwrite.
	if _, err := WriteWorkspace(db, "ws-acme", to, WriteOptions{}); err == nil {
		t.Fatal("expected overwrite error")
	}
}
