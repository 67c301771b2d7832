package mutate

import (
	"errors"
	"testing"

	"crewdeck/internal/model"
	"crewdeck/internal/store"
)

func mutateDB() *store.DB {
	return &store.DB{
		Members: []model.Member{
			{ID: "mem-admin", Name: "Ana", Admin: true},
			{ID: "mem-assignee", Name: "Bruno"},
			{ID: "mem-outsider", Name: "Eva"},
		},
		Tasks: []model.Task{
			{ID: "task-1", Title: "Fix nav", StatusID: "open", ProjectID: "proj-1",
				AssigneeID: "mem-assignee", CreatedBy: "mem-admin"},
		},
	}
}

func TestSetTaskArchived(t *testing.T) {
	db := mutateDB()

	if _, err := SetTaskArchived(db, "mem-assignee", "task-1", true); err == nil {
		t.Fatal("expected assignee archive to be rejected")
	}
	var pe PermissionError
	_, err := SetTaskArchived(db, "mem-outsider", "task-1", true)
	if !errors.As(err, &pe) {
		t.Fatalf("expected PermissionError; got %v", err)
	}

	res, err := SetTaskArchived(db, "mem-admin", "task-1", true)
	if err != nil {
		t.Fatalf("admin archive: %v", err)
	}
	if !res.Changed || !res.Task.Archived {
		t.Fatalf("expected archived change; got %+v", res)
	}

	// Idempotent second call reports no change.
	res, err = SetTaskArchived(db, "mem-admin", "task-1", true)
	if err != nil || res.Changed {
		t.Fatalf("expected no-op; got changed=%v err=%v", res.Changed, err)
	}
}

func TestSetTaskStatus(t *testing.T) {
	db := mutateDB()

	res, err := SetTaskStatus(db, "mem-assignee", "task-1", "DONE")
	if err != nil {
		t.Fatalf("set status: %v", err)
	}
	if res.Task.StatusID != "done" {
		t.Fatalf("expected normalized status done; got %q", res.Task.StatusID)
	}
	if res.EventPayload["from"] != "open" || res.EventPayload["to"] != "done" {
		t.Fatalf("unexpected payload: %v", res.EventPayload)
	}

	if _, err := SetTaskStatus(db, "mem-outsider", "task-1", "open"); err == nil {
		t.Fatal("expected outsider status change to be rejected")
	}
	if _, err := SetTaskStatus(db, "mem-assignee", "task-1", "   "); err == nil {
		t.Fatal("expected empty status to be rejected")
	}
}

func TestSetTaskAssignee(t *testing.T) {
	db := mutateDB()

	if _, err := SetTaskAssignee(db, "mem-admin", "task-1", "mem-ghost"); err == nil {
		t.Fatal("expected unknown assignee to be rejected")
	}
	res, err := SetTaskAssignee(db, "mem-admin", "task-1", "mem-outsider")
	if err != nil || !res.Changed {
		t.Fatalf("reassign: changed=%v err=%v", res.Changed, err)
	}
	// Clearing.
	res, err = SetTaskAssignee(db, "mem-admin", "task-1", "")
	if err != nil || res.Task.AssigneeID != "" {
		t.Fatalf("clear assignee: %v %q", err, res.Task.AssigneeID)
	}
}

func TestEditTask(t *testing.T) {
	db := mutateDB()
	title := "  Fix navigation  "
	due := "2026-09-01"

	res, err := EditTask(db, "mem-assignee", "task-1", TaskEdits{Title: &title, Due: &due})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if res.Task.Title != "Fix navigation" {
		t.Fatalf("expected trimmed title; got %q", res.Task.Title)
	}
	if res.Task.Due == nil || *res.Task.Due != due {
		t.Fatalf("expected due %q; got %v", due, res.Task.Due)
	}

	clear := ""
	res, err = EditTask(db, "mem-assignee", "task-1", TaskEdits{Due: &clear})
	if err != nil || res.Task.Due != nil {
		t.Fatalf("expected cleared due; got %v err=%v", res.Task.Due, err)
	}

	// No edits => no change.
	res, err = EditTask(db, "mem-assignee", "task-1", TaskEdits{})
	if err != nil || res.Changed {
		t.Fatalf("expected no-op; changed=%v err=%v", res.Changed, err)
	}
}

// The by-project index holds task copies, so every field mutation must
// invalidate it or readers keep seeing the pre-edit values.
func TestTaskMutationsRefreshIndexes(t *testing.T) {
	db := mutateDB()
	if got := db.TasksForProject("proj-1"); len(got) != 1 || got[0].StatusID != "open" {
		t.Fatalf("unexpected initial index contents: %+v", got)
	}

	if _, err := SetTaskStatus(db, "mem-assignee", "task-1", "doing"); err != nil {
		t.Fatalf("set status: %v", err)
	}
	if got := db.TasksForProject("proj-1"); len(got) != 1 || got[0].StatusID != "doing" {
		t.Fatalf("expected index to see new status; got %+v", got)
	}

	title := "Fix top nav"
	if _, err := EditTask(db, "mem-assignee", "task-1", TaskEdits{Title: &title}); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if got := db.TasksForProject("proj-1"); len(got) != 1 || got[0].Title != title {
		t.Fatalf("expected index to see new title; got %+v", got)
	}
}

func TestAddTimeEntry(t *testing.T) {
	db := mutateDB()
	s := store.Store{Dir: t.TempDir()}

	if _, err := AddTimeEntry(db, s, "mem-admin", "task-1", 30, ""); err == nil {
		t.Fatal("expected uninvolved admin booking to be rejected")
	}
	if _, err := AddTimeEntry(db, s, "mem-assignee", "task-1", 0, ""); !errors.Is(err, ErrInvalidMinutes) {
		t.Fatalf("expected ErrInvalidMinutes; got %v", err)
	}

	e, err := AddTimeEntry(db, s, "mem-assignee", "task-1", 45, "maqueta")
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	if e.Minutes != 45 || e.Note != "maqueta" {
		t.Fatalf("unexpected entry: %+v", e)
	}
	if got := len(db.TimeForTask("task-1")); got != 1 {
		t.Fatalf("expected 1 entry indexed; got %d", got)
	}

	if _, err := AddTimeEntry(db, s, "mem-assignee", "task-1", 15, ""); err != nil {
		t.Fatalf("second booking: %v", err)
	}
}
