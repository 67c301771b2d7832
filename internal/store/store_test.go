package store

import (
	"context"
	"strings"
	"testing"
	"time"

	"crewdeck/internal/model"
)

func TestSaveLoadRoundtrip(t *testing.T) {
	dir := t.TempDir()
	s := Store{Dir: dir}

	now := time.Now().UTC().Truncate(time.Second)
	db := &DB{
		Version:         1,
		CurrentMemberID: "mem-ana",
		Workspaces: []model.Workspace{
			{ID: "ws-acme", Name: "Acme", ClientID: "cli-acme", CreatedBy: "mem-ana", CreatedAt: now},
		},
		Clients: []model.Client{{ID: "cli-acme", Name: "Acme Inc."}},
		Members: []model.Member{{ID: "mem-ana", Name: "Ana", Admin: true}},
		Tasks: []model.Task{
			{ID: "task-a", WorkspaceID: "ws-acme", Title: "Kickoff", CreatedBy: "mem-ana", CreatedAt: now, UpdatedAt: now},
		},
	}
	if err := s.Save(db); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.CurrentMemberID != "mem-ana" {
		t.Fatalf("currentMemberId = %q", got.CurrentMemberID)
	}
	if len(got.Workspaces) != 1 || got.Workspaces[0].Name != "Acme" {
		t.Fatalf("workspaces = %+v", got.Workspaces)
	}
	if len(got.Tasks) != 1 || got.Tasks[0].Title != "Kickoff" {
		t.Fatalf("tasks = %+v", got.Tasks)
	}
}

func TestLoadMissingFileYieldsEmptyDB(t *testing.T) {
	s := Store{Dir: t.TempDir()}
	db, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if db.Version != 1 || len(db.Workspaces) != 0 {
		t.Fatalf("expected fresh empty db, got %+v", db)
	}
}

func TestNextID_PrefixAndUniqueness(t *testing.T) {
	s := Store{}
	db := &DB{}
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		id := s.NextID(db, "task")
		if !strings.HasPrefix(id, "task-") {
			t.Fatalf("id %q missing prefix", id)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
		db.Tasks = append(db.Tasks, model.Task{ID: id})
	}
}

func TestNormalizeOrgName(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"Default", "default", false},
		{"  acme-studio  ", "acme-studio", false},
		{"", "", true},
		{"bad name", "", true},
		{"-leading", "", true},
	}
	for _, c := range cases {
		got, err := NormalizeOrgName(c.in)
		if c.wantErr {
			if err == nil {
				t.Fatalf("%q: expected error", c.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q: %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("%q: got %q want %q", c.in, got, c.want)
		}
	}
}

func TestMemberIsInvolved(t *testing.T) {
	db := &DB{
		Tasks: []model.Task{
			{ID: "task-a", AssigneeID: "mem-1", CreatedBy: "mem-2"},
			{ID: "task-b", AssigneeID: "mem-3"},
		},
		TimeLog: []model.TimeEntry{
			{ID: "tl-1", TaskID: "task-b", MemberID: "mem-4", Minutes: 30},
		},
	}

	if !db.MemberIsInvolved("mem-1", "task-a") {
		t.Fatalf("assignee should be involved")
	}
	if !db.MemberIsInvolved("mem-2", "task-a") {
		t.Fatalf("creator should be involved")
	}
	if !db.MemberIsInvolved("mem-4", "task-b") {
		t.Fatalf("time booker should be involved")
	}
	if db.MemberIsInvolved("mem-1", "task-b") {
		t.Fatalf("unrelated member should not be involved")
	}
	if db.MemberIsInvolved("mem-1", "task-missing") {
		t.Fatalf("missing task should not be involved")
	}
}

func TestEventLogAppendAndRead(t *testing.T) {
	s := Store{Dir: t.TempDir()}
	ctx := context.Background()

	if err := s.AppendEvent("mem-ana", "task.create", "task-a", map[string]any{"title": "Kickoff"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := s.AppendEvent("mem-ana", "task.assign", "task-a", map[string]any{"assigneeId": "mem-bruno"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := s.AppendEvent("mem-ana", "workspace.create", "ws-acme", nil); err != nil {
		t.Fatalf("append: %v", err)
	}

	all, err := s.ReadEvents(ctx, 0)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 events, got %d", len(all))
	}
	if all[0].Type != "task.create" {
		t.Fatalf("expected oldest-first order, got %q first", all[0].Type)
	}

	forTask, err := s.ReadEventsForEntity(ctx, "task-a", 0)
	if err != nil {
		t.Fatalf("read entity: %v", err)
	}
	if len(forTask) != 2 {
		t.Fatalf("expected 2 task-a events, got %d", len(forTask))
	}

	limited, err := s.ReadEvents(ctx, 1)
	if err != nil {
		t.Fatalf("read limited: %v", err)
	}
	if len(limited) != 1 {
		t.Fatalf("expected limit to apply, got %d", len(limited))
	}
}

func TestEventLogRejectsIncompleteEvents(t *testing.T) {
	s := Store{Dir: t.TempDir()}
	if err := s.AppendEvent("", "task.create", "task-a", nil); err == nil {
		t.Fatalf("expected error for missing member id")
	}
	if err := s.AppendEvent("mem-ana", "", "task-a", nil); err == nil {
		t.Fatalf("expected error for missing type")
	}
	if err := s.AppendEvent("mem-ana", "task.create", "", nil); err == nil {
		t.Fatalf("expected error for missing entity id")
	}
}
