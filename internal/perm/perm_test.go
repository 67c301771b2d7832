package perm

import (
	"testing"

	"crewdeck/internal/model"
	"crewdeck/internal/store"
)

func permDB() *store.DB {
	return &store.DB{
		Members: []model.Member{
			{ID: "mem-admin", Name: "Ana", Admin: true},
			{ID: "mem-assignee", Name: "Bruno"},
			{ID: "mem-creator", Name: "Carla"},
			{ID: "mem-booker", Name: "Diego"},
			{ID: "mem-outsider", Name: "Eva"},
		},
		Tasks: []model.Task{
			{ID: "task-1", Title: "T", AssigneeID: "mem-assignee", CreatedBy: "mem-creator"},
		},
		TimeLog: []model.TimeEntry{
			{ID: "time-1", TaskID: "task-1", MemberID: "mem-booker", Minutes: 30},
		},
	}
}

func TestCanEditTask(t *testing.T) {
	db := permDB()
	task, _ := db.FindTask("task-1")

	cases := []struct {
		member string
		want   bool
	}{
		{"mem-admin", true},
		{"mem-assignee", true},
		{"mem-creator", true},
		{"mem-booker", true},
		{"mem-outsider", false},
		{"", false},
	}
	for _, c := range cases {
		if got := CanEditTask(db, c.member, task); got != c.want {
			t.Errorf("CanEditTask(%q) = %v, want %v", c.member, got, c.want)
		}
	}
}

func TestCanDeleteTaskIsAdminOnly(t *testing.T) {
	db := permDB()
	if !CanDeleteTask(db, "mem-admin") {
		t.Error("admin should be able to delete")
	}
	for _, id := range []string{"mem-assignee", "mem-creator", "mem-booker", "mem-outsider"} {
		if CanDeleteTask(db, id) {
			t.Errorf("%s should not be able to delete", id)
		}
	}
}

func TestCanBookTimeRequiresInvolvement(t *testing.T) {
	db := permDB()
	// The admin never touched the task, so no booking.
	if CanBookTime(db, "mem-admin", "task-1") {
		t.Error("uninvolved admin should not book time")
	}
	for _, id := range []string{"mem-assignee", "mem-creator", "mem-booker"} {
		if !CanBookTime(db, id, "task-1") {
			t.Errorf("%s should be able to book time", id)
		}
	}
	if CanBookTime(db, "mem-outsider", "task-1") {
		t.Error("outsider should not book time")
	}
}

func TestNilSafety(t *testing.T) {
	if CanEditTask(nil, "mem-admin", nil) {
		t.Error("nil db/task must deny")
	}
	if IsAdmin(permDB(), "   ") {
		t.Error("blank member must deny")
	}
}
