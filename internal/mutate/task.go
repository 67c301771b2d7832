// Package mutate holds the permission-checked task mutations shared by the
// CLI and the TUI. Mutations are in-memory only: callers save the db and
// append the matching event so both frontends stay consistent about when
// persistence happens.
package mutate

import (
	"strings"
	"time"

	"crewdeck/internal/model"
	"crewdeck/internal/perm"
	"crewdeck/internal/statusutil"
	"crewdeck/internal/store"
)

type TaskResult struct {
	Task         *model.Task
	Changed      bool
	EventPayload map[string]any
}

// SetTaskArchived sets task.Archived, admin only.
func SetTaskArchived(db *store.DB, memberID, taskID string, archived bool) (TaskResult, error) {
	t, err := findTask(db, memberID, taskID)
	if err != nil {
		return TaskResult{}, err
	}
	if !perm.CanDeleteTask(db, memberID) {
		return TaskResult{}, PermissionError{MemberID: memberID, TaskID: taskID, Action: "archive"}
	}
	if t.Archived == archived {
		return TaskResult{Task: t, Changed: false}, nil
	}
	t.Archived = archived
	t.UpdatedAt = time.Now().UTC()
	db.InvalidateIndexes()
	return TaskResult{
		Task:         t,
		Changed:      true,
		EventPayload: map[string]any{"archived": archived},
	}, nil
}

// SetTaskStatus sets task.StatusID after normalization.
func SetTaskStatus(db *store.DB, memberID, taskID, statusID string) (TaskResult, error) {
	t, err := findTask(db, memberID, taskID)
	if err != nil {
		return TaskResult{}, err
	}
	if !perm.CanEditTask(db, memberID, t) {
		return TaskResult{}, PermissionError{MemberID: memberID, TaskID: taskID, Action: "set status"}
	}
	next, err := statusutil.NormalizeStatusID(statusID)
	if err != nil {
		return TaskResult{}, err
	}
	prev := t.StatusID
	if prev == next {
		return TaskResult{Task: t, Changed: false}, nil
	}
	t.StatusID = next
	t.UpdatedAt = time.Now().UTC()
	db.InvalidateIndexes()
	return TaskResult{
		Task:         t,
		Changed:      true,
		EventPayload: map[string]any{"from": prev, "to": next},
	}, nil
}

// SetTaskAssignee sets (or clears, with an empty id) the assignee.
func SetTaskAssignee(db *store.DB, memberID, taskID, assigneeID string) (TaskResult, error) {
	t, err := findTask(db, memberID, taskID)
	if err != nil {
		return TaskResult{}, err
	}
	if !perm.CanEditTask(db, memberID, t) {
		return TaskResult{}, PermissionError{MemberID: memberID, TaskID: taskID, Action: "assign"}
	}
	assigneeID = strings.TrimSpace(assigneeID)
	if assigneeID != "" {
		if _, ok := db.FindMember(assigneeID); !ok {
			return TaskResult{}, NotFoundError{Kind: "member", ID: assigneeID}
		}
	}
	if t.AssigneeID == assigneeID {
		return TaskResult{Task: t, Changed: false}, nil
	}
	t.AssigneeID = assigneeID
	t.UpdatedAt = time.Now().UTC()
	db.InvalidateIndexes()
	return TaskResult{
		Task:         t,
		Changed:      true,
		EventPayload: map[string]any{"assigneeId": assigneeID},
	}, nil
}

// TaskEdits carries the optional field updates for EditTask. Nil means
// "leave unchanged"; an empty string clears where that is meaningful.
type TaskEdits struct {
	Title *string
	Notes *string
	Due   *string // empty string clears the due date
}

func EditTask(db *store.DB, memberID, taskID string, edits TaskEdits) (TaskResult, error) {
	t, err := findTask(db, memberID, taskID)
	if err != nil {
		return TaskResult{}, err
	}
	if !perm.CanEditTask(db, memberID, t) {
		return TaskResult{}, PermissionError{MemberID: memberID, TaskID: taskID, Action: "edit"}
	}
	changed := false
	payload := map[string]any{}
	if edits.Title != nil {
		if v := strings.TrimSpace(*edits.Title); v != t.Title {
			t.Title = v
			payload["title"] = v
			changed = true
		}
	}
	if edits.Notes != nil && *edits.Notes != t.Notes {
		t.Notes = *edits.Notes
		payload["notes"] = true
		changed = true
	}
	if edits.Due != nil {
		if *edits.Due == "" {
			if t.Due != nil {
				t.Due = nil
				payload["due"] = nil
				changed = true
			}
		} else if t.Due == nil || *t.Due != *edits.Due {
			v := *edits.Due
			t.Due = &v
			payload["due"] = v
			changed = true
		}
	}
	if !changed {
		return TaskResult{Task: t, Changed: false}, nil
	}
	t.UpdatedAt = time.Now().UTC()
	db.InvalidateIndexes()
	return TaskResult{Task: t, Changed: true, EventPayload: payload}, nil
}

// AddTimeEntry appends a manual booking. Involvement is required even for
// admins: time entries are personal work records.
func AddTimeEntry(db *store.DB, s store.Store, memberID, taskID string, minutes int, note string) (*model.TimeEntry, error) {
	t, err := findTask(db, memberID, taskID)
	if err != nil {
		return nil, err
	}
	if !perm.CanBookTime(db, memberID, t.ID) {
		return nil, PermissionError{MemberID: memberID, TaskID: taskID, Action: "book time"}
	}
	if minutes <= 0 {
		return nil, ErrInvalidMinutes
	}
	e := model.TimeEntry{
		ID:        s.NextID(db, "time"),
		TaskID:    t.ID,
		MemberID:  strings.TrimSpace(memberID),
		Minutes:   minutes,
		Note:      strings.TrimSpace(note),
		CreatedAt: time.Now().UTC(),
	}
	db.TimeLog = append(db.TimeLog, e)
	db.InvalidateIndexes()
	return &db.TimeLog[len(db.TimeLog)-1], nil
}

func findTask(db *store.DB, memberID, taskID string) (*model.Task, error) {
	taskID = strings.TrimSpace(taskID)
	if db == nil || taskID == "" || strings.TrimSpace(memberID) == "" {
		return nil, NotFoundError{Kind: "task", ID: taskID}
	}
	t, ok := db.FindTask(taskID)
	if !ok {
		return nil, NotFoundError{Kind: "task", ID: taskID}
	}
	return t, nil
}
