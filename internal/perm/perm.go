package perm

import (
	"strings"

	"crewdeck/internal/model"
	"crewdeck/internal/store"
)

// Permission rules, shared by the CLI and the TUI palette:
//
//   - Admins can do everything except book time on tasks they never touched
//     (time entries are personal records, so involvement is required).
//   - Involved members (assignee, creator, or anyone who already booked time)
//     can edit a task but not delete or archive it.
//   - Client edits and task deletion are admin only.

func IsAdmin(db *store.DB, memberID string) bool {
	memberID = strings.TrimSpace(memberID)
	if db == nil || memberID == "" {
		return false
	}
	m, ok := db.FindMember(memberID)
	return ok && m.Admin
}

// CanEditTask reports whether the member may mutate the task's fields
// (title, notes, status, due, assignee).
func CanEditTask(db *store.DB, memberID string, t *model.Task) bool {
	if db == nil || t == nil {
		return false
	}
	if IsAdmin(db, memberID) {
		return true
	}
	return db.MemberIsInvolved(strings.TrimSpace(memberID), t.ID)
}

// CanDeleteTask covers archive/delete; involvement does not grant it.
func CanDeleteTask(db *store.DB, memberID string) bool {
	return IsAdmin(db, memberID)
}

// CanBookTime requires involvement even for admins.
func CanBookTime(db *store.DB, memberID, taskID string) bool {
	if db == nil {
		return false
	}
	return db.MemberIsInvolved(strings.TrimSpace(memberID), taskID)
}

// CanEditClient is admin only.
func CanEditClient(db *store.DB, memberID string) bool {
	return IsAdmin(db, memberID)
}
