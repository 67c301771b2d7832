package mutate

import (
	"errors"
	"fmt"
)

var ErrInvalidMinutes = errors.New("minutes must be positive")

type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

type PermissionError struct {
	MemberID string
	TaskID   string
	Action   string
}

func (e PermissionError) Error() string {
	// Kept generic; CLI/TUI wrap it with friendlier phrasing.
	return fmt.Sprintf("permission denied: %s", e.Action)
}
