package statusutil

import (
	"fmt"
	"strings"
)

// Built-in status ids. Stores may carry custom ids; anything non-empty is
// accepted, these just get case-insensitive normalization.
var builtin = []string{"open", "doing", "blocked", "review", "done"}

func NormalizeStatusID(s string) (string, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "none") {
		return "", nil
	}
	if s == "" {
		return "", fmt.Errorf("invalid status: empty")
	}
	for _, b := range builtin {
		if strings.EqualFold(s, b) {
			return b, nil
		}
	}
	return s, nil
}

func IsBuiltin(statusID string) bool {
	for _, b := range builtin {
		if statusID == b {
			return true
		}
	}
	return false
}

// IsEndState reports whether the status closes the task out of day-to-day
// lists. Custom ids are treated as active.
func IsEndState(statusID string) bool {
	return strings.EqualFold(strings.TrimSpace(statusID), "done")
}
