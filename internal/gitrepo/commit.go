package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// AutoCommitEnabled reports whether mutating commands should commit the
// store after saving. Default: true. Disable with CREWDECK_AUTOCOMMIT=0.
func AutoCommitEnabled() bool {
	v := strings.TrimSpace(os.Getenv("CREWDECK_AUTOCOMMIT"))
	if v == "" {
		return true
	}
	if b, err := strconv.ParseBool(v); err == nil {
		return b
	}
	switch strings.ToLower(v) {
	case "y", "yes", "on":
		return true
	case "n", "no", "off":
		return false
	default:
		return true
	}
}

// CommitStore stages db.json and commits it. The SQLite event log and the
// atomic-save temp files are local-only and never staged. Returns
// committed=false when the directory is not a repo or nothing changed.
func CommitStore(ctx context.Context, dir string, message string) (committed bool, err error) {
	st, err := GetStatus(ctx, dir)
	if err != nil {
		return false, err
	}
	if !st.IsRepo {
		return false, nil
	}
	if st.Unmerged || st.InProgress {
		return false, errors.New("git repo has an in-progress merge/rebase; resolve first")
	}

	if _, err := git(ctx, dir, "add", "--", "db.json"); err != nil {
		return false, err
	}

	staged, err := git(ctx, dir, "diff", "--cached", "--name-only")
	if err != nil {
		return false, err
	}
	if strings.TrimSpace(staged) == "" {
		return false, nil
	}

	msg := strings.TrimSpace(message)
	if msg == "" {
		msg = fmt.Sprintf("crewdeck: update (%s)", time.Now().UTC().Format(time.RFC3339))
	}
	if _, err := git(ctx, dir, "commit", "-m", msg); err != nil {
		return false, err
	}
	return true, nil
}

// CommitMessage builds the auto-commit message for a CLI mutation.
func CommitMessage(command string) string {
	command = strings.TrimSpace(command)
	if command == "" {
		return ""
	}
	return fmt.Sprintf("crewdeck: %s (%s)", command, time.Now().UTC().Format("2006-01-02 15:04"))
}
