package gitrepo

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestGetStatusNonRepo(t *testing.T) {
	st, err := GetStatus(context.Background(), t.TempDir())
	if err != nil {
		t.Fatalf("GetStatus: %v", err)
	}
	if st.IsRepo {
		t.Fatalf("expected non-repo status")
	}
}

func TestGetStatusDirtyAndUnmerged(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	ctx := context.Background()
	repo := t.TempDir()

	run(t, repo, "git", "init")
	run(t, repo, "git", "config", "user.email", "test@example.com")
	run(t, repo, "git", "config", "user.name", "Test")

	writeFile(t, filepath.Join(repo, "db.json"), "{}\n")
	run(t, repo, "git", "add", ".")
	run(t, repo, "git", "commit", "-m", "base")
	branch := strings.TrimSpace(runOut(t, repo, "git", "rev-parse", "--abbrev-ref", "HEAD"))
	if branch == "" {
		t.Fatalf("expected default branch")
	}

	st, err := GetStatus(ctx, repo)
	if err != nil {
		t.Fatalf("GetStatus: %v", err)
	}
	if !st.IsRepo || st.Dirty || st.Unmerged {
		t.Fatalf("unexpected clean status: %+v", st)
	}

	writeFile(t, filepath.Join(repo, "db.json"), "{\"version\":1}\n")
	st, err = GetStatus(ctx, repo)
	if err != nil {
		t.Fatalf("GetStatus (dirty): %v", err)
	}
	if !st.Dirty {
		t.Fatalf("expected dirty=true: %+v", st)
	}

	// A conflicting merge must be detected so auto-commit backs off.
	run(t, repo, "git", "stash")
	run(t, repo, "git", "checkout", "-b", "feature")
	writeFile(t, filepath.Join(repo, "db.json"), "{\"branch\":\"feature\"}\n")
	run(t, repo, "git", "add", "db.json")
	run(t, repo, "git", "commit", "-m", "feature")

	run(t, repo, "git", "checkout", branch)
	writeFile(t, filepath.Join(repo, "db.json"), "{\"branch\":\"main\"}\n")
	run(t, repo, "git", "add", "db.json")
	run(t, repo, "git", "commit", "-m", "main")

	_ = exec.Command("git", "-C", repo, "merge", "feature").Run()

	st, err = GetStatus(ctx, repo)
	if err != nil {
		t.Fatalf("GetStatus (conflict): %v", err)
	}
	if !st.Unmerged {
		t.Fatalf("expected unmerged=true: %+v", st)
	}
}

func TestCommitStore(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	ctx := context.Background()
	repo := t.TempDir()

	// Non-repo dirs are a silent no-op.
	committed, err := CommitStore(ctx, repo, "noop")
	if err != nil || committed {
		t.Fatalf("expected non-repo no-op; committed=%v err=%v", committed, err)
	}

	run(t, repo, "git", "init")
	run(t, repo, "git", "config", "user.email", "test@example.com")
	run(t, repo, "git", "config", "user.name", "Test")

	writeFile(t, filepath.Join(repo, "db.json"), "{}\n")
	writeFile(t, filepath.Join(repo, "events.sqlite"), "local\n")

	committed, err = CommitStore(ctx, repo, CommitMessage("tasks create"))
	if err != nil {
		t.Fatalf("CommitStore: %v", err)
	}
	if !committed {
		t.Fatal("expected a commit")
	}

	tracked := runOut(t, repo, "git", "ls-files")
	if !strings.Contains(tracked, "db.json") {
		t.Fatalf("expected db.json tracked; got %q", tracked)
	}
	if strings.Contains(tracked, "events.sqlite") {
		t.Fatalf("event log must stay untracked; got %q", tracked)
	}

	// Nothing new to commit.
	committed, err = CommitStore(ctx, repo, "again")
	if err != nil || committed {
		t.Fatalf("expected no-op; committed=%v err=%v", committed, err)
	}
}

func run(t *testing.T, dir string, bin string, args ...string) {
	t.Helper()
	cmd := exec.Command(bin, args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("%s %v: %v\n%s", bin, args, err, string(out))
	}
}

func runOut(t *testing.T, dir string, bin string, args ...string) string {
	t.Helper()
	cmd := exec.Command(bin, args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("%s %v: %v\n%s", bin, args, err, string(out))
	}
	return string(out)
}

func writeFile(t *testing.T, path string, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
