package report

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"crewdeck/internal/store"
)

type WriteOptions struct {
	IncludeArchived bool
	IncludeTime     bool
	Overwrite       bool
}

type WriteResult struct {
	Written []string `json:"written"`
}

// WriteWorkspace writes the workspace overview plus one page per task under
// toDir/workspaces/<workspace-id>/.
func WriteWorkspace(db *store.DB, workspaceID string, toDir string, opt WriteOptions) (WriteResult, error) {
	if db == nil {
		return WriteResult{}, errors.New("missing db")
	}
	workspaceID = strings.TrimSpace(workspaceID)
	if workspaceID == "" {
		return WriteResult{}, errors.New("missing workspaceID")
	}
	toDir = strings.TrimSpace(toDir)
	if toDir == "" {
		return WriteResult{}, errors.New("missing --to")
	}
	toDir = filepath.Clean(toDir)

	ropt := RenderOptions{IncludeArchived: opt.IncludeArchived, IncludeTime: opt.IncludeTime}

	indexMD, err := RenderWorkspaceMarkdown(db, workspaceID, ropt)
	if err != nil {
		return WriteResult{}, err
	}

	wsDir := filepath.Join(toDir, "workspaces", workspaceID)
	tasksDir := filepath.Join(wsDir, "tasks")
	if err := os.MkdirAll(tasksDir, 0o755); err != nil {
		return WriteResult{}, err
	}

	indexPath := filepath.Join(wsDir, "index.md")
	if err := writeFile(indexPath, []byte(indexMD), opt.Overwrite); err != nil {
		return WriteResult{}, err
	}

	written := []string{indexPath}
	for i := range db.Tasks {
		t := &db.Tasks[i]
		if t.WorkspaceID != workspaceID {
			continue
		}
		if t.Archived && !opt.IncludeArchived {
			continue
		}
		md, err := RenderTaskMarkdown(db, t.ID, ropt)
		if err != nil {
			return WriteResult{}, err
		}
		p := filepath.Join(tasksDir, t.ID+".md")
		if err := writeFile(p, []byte(md), opt.Overwrite); err != nil {
			return WriteResult{}, err
		}
		written = append(written, p)
	}

	return WriteResult{Written: written}, nil
}

func writeFile(path string, b []byte, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.New("file exists (use --overwrite): " + path)
		}
	}
	return os.WriteFile(path, b, 0o644)
}
