package store

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"crewdeck/internal/model"
)

const dbFileName = "db.json"

// DB is the whole workspace document. It is loaded eagerly and saved
// atomically; the derived indexes are rebuilt lazily and never persisted.
type DB struct {
	Version            int    `json:"version"`
	CurrentMemberID    string `json:"currentMemberId,omitempty"`
	CurrentWorkspaceID string `json:"currentWorkspaceId,omitempty"`

	Workspaces []model.Workspace `json:"workspaces"`
	Clients    []model.Client    `json:"clients"`
	Projects   []model.Project   `json:"projects"`
	Members    []model.Member    `json:"members"`
	Teams      []model.Team      `json:"teams"`
	Tasks      []model.Task      `json:"tasks"`
	TimeLog    []model.TimeEntry `json:"timeLog"`

	idxBuilt          bool                         `json:"-"`
	idxTasksByProject map[string][]model.Task      `json:"-"`
	idxTasksByMember  map[string][]model.Task      `json:"-"`
	idxTimeByTask     map[string][]model.TimeEntry `json:"-"`
}

type Store struct {
	Dir string
}

// DiscoverDir walks up from start looking for a .crewdeck store dir.
func DiscoverDir(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, ".crewdeck")
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func DefaultDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if found, ok := DiscoverDir(cwd); ok {
		return found, nil
	}
	return filepath.Join(cwd, ".crewdeck"), nil
}

var orgNameRe = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]*$`)

// NormalizeOrgName validates the name of an org (a named store root under the
// user config dir; each org holds its own set of client workspaces).
func NormalizeOrgName(name string) (string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return "", errors.New("empty org name")
	}
	if !orgNameRe.MatchString(name) {
		return "", fmt.Errorf("invalid org name: %q", name)
	}
	return name, nil
}

// OrgDir resolves the on-disk store dir for a named org.
func OrgDir(name string) (string, error) {
	name, err := NormalizeOrgName(name)
	if err != nil {
		return "", err
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "orgs", name), nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) dbPath() string {
	return filepath.Join(s.Dir, dbFileName)
}

func (s Store) Load() (*DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(s.dbPath())
	if errors.Is(err, os.ErrNotExist) {
		return &DB{Version: 1}, nil
	}
	if err != nil {
		return nil, err
	}
	var db DB
	if err := json.Unmarshal(b, &db); err != nil {
		return nil, fmt.Errorf("parse %s: %w", dbFileName, err)
	}
	if db.Version == 0 {
		db.Version = 1
	}
	return &db, nil
}

// Save writes db.json atomically (temp file + rename) so a concurrent TUI
// reload never sees a torn document.
func (s Store) Save(db *DB) error {
	if err := s.Ensure(); err != nil {
		return err
	}
	b, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.Dir, dbFileName+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(append(b, '\n')); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return os.Rename(tmpPath, s.dbPath())
}

// DBPath exposes the document path for file watchers.
func (s Store) DBPath() string { return s.dbPath() }

const idAlphabet = "abcdefghijkmnpqrstuvwxyz23456789"

// NextID returns a hash-based id like task-v7k. Short ids are user-facing, so
// on repeated collisions the suffix grows instead of falling back to integers.
func (s Store) NextID(db *DB, prefix string) string {
	for _, ln := range []int{3, 4, 5, 6, 8} {
		attempts := 50
		if ln == 3 {
			attempts = 200
		}
		for i := 0; i < attempts; i++ {
			id, err := randomID(prefix, ln)
			if err != nil {
				continue
			}
			if !idExists(db, id) {
				return id
			}
		}
	}
	// crypto/rand failing repeatedly: practically unreachable.
	return prefix + "-00000000"
}

func randomID(prefix string, n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	out := make([]byte, n)
	for i := range b {
		out[i] = idAlphabet[int(b[i])%len(idAlphabet)]
	}
	return prefix + "-" + string(out), nil
}

func idExists(db *DB, id string) bool {
	for _, w := range db.Workspaces {
		if w.ID == id {
			return true
		}
	}
	for _, c := range db.Clients {
		if c.ID == id {
			return true
		}
	}
	for _, p := range db.Projects {
		if p.ID == id {
			return true
		}
	}
	for _, m := range db.Members {
		if m.ID == id {
			return true
		}
	}
	for _, t := range db.Teams {
		if t.ID == id {
			return true
		}
	}
	for _, t := range db.Tasks {
		if t.ID == id {
			return true
		}
	}
	for _, e := range db.TimeLog {
		if e.ID == id {
			return true
		}
	}
	return false
}

func (db *DB) FindWorkspace(id string) (*model.Workspace, bool) {
	for i := range db.Workspaces {
		if db.Workspaces[i].ID == id {
			return &db.Workspaces[i], true
		}
	}
	return nil, false
}

func (db *DB) FindClient(id string) (*model.Client, bool) {
	for i := range db.Clients {
		if db.Clients[i].ID == id {
			return &db.Clients[i], true
		}
	}
	return nil, false
}

func (db *DB) FindProject(id string) (*model.Project, bool) {
	for i := range db.Projects {
		if db.Projects[i].ID == id {
			return &db.Projects[i], true
		}
	}
	return nil, false
}

func (db *DB) FindMember(id string) (*model.Member, bool) {
	for i := range db.Members {
		if db.Members[i].ID == id {
			return &db.Members[i], true
		}
	}
	return nil, false
}

func (db *DB) FindTeam(id string) (*model.Team, bool) {
	for i := range db.Teams {
		if db.Teams[i].ID == id {
			return &db.Teams[i], true
		}
	}
	return nil, false
}

func (db *DB) FindTask(id string) (*model.Task, bool) {
	for i := range db.Tasks {
		if db.Tasks[i].ID == id {
			return &db.Tasks[i], true
		}
	}
	return nil, false
}

func (db *DB) ensureIndexes() {
	if db == nil || db.idxBuilt {
		return
	}
	db.idxTasksByProject = map[string][]model.Task{}
	db.idxTasksByMember = map[string][]model.Task{}
	db.idxTimeByTask = map[string][]model.TimeEntry{}

	for _, t := range db.Tasks {
		if t.Archived {
			continue
		}
		if t.ProjectID != "" {
			db.idxTasksByProject[t.ProjectID] = append(db.idxTasksByProject[t.ProjectID], t)
		}
		if t.AssigneeID != "" {
			db.idxTasksByMember[t.AssigneeID] = append(db.idxTasksByMember[t.AssigneeID], t)
		}
	}
	for _, e := range db.TimeLog {
		if e.TaskID != "" {
			db.idxTimeByTask[e.TaskID] = append(db.idxTimeByTask[e.TaskID], e)
		}
	}
	db.idxBuilt = true
}

func (db *DB) TasksForProject(projectID string) []model.Task {
	db.ensureIndexes()
	return db.idxTasksByProject[projectID]
}

func (db *DB) TasksForMember(memberID string) []model.Task {
	db.ensureIndexes()
	return db.idxTasksByMember[memberID]
}

func (db *DB) TimeForTask(taskID string) []model.TimeEntry {
	db.ensureIndexes()
	return db.idxTimeByTask[taskID]
}

// InvalidateIndexes must be called after mutating collections in place.
func (db *DB) InvalidateIndexes() { db.idxBuilt = false }

// MemberIsInvolved reports whether the member is assignee or creator of the
// task, or has booked time on it. Drives the palette's involvement gate.
func (db *DB) MemberIsInvolved(memberID, taskID string) bool {
	t, ok := db.FindTask(taskID)
	if !ok {
		return false
	}
	if t.AssigneeID == memberID || t.CreatedBy == memberID {
		return true
	}
	for _, e := range db.TimeForTask(taskID) {
		if e.MemberID == memberID {
			return true
		}
	}
	return false
}
