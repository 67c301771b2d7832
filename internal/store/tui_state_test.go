package store

import "testing"

func TestTUIStateRoundtrip(t *testing.T) {
	s := Store{Dir: t.TempDir()}

	st := &TUIState{
		View:                "tasks",
		SelectedWorkspaceID: "ws-acme",
		SelectedProjectID:   "proj-web",
		OpenTaskID:          "task-a",
	}
	if err := s.SaveTUIState(st); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.LoadTUIState()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.View != "tasks" || got.SelectedWorkspaceID != "ws-acme" || got.OpenTaskID != "task-a" {
		t.Fatalf("roundtrip mismatch: %+v", got)
	}
}

func TestTUIStateMissingFileYieldsDefaults(t *testing.T) {
	s := Store{Dir: t.TempDir()}
	st, err := s.LoadTUIState()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if st.Version != 1 || st.View != "" {
		t.Fatalf("expected empty defaults, got %+v", st)
	}
}
