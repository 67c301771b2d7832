package palette

import "testing"

func allowAll() Permissions {
	return Permissions{
		IsAdmin:    func() bool { return true },
		IsInvolved: func(string) bool { return true },
	}
}

func newTestPalette(cb Callbacks, perms Permissions) *Palette {
	p := New(cb, perms)
	p.SetSnapshot(projectionSnapshot())
	return p
}

func selectItemByID(t *testing.T, p *Palette, id string) {
	t.Helper()
	items := p.Items()
	for i, it := range items {
		if it.ID == id {
			for p.SelectedIndex() < i {
				p.MoveDown()
			}
			for p.SelectedIndex() > i {
				p.MoveUp()
			}
			p.Select()
			return
		}
	}
	t.Fatalf("item %s not present in %v", id, items)
}

func TestPalette_OpenSeedsFreshRootStack(t *testing.T) {
	p := newTestPalette(Callbacks{}, allowAll())
	p.Open()
	selectItemByID(t, p, "w1")
	p.Close()

	p.Open()
	if p.Current().Level != LevelRoot {
		t.Fatalf("expected reopen at root, got %v", p.Current().Level)
	}
	if p.Query() != "" || p.SelectedIndex() != 0 {
		t.Fatalf("expected cleared query/selection on open")
	}
}

func TestPalette_OpenAtWorkspace_SeedsTwoFrames(t *testing.T) {
	p := newTestPalette(Callbacks{}, allowAll())
	p.OpenAtWorkspace("w1", "Acme")

	if !p.CanGoBack() {
		t.Fatalf("expected canGoBack with a seeded workspace frame")
	}
	bc := p.Breadcrumbs()
	if len(bc) != 2 || bc[0] != "Inicio" || bc[1] != "Acme" {
		t.Fatalf("breadcrumbs = %v, want [Inicio Acme]", bc)
	}
}

func TestPalette_SelectionIndexAlwaysInBounds(t *testing.T) {
	p := newTestPalette(Callbacks{}, allowAll())
	p.Open()

	check := func(step string) {
		n := len(p.Items())
		max := n - 1
		if max < 0 {
			max = 0
		}
		if p.SelectedIndex() < 0 || p.SelectedIndex() > max {
			t.Fatalf("%s: selectedIndex %d out of [0,%d]", step, p.SelectedIndex(), max)
		}
	}

	for i := 0; i < 10; i++ {
		p.MoveDown()
		check("down")
	}
	for i := 0; i < 10; i++ {
		p.MoveUp()
		check("up")
	}
	p.MoveDown()
	p.MoveDown()
	p.SetQuery("globex")
	check("query change")
	selectItemByID(t, p, "w2")
	check("navigation")
}

func TestPalette_BackspaceEditsQueryBeforeNavigating(t *testing.T) {
	p := newTestPalette(Callbacks{}, allowAll())
	p.OpenAtWorkspace("w1", "Acme")
	p.SetQuery("abc")

	depth := len(p.Breadcrumbs())
	p.Backspace()
	if p.Query() != "ab" {
		t.Fatalf("expected query edit to win, query = %q", p.Query())
	}
	if len(p.Breadcrumbs()) != depth {
		t.Fatalf("expected stack unchanged while editing query")
	}

	p.SetQuery("")
	p.Backspace()
	if len(p.Breadcrumbs()) != depth-1 {
		t.Fatalf("expected empty-query backspace to pop, depth = %d", len(p.Breadcrumbs()))
	}
}

func TestPalette_DrillDownClearsQueryPerFrame(t *testing.T) {
	p := newTestPalette(Callbacks{}, allowAll())
	p.Open()
	p.SetQuery("acme")
	selectItemByID(t, p, "w1")

	if p.Query() != "" {
		t.Fatalf("expected query cleared on navigate, got %q", p.Query())
	}
	if p.Current().Level != LevelWorkspace || p.Current().WorkspaceID != "w1" {
		t.Fatalf("expected workspace frame, got %+v", p.Current())
	}
}

func TestPalette_SelectingTaskPushesActionLevel(t *testing.T) {
	var selected []string
	p := newTestPalette(Callbacks{
		OnTaskSelect: func(id string) { selected = append(selected, id) },
	}, allowAll())
	p.OpenAtWorkspace("w1", "Acme")
	selectItemByID(t, p, "p-big")
	selectItemByID(t, p, "t1")

	if p.Current().Level != LevelTask || p.Current().TaskID != "t1" {
		t.Fatalf("expected task frame for t1, got %+v", p.Current())
	}
	if len(selected) != 1 || selected[0] != "t1" {
		t.Fatalf("expected exactly one OnTaskSelect(t1), got %v", selected)
	}

	// The projection is empty at task level; the fixed action list replaces it.
	if items := ProjectItems(p.Current(), "", p.Snapshot(), nil); len(items) != 0 {
		t.Fatalf("expected empty projection at task frame")
	}
	actions := p.Items()
	if len(actions) == 0 {
		t.Fatalf("expected action rows at task frame")
	}
	for _, a := range actions {
		if a.Kind != KindAction {
			t.Fatalf("expected only action rows, got %v", a.Kind)
		}
	}
}

func TestPalette_ActionGating(t *testing.T) {
	hasAction := func(items []Item, id ActionID) bool {
		for _, it := range items {
			if it.Action == id {
				return true
			}
		}
		return false
	}

	openAtTask := func(perms Permissions) *Palette {
		p := newTestPalette(Callbacks{}, perms)
		p.OpenAtWorkspace("w1", "Acme")
		selectItemByID(t, p, "p-big")
		selectItemByID(t, p, "t1")
		return p
	}

	// Neither admin nor involved: read-only surface.
	p := openAtTask(Permissions{})
	items := p.Items()
	if !hasAction(items, ActionViewTask) || !hasAction(items, ActionShareTask) || !hasAction(items, ActionOpenChat) {
		t.Fatalf("expected view/share/chat always available, got %v", items)
	}
	if hasAction(items, ActionEditTask) || hasAction(items, ActionDeleteTask) ||
		hasAction(items, ActionAddManualTime) || hasAction(items, ActionEditClient) {
		t.Fatalf("expected gated actions hidden without permissions, got %v", items)
	}

	// Involved but not admin: edit + time, still no delete/client.
	p = openAtTask(Permissions{IsInvolved: func(string) bool { return true }})
	items = p.Items()
	if !hasAction(items, ActionEditTask) || !hasAction(items, ActionAddManualTime) {
		t.Fatalf("expected involved user to get edit/add-time, got %v", items)
	}
	if hasAction(items, ActionDeleteTask) || hasAction(items, ActionEditClient) {
		t.Fatalf("expected admin-only actions hidden, got %v", items)
	}

	// Admin but not involved: delete/client, no add-time.
	p = openAtTask(Permissions{IsAdmin: func() bool { return true }})
	items = p.Items()
	if !hasAction(items, ActionDeleteTask) || !hasAction(items, ActionEditClient) {
		t.Fatalf("expected admin actions, got %v", items)
	}
	if hasAction(items, ActionAddManualTime) {
		t.Fatalf("expected add-time to require involvement, got %v", items)
	}
}

func TestPalette_ActionDispatchClosesAndFiresOnce(t *testing.T) {
	var deleted []string
	p := newTestPalette(Callbacks{
		OnDeleteTask: func(id string) { deleted = append(deleted, id) },
	}, allowAll())
	p.OpenAtWorkspace("w1", "Acme")
	selectItemByID(t, p, "p-big")
	selectItemByID(t, p, "t1")

	items := p.Items()
	idx := -1
	for i, it := range items {
		if it.Action == ActionDeleteTask {
			idx = i
		}
	}
	if idx < 0 {
		t.Fatalf("delete action not present")
	}
	for p.SelectedIndex() < idx {
		p.MoveDown()
	}
	p.Select()

	if len(deleted) != 1 || deleted[0] != "t1" {
		t.Fatalf("expected one OnDeleteTask(t1), got %v", deleted)
	}
	if p.Visible() {
		t.Fatalf("expected palette closed after action dispatch")
	}
}

func TestPalette_SelectOnEmptyListIsNoOp(t *testing.T) {
	fired := false
	p := newTestPalette(Callbacks{
		OnWorkspaceSelect: func(string) { fired = true },
	}, allowAll())
	p.Open()
	p.SetQuery("no such thing anywhere")

	p.Select()
	if fired {
		t.Fatalf("expected no dispatch when the filtered list is empty")
	}
	if p.Current().Level != LevelRoot {
		t.Fatalf("expected no navigation on empty select")
	}
}

func TestPalette_ToggleIsIdempotentUnderRapidUse(t *testing.T) {
	p := newTestPalette(Callbacks{}, allowAll())
	for i := 0; i < 5; i++ {
		p.Toggle("w1", "Acme")
		if !p.Visible() {
			t.Fatalf("toggle %d: expected open", i)
		}
		p.Toggle("w1", "Acme")
		if p.Visible() {
			t.Fatalf("toggle %d: expected closed", i)
		}
	}
}

func TestPalette_CategoryFiltersAndClear(t *testing.T) {
	p := newTestPalette(Callbacks{}, allowAll())
	p.OpenAtWorkspace("w1", "Acme")

	p.SetCategoryFilter(KindProject)
	for _, it := range p.Items() {
		if it.Kind != KindProject {
			t.Fatalf("expected only projects with a project filter, got %v", it.Kind)
		}
	}

	p.ClearFilters()
	sawMember := false
	for _, it := range p.Items() {
		if it.Kind == KindMember {
			sawMember = true
		}
	}
	if !sawMember {
		t.Fatalf("expected members back after clearing filters")
	}
}

func TestPalette_AIModeDispatchesPrompt(t *testing.T) {
	var prompts []string
	p := newTestPalette(Callbacks{
		OnAIPrompt:        func(q string) { prompts = append(prompts, q) },
		OnWorkspaceSelect: func(string) { t.Fatalf("no entity selection in AI mode") },
	}, allowAll())
	p.Open()
	p.ToggleAIMode()
	p.SetQuery("  summarize open tasks ")
	p.Select()

	if len(prompts) != 1 || prompts[0] != "summarize open tasks" {
		t.Fatalf("expected trimmed prompt dispatch, got %v", prompts)
	}
	if p.Visible() {
		t.Fatalf("expected palette closed after prompt dispatch")
	}

	// Whitespace-only prompts are dropped, not dispatched.
	p.Open()
	p.ToggleAIMode()
	p.SetQuery(" \t ")
	p.Select()
	if len(prompts) != 1 {
		t.Fatalf("expected whitespace-only prompt to be dropped, got %v", prompts)
	}
}

func TestPalette_LoadingTakesPrecedence(t *testing.T) {
	p := New(Callbacks{}, allowAll())
	p.Open()
	if !p.Loading() {
		t.Fatalf("expected loading before any snapshot")
	}
	p.SetSnapshot(Snapshot{Loaded: true})
	if p.Loading() {
		t.Fatalf("expected loading cleared once snapshot is populated")
	}
	if items := p.Items(); len(items) != 0 {
		t.Fatalf("expected empty result from empty loaded snapshot, got %d", len(items))
	}
}

func TestPalette_JumpToIndexFromBreadcrumb(t *testing.T) {
	p := newTestPalette(Callbacks{}, allowAll())
	p.OpenAtWorkspace("w1", "Acme")
	selectItemByID(t, p, "p-big")
	selectItemByID(t, p, "t1")

	if got := len(p.Breadcrumbs()); got != 4 {
		t.Fatalf("expected 4 breadcrumbs, got %d", got)
	}
	p.JumpToIndex(1)
	if p.Current().Level != LevelWorkspace || p.Current().WorkspaceID != "w1" {
		t.Fatalf("expected jump back to workspace frame, got %+v", p.Current())
	}
	if p.Query() != "" || p.SelectedIndex() != 0 {
		t.Fatalf("expected query/selection reset after jump")
	}
}
