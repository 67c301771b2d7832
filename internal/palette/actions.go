package palette

// Permissions are the two independent predicates that gate task actions.
// Both are supplied by the host; nil predicates deny.
type Permissions struct {
	IsAdmin    func() bool
	IsInvolved func(taskID string) bool
}

func (p Permissions) admin() bool {
	return p.IsAdmin != nil && p.IsAdmin()
}

func (p Permissions) involved(taskID string) bool {
	return p.IsInvolved != nil && p.IsInvolved(taskID)
}

type actionSpec struct {
	id    ActionID
	title string
	// allowed decides whether the row is shown for the given task.
	allowed func(p Permissions, taskID string) bool
}

// Everyone with palette access can view/share a task and jump to its chat;
// editing needs admin or involvement, destructive and client-facing actions
// need admin, and time can only be booked by someone involved.
var taskActionSpecs = []actionSpec{
	{ActionViewTask, "Ver tarea", func(Permissions, string) bool { return true }},
	{ActionEditTask, "Editar tarea", func(p Permissions, id string) bool { return p.admin() || p.involved(id) }},
	{ActionShareTask, "Compartir tarea", func(Permissions, string) bool { return true }},
	{ActionAddManualTime, "Añadir tiempo manual", func(p Permissions, id string) bool { return p.involved(id) }},
	{ActionOpenChat, "Abrir chat", func(Permissions, string) bool { return true }},
	{ActionEditClient, "Editar cuenta", func(p Permissions, _ string) bool { return p.admin() }},
	{ActionDeleteTask, "Eliminar tarea", func(p Permissions, _ string) bool { return p.admin() }},
}

// taskActionItems is the fixed, permission-filtered action list shown at the
// task level, additionally narrowed by the live query.
func taskActionItems(f Frame, query string, perms Permissions) []Item {
	var out []Item
	for _, spec := range taskActionSpecs {
		if !spec.allowed(perms, f.TaskID) {
			continue
		}
		if !matchQuery(query, spec.title, string(spec.id)) {
			continue
		}
		out = append(out, Item{
			Kind:     KindAction,
			ID:       f.TaskID,
			Title:    spec.title,
			Subtitle: f.TaskTitle,
			Action:   spec.id,
		})
	}
	return out
}
