package palette

// Kind tags a selectable row.
type Kind int

const (
	KindWorkspace Kind = iota
	KindProject
	KindMember
	KindTask
	KindTeam
	KindAction
)

func (k Kind) String() string {
	switch k {
	case KindWorkspace:
		return "workspace"
	case KindProject:
		return "project"
	case KindMember:
		return "member"
	case KindTask:
		return "task"
	case KindTeam:
		return "team"
	case KindAction:
		return "action"
	default:
		return "unknown"
	}
}

// ActionID names a terminal task operation exposed at the task level.
type ActionID string

const (
	ActionViewTask      ActionID = "view-task"
	ActionEditTask      ActionID = "edit-task"
	ActionDeleteTask    ActionID = "delete-task"
	ActionShareTask     ActionID = "share-task"
	ActionAddManualTime ActionID = "add-manual-time"
	ActionOpenChat      ActionID = "open-chat"
	ActionEditClient    ActionID = "edit-client"
)

// Item is one selectable row: either an entity to drill into or a terminal
// action. Display fields are what the host needs to render the row.
type Item struct {
	Kind     Kind
	ID       string
	Title    string
	Subtitle string
	Badge    string

	// Action is set only for Kind == KindAction.
	Action ActionID
}
